package ephem

import (
	"math"

	"github.com/soniakeys/meeus/v3/moonillum"
)

// Visual magnitude models. The planetary formulas are the Astronomical
// Almanac set (Meeus ch. 41): a distance term 5*log10(r*delta) plus a
// polynomial in the phase angle in degrees. Saturn's ring brightening is
// ignored; the reported value is the globe alone.

const sunMagnitude = -26.74

func distanceTerm(r, delta float64) float64 {
	return 5 * math.Log10(r*delta)
}

// phaseAngleDeg returns the Sun-body-Earth angle in degrees from the
// heliocentric distance r, geocentric distance delta, and the Earth's
// heliocentric distance r0.
func phaseAngleDeg(r, delta, r0 float64) float64 {
	cos := (r*r + delta*delta - r0*r0) / (2 * r * delta)
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos) * 180 / math.Pi
}

func mercuryMagnitude(r, delta, i float64) float64 {
	return -0.42 + distanceTerm(r, delta) + i*(0.0380+i*(-0.000273+i*0.000002))
}

func venusMagnitude(r, delta, i float64) float64 {
	return -4.40 + distanceTerm(r, delta) + i*(0.0009+i*(0.000239-i*0.00000065))
}

func marsMagnitude(r, delta, i float64) float64 {
	return -1.52 + distanceTerm(r, delta) + 0.016*i
}

func jupiterMagnitude(r, delta, i float64) float64 {
	return -9.40 + distanceTerm(r, delta) + 0.005*i
}

func saturnMagnitude(r, delta, _ float64) float64 {
	return -8.88 + distanceTerm(r, delta)
}

func uranusMagnitude(r, delta, _ float64) float64 {
	return -7.19 + distanceTerm(r, delta)
}

func neptuneMagnitude(r, delta, _ float64) float64 {
	return -6.87 + distanceTerm(r, delta)
}

func plutoMagnitude(r, delta float64) float64 {
	return -1.00 + distanceTerm(r, delta)
}

// moonMagnitude approximates the Moon's visual magnitude from its phase
// angle (Allen's formula, phase angle in radians).
func moonMagnitude(jde float64) float64 {
	i := moonillum.PhaseAngle3(jde).Rad()
	i = math.Abs(i)
	return -12.73 + 1.49*i + 0.043*i*i*i*i
}

// cometMagnitude is the standard g/k comet brightness law.
func cometMagnitude(g, k, r, delta float64) float64 {
	return g + 5*math.Log10(delta) + 2.5*k*math.Log10(r)
}
