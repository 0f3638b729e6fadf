package ephem

import (
	"math"

	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"
)

// AU in kilometers.
const auKm = 149597870.7

// Body yields apparent geocentric equatorial coordinates and visual
// magnitude at a Julian ephemeris day. Implementations are stateless;
// nothing is cached between evaluations.
type Body interface {
	Name() string
	Astrometric(jde float64) (ra unit.RA, dec unit.Angle, mag float64, err error)
}

// stdAltituder lets a body override the standard rise/set altitude.
// Bodies without it use the stellar value (scaled for site pressure).
type stdAltituder interface {
	stdh0() unit.Angle
}

type sunBody struct{}

// Sun returns the Sun.
func Sun() Body { return sunBody{} }

func (sunBody) Name() string { return "Sun" }

func (sunBody) Astrometric(jde float64) (unit.RA, unit.Angle, float64, error) {
	ra, dec := solar.ApparentEquatorial(jde)
	return ra, dec, sunMagnitude, nil
}

type moonBody struct{}

// Moon returns the Moon.
func Moon() Body { return moonBody{} }

func (moonBody) Name() string { return "Moon" }

func (moonBody) Astrometric(jde float64) (unit.RA, unit.Angle, float64, error) {
	lam, bet, _ := moonposition.Position(jde)
	eps := nutation.MeanObliquity(jde)
	se, ce := eps.Sincos()
	ra, dec := coord.EclToEq(lam, bet, se, ce)
	return ra, dec, moonMagnitude(jde), nil
}

type fixedBody struct {
	name string
	ra   unit.RA
	dec  unit.Angle
	mag  float64
}

// Fixed returns a body at a constant catalog position, such as a star
// cluster.
func Fixed(name string, ra unit.RA, dec unit.Angle, mag float64) Body {
	return fixedBody{name: name, ra: ra, dec: dec, mag: mag}
}

func (f fixedBody) Name() string { return f.name }

func (f fixedBody) Astrometric(jde float64) (unit.RA, unit.Angle, float64, error) {
	return f.ra, f.dec, f.mag, nil
}

// norm3 is the length of a rectangular coordinate triple.
func norm3(x, y, z float64) float64 {
	return math.Sqrt(x*x + y*y + z*z)
}
