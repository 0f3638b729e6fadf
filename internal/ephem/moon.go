package ephem

import (
	"time"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/moonillum"
	"github.com/soniakeys/meeus/v3/moonphase"
)

// synodicMonth is the mean length of a lunation in days, used only to
// step the library's nearest-phase search.
const synodicMonth = 29.530588861

// Phase identifies one of the four principal lunar phases.
type Phase int

const (
	PhaseNew Phase = iota
	PhaseFirstQuarter
	PhaseFull
	PhaseLastQuarter
)

// String returns the phase's display name.
func (p Phase) String() string {
	switch p {
	case PhaseNew:
		return "New Moon"
	case PhaseFirstQuarter:
		return "First Quarter"
	case PhaseFull:
		return "Full Moon"
	case PhaseLastQuarter:
		return "Last Quarter"
	default:
		return "?"
	}
}

func (p Phase) fn() func(float64) float64 {
	switch p {
	case PhaseNew:
		return moonphase.New
	case PhaseFirstQuarter:
		return moonphase.First
	case PhaseFull:
		return moonphase.Full
	default:
		return moonphase.Last
	}
}

func jdToYear(jd float64) float64 {
	return 2000 + (jd-base.J2000)/base.JulianYear
}

// phaseBefore returns the jde of the last occurrence of the phase at or
// before jd. The library returns the occurrence nearest a decimal year;
// stepping by the synodic month walks to the wanted side.
func phaseBefore(f func(float64) float64, jd float64) float64 {
	j := f(jdToYear(jd))
	for j > jd {
		j = f(jdToYear(j - synodicMonth))
	}
	for {
		n := f(jdToYear(j + synodicMonth))
		if n > jd {
			return j
		}
		j = n
	}
}

// phaseAfter returns the jde of the first occurrence of the phase
// strictly after jd.
func phaseAfter(f func(float64) float64, jd float64) float64 {
	j := f(jdToYear(jd))
	for j <= jd {
		j = f(jdToYear(j + synodicMonth))
	}
	for {
		p := f(jdToYear(j - synodicMonth))
		if p <= jd {
			return j
		}
		j = p
	}
}

// PreviousPhase returns the most recent occurrence of the phase at or
// before t.
func PreviousPhase(p Phase, t time.Time) time.Time {
	return julian.JDToTime(phaseBefore(p.fn(), julian.TimeToJD(t.UTC())))
}

// NextPhase returns the first occurrence of the phase after t.
func NextPhase(p Phase, t time.Time) time.Time {
	return julian.JDToTime(phaseAfter(p.fn(), julian.TimeToJD(t.UTC())))
}

// Lunation is the normalized position of t between the surrounding new
// moons, in [0,1).
func Lunation(t time.Time) float64 {
	jd := julian.TimeToJD(t.UTC())
	prev := phaseBefore(moonphase.New, jd)
	next := phaseAfter(moonphase.New, jd)
	l := (jd - prev) / (next - prev)
	if l < 0 {
		l = 0
	} else if l >= 1 {
		l = 0
	}
	return l
}

// CurrentPhase classifies the most recently completed principal phase by
// the lunation quartile.
func CurrentPhase(lunation float64) Phase {
	switch {
	case lunation < 0.25:
		return PhaseNew
	case lunation < 0.5:
		return PhaseFirstQuarter
	case lunation < 0.75:
		return PhaseFull
	default:
		return PhaseLastQuarter
	}
}

// Illumination is the illuminated fraction of the Moon's disk at t,
// in [0,1].
func Illumination(t time.Time) float64 {
	i := moonillum.PhaseAngle3(julian.TimeToJD(t.UTC()))
	return base.Illuminated(i)
}
