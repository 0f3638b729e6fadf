package ephem

import (
	"errors"
	"fmt"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/rise"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/unit"
)

// ErrCircumpolar reports that a body never crosses the horizon at the
// site within the solver's day window, either always up or always down.
var ErrCircumpolar = errors.New("ephem: circumpolar")

// dayEvents holds a body's horizon crossings for one UT day.
type dayEvents struct {
	rise time.Time
	set  time.Time
}

// riseSetUTDay solves rise and set for the UT calendar day containing t.
// The solver's only failure mode is the circumpolar condition, mapped to
// ErrCircumpolar.
func (s *Site) riseSetUTDay(b Body, t time.Time) (dayEvents, error) {
	t = t.UTC()
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	jd0 := julian.TimeToJD(midnight)
	ra, dec, _, err := b.Astrometric(jd0)
	if err != nil {
		return dayEvents{}, err
	}
	th0 := sidereal.Apparent0UT(jd0)
	tRise, _, tSet, err := rise.ApproxTimes(s.globeCoord(), s.stdh0(b), th0, ra, dec)
	if err != nil {
		return dayEvents{}, fmt.Errorf("%w: %s at %s", ErrCircumpolar, b.Name(), s.Name)
	}
	return dayEvents{
		rise: midnight.Add(time.Duration(tRise.Sec() * float64(time.Second))),
		set:  midnight.Add(time.Duration(tSet.Sec() * float64(time.Second))),
	}, nil
}

// stdh0 is the standard altitude used for horizon crossing. The stellar
// refraction value is scaled by site pressure; the Sun and Moon carry
// their own standard altitudes.
func (s *Site) stdh0(b Body) unit.Angle {
	if sa, ok := b.(stdAltituder); ok {
		return sa.stdh0()
	}
	return rise.Stdh0Stellar.Mul(s.Pressure / standardPressure)
}

func (sunBody) stdh0() unit.Angle  { return rise.Stdh0Solar }
func (moonBody) stdh0() unit.Angle { return rise.Stdh0LunarMean }

// PreviousRising finds the most recent rising of b at or before now.
func (s *Site) PreviousRising(b Body, now time.Time) (time.Time, error) {
	for d := 0; d <= 2; d++ {
		ev, err := s.riseSetUTDay(b, now.AddDate(0, 0, -d))
		if err != nil {
			return time.Time{}, err
		}
		if !ev.rise.After(now) {
			return ev.rise, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: no rising before %s", ErrCircumpolar, now.Format(time.RFC3339))
}

// NextRising finds the first rising of b after now.
func (s *Site) NextRising(b Body, now time.Time) (time.Time, error) {
	return s.nextEvent(b, now, func(ev dayEvents) time.Time { return ev.rise })
}

// NextSetting finds the first setting of b after now.
func (s *Site) NextSetting(b Body, now time.Time) (time.Time, error) {
	return s.nextEvent(b, now, func(ev dayEvents) time.Time { return ev.set })
}

func (s *Site) nextEvent(b Body, now time.Time, pick func(dayEvents) time.Time) (time.Time, error) {
	for d := 0; d <= 2; d++ {
		ev, err := s.riseSetUTDay(b, now.AddDate(0, 0, d))
		if err != nil {
			return time.Time{}, err
		}
		if when := pick(ev); when.After(now) {
			return when, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: no event after %s", ErrCircumpolar, now.Format(time.RFC3339))
}
