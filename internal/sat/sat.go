// Package sat predicts Earth-satellite passes from two-line elements,
// delegating propagation to the sgp4 library.
package sat

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akhenakh/sgp4"
	"github.com/soniakeys/unit"

	"github.com/dbryant/ephemeris/internal/ephem"
)

// ErrNoPass reports that no pass was found in the search window; for the
// report this is indistinguishable from a satellite that stays below the
// observer's horizon.
var ErrNoPass = errors.New("sat: no pass above horizon")

// passWindow is how far ahead NextPass searches.
const passWindow = 72 * time.Hour

// passStep is the propagation step in seconds.
const passStep = 30

// Satellite is a configured satellite ready for pass prediction.
type Satellite struct {
	Name string
	tle  *sgp4.TLE
}

// New parses a named two-line element set.
func New(name, line1, line2 string) (*Satellite, error) {
	tle, err := sgp4.ParseTLE(strings.Join([]string{name, line1, line2}, "\n"))
	if err != nil {
		return nil, fmt.Errorf("sat: parse TLE for %s: %w", name, err)
	}
	return &Satellite{Name: name, tle: tle}, nil
}

// Pass is one horizon-to-horizon pass over a site.
type Pass struct {
	Rise    time.Time
	RiseAz  unit.Angle
	Peak    time.Time
	PeakAlt unit.Angle
	PeakAz  unit.Angle
	Set     time.Time
	SetAz   unit.Angle
}

// NextPass returns the first pass over the site after from. Propagation
// failures and empty windows both come back as ErrNoPass; the caller's
// fallback line does not distinguish them.
func (s *Satellite) NextPass(site *ephem.Site, from time.Time) (Pass, error) {
	passes, err := s.tle.GeneratePasses(
		site.Lat.Deg(), site.Lon.Deg(), site.Elevation,
		from.UTC(), from.UTC().Add(passWindow), passStep)
	if err != nil {
		return Pass{}, fmt.Errorf("%w: %s", ErrNoPass, s.Name)
	}
	if len(passes) == 0 {
		return Pass{}, fmt.Errorf("%w: %s", ErrNoPass, s.Name)
	}
	p := passes[0]
	return Pass{
		Rise:    p.AOS,
		RiseAz:  unit.AngleFromDeg(p.AOSAzimuth),
		Peak:    p.MaxElevationTime,
		PeakAlt: unit.AngleFromDeg(p.MaxElevation),
		PeakAz:  unit.AngleFromDeg(p.MaxElevationAz),
		Set:     p.LOS,
		SetAz:   unit.AngleFromDeg(p.LOSAzimuth),
	}, nil
}
