// Package ephem binds the report to the Meeus ephemeris library: observer
// sites, body positions, rise/set solving, lunar phases, and angular
// separation. All orbital mechanics happen in the library; this package
// only sequences the calls and converts conventions.
package ephem

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/meeus/v3/globe"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/unit"
)

// standardPressure is sea-level atmospheric pressure in hPa.
const standardPressure = 1010

// Site is an observer location. Longitude is positive east, the common
// convention; conversion to the library's west-positive convention happens
// internally.
type Site struct {
	Name      string
	Lat       unit.Angle
	Lon       unit.Angle // positive east
	Elevation float64    // meters
	Pressure  float64    // hPa, from PressureAtElevation
}

// NewSite builds a Site and derives its atmospheric pressure from
// elevation.
func NewSite(name string, lat, lon unit.Angle, elevation float64) *Site {
	return &Site{
		Name:      name,
		Lat:       lat,
		Lon:       lon,
		Elevation: elevation,
		Pressure:  PressureAtElevation(elevation),
	}
}

// PressureAtElevation estimates atmospheric pressure in hPa at the given
// elevation in meters, using the same exponential model the original
// XEphem observer used.
func PressureAtElevation(elevation float64) float64 {
	return standardPressure * math.Exp(-elevation/9450)
}

// globeCoord returns the site position in the library's convention
// (longitude positive west).
func (s *Site) globeCoord() globe.Coord {
	return globe.Coord{Lat: s.Lat, Lon: -s.Lon}
}

// Snapshot is an immutable observation of a body from a site at one
// instant. Unlike the mutate-and-recompute pattern of the original
// library binding, a Snapshot is never updated in place; re-observe to
// get values for a different time.
type Snapshot struct {
	Name string
	Time time.Time
	Alt  unit.Angle
	Az   unit.Angle // from north, through east
	RA   unit.RA
	Dec  unit.Angle
	Mag  float64
}

// Observe evaluates a body against the site at time t and returns a fresh
// Snapshot.
func (s *Site) Observe(b Body, t time.Time) (Snapshot, error) {
	jde := julian.TimeToJD(t.UTC())
	ra, dec, mag, err := b.Astrometric(jde)
	if err != nil {
		return Snapshot{}, err
	}
	st := sidereal.Apparent(jde)
	// EqToHz measures azimuth westward from south; shift to north-based.
	a, h := coord.EqToHz(ra, dec, s.Lat, -s.Lon, st)
	return Snapshot{
		Name: b.Name(),
		Time: t,
		Alt:  h,
		Az:   (a + math.Pi).Mod1(),
		RA:   ra,
		Dec:  dec,
		Mag:  mag,
	}, nil
}

// Visible reports whether the snapshot is above the horizon. Altitude
// exactly zero counts as not visible.
func (s Snapshot) Visible() bool {
	return s.Alt > 0
}
