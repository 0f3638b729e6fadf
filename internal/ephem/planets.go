package ephem

import (
	"fmt"

	"github.com/soniakeys/meeus/v3/elliptic"
	pp "github.com/soniakeys/meeus/v3/planetposition"
	"github.com/soniakeys/meeus/v3/pluto"
	"github.com/soniakeys/unit"
)

// Catalog owns the loaded VSOP87 theory for Earth and hands out planet and
// comet bodies. Loading requires the VSOP87 data files; the path comes
// from the VSOP87 environment variable, as with other tools built on this
// library.
type Catalog struct {
	earth *pp.V87Planet
}

// NewCatalog loads the Earth theory. The returned error is the library's
// own when the VSOP87 data cannot be found.
func NewCatalog() (*Catalog, error) {
	earth, err := pp.LoadPlanet(pp.Earth)
	if err != nil {
		return nil, fmt.Errorf("load VSOP87 earth theory: %w", err)
	}
	return &Catalog{earth: earth}, nil
}

type planetBody struct {
	name   string
	planet *pp.V87Planet
	earth  *pp.V87Planet
	mag    func(r, delta, phase float64) float64
}

func (p planetBody) Name() string { return p.name }

func (p planetBody) Astrometric(jde float64) (unit.RA, unit.Angle, float64, error) {
	ra, dec := elliptic.Position(p.planet, p.earth, jde)
	r, delta, phase := planetGeometry(p.planet, p.earth, jde)
	return ra, dec, p.mag(r, delta, phase), nil
}

// planetGeometry returns the heliocentric distance r, geocentric distance
// delta (both AU), and phase angle in degrees for a planet.
func planetGeometry(p, earth *pp.V87Planet, jde float64) (r, delta, phase float64) {
	l, b, r := p.Position(jde)
	l0, b0, r0 := earth.Position(jde)
	x := r*b.Cos()*l.Cos() - r0*b0.Cos()*l0.Cos()
	y := r*b.Cos()*l.Sin() - r0*b0.Cos()*l0.Sin()
	z := r*b.Sin() - r0*b0.Sin()
	delta = norm3(x, y, z)
	phase = phaseAngleDeg(r, delta, r0)
	return r, delta, phase
}

type plutoBody struct {
	earth *pp.V87Planet
}

func (p plutoBody) Name() string { return "Pluto" }

func (p plutoBody) Astrometric(jde float64) (unit.RA, unit.Angle, float64, error) {
	ra, dec := pluto.Astrometric(jde, p.earth)
	l, b, r := pluto.Heliocentric(jde)
	l0, b0, r0 := p.earth.Position(jde)
	x := r*b.Cos()*l.Cos() - r0*b0.Cos()*l0.Cos()
	y := r*b.Cos()*l.Sin() - r0*b0.Cos()*l0.Sin()
	z := r*b.Sin() - r0*b0.Sin()
	return ra, dec, plutoMagnitude(r, norm3(x, y, z)), nil
}

// planetSpec pairs a VSOP87 planet index with its magnitude model.
type planetSpec struct {
	name  string
	index int
	mag   func(r, delta, phase float64) float64
}

var planetSpecs = []planetSpec{
	{"Mercury", pp.Mercury, mercuryMagnitude},
	{"Venus", pp.Venus, venusMagnitude},
	{"Mars", pp.Mars, marsMagnitude},
	{"Jupiter", pp.Jupiter, jupiterMagnitude},
	{"Saturn", pp.Saturn, saturnMagnitude},
	{"Uranus", pp.Uranus, uranusMagnitude},
	{"Neptune", pp.Neptune, neptuneMagnitude},
}

// Planets returns the report's planet list in its fixed order: Mercury
// through Neptune from the VSOP87 theory, then Pluto from the library's
// separate analytic theory.
func (c *Catalog) Planets() ([]Body, error) {
	bodies := make([]Body, 0, len(planetSpecs)+1)
	for _, spec := range planetSpecs {
		p, err := pp.LoadPlanet(spec.index)
		if err != nil {
			return nil, fmt.Errorf("load VSOP87 theory for %s: %w", spec.name, err)
		}
		bodies = append(bodies, planetBody{
			name:   spec.name,
			planet: p,
			earth:  c.earth,
			mag:    spec.mag,
		})
	}
	return append(bodies, plutoBody{earth: c.earth}), nil
}
