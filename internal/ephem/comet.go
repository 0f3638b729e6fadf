package ephem

import (
	"fmt"
	"math"

	"github.com/soniakeys/meeus/v3/elliptic"
	"github.com/soniakeys/meeus/v3/nearparabolic"
	pp "github.com/soniakeys/meeus/v3/planetposition"
	"github.com/soniakeys/meeus/v3/solarxyz"
	"github.com/soniakeys/unit"

	"github.com/dbryant/ephemeris/internal/xephem"
)

// obliquityJ2000 is the mean obliquity of the ecliptic at J2000, radians.
const obliquityJ2000 = 23.43929111 * math.Pi / 180

// gaussianMotion is the Gaussian constant expressed as mean motion in
// degrees per day for a = 1 AU.
const gaussianMotion = 0.9856076686

// FromRecord builds a Body from a parsed XEphem record. Fixed records
// need no orbital theory; orbit records are evaluated against the
// catalog's Earth.
func (c *Catalog) FromRecord(rec *xephem.Record) (Body, error) {
	switch rec.Type {
	case xephem.Fixed:
		return Fixed(rec.Name, rec.RA, rec.Dec, rec.Mag), nil
	case xephem.Elliptic:
		n := rec.MeanMotion
		if n == 0 {
			n = gaussianMotion / math.Pow(rec.Axis, 1.5)
		}
		return &ellipticComet{
			name:  rec.Name,
			earth: c.earth,
			el: elliptic.Elements{
				Axis:  rec.Axis,
				Ecc:   rec.Ecc,
				Inc:   rec.Inc,
				ArgP:  rec.ArgP,
				Node:  rec.Node,
				TimeP: rec.EpochJD - rec.MeanAnomaly.Deg()/n,
			},
			motion: n,
			g:      rec.G,
			k:      rec.K,
		}, nil
	case xephem.Hyperbolic, xephem.Parabolic:
		return &parabolicComet{
			name:  rec.Name,
			earth: c.earth,
			el: nearparabolic.Elements{
				TimeP: rec.EpochJD,
				PDis:  rec.PerihelionDist,
				Ecc:   rec.Ecc,
			},
			inc:  rec.Inc,
			argP: rec.ArgP,
			node: rec.Node,
			g:    rec.G,
			k:    rec.K,
		}, nil
	}
	return nil, fmt.Errorf("ephem: no body for record type %q", rec.Type)
}

// ellipticComet is a comet on a closed orbit, positioned by the library's
// Keplerian element solver.
type ellipticComet struct {
	name   string
	earth  *pp.V87Planet
	el     elliptic.Elements
	motion float64 // degrees/day
	g, k   float64
}

func (ec *ellipticComet) Name() string { return ec.name }

func (ec *ellipticComet) Astrometric(jde float64) (unit.RA, unit.Angle, float64, error) {
	ra, dec, _ := ec.el.Position(jde, ec.earth)
	// The solver does not expose distances; recover r and delta for the
	// g/k magnitude from the anomaly.
	m := unit.AngleFromDeg(ec.motion * (jde - ec.el.TimeP)).Mod1()
	e := solveKepler(ec.el.Ecc, m.Rad())
	r := ec.el.Axis * (1 - ec.el.Ecc*math.Cos(e))
	nu := 2 * math.Atan2(
		math.Sqrt(1+ec.el.Ecc)*math.Sin(e/2),
		math.Sqrt(1-ec.el.Ecc)*math.Cos(e/2))
	_, _, _, delta := heliocentricToGeocentric(
		ec.earth, jde, unit.Angle(nu), r, ec.el.Inc, ec.el.ArgP, ec.el.Node)
	return ra, dec, cometMagnitude(ec.g, ec.k, r, delta), nil
}

// solveKepler iterates Kepler's equation for the eccentric anomaly,
// magnitude use only.
func solveKepler(ecc, m float64) float64 {
	e := m
	for i := 0; i < 20; i++ {
		d := (e - ecc*math.Sin(e) - m) / (1 - ecc*math.Cos(e))
		e -= d
		if math.Abs(d) < 1e-9 {
			break
		}
	}
	return e
}

// parabolicComet covers hyperbolic and parabolic records through the
// library's near-parabolic solver; configured comets are near-parabolic
// by nature.
type parabolicComet struct {
	name            string
	earth           *pp.V87Planet
	el              nearparabolic.Elements
	inc, argP, node unit.Angle
	g, k            float64
}

func (pc *parabolicComet) Name() string { return pc.name }

func (pc *parabolicComet) Astrometric(jde float64) (unit.RA, unit.Angle, float64, error) {
	nu, r, err := pc.el.AnomalyDistance(jde)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("ephem: %s: %w", pc.name, err)
	}
	ra, dec, delta := raDecFromHeliocentric(pc.earth, jde, nu, r, pc.inc, pc.argP, pc.node)
	return ra, dec, cometMagnitude(pc.g, pc.k, r, delta), nil
}

// heliocentricToGeocentric converts a (true anomaly, radius) orbital
// position into geocentric rectangular equatorial J2000 coordinates.
func heliocentricToGeocentric(earth *pp.V87Planet, jde float64, nu unit.Angle, r float64, inc, argP, node unit.Angle) (x, y, z, delta float64) {
	u := argP + nu
	su, cu := u.Sincos()
	sn, cn := node.Sincos()
	si, ci := inc.Sincos()
	// Heliocentric ecliptic, then rotate to the equator.
	xe := r * (cn*cu - sn*su*ci)
	ye := r * (sn*cu + cn*su*ci)
	ze := r * su * si
	se, ce := math.Sin(obliquityJ2000), math.Cos(obliquityJ2000)
	hx := xe
	hy := ye*ce - ze*se
	hz := ye*se + ze*ce
	sx, sy, sz := solarxyz.PositionJ2000(earth, jde)
	x, y, z = hx+sx, hy+sy, hz+sz
	return x, y, z, norm3(x, y, z)
}

// raDecFromHeliocentric is heliocentricToGeocentric plus the conversion
// to equatorial spherical coordinates.
func raDecFromHeliocentric(earth *pp.V87Planet, jde float64, nu unit.Angle, r float64, inc, argP, node unit.Angle) (unit.RA, unit.Angle, float64) {
	x, y, z, delta := heliocentricToGeocentric(earth, jde, nu, r, inc, argP, node)
	ra := unit.RAFromRad(math.Atan2(y, x))
	dec := unit.Angle(math.Asin(z / delta))
	return ra, dec, delta
}
