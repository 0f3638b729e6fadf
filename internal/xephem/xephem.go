// Package xephem parses the XEphem db line format used for the comet
// records in objects.json and for fixed catalog objects. Only the record
// types the report needs are supported: fixed objects (f), heliocentric
// elliptic orbits (e), and hyperbolic/parabolic orbits (h, p).
package xephem

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/unit"
)

// Type is the XEphem record type letter.
type Type byte

const (
	Fixed      Type = 'f'
	Elliptic   Type = 'e'
	Hyperbolic Type = 'h'
	Parabolic  Type = 'p'
)

// Record is a parsed db line. Which fields are meaningful depends on
// Type: fixed records carry RA/Dec/Mag; orbit records carry elements and
// the g/k magnitude model.
type Record struct {
	Name string
	Type Type

	// Fixed objects
	RA  unit.RA
	Dec unit.Angle
	Mag float64

	// Orbits
	Inc            unit.Angle
	Node           unit.Angle // longitude of the ascending node
	ArgP           unit.Angle // argument of perihelion
	Axis           float64    // semimajor axis, AU (e records)
	Ecc            float64
	MeanAnomaly    unit.Angle // at EpochJD (e records)
	MeanMotion     float64    // degrees/day, 0 if absent (e records)
	EpochJD        float64    // epoch of MeanAnomaly (e) or perihelion time (h, p)
	PerihelionDist float64    // q, AU (h, p records)
	G, K           float64    // magnitude model coefficients
}

// ParseRecord parses one db line.
func ParseRecord(line string) (*Record, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 2 {
		return nil, fmt.Errorf("xephem: record %q has no type field", line)
	}
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	rec := &Record{Name: fields[0]}
	// The type field may carry subclass letters, as in "f|U".
	typeField := fields[1]
	if typeField == "" {
		return nil, fmt.Errorf("xephem: record %q has an empty type field", rec.Name)
	}
	rec.Type = Type(typeField[0])
	switch rec.Type {
	case Fixed:
		return rec, parseFixed(rec, fields)
	case Elliptic:
		return rec, parseElliptic(rec, fields)
	case Hyperbolic:
		return rec, parseHyperbolic(rec, fields)
	case Parabolic:
		return rec, parseParabolic(rec, fields)
	}
	return nil, fmt.Errorf("xephem: record %q has unsupported type %q", rec.Name, typeField)
}

// parseFixed handles: Name,f|C,RA(h:m:s),Dec(d:m:s),mag[,epoch[,size]]
func parseFixed(rec *Record, fields []string) error {
	if len(fields) < 5 {
		return fmt.Errorf("xephem: fixed record %q needs RA, Dec, and magnitude", rec.Name)
	}
	neg, h, m, s, err := parseSexa(fields[2])
	if err != nil {
		return fmt.Errorf("xephem: record %q RA: %w", rec.Name, err)
	}
	if neg == '-' {
		return fmt.Errorf("xephem: record %q has negative RA", rec.Name)
	}
	rec.RA = unit.NewRA(h, m, s)
	neg, d, m, s, err := parseSexa(fields[3])
	if err != nil {
		return fmt.Errorf("xephem: record %q Dec: %w", rec.Name, err)
	}
	rec.Dec = unit.NewAngle(neg, d, m, s)
	if rec.Mag, err = parseMag(fields[4]); err != nil {
		return fmt.Errorf("xephem: record %q magnitude: %w", rec.Name, err)
	}
	return nil
}

// parseElliptic handles:
// Name,e,i,O,o,a,n,e,M,epoch,equinox[,g[,k]]
func parseElliptic(rec *Record, fields []string) error {
	if len(fields) < 10 {
		return fmt.Errorf("xephem: elliptic record %q is short (%d fields)", rec.Name, len(fields))
	}
	var err error
	if rec.Inc, err = parseDeg(fields[2]); err == nil {
		if rec.Node, err = parseDeg(fields[3]); err == nil {
			rec.ArgP, err = parseDeg(fields[4])
		}
	}
	if err != nil {
		return fmt.Errorf("xephem: elliptic record %q angles: %w", rec.Name, err)
	}
	if rec.Axis, err = strconv.ParseFloat(fields[5], 64); err != nil {
		return fmt.Errorf("xephem: elliptic record %q semimajor axis: %w", rec.Name, err)
	}
	if fields[6] != "" {
		if rec.MeanMotion, err = strconv.ParseFloat(fields[6], 64); err != nil {
			return fmt.Errorf("xephem: elliptic record %q mean motion: %w", rec.Name, err)
		}
	}
	if rec.Ecc, err = strconv.ParseFloat(fields[7], 64); err != nil {
		return fmt.Errorf("xephem: elliptic record %q eccentricity: %w", rec.Name, err)
	}
	if rec.MeanAnomaly, err = parseDeg(fields[8]); err != nil {
		return fmt.Errorf("xephem: elliptic record %q mean anomaly: %w", rec.Name, err)
	}
	if rec.EpochJD, err = parseDate(fields[9]); err != nil {
		return fmt.Errorf("xephem: elliptic record %q epoch: %w", rec.Name, err)
	}
	// fields[10] is the equinox, assumed J2000; then the magnitude model.
	return parseGK(rec, fields, 11)
}

// parseHyperbolic handles: Name,h,T,i,O,o,e,q,equinox[,g[,k]]
func parseHyperbolic(rec *Record, fields []string) error {
	if len(fields) < 8 {
		return fmt.Errorf("xephem: hyperbolic record %q is short (%d fields)", rec.Name, len(fields))
	}
	var err error
	if rec.EpochJD, err = parseDate(fields[2]); err != nil {
		return fmt.Errorf("xephem: hyperbolic record %q perihelion date: %w", rec.Name, err)
	}
	if rec.Inc, err = parseDeg(fields[3]); err == nil {
		if rec.Node, err = parseDeg(fields[4]); err == nil {
			rec.ArgP, err = parseDeg(fields[5])
		}
	}
	if err != nil {
		return fmt.Errorf("xephem: hyperbolic record %q angles: %w", rec.Name, err)
	}
	if rec.Ecc, err = strconv.ParseFloat(fields[6], 64); err != nil {
		return fmt.Errorf("xephem: hyperbolic record %q eccentricity: %w", rec.Name, err)
	}
	if rec.PerihelionDist, err = strconv.ParseFloat(fields[7], 64); err != nil {
		return fmt.Errorf("xephem: hyperbolic record %q perihelion distance: %w", rec.Name, err)
	}
	return parseGK(rec, fields, 9)
}

// parseParabolic handles: Name,p,T,i,o,q,O,equinox[,g[,k]]
func parseParabolic(rec *Record, fields []string) error {
	if len(fields) < 7 {
		return fmt.Errorf("xephem: parabolic record %q is short (%d fields)", rec.Name, len(fields))
	}
	var err error
	if rec.EpochJD, err = parseDate(fields[2]); err != nil {
		return fmt.Errorf("xephem: parabolic record %q perihelion date: %w", rec.Name, err)
	}
	if rec.Inc, err = parseDeg(fields[3]); err == nil {
		if rec.ArgP, err = parseDeg(fields[4]); err == nil {
			if rec.PerihelionDist, err = strconv.ParseFloat(fields[5], 64); err == nil {
				rec.Node, err = parseDeg(fields[6])
			}
		}
	}
	if err != nil {
		return fmt.Errorf("xephem: parabolic record %q elements: %w", rec.Name, err)
	}
	rec.Ecc = 1
	return parseGK(rec, fields, 8)
}

func parseGK(rec *Record, fields []string, at int) error {
	var err error
	if len(fields) > at && fields[at] != "" {
		if rec.G, err = parseMag(fields[at]); err != nil {
			return fmt.Errorf("xephem: record %q g coefficient: %w", rec.Name, err)
		}
	}
	if len(fields) > at+1 && fields[at+1] != "" {
		if rec.K, err = parseMag(fields[at+1]); err != nil {
			return fmt.Errorf("xephem: record %q k coefficient: %w", rec.Name, err)
		}
	}
	return nil
}

// parseMag parses a magnitude-model value, tolerating the format's
// optional leading model letter as in "g7.5" or "H10".
func parseMag(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimLeft(s, "gkHG"))
	return strconv.ParseFloat(s, 64)
}

func parseDeg(s string) (unit.Angle, error) {
	d, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return unit.AngleFromDeg(d), nil
}

// parseSexa splits a colon-separated angle like "3:47:0" or "-16:42".
func parseSexa(s string) (neg byte, d, m int, sec float64, err error) {
	neg = '+'
	if strings.HasPrefix(s, "-") {
		neg = '-'
		s = s[1:]
	}
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, 0, 0, 0, fmt.Errorf("too many components in %q", s)
	}
	d64, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	d = int(d64)
	if len(parts) > 1 {
		m64, err2 := strconv.ParseFloat(parts[1], 64)
		if err2 != nil {
			return 0, 0, 0, 0, err2
		}
		m = int(m64)
		sec = (m64 - float64(m)) * 60
	}
	if len(parts) > 2 {
		s64, err2 := strconv.ParseFloat(parts[2], 64)
		if err2 != nil {
			return 0, 0, 0, 0, err2
		}
		sec = s64
	}
	return neg, d, m, sec, nil
}

// parseDate parses the format's month/day/year date, where the day may
// carry a fraction: "11/28.7747/2013".
func parseDate(s string) (float64, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return 0, fmt.Errorf("date %q is not month/day/year", s)
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("date %q month: %w", s, err)
	}
	day, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, fmt.Errorf("date %q day: %w", s, err)
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, fmt.Errorf("date %q year: %w", s, err)
	}
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("date %q month out of range", s)
	}
	return julian.CalendarGregorianToJD(year, month, day), nil
}
