package ephem

import (
	"math"
	"testing"
	"time"

	"github.com/soniakeys/unit"
)

func london() *Site {
	return NewSite("London", unit.AngleFromDeg(51.507), unit.AngleFromDeg(-0.128), 24)
}

func TestPressureAtElevation(t *testing.T) {
	if p := PressureAtElevation(0); p != 1010 {
		t.Errorf("sea level pressure = %v, want 1010", p)
	}
	if p := PressureAtElevation(9450); math.Abs(p-1010/math.E) > 0.01 {
		t.Errorf("pressure at scale height = %v, want %v", p, 1010/math.E)
	}
	if p0, p1 := PressureAtElevation(0), PressureAtElevation(2000); p1 >= p0 {
		t.Errorf("pressure did not fall with elevation: %v >= %v", p1, p0)
	}
}

func TestNewSiteDerivesPressure(t *testing.T) {
	s := NewSite("Denver", unit.AngleFromDeg(39.739), unit.AngleFromDeg(-104.985), 1609)
	if s.Pressure >= 1010 || s.Pressure < 800 {
		t.Errorf("Pressure = %v, want a plausible mile-high value", s.Pressure)
	}
}

func TestObserveSunNoonSolstice(t *testing.T) {
	// London, 2024 June solstice, noon UT: the Sun stands about 62 deg
	// high, a touch west of due south.
	snap, err := london().Observe(Sun(), time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Observe: %v", err)
	}
	if alt := snap.Alt.Deg(); alt < 55 || alt > 65 {
		t.Errorf("Alt = %v deg, want ~62", alt)
	}
	if az := snap.Az.Deg(); az < 150 || az > 210 {
		t.Errorf("Az = %v deg, want near 180 (north-based azimuth)", az)
	}
	if snap.Mag != sunMagnitude {
		t.Errorf("Mag = %v, want %v", snap.Mag, sunMagnitude)
	}
	if !snap.Visible() {
		t.Error("noon Sun not visible")
	}
}

func TestObserveSunMidnight(t *testing.T) {
	snap, err := london().Observe(Sun(), time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Observe: %v", err)
	}
	if snap.Visible() {
		t.Errorf("midnight Sun visible at alt %v deg", snap.Alt.Deg())
	}
}

func TestObserveMoon(t *testing.T) {
	snap, err := london().Observe(Moon(), time.Date(2024, 4, 23, 22, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Observe: %v", err)
	}
	if h := snap.RA.Hour(); h < 0 || h >= 24 {
		t.Errorf("RA = %v hours, out of range", h)
	}
	if d := snap.Dec.Deg(); d < -30 || d > 30 {
		t.Errorf("Dec = %v deg, outside the Moon's declination band", d)
	}
	// Near full the Moon is bright.
	if snap.Mag > -11 {
		t.Errorf("Mag = %v near full moon, want < -11", snap.Mag)
	}
}

func TestVisibleBoundary(t *testing.T) {
	if (Snapshot{Alt: 0}).Visible() {
		t.Error("altitude exactly zero must count as not visible")
	}
	if !(Snapshot{Alt: unit.AngleFromDeg(0.01)}).Visible() {
		t.Error("slightly positive altitude must be visible")
	}
	if (Snapshot{Alt: unit.AngleFromDeg(-0.01)}).Visible() {
		t.Error("negative altitude must not be visible")
	}
}

func TestFixedBody(t *testing.T) {
	b := Fixed("M45", unit.NewRA(3, 47, 0), unit.NewAngle('+', 24, 7, 0), 1.6)
	if b.Name() != "M45" {
		t.Errorf("Name = %q", b.Name())
	}
	ra1, dec1, mag, err := b.Astrometric(2460000)
	if err != nil {
		t.Fatal(err)
	}
	ra2, dec2, _, _ := b.Astrometric(2465000)
	if ra1 != ra2 || dec1 != dec2 {
		t.Error("fixed body moved between epochs")
	}
	if mag != 1.6 {
		t.Errorf("mag = %v, want 1.6", mag)
	}
}
