package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/soniakeys/unit"

	"github.com/dbryant/ephemeris/internal/config"
	"github.com/dbryant/ephemeris/internal/ephem"
)

func london() *ephem.Site {
	return ephem.NewSite("London", unit.AngleFromDeg(51.507), unit.AngleFromDeg(-0.128), 24)
}

func sirius() ephem.Body {
	return ephem.Fixed("Sirius", unit.NewRA(6, 45, 9), unit.NewAngle('-', 16, 42, 58), -1.46)
}

func polaris() ephem.Body {
	return ephem.Fixed("Polaris", unit.NewRA(2, 31, 49), unit.NewAngle('+', 89, 15, 51), 1.98)
}

func TestWriteVisibilityVisibleRow(t *testing.T) {
	var buf bytes.Buffer
	// Sirius is up over London on a January evening.
	at := time.Date(2024, 1, 10, 22, 0, 0, 0, time.UTC)
	snap, err := WriteVisibility(&buf, london(), sirius(), at, time.UTC)
	if err != nil {
		t.Fatalf("WriteVisibility: %v", err)
	}
	if !snap.Visible() {
		t.Fatalf("Sirius below horizon at %v, alt %v", at, snap.Alt.Deg())
	}
	row := buf.String()
	if !strings.HasPrefix(row, "Sirius.............| Yes | ") {
		t.Errorf("row prefix wrong:\n%s", row)
	}
	if got := strings.Count(row, "|"); got != 9 {
		t.Errorf("row has %d column separators, want 9:\n%s", got, row)
	}
	if !strings.Contains(row, " -1.5 |") {
		t.Errorf("row missing magnitude cell:\n%s", row)
	}
}

func TestWriteVisibilityHiddenRow(t *testing.T) {
	var buf bytes.Buffer
	// Mid-morning: Sirius is below the horizon.
	at := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	snap, err := WriteVisibility(&buf, london(), sirius(), at, time.UTC)
	if err != nil {
		t.Fatalf("WriteVisibility: %v", err)
	}
	if snap.Visible() {
		t.Fatalf("Sirius above horizon at %v", at)
	}
	row := buf.String()
	if !strings.Contains(row, "| No  |   ---  |   ---  | ") {
		t.Errorf("hidden row shape wrong:\n%s", row)
	}
	if !strings.Contains(row, " |  ---  |  ----  |  ----  |") {
		t.Errorf("hidden row placeholders wrong:\n%s", row)
	}
}

func TestWriteVisibilityCircumpolarPlaceholders(t *testing.T) {
	var buf bytes.Buffer
	at := time.Date(2024, 4, 10, 12, 0, 0, 0, time.UTC)
	_, err := WriteVisibility(&buf, london(), polaris(), at, time.UTC)
	if err != nil {
		t.Fatalf("WriteVisibility: %v", err)
	}
	row := buf.String()
	if !strings.Contains(row, labelAlreadyUp) || !strings.Contains(row, labelDoesNotSet) {
		t.Errorf("circumpolar row missing placeholders:\n%s", row)
	}
}

func TestWriteVisibilityNeverRisesIsError(t *testing.T) {
	var buf bytes.Buffer
	// A far-southern object never rises over London; below the horizon
	// the circumpolar condition is not softened into placeholders.
	south := ephem.Fixed("Octans", unit.NewRA(14, 0, 0), unit.NewAngle('-', 85, 0, 0), 5)
	_, err := WriteVisibility(&buf, london(), south, time.Date(2024, 4, 10, 12, 0, 0, 0, time.UTC), time.UTC)
	if !errors.Is(err, ephem.ErrCircumpolar) {
		t.Fatalf("err = %v, want ErrCircumpolar", err)
	}
}

func TestWriteConjunctions(t *testing.T) {
	at := func(name string, azDeg, altDeg float64) ephem.Snapshot {
		return ephem.Snapshot{Name: name, Az: unit.AngleFromDeg(azDeg), Alt: unit.AngleFromDeg(altDeg)}
	}

	t.Run("no pairs no output", func(t *testing.T) {
		var buf bytes.Buffer
		n := WriteConjunctions(&buf, []ephem.Snapshot{
			at("Sun", 0, 45), at("Moon", 120, 10), at("Mars", 240, 30),
		})
		if n != 0 {
			t.Errorf("count = %d, want 0", n)
		}
		if buf.Len() != 0 {
			t.Errorf("unexpected output:\n%s", buf.String())
		}
	})

	t.Run("close pair", func(t *testing.T) {
		var buf bytes.Buffer
		n := WriteConjunctions(&buf, []ephem.Snapshot{
			at("Sun", 0, 45), at("Moon", 0, 55.5),
		})
		if n != 1 {
			t.Fatalf("count = %d, want 1", n)
		}
		out := buf.String()
		if !strings.Contains(out, "*** Close Approaches (may not be visible) ***") {
			t.Errorf("missing section header:\n%s", out)
		}
		if !strings.Contains(out, "Sun     to Moon    =  10:30 (dd:mm)") {
			t.Errorf("pair line wrong:\n%s", out)
		}
	})

	t.Run("wide pair excluded", func(t *testing.T) {
		var buf bytes.Buffer
		n := WriteConjunctions(&buf, []ephem.Snapshot{
			at("Sun", 0, 40), at("Moon", 0, 56),
		})
		if n != 0 || buf.Len() != 0 {
			t.Errorf("16-degree pair must not count: n=%d out=%q", n, buf.String())
		}
	})

	t.Run("index pair order", func(t *testing.T) {
		var buf bytes.Buffer
		n := WriteConjunctions(&buf, []ephem.Snapshot{
			at("Sun", 0, 45), at("Moon", 0, 50), at("Venus", 0, 55),
		})
		if n != 3 {
			t.Fatalf("count = %d, want 3", n)
		}
		out := buf.String()
		sunMoon := strings.Index(out, "Sun     to Moon")
		sunVenus := strings.Index(out, "Sun     to Venus")
		moonVenus := strings.Index(out, "Moon    to Venus")
		if sunMoon == -1 || sunVenus == -1 || moonVenus == -1 {
			t.Fatalf("missing pairs:\n%s", out)
		}
		if !(sunMoon < sunVenus && sunVenus < moonVenus) {
			t.Errorf("pairs out of order:\n%s", out)
		}
	})
}

func TestWriteLunarPhase(t *testing.T) {
	var buf bytes.Buffer
	WriteLunarPhase(&buf, time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC), time.UTC)
	out := buf.String()

	for _, want := range []string{
		"*** Lunar Phase information: ***",
		"Current lunar illumination is ",
		"Was just New Moon at ",
		"New Moon     : ",
		"First Quarter: ",
		"Full Moon    : ",
		"Last Quarter : ",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("lunar section missing %q:\n%s", want, out)
		}
	}
	// Two days after the Apr 8 new moon.
	if !strings.Contains(out, "Was just New Moon at 04/08/2024") {
		t.Errorf("previous phase date wrong:\n%s", out)
	}
}

func TestWriteCometsNilSkips(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteComets(&buf, &ephem.Catalog{}, london(), nil, time.Now(), time.UTC); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("nil comet list must produce no output:\n%s", buf.String())
	}
}

func TestWriteCometsHiddenNeverParsed(t *testing.T) {
	var buf bytes.Buffer
	comets := []config.Comet{{Display: false, DBInfo: "this is not a db record"}}
	if err := WriteComets(&buf, &ephem.Catalog{}, london(), comets, time.Now(), time.UTC); err != nil {
		t.Fatalf("hidden record parsed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, cometHeader) {
		t.Errorf("configured comet list still gets its banner:\n%s", out)
	}
	if strings.Contains(out, "this is not") {
		t.Errorf("hidden record leaked into output:\n%s", out)
	}
}

func TestWriteCometsDisplayedBadRecordErrors(t *testing.T) {
	var buf bytes.Buffer
	comets := []config.Comet{{Display: true, DBInfo: "garbage"}}
	if err := WriteComets(&buf, &ephem.Catalog{}, london(), comets, time.Now(), time.UTC); err == nil {
		t.Fatal("expected parse error for displayed record")
	}
}

func TestWriteCometsFixedRecord(t *testing.T) {
	var buf bytes.Buffer
	comets := []config.Comet{{Display: true, DBInfo: pleiadesRecord}}
	at := time.Date(2024, 1, 10, 22, 0, 0, 0, time.UTC)
	if err := WriteComets(&buf, &ephem.Catalog{}, london(), comets, at, time.UTC); err != nil {
		t.Fatalf("WriteComets: %v", err)
	}
	if !strings.Contains(buf.String(), "M45................") {
		t.Errorf("missing M45 row:\n%s", buf.String())
	}
}

func TestWriteSatellites(t *testing.T) {
	site := london()

	t.Run("hidden skipped", func(t *testing.T) {
		var buf bytes.Buffer
		sats := []config.Satellite{{Display: false, Name: "HST", TLELine1: "garbage", TLELine2: "garbage"}}
		if err := WriteSatellites(&buf, site, sats, time.Now()); err != nil {
			t.Fatal(err)
		}
		if buf.Len() != 0 {
			t.Errorf("hidden satellite produced output:\n%s", buf.String())
		}
	})

	t.Run("bad elements error", func(t *testing.T) {
		var buf bytes.Buffer
		sats := []config.Satellite{{Display: true, Name: "JUNK", TLELine1: "1 junk", TLELine2: "2 junk"}}
		if err := WriteSatellites(&buf, site, sats, time.Now()); err == nil {
			t.Fatal("expected TLE parse error")
		}
	})

	t.Run("pass block", func(t *testing.T) {
		var buf bytes.Buffer
		sats := []config.Satellite{{
			Display:  true,
			Name:     "ISS (ZARYA)",
			TLELine1: "1 25544U 98067A   24100.53402777  .00016717  00000-0  30270-3 0  9999",
			TLELine2: "2 25544  51.6405 213.5064 0004640  92.9415 267.2091 15.49954158447382",
		}}
		from := time.Date(2024, 4, 9, 0, 0, 0, 0, time.UTC)
		if err := WriteSatellites(&buf, site, sats, from); err != nil {
			t.Fatalf("WriteSatellites: %v", err)
		}
		out := buf.String()
		if !strings.Contains(out, "ISS (ZARYA)") {
			t.Fatalf("missing satellite name:\n%s", out)
		}
		hasPass := strings.Contains(out, "visibility -- Next Pass")
		hasFallback := strings.Contains(out, "always below your horizon")
		if hasPass == hasFallback {
			t.Fatalf("want exactly one of pass block or fallback:\n%s", out)
		}
		if hasPass && !strings.Contains(out, satRule) {
			t.Errorf("pass block missing rule:\n%s", out)
		}
	})
}

func TestRun(t *testing.T) {
	cat, err := ephem.NewCatalog()
	if err != nil {
		t.Skipf("VSOP87 data unavailable: %v", err)
	}
	cfg := &config.Config{
		Comets: []config.Comet{{Display: true, DBInfo: pleiadesRecord}},
	}
	var buf bytes.Buffer
	opts := Options{Site: london(), Now: time.Date(2024, 4, 10, 21, 0, 0, 0, time.UTC), Local: time.UTC}
	if err := Run(&buf, cat, cfg, opts); err != nil {
		t.Fatalf("Run: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"***** Currently at London (04/10/2024 21:00:00) *****",
		"*** Sun and Moon ***",
		bodyHeader,
		"*** Lunar Phase information: ***",
		"*** Planets ***",
		"Mercury............",
		"Neptune............",
		"Pluto..............",
		"*** Special Objects ***",
		cometHeader,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}
