// Package report generates the ephemeris report: visibility tables for
// the Sun, Moon, and planets, lunar phase timing, close-approach pairs,
// and the configured comets and satellites. All sections write
// fixed-width pipe-delimited text; the byte layout is the program's
// external contract.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/soniakeys/unit"

	"github.com/dbryant/ephemeris/internal/config"
	"github.com/dbryant/ephemeris/internal/ephem"
	"github.com/dbryant/ephemeris/internal/sat"
	"github.com/dbryant/ephemeris/internal/xephem"
)

const (
	bodyHeader  = "       BODY        | VIS |   ALT  |   AZ   |    RISE     |     SET     |  MAG  |   RA   |   DEC  |"
	cometHeader = "      COMET        | VIS |   ALT  |   AZ   |    RISE     |     SET     |  MAG  |   RA   |   DEC  |"
	tableRule   = "-------------------+-----+--------+--------+-------------+-------------+-------+--------+--------+"
)

// pleiadesRecord is M45, close enough to the ecliptic to be worth
// including in the close-approach scan.
const pleiadesRecord = "M45,f|U,3:47:0,24:07:0,1.6,2000,0"

// conjunctionThreshold is the close-approach angle.
var conjunctionThreshold = unit.AngleFromDeg(15)

// Options configure a report run.
type Options struct {
	Site  *ephem.Site
	Now   time.Time      // observation instant, UT
	Local *time.Location // zone for local-time fields; nil means time.Local
}

// Run writes the full report to w. The error, if any, is fatal to the
// run: a malformed displayed record, a missing planetary theory, or the
// unhandled below-horizon circumpolar case.
func Run(w io.Writer, cat *ephem.Catalog, cfg *config.Config, opts Options) error {
	site, now := opts.Site, opts.Now
	local := opts.Local
	if local == nil {
		local = time.Local
	}

	fmt.Fprintf(w, "***** Currently at %s (%s) *****\n",
		site.Name, fmtFullDateTime(now.In(local)))

	// Conjunction candidates accumulate in this fixed order: Sun, Moon,
	// planets, then the Pleiades.
	var snaps []ephem.Snapshot

	fmt.Fprint(w, "\n*** Sun and Moon ***\n")
	fmt.Fprintln(w, bodyHeader)
	fmt.Fprintln(w, tableRule)
	for _, b := range []ephem.Body{ephem.Sun(), ephem.Moon()} {
		snap, err := WriteVisibility(w, site, b, now, local)
		if err != nil {
			return err
		}
		snaps = append(snaps, snap)
	}
	fmt.Fprintln(w, tableRule)

	WriteLunarPhase(w, now, local)

	planets, err := cat.Planets()
	if err != nil {
		return err
	}
	fmt.Fprint(w, "\n*** Planets ***\n")
	fmt.Fprintln(w, bodyHeader)
	fmt.Fprintln(w, tableRule)
	for _, b := range planets {
		snap, err := WriteVisibility(w, site, b, now, local)
		if err != nil {
			return err
		}
		snaps = append(snaps, snap)
	}
	fmt.Fprintln(w, tableRule)

	m45, err := pleiades()
	if err != nil {
		return err
	}
	m45Snap, err := site.Observe(m45, now)
	if err != nil {
		return err
	}
	snaps = append(snaps, m45Snap)

	WriteConjunctions(w, snaps)

	fmt.Fprint(w, "\n*** Special Objects ***\n")
	if err := WriteComets(w, cat, site, cfg.Comets, now, local); err != nil {
		return err
	}
	return WriteSatellites(w, site, cfg.Satellites, now)
}

func pleiades() (ephem.Body, error) {
	rec, err := xephem.ParseRecord(pleiadesRecord)
	if err != nil {
		return nil, err
	}
	return ephem.Fixed(rec.Name, rec.RA, rec.Dec, rec.Mag), nil
}

// WriteLunarPhase writes the illumination/lunation summary, the most
// recently completed phase, and the next four phase boundaries.
func WriteLunarPhase(w io.Writer, now time.Time, local *time.Location) {
	fmt.Fprint(w, "\n*** Lunar Phase information: ***\n")
	lun := ephem.Lunation(now)
	fmt.Fprintf(w, "Current lunar illumination is %.1f%%, lunation is %.4f\n",
		ephem.Illumination(now)*100, lun)
	last := ephem.CurrentPhase(lun)
	fmt.Fprintf(w, "Was just %s at %s UT\n", last, fmtDate(ephem.PreviousPhase(last, now)))

	upcoming := []struct {
		label string
		phase ephem.Phase
	}{
		{"New Moon     ", ephem.PhaseNew},
		{"First Quarter", ephem.PhaseFirstQuarter},
		{"Full Moon    ", ephem.PhaseFull},
		{"Last Quarter ", ephem.PhaseLastQuarter},
	}
	for _, u := range upcoming {
		next := ephem.NextPhase(u.phase, now)
		fmt.Fprintf(w, "%s: %s UT (%s Local time)\n",
			u.label, fmtDate(next), fmtFullDateTime(next.In(local)))
	}
}

// WriteConjunctions scans all unordered snapshot pairs in index order and
// writes those closer than the threshold. The section header appears
// lazily before the first qualifying pair; no pairs, no output at all.
// Returns the number of pairs written.
func WriteConjunctions(w io.Writer, snaps []ephem.Snapshot) int {
	count := 0
	for i := range snaps {
		for j := i + 1; j < len(snaps); j++ {
			sep := ephem.Separation(snaps[i], snaps[j])
			if sep >= conjunctionThreshold {
				continue
			}
			if count == 0 {
				fmt.Fprint(w, "\n*** Close Approaches (may not be visible) ***\n")
			}
			fmt.Fprintf(w, "%-7s to %-7s = %s (dd:mm)\n",
				snaps[i].Name, snaps[j].Name, fmtAngle(sep))
			count++
		}
	}
	return count
}

// WriteComets writes the comet table. A nil list means comets are not
// configured and the section is skipped entirely; an empty or
// all-hidden list still gets its banner, as in the original. Hidden
// records are never parsed or evaluated.
func WriteComets(w io.Writer, cat *ephem.Catalog, site *ephem.Site, comets []config.Comet, now time.Time, local *time.Location) error {
	if comets == nil {
		return nil
	}
	fmt.Fprintln(w, cometHeader)
	fmt.Fprintln(w, tableRule)
	for _, c := range comets {
		if !c.Display {
			continue
		}
		rec, err := xephem.ParseRecord(c.DBInfo)
		if err != nil {
			return err
		}
		body, err := cat.FromRecord(rec)
		if err != nil {
			return err
		}
		if _, err := WriteVisibility(w, site, body, now, local); err != nil {
			return err
		}
	}
	fmt.Fprintln(w, tableRule)
	return nil
}

const satRule = "-------------+--------+-------------+--------+-------------+--------+"

// WriteSatellites writes one next-pass block per displayed satellite.
// A satellite with no pass in the window degrades to the fallback line;
// malformed elements are an error.
func WriteSatellites(w io.Writer, site *ephem.Site, sats []config.Satellite, now time.Time) error {
	for _, s := range sats {
		if !s.Display {
			continue
		}
		satellite, err := sat.New(s.Name, s.TLELine1, s.TLELine2)
		if err != nil {
			return err
		}
		pass, err := satellite.NextPass(site, now)
		if err != nil {
			fmt.Fprintf(w, "\n%s always below your horizon (check orbital elements)\n", s.Name)
			continue
		}
		fmt.Fprintf(w, "\n%s visibility -- Next Pass \n", s.Name)
		fmt.Fprintln(w, "   RISE @        AZ      MAX ALT @      AZ        SET @        AZ")
		fmt.Fprintln(w, satRule)
		fmt.Fprintf(w, " %s | %s | %s | %s | %s | %s |\n",
			fmtShortDate(pass.Rise), fmtAngle(pass.RiseAz),
			fmtShortDate(pass.Peak), fmtAngle(pass.PeakAlt),
			fmtShortDate(pass.Set), fmtAngle(pass.SetAz))
		fmt.Fprintln(w, satRule)
	}
	return nil
}
