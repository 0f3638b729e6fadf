package report

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dbryant/ephemeris/internal/ephem"
)

// Placeholder labels for a visible circumpolar body.
const (
	labelAlreadyUp  = "already up "
	labelDoesNotSet = "doesn't set"
)

// WriteVisibility writes one body row and returns the snapshot it was
// rendered from, for reuse in the conjunction scan.
//
// Above the horizon, the row shows the most recent rising and the next
// setting; either degrades to its circumpolar placeholder. Below the
// horizon, the row shows the next rising and setting, and a circumpolar
// condition there is not handled: the solver's error propagates to the
// caller, matching the original report's asymmetry.
func WriteVisibility(w io.Writer, site *ephem.Site, b ephem.Body, now time.Time, local *time.Location) (ephem.Snapshot, error) {
	snap, err := site.Observe(b, now)
	if err != nil {
		return ephem.Snapshot{}, err
	}
	if snap.Visible() {
		rLabel := labelAlreadyUp
		r, err := site.PreviousRising(b, now)
		switch {
		case err == nil:
			rLabel = fmtDateTime(r.In(local))
		case !errors.Is(err, ephem.ErrCircumpolar):
			return snap, err
		}
		sLabel := labelDoesNotSet
		s, err := site.NextSetting(b, now)
		switch {
		case err == nil:
			sLabel = fmtDateTime(s.In(local))
		case !errors.Is(err, ephem.ErrCircumpolar):
			return snap, err
		}
		fmt.Fprintf(w, "%s| Yes | %s | %s | %s | %s | %5.1f | %s | %s |\n",
			padName(snap.Name), fmtAngle(snap.Alt), fmtAngle(snap.Az),
			rLabel, sLabel, snap.Mag, fmtRA(snap.RA), fmtAngle(snap.Dec))
		return snap, nil
	}
	r, err := site.NextRising(b, now)
	if err != nil {
		return snap, err
	}
	s, err := site.NextSetting(b, now)
	if err != nil {
		return snap, err
	}
	fmt.Fprintf(w, "%s| No  |   ---  |   ---  | %s | %s |  ---  |  ----  |  ----  |\n",
		padName(snap.Name), fmtDateTime(r.In(local)), fmtDateTime(s.In(local)))
	return snap, nil
}
