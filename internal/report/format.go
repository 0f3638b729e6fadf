package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/soniakeys/unit"
)

// Formatting helpers for the fixed-width report layout. The exact byte
// layout of every cell is the program's output contract; keep these in
// sync with the table banners in report.go.

// fmtAngle renders an angle as degrees and minutes, "ddd:mm".
func fmtAngle(a unit.Angle) string {
	deg := a.Deg()
	d := int(deg)
	m := int((deg-float64(d))*60 + 0.5)
	return fmt.Sprintf("%3d:%02d", d, m)
}

// fmtRA renders a right ascension as hours and minutes.
func fmtRA(ra unit.RA) string {
	hf := ra.Hour()
	h := int(hf)
	m := (hf - float64(h)) * 60
	return fmt.Sprintf("%2dh%.0fm", h, m)
}

// fmtDateTime renders a local timestamp as "mm/dd hh:mm".
func fmtDateTime(t time.Time) string {
	return t.Format("01/02 15:04")
}

// fmtFullDateTime renders a local timestamp as "mm/dd/yyyy hh:mm:ss".
func fmtFullDateTime(t time.Time) string {
	return t.Format("01/02/2006 15:04:05")
}

// fmtDate renders a UT instant with one fractional second digit,
// "mm/dd/yyyy hh:mm:ss.s".
func fmtDate(t time.Time) string {
	t = t.UTC()
	sec := float64(t.Second()) + float64(t.Nanosecond())/1e9
	return fmt.Sprintf("%s%04.1f", t.Format("01/02/2006 15:04:"), sec)
}

// fmtShortDate renders a UT instant as "mm/dd hh:mm".
func fmtShortDate(t time.Time) string {
	return t.UTC().Format("01/02 15:04")
}

// padName left-justifies a body name into the 19-character name column,
// dot-filled, truncating long names.
func padName(name string) string {
	if len(name) > 19 {
		return name[:19]
	}
	return name + strings.Repeat(".", 19-len(name))
}
