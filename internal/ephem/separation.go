package ephem

import (
	"github.com/soniakeys/meeus/v3/angle"
	"github.com/soniakeys/unit"
)

// Separation returns the angular separation between two snapshots,
// treating their (azimuth, altitude) pairs as spherical coordinates.
// A rough close-approach metric, not a rigorous sky separation.
func Separation(a, b Snapshot) unit.Angle {
	return angle.Sep(a.Az, a.Alt, b.Az, b.Alt)
}
