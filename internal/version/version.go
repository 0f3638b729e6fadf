// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "2.0.0"

// Milestones:
// 2.0.0 - Satellite pass prediction, close-approach scan, tui watch mode
// 1.1.0 - Comets from XEphem database records, per-site pressure model
// 1.0.0 - Sun/Moon/planet visibility tables, lunar phase section
// 0.1.0 - Initial release: single-city altitude/azimuth report
