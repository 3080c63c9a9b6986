// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Cross-validation view, batch RMS summary, snapshot export
// 0.2.0 - Kepler propagator with configurable solver, diameter heuristics
// 0.1.0 - Initial release: scene builder, orbit view, playback, headless modes
