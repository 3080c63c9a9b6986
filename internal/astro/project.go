package astro

import "math"

// ProjectedPoint represents a 2D projected position with metadata.
type ProjectedPoint struct {
	X float64 // Display X coordinate
	Y float64 // Display Y coordinate
	R float64 // Original 3D radial distance in AU
	Z float64 // Original Z offset (ecliptic latitude display)
}

// ScaleMode defines how radial distances are mapped to display space.
type ScaleMode int

const (
	// ScaleLogR uses logarithmic scaling: r_display = log10(r_AU + 1)
	ScaleLogR ScaleMode = iota

	// ScaleInner uses linear scaling optimized for 0-5 AU
	ScaleInner

	// ScaleOuter uses compressed scaling for the outer solar system (>5 AU)
	ScaleOuter
)

// String returns the scale mode name.
func (m ScaleMode) String() string {
	switch m {
	case ScaleLogR:
		return "log"
	case ScaleInner:
		return "inner"
	case ScaleOuter:
		return "outer"
	default:
		return "log"
	}
}

// ProjectionConfig configures the top-down ecliptic projection.
type ProjectionConfig struct {
	Scale float64   // Base scale factor
	Mode  ScaleMode // Scaling mode
}

// DefaultProjectionConfig returns a reasonable default configuration.
func DefaultProjectionConfig() ProjectionConfig {
	return ProjectionConfig{
		Scale: 1.0,
		Mode:  ScaleLogR,
	}
}

// ProjectEclipticTopDown projects a 3D ecliptic vector (in AU) to 2D display
// coordinates. The projection is a top-down view with X pointing toward the
// vernal equinox and Y 90 degrees ahead in ecliptic longitude. Z is
// perpendicular to the ecliptic plane and is carried through for HUD display.
func ProjectEclipticTopDown(v Vec3, cfg ProjectionConfig) ProjectedPoint {
	rAU := math.Sqrt(v.X*v.X + v.Y*v.Y)
	rDisplay := scaleRadius(rAU, cfg)
	angle := math.Atan2(v.Y, v.X)

	return ProjectedPoint{
		X: rDisplay * math.Cos(angle) * cfg.Scale,
		Y: rDisplay * math.Sin(angle) * cfg.Scale,
		R: v.Norm(),
		Z: v.Z,
	}
}

// scaleRadius applies the configured scaling mode to a radial distance.
func scaleRadius(rAU float64, cfg ProjectionConfig) float64 {
	switch cfg.Mode {
	case ScaleLogR:
		// log10(r + 1) gives 0 at origin, ~0.78 at 5 AU, ~1.32 at 20 AU,
		// ~1.85 at 70 AU. Keeps TNOs on screen together with inner planets.
		return math.Log10(rAU + 1)

	case ScaleInner:
		// Linear for the inner system, clamp everything beyond 5 AU to the edge.
		if rAU > 5 {
			return 5
		}
		return rAU

	case ScaleOuter:
		// Piece-wise: inner 5 AU compressed into half the range, log beyond.
		if rAU <= 5 {
			return rAU / 5 * 0.5
		}
		return 0.5 + math.Log10(rAU/5+1)*0.5

	default:
		return math.Log10(rAU + 1)
	}
}
