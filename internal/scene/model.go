// Package scene provides the dataset the viewer renders: per-object position
// time series on a shared Julian-date grid, plus orbital elements, diameters,
// and display colors where available.
package scene

import (
	"math"

	"github.com/chasenunez/orbital-trajectories/internal/kepler"
)

// DefaultColor is used for objects whose class has no color-map entry.
const DefaultColor = "#CCCCCC"

// Object is one small body (or planet/moon) in the scene. X, Y, Z are
// index-aligned to the scene's shared time grid; NaN marks times where the
// object has no data.
type Object struct {
	ID         string
	Class      string
	Filename   string
	DiameterKm float64 // 0 = unknown
	Color      string
	Elements   *kepler.Elements // nil when the dataset carries no fit
	X, Y, Z    []float64        // km, heliocentric ecliptic
}

// Sample returns the recorded sample at grid index i.
func (o *Object) Sample(times []float64, i int) kepler.Sample {
	return kepler.Sample{JD: times[i], X: o.X[i], Y: o.Y[i], Z: o.Z[i]}
}

// Samples returns the object's full recorded trajectory on the given grid.
func (o *Object) Samples(times []float64) []kepler.Sample {
	out := make([]kepler.Sample, len(times))
	for i := range times {
		out[i] = o.Sample(times, i)
	}
	return out
}

// HasDataAt reports whether the object has a position at grid index i.
func (o *Object) HasDataAt(i int) bool {
	return i >= 0 && i < len(o.X) && !math.IsNaN(o.X[i]) && !math.IsNaN(o.Y[i])
}

// Coverage returns the fraction of grid indices at which the object has data.
func (o *Object) Coverage() float64 {
	if len(o.X) == 0 {
		return 0
	}
	n := 0
	for i := range o.X {
		if o.HasDataAt(i) {
			n++
		}
	}
	return float64(n) / float64(len(o.X))
}

// Metadata describes dataset provenance and assumptions.
type Metadata struct {
	Units     string `json:"units"`
	Notes     string `json:"notes,omitempty"`
	TimeCount int    `json:"time_count"`
}

// Scene is the full dataset: a shared time grid and all objects resampled
// onto it.
type Scene struct {
	Metadata Metadata
	TimesJD  []float64
	Objects  []Object
}

// Object returns the object with the given ID, or nil.
func (s *Scene) Object(id string) *Object {
	for i := range s.Objects {
		if s.Objects[i].ID == id {
			return &s.Objects[i]
		}
	}
	return nil
}

// Classes returns the distinct object classes in scene order.
func (s *Scene) Classes() []string {
	seen := make(map[string]bool)
	var out []string
	for i := range s.Objects {
		c := s.Objects[i].Class
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// Targets adapts the scene for batch cross-validation.
func (s *Scene) Targets() []kepler.Target {
	out := make([]kepler.Target, len(s.Objects))
	for i := range s.Objects {
		o := &s.Objects[i]
		out[i] = kepler.Target{
			ID:       o.ID,
			Elements: o.Elements,
			Samples:  o.Samples(s.TimesJD),
		}
	}
	return out
}
