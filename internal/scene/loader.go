package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/chasenunez/orbital-trajectories/internal/kepler"
)

// JSON wire structures for scene.json. Position arrays use null for absent
// entries, so they decode through pointers before the NaN conversion.

type jsonScene struct {
	Metadata Metadata     `json:"metadata"`
	TimesJD  []float64    `json:"times_jd"`
	Objects  []jsonObject `json:"objects"`
}

type jsonObject struct {
	ID         string        `json:"id"`
	Class      string        `json:"class"`
	Filename   string        `json:"filename,omitempty"`
	DiameterKm *float64      `json:"diameter_km"`
	Color      string        `json:"color,omitempty"`
	Elements   *jsonElements `json:"elements,omitempty"`
	X          []*float64    `json:"x"`
	Y          []*float64    `json:"y"`
	Z          []*float64    `json:"z"`
}

// jsonElements uses pointers for the three fields an orbit fit must carry;
// an entry missing any of them is treated as having no elements at all.
type jsonElements struct {
	SemiMajorAxisAU *float64 `json:"a_au"`
	Eccentricity    *float64 `json:"e"`
	InclinationDeg  *float64 `json:"i_deg"`
	NodeDeg         *float64 `json:"node_deg,omitempty"`
	ArgPeriapsisDeg *float64 `json:"argp_deg,omitempty"`
	MeanAnomalyDeg  *float64 `json:"m0_deg,omitempty"`
	EpochJD         *float64 `json:"epoch_jd,omitempty"`
}

// Load reads a scene.json file from disk.
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes a scene from JSON.
func Read(r io.Reader) (*Scene, error) {
	var raw jsonScene
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}

	s := &Scene{
		Metadata: raw.Metadata,
		TimesJD:  raw.TimesJD,
		Objects:  make([]Object, 0, len(raw.Objects)),
	}

	for _, ro := range raw.Objects {
		obj := Object{
			ID:       ro.ID,
			Class:    ro.Class,
			Filename: ro.Filename,
			Color:    ro.Color,
			Elements: convertElements(ro.Elements),
			X:        densify(ro.X, len(raw.TimesJD)),
			Y:        densify(ro.Y, len(raw.TimesJD)),
			Z:        densify(ro.Z, len(raw.TimesJD)),
		}
		if ro.DiameterKm != nil {
			obj.DiameterKm = *ro.DiameterKm
		}
		if obj.Color == "" {
			obj.Color = DefaultColor
		}
		s.Objects = append(s.Objects, obj)
	}
	return s, nil
}

// convertElements maps the wire form to kepler.Elements, applying the load
// defaults: node, periapsis, and epoch anomaly zero; epoch J2000. An entry
// missing semi-major axis, eccentricity, or inclination yields nil.
func convertElements(je *jsonElements) *kepler.Elements {
	if je == nil || je.SemiMajorAxisAU == nil || je.Eccentricity == nil || je.InclinationDeg == nil {
		return nil
	}
	el := &kepler.Elements{
		SemiMajorAxisAU: *je.SemiMajorAxisAU,
		Eccentricity:    *je.Eccentricity,
		InclinationDeg:  *je.InclinationDeg,
		EpochJD:         kepler.J2000,
	}
	if je.NodeDeg != nil {
		el.AscendingNodeDeg = *je.NodeDeg
	}
	if je.ArgPeriapsisDeg != nil {
		el.ArgPeriapsisDeg = *je.ArgPeriapsisDeg
	}
	if je.MeanAnomalyDeg != nil {
		el.MeanAnomalyAtEpochDeg = *je.MeanAnomalyDeg
	}
	if je.EpochJD != nil {
		el.EpochJD = *je.EpochJD
	}
	return el
}

// densify converts a null-bearing JSON array into a fixed-length float slice
// with NaN where data is absent. A short or missing array pads with NaN.
func densify(vals []*float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		if i < len(vals) && vals[i] != nil {
			out[i] = *vals[i]
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// Write encodes the scene as JSON in the scene.json layout.
func (s *Scene) Write(w io.Writer) error {
	raw := jsonScene{
		Metadata: s.Metadata,
		TimesJD:  s.TimesJD,
		Objects:  make([]jsonObject, 0, len(s.Objects)),
	}
	raw.Metadata.TimeCount = len(s.TimesJD)

	for i := range s.Objects {
		o := &s.Objects[i]
		jo := jsonObject{
			ID:       o.ID,
			Class:    o.Class,
			Filename: o.Filename,
			Color:    o.Color,
			X:        sparsify(o.X),
			Y:        sparsify(o.Y),
			Z:        sparsify(o.Z),
		}
		if o.DiameterKm > 0 {
			d := o.DiameterKm
			jo.DiameterKm = &d
		}
		if o.Elements != nil {
			el := o.Elements
			jo.Elements = &jsonElements{
				SemiMajorAxisAU: &el.SemiMajorAxisAU,
				Eccentricity:    &el.Eccentricity,
				InclinationDeg:  &el.InclinationDeg,
				NodeDeg:         &el.AscendingNodeDeg,
				ArgPeriapsisDeg: &el.ArgPeriapsisDeg,
				MeanAnomalyDeg:  &el.MeanAnomalyAtEpochDeg,
				EpochJD:         &el.EpochJD,
			}
		}
		raw.Objects = append(raw.Objects, jo)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(raw)
}

// sparsify converts NaN markers back to JSON nulls.
func sparsify(vals []float64) []*float64 {
	out := make([]*float64, len(vals))
	for i, v := range vals {
		if !math.IsNaN(v) {
			val := v
			out[i] = &val
		}
	}
	return out
}
