package kepler

import (
	"math"
	"sort"
)

// Sample is one recorded trajectory point in kilometers, heliocentric
// ecliptic frame. NaN marks an absent coordinate: the shared time grid has an
// entry for every object at every time, but most objects only cover part of
// the grid.
type Sample struct {
	JD      float64
	X, Y, Z float64
}

// Valid reports whether the sample carries a usable position. Z is allowed to
// be absent and is treated as zero.
func (s Sample) Valid() bool {
	return !math.IsNaN(s.X) && !math.IsNaN(s.Y)
}

// Validation is the outcome of comparing recorded samples against propagated
// positions. A nil *Validation means the comparison was not applicable, which
// is distinct from a computed zero RMS.
type Validation struct {
	RMSKm       float64
	SampleCount int
}

// Target pairs one object's elements with its recorded trajectory for batch
// validation.
type Target struct {
	ID       string
	Elements *Elements
	Samples  []Sample
}

// ObjectValidation is one object's result within a batch run.
type ObjectValidation struct {
	ID  string
	RMS Validation
}

// Summary aggregates a batch cross-validation run. It is diagnostic output
// only and never feeds back into propagation or rendering.
type Summary struct {
	Checked     int
	Skipped     int
	MeanRMSKm   float64
	MedianRMSKm float64
	Results     []ObjectValidation
}

// minValidSamples is the smallest recorded-sample count worth comparing.
const minValidSamples = 3

// CrossValidate compares recorded samples against positions propagated from
// the object's semi-major axis, eccentricity, and inclination. It returns nil
// when elements are missing or fewer than three samples carry positions; that
// is a normal "not applicable" outcome, not an error.
//
// Node, argument of periapsis, and epoch mean anomaly are deliberately zeroed
// and the epoch pinned to J2000: the comparison measures how well the orbit's
// shape matches the recorded track, not its phase. The elements datasets this
// tool consumes rarely carry the orientation angles, so including them would
// just fold defaults into the metric.
func (p *Propagator) CrossValidate(el *Elements, samples []Sample) *Validation {
	if el == nil {
		return nil
	}

	valid := make([]Sample, 0, len(samples))
	for _, s := range samples {
		if s.Valid() {
			valid = append(valid, s)
		}
	}
	if len(valid) < minValidSamples {
		return nil
	}

	shape := Elements{
		SemiMajorAxisAU: el.SemiMajorAxisAU,
		Eccentricity:    el.Eccentricity,
		InclinationDeg:  el.InclinationDeg,
		EpochJD:         J2000,
	}

	stride := len(valid) / p.cfg.SampleCount
	if stride < 1 {
		stride = 1
	}

	var sumSq float64
	count := 0
	for i := 0; i < len(valid) && count < p.cfg.SampleCount; i += stride {
		s := valid[i]
		pos := p.PositionAt(shape, s.JD)

		z := s.Z
		if math.IsNaN(z) {
			z = 0
		}
		dx := s.X - pos.X
		dy := s.Y - pos.Y
		dz := z - pos.Z
		sumSq += dx*dx + dy*dy + dz*dz
		count++
	}

	return &Validation{
		RMSKm:       math.Sqrt(sumSq / float64(count)),
		SampleCount: count,
	}
}

// CrossValidateAll runs CrossValidate over a collection of objects, stopping
// after the configured object cap. Objects yielding no result count as
// skipped.
func (p *Propagator) CrossValidateAll(targets []Target) Summary {
	var sum Summary

	limit := len(targets)
	if limit > p.cfg.MaxObjects {
		limit = p.cfg.MaxObjects
	}

	rmsValues := make([]float64, 0, limit)
	for _, t := range targets[:limit] {
		v := p.CrossValidate(t.Elements, t.Samples)
		if v == nil {
			sum.Skipped++
			continue
		}
		sum.Checked++
		rmsValues = append(rmsValues, v.RMSKm)
		sum.Results = append(sum.Results, ObjectValidation{ID: t.ID, RMS: *v})
	}

	if len(rmsValues) == 0 {
		return sum
	}

	var total float64
	for _, r := range rmsValues {
		total += r
	}
	sum.MeanRMSKm = total / float64(len(rmsValues))

	sort.Float64s(rmsValues)
	mid := len(rmsValues) / 2
	if len(rmsValues)%2 == 1 {
		sum.MedianRMSKm = rmsValues[mid]
	} else {
		sum.MedianRMSKm = (rmsValues[mid-1] + rmsValues[mid]) / 2
	}
	return sum
}
