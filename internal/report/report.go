// Package report renders headless text and JSON output for the viewer.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chasenunez/orbital-trajectories/internal/kepler"
	"github.com/chasenunez/orbital-trajectories/internal/scene"
)

// SnapshotExport is the JSON-serializable summary of a scene, optionally
// with cross-validation results attached.
type SnapshotExport struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Units       string            `json:"units"`
	TimeCount   int               `json:"time_count"`
	TimeSpanJD  [2]float64        `json:"time_span_jd"`
	Objects     []ObjectExport    `json:"objects"`
	Validation  *ValidationExport `json:"validation,omitempty"`
}

// ObjectExport is a JSON-friendly object summary.
type ObjectExport struct {
	ID          string  `json:"id"`
	Class       string  `json:"class"`
	DiameterKm  float64 `json:"diameter_km,omitempty"`
	HasElements bool    `json:"has_elements"`
	Coverage    float64 `json:"coverage"`
	RMSKm       float64 `json:"rms_km,omitempty"`
	RMSSamples  int     `json:"rms_samples,omitempty"`
}

// ValidationExport is a JSON-friendly batch validation summary.
type ValidationExport struct {
	Checked     int     `json:"checked"`
	Skipped     int     `json:"skipped"`
	MeanRMSKm   float64 `json:"mean_rms_km"`
	MedianRMSKm float64 `json:"median_rms_km"`
}

// ExportSnapshot builds the exportable form of a scene. sum may be nil when
// no validation was run.
func ExportSnapshot(s *scene.Scene, sum *kepler.Summary) *SnapshotExport {
	export := &SnapshotExport{
		GeneratedAt: time.Now().UTC(),
		Units:       s.Metadata.Units,
		TimeCount:   len(s.TimesJD),
	}
	if len(s.TimesJD) > 0 {
		export.TimeSpanJD = [2]float64{s.TimesJD[0], s.TimesJD[len(s.TimesJD)-1]}
	}

	rmsByID := make(map[string]kepler.Validation)
	if sum != nil {
		export.Validation = &ValidationExport{
			Checked:     sum.Checked,
			Skipped:     sum.Skipped,
			MeanRMSKm:   sum.MeanRMSKm,
			MedianRMSKm: sum.MedianRMSKm,
		}
		for _, r := range sum.Results {
			rmsByID[r.ID] = r.RMS
		}
	}

	for i := range s.Objects {
		o := &s.Objects[i]
		oe := ObjectExport{
			ID:          o.ID,
			Class:       o.Class,
			DiameterKm:  o.DiameterKm,
			HasElements: o.Elements != nil,
			Coverage:    o.Coverage(),
		}
		if v, ok := rmsByID[o.ID]; ok {
			oe.RMSKm = v.RMSKm
			oe.RMSSamples = v.SampleCount
		}
		export.Objects = append(export.Objects, oe)
	}
	return export
}

// WriteJSON writes the snapshot as indented JSON.
func (s *SnapshotExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WriteSummaryTable writes a plain-text object table.
func WriteSummaryTable(w io.Writer, s *scene.Scene) {
	fmt.Fprintf(w, "Scene: %d objects, %d time samples", len(s.Objects), len(s.TimesJD))
	if len(s.TimesJD) > 0 {
		fmt.Fprintf(w, " (JD %.2f .. %.2f)", s.TimesJD[0], s.TimesJD[len(s.TimesJD)-1])
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("─", 72))

	if len(s.Objects) == 0 {
		fmt.Fprintln(w, "No objects")
		return
	}

	fmt.Fprintf(w, "%-20s %-14s %10s %8s %9s\n",
		"Object", "Class", "Diam (km)", "Elems", "Coverage")
	fmt.Fprintln(w, strings.Repeat("─", 72))

	for i := range s.Objects {
		o := &s.Objects[i]
		diam := "—"
		if o.DiameterKm > 0 {
			diam = fmt.Sprintf("%.1f", o.DiameterKm)
		}
		elems := "no"
		if o.Elements != nil {
			elems = "yes"
		}
		fmt.Fprintf(w, "%-20s %-14s %10s %8s %8.0f%%\n",
			truncate(o.ID, 20),
			truncate(o.Class, 14),
			diam,
			elems,
			o.Coverage()*100,
		)
	}
}

// WriteValidationReport writes a batch cross-validation summary as text.
func WriteValidationReport(w io.Writer, sum kepler.Summary) {
	fmt.Fprintf(w, "Cross-validation: %d checked, %d skipped\n", sum.Checked, sum.Skipped)
	if sum.Checked == 0 {
		fmt.Fprintln(w, "No objects had both orbital elements and enough recorded samples.")
		return
	}
	fmt.Fprintf(w, "Mean RMS:   %s\n", FormatKm(sum.MeanRMSKm))
	fmt.Fprintf(w, "Median RMS: %s\n", FormatKm(sum.MedianRMSKm))
	fmt.Fprintln(w, strings.Repeat("─", 52))
	fmt.Fprintf(w, "%-24s %16s %8s\n", "Object", "RMS", "Samples")
	fmt.Fprintln(w, strings.Repeat("─", 52))
	for _, r := range sum.Results {
		fmt.Fprintf(w, "%-24s %16s %8d\n", truncate(r.ID, 24), FormatKm(r.RMS.RMSKm), r.RMS.SampleCount)
	}
}

// FormatKm renders a kilometer figure with a readable magnitude.
func FormatKm(km float64) string {
	switch {
	case km >= 1e9:
		return fmt.Sprintf("%.2fe9 km", km/1e9)
	case km >= 1e6:
		return fmt.Sprintf("%.2fM km", km/1e6)
	case km >= 1e3:
		return fmt.Sprintf("%.1fk km", km/1e3)
	default:
		return fmt.Sprintf("%.1f km", km)
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-2] + ".."
}
