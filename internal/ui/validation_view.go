package ui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chasenunez/orbital-trajectories/internal/kepler"
	"github.com/chasenunez/orbital-trajectories/internal/report"
	"github.com/chasenunez/orbital-trajectories/internal/state"
)

// ValidationModel renders the batch cross-validation summary: how well each
// object's fitted orbit shape matches its recorded trajectory.
type ValidationModel struct {
	width    int
	height   int
	snapshot state.Snapshot

	offset int
	sorted []kepler.ObjectValidation
}

// NewValidationModel creates the validation view.
func NewValidationModel() ValidationModel {
	return ValidationModel{}
}

// SetSize updates the viewport size.
func (m ValidationModel) SetSize(width, height int) ValidationModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData installs a fresh state snapshot and re-sorts results worst
// first, which is the ordering that matters when hunting bad fits.
func (m ValidationModel) UpdateData(snapshot state.Snapshot) ValidationModel {
	m.snapshot = snapshot
	if snapshot.Validation != nil {
		m.sorted = make([]kepler.ObjectValidation, len(snapshot.Validation.Results))
		copy(m.sorted, snapshot.Validation.Results)
		sort.Slice(m.sorted, func(i, j int) bool {
			return m.sorted[i].RMS.RMSKm > m.sorted[j].RMS.RMSKm
		})
	} else {
		m.sorted = nil
	}
	return m
}

// Update handles input messages.
func (m ValidationModel) Update(msg tea.Msg) (ValidationModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.offset > 0 {
				m.offset--
			}
		case "down", "j":
			if m.offset < len(m.sorted)-1 {
				m.offset++
			}
		case "home", "g":
			m.offset = 0
		}
	}
	return m, nil
}

// View renders the validation summary.
func (m ValidationModel) View() string {
	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("208"))

	var b strings.Builder

	if m.snapshot.Validating {
		b.WriteString(headerStyle.Render("  Cross-validation running..."))
		return b.String()
	}

	sum := m.snapshot.Validation
	if sum == nil {
		b.WriteString(dimStyle.Render("  No validation run yet. Press v to cross-validate fitted orbits"))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("  against the recorded trajectories."))
		return b.String()
	}

	b.WriteString(headerStyle.Render("  Orbit-fit cross-validation"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  (%s)", m.snapshot.ValidatedAt.Format("15:04:05"))))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("  Checked: "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%-6d", sum.Checked)))
	b.WriteString(labelStyle.Render("Skipped: "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%-6d", sum.Skipped)))
	b.WriteString(labelStyle.Render("Mean RMS: "))
	b.WriteString(valueStyle.Render(report.FormatKm(sum.MeanRMSKm)))
	b.WriteString(labelStyle.Render("  Median RMS: "))
	b.WriteString(valueStyle.Render(report.FormatKm(sum.MedianRMSKm)))
	b.WriteString("\n\n")

	if len(m.sorted) == 0 {
		b.WriteString(dimStyle.Render("  No object had both elements and enough samples."))
		return b.String()
	}

	b.WriteString(labelStyle.Render(fmt.Sprintf("  %-24s %16s %8s", "Object (worst first)", "RMS", "Samples")))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 50)))
	b.WriteString("\n")

	rows := m.height - 9
	if rows < 1 {
		rows = 1
	}
	end := m.offset + rows
	if end > len(m.sorted) {
		end = len(m.sorted)
	}
	for i := m.offset; i < end; i++ {
		r := m.sorted[i]
		style := valueStyle
		// Flag fits whose RMS exceeds the scene median by 10x.
		if sum.MedianRMSKm > 0 && r.RMS.RMSKm > 10*sum.MedianRMSKm {
			style = warnStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("  %-24s %16s %8d",
			clip(r.ID, 24), report.FormatKm(r.RMS.RMSKm), r.RMS.SampleCount)))
		b.WriteString("\n")
	}
	if end < len(m.sorted) {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  ... %d more", len(m.sorted)-end)))
	}
	return b.String()
}
