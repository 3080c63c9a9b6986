package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chasenunez/orbital-trajectories/internal/report"
	"github.com/chasenunez/orbital-trajectories/internal/state"
)

// ObjectsModel renders a scrollable table of scene objects with their
// validation results when available.
type ObjectsModel struct {
	width    int
	height   int
	snapshot state.Snapshot

	cursor int
	offset int
}

// NewObjectsModel creates the objects view.
func NewObjectsModel() ObjectsModel {
	return ObjectsModel{}
}

// SetSize updates the viewport size.
func (m ObjectsModel) SetSize(width, height int) ObjectsModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData installs a fresh state snapshot.
func (m ObjectsModel) UpdateData(snapshot state.Snapshot) ObjectsModel {
	m.snapshot = snapshot
	if n := m.rowCount(); m.cursor >= n && n > 0 {
		m.cursor = n - 1
	}
	return m
}

// SelectedID returns the ID of the object under the cursor, or "".
func (m ObjectsModel) SelectedID() string {
	if m.snapshot.Scene == nil || m.cursor >= m.rowCount() {
		return ""
	}
	return m.snapshot.Scene.Objects[m.cursor].ID
}

func (m ObjectsModel) rowCount() int {
	if m.snapshot.Scene == nil {
		return 0
	}
	return len(m.snapshot.Scene.Objects)
}

// Update handles input messages.
func (m ObjectsModel) Update(msg tea.Msg) (ObjectsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < m.rowCount()-1 {
				m.cursor++
			}
		case "pgup":
			m.cursor -= m.pageSize()
			if m.cursor < 0 {
				m.cursor = 0
			}
		case "pgdown":
			m.cursor += m.pageSize()
			if n := m.rowCount(); m.cursor >= n && n > 0 {
				m.cursor = n - 1
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			if n := m.rowCount(); n > 0 {
				m.cursor = n - 1
			}
		}
	}
	m.clampOffset()
	return m, nil
}

func (m ObjectsModel) pageSize() int {
	p := m.height - 4
	if p < 1 {
		p = 1
	}
	return p
}

func (m *ObjectsModel) clampOffset() {
	page := m.pageSize()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+page {
		m.offset = m.cursor - page + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// View renders the objects table.
func (m ObjectsModel) View() string {
	if m.snapshot.Scene == nil {
		return "No scene loaded"
	}

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("  %-22s %-14s %10s %8s %9s %14s",
		"Object", "Class", "Diam (km)", "Elems", "Coverage", "Fit RMS")))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 82)))
	b.WriteString("\n")

	page := m.pageSize()
	end := m.offset + page
	if end > m.rowCount() {
		end = m.rowCount()
	}

	for i := m.offset; i < end; i++ {
		obj := &m.snapshot.Scene.Objects[i]

		diam := "—"
		if obj.DiameterKm > 0 {
			diam = fmt.Sprintf("%.1f", obj.DiameterKm)
		}
		elems := "no"
		if obj.Elements != nil {
			elems = "yes"
		}
		rms := "—"
		if v, ok := m.snapshot.ObjectRMS[obj.ID]; ok {
			rms = report.FormatKm(v.RMSKm)
		}

		line := fmt.Sprintf("%-22s %-14s %10s %8s %8.0f%% %14s",
			clip(obj.ID, 22), clip(obj.Class, 14), diam, elems, obj.Coverage()*100, rms)

		if i == m.cursor {
			b.WriteString(selectedStyle.Render("▶ " + line))
		} else {
			b.WriteString(rowStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if m.rowCount() == 0 {
		b.WriteString(dimStyle.Render("  0 objects"))
	} else {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %d objects, showing %d-%d",
			m.rowCount(), m.offset+1, end)))
	}
	return b.String()
}

func clip(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 2 {
		return s[:maxLen]
	}
	return s[:maxLen-2] + ".."
}
