// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chasenunez/orbital-trajectories/internal/kepler"
	"github.com/chasenunez/orbital-trajectories/internal/state"
	"github.com/chasenunez/orbital-trajectories/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewOrbit ViewMode = iota
	ViewObjects
	ViewValidation
)

// Msg types for Bubble Tea.
type (
	// TickMsg drives playback advancement.
	TickMsg time.Time

	// AnimTickMsg drives fast spinner/shimmer updates.
	AnimTickMsg time.Time

	// validationDoneMsg carries a finished batch cross-validation.
	validationDoneMsg struct {
		summary kepler.Summary
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	state *state.Manager
	prop  *kepler.Propagator

	viewMode ViewMode
	width    int
	height   int
	ready    bool
	animTick int

	orbit      OrbitModel
	objects    ObjectsModel
	validation ValidationModel

	snapshot state.Snapshot
}

// New creates the root UI model.
func New(stateMgr *state.Manager, prop *kepler.Propagator) Model {
	return Model{
		state:      stateMgr,
		prop:       prop,
		viewMode:   ViewOrbit,
		orbit:      NewOrbitModel(),
		objects:    NewObjectsModel(),
		validation: NewValidationModel(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), animTickCmd())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "1", "o":
			m.viewMode = ViewOrbit
		case "2", "b":
			m.viewMode = ViewObjects
		case "3":
			m.viewMode = ViewValidation
		case "tab":
			m.viewMode = (m.viewMode + 1) % 3

		case " ":
			m.state.TogglePlay()
			m.refresh()
		case ",":
			m.state.Step(-1)
			m.refresh()
		case ".":
			m.state.Step(1)
			m.refresh()
		case "<":
			m.state.SlowerBy(2)
			m.refresh()
		case ">":
			m.state.FasterBy(2)
			m.refresh()

		case "v":
			if !m.snapshot.Validating && m.state.HasScene() {
				m.state.SetValidating(true)
				m.refresh()
				cmds = append(cmds, m.runValidation())
			}

		default:
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Logo plus tabs take ~8 lines, footer ~2.
		contentHeight := msg.Height - 10
		m.orbit = m.orbit.SetSize(msg.Width, contentHeight)
		m.objects = m.objects.SetSize(msg.Width, contentHeight)
		m.validation = m.validation.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, tickCmd())
		m.state.Advance()
		m.refresh()

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++

	case validationDoneMsg:
		m.state.SetValidation(msg.summary)
		m.refresh()

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

// refresh pulls a fresh snapshot and pushes it to every sub-model.
func (m *Model) refresh() {
	m.snapshot = m.state.Snapshot()
	m.orbit = m.orbit.UpdateData(m.snapshot)
	m.objects = m.objects.UpdateData(m.snapshot)
	m.validation = m.validation.UpdateData(m.snapshot)
}

// runValidation cross-validates every object off the UI goroutine.
func (m *Model) runValidation() tea.Cmd {
	scn := m.state.Scene()
	prop := m.prop
	return func() tea.Msg {
		return validationDoneMsg{summary: prop.CrossValidateAll(scn.Targets())}
	}
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewOrbit:
		m.orbit, cmd = m.orbit.Update(msg)
	case ViewObjects:
		m.objects, cmd = m.objects.Update(msg)
	case ViewValidation:
		m.validation, cmd = m.validation.Update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewOrbit:
		content = m.orbit.View()
	case ViewObjects:
		content = m.objects.View()
	case ViewValidation:
		content = m.validation.View()
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#8B5CF6")).Bold(true)
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  ORBITAL TRAJECTORIES"))
	b.WriteString(muted.Render(fmt.Sprintf("  ·  small-body viewer  ·  v%s", version.Version)))
	b.WriteString("\n")

	if m.snapshot.Scene != nil {
		b.WriteString(muted.Render(fmt.Sprintf("  %d objects · %d time samples",
			len(m.snapshot.Scene.Objects), len(m.snapshot.Scene.TimesJD))))
		b.WriteString("\n")
	}
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Orbit", "[2] Objects", "[3] Validation"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

	var status string
	if m.snapshot.Validating {
		spinner := spinnerFrames[m.animTick%len(spinnerFrames)]
		status = accentStyle.Render(spinner) + dimStyle.Render(" validating...")
	} else if m.snapshot.Playing {
		status = accentStyle.Render("▶") + dimStyle.Render(fmt.Sprintf(" playing x%d", m.snapshot.Speed))
	} else {
		status = dimStyle.Render("⏸ paused")
	}

	var help string
	switch m.viewMode {
	case ViewOrbit:
		help = dimStyle.Render("j/k: focus | +/-: zoom | arrows: pan | z: mode | l: labels | space: play | ,/.: step")
	case ViewObjects:
		help = dimStyle.Render("↑↓: navigate | pgup/pgdn | v: validate")
	case ViewValidation:
		help = dimStyle.Render("↑↓: scroll | v: re-run")
	default:
		help = dimStyle.Render("tab: switch view | q: quit")
	}

	return "  " + status + "  " + dimStyle.Render("|") + "  " + help
}

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}
