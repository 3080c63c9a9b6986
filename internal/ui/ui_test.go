package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chasenunez/orbital-trajectories/internal/kepler"
	"github.com/chasenunez/orbital-trajectories/internal/state"
)

func newTestModel(t *testing.T) (Model, *state.Manager) {
	t.Helper()
	mgr := state.NewManager(state.DefaultConfig())
	mgr.SetScene(orbitSnapshot().Scene)
	m := New(mgr, kepler.New(kepler.Config{}))
	m.refresh()
	return m, mgr
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	root, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return root
}

func TestViewModeSwitching(t *testing.T) {
	m, _ := newTestModel(t)

	if m.viewMode != ViewOrbit {
		t.Errorf("initial view = %v, want ViewOrbit", m.viewMode)
	}

	m = update(t, m, key('2'))
	if m.viewMode != ViewObjects {
		t.Errorf("view after 2 = %v, want ViewObjects", m.viewMode)
	}
	m = update(t, m, key('3'))
	if m.viewMode != ViewValidation {
		t.Errorf("view after 3 = %v, want ViewValidation", m.viewMode)
	}
	m = update(t, m, key('o'))
	if m.viewMode != ViewOrbit {
		t.Errorf("view after o = %v, want ViewOrbit", m.viewMode)
	}

	// Tab cycles through all three.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.viewMode != ViewOrbit {
		t.Errorf("view after three tabs = %v, want ViewOrbit", m.viewMode)
	}
}

func TestQuitKeys(t *testing.T) {
	m, _ := newTestModel(t)

	for _, msg := range []tea.Msg{key('q'), tea.KeyMsg{Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Fatalf("no command returned for quit key %v", msg)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("quit key %v did not produce tea.Quit", msg)
		}
	}
}

func TestPlaybackKeys(t *testing.T) {
	m, mgr := newTestModel(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if !mgr.Snapshot().Playing {
		t.Error("space did not start playback")
	}
	if !m.snapshot.Playing {
		t.Error("root model snapshot not refreshed after space")
	}

	m = update(t, m, key('.'))
	if idx := mgr.Snapshot().TimeIndex; idx != 1 {
		t.Errorf("TimeIndex after . = %d, want 1", idx)
	}
	m = update(t, m, key(','))
	if idx := mgr.Snapshot().TimeIndex; idx != 0 {
		t.Errorf("TimeIndex after , = %d, want 0", idx)
	}

	m = update(t, m, key('>'))
	if speed := mgr.Snapshot().Speed; speed != 2 {
		t.Errorf("Speed after > = %d, want 2", speed)
	}
	m = update(t, m, key('<'))
	if speed := mgr.Snapshot().Speed; speed != 1 {
		t.Errorf("Speed after < = %d, want 1", speed)
	}
}

func TestValidationFlow(t *testing.T) {
	m, mgr := newTestModel(t)

	_, cmd := m.Update(key('v'))
	if cmd == nil {
		t.Fatal("v did not produce a command")
	}
	if !mgr.Snapshot().Validating {
		t.Error("Validating flag not set when the run started")
	}

	// The command runs the batch validation and delivers the summary.
	msg := findValidationDone(t, cmd())
	m = update(t, m, msg)

	snap := mgr.Snapshot()
	if snap.Validating {
		t.Error("Validating flag still set after completion")
	}
	if snap.Validation == nil {
		t.Fatal("summary not stored")
	}
}

// findValidationDone unwraps possibly-batched messages down to the
// validation completion.
func findValidationDone(t *testing.T, msg tea.Msg) validationDoneMsg {
	t.Helper()
	switch v := msg.(type) {
	case validationDoneMsg:
		return v
	case tea.BatchMsg:
		for _, cmd := range v {
			if cmd == nil {
				continue
			}
			if done, ok := cmd().(validationDoneMsg); ok {
				return done
			}
		}
	}
	t.Fatalf("no validationDoneMsg in %T", msg)
	return validationDoneMsg{}
}

func TestTickAdvancesPlayback(t *testing.T) {
	m, mgr := newTestModel(t)
	mgr.TogglePlay()

	m = update(t, m, TickMsg{})
	if idx := mgr.Snapshot().TimeIndex; idx != 1 {
		t.Errorf("TimeIndex after tick = %d, want 1", idx)
	}
	_ = m
}

func TestWindowSizePropagates(t *testing.T) {
	m, _ := newTestModel(t)

	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if !m.ready {
		t.Error("model not ready after WindowSizeMsg")
	}
	if m.orbit.width != 120 || m.orbit.height != 30 {
		t.Errorf("orbit size = %dx%d, want 120x30", m.orbit.width, m.orbit.height)
	}
}

func TestViewBeforeReady(t *testing.T) {
	m, _ := newTestModel(t)
	if out := m.View(); !strings.Contains(out, "Initializing") {
		t.Errorf("pre-size view = %q", out)
	}
}

func TestViewRendersHeaderAndFooter(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	out := m.View()
	for _, want := range []string{"ORBITAL TRAJECTORIES", "2 objects", "[1] Orbit", "paused"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
