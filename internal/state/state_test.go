package state

import (
	"testing"

	"github.com/chasenunez/orbital-trajectories/internal/kepler"
	"github.com/chasenunez/orbital-trajectories/internal/scene"
)

func testScene(n int) *scene.Scene {
	s := &scene.Scene{TimesJD: make([]float64, n)}
	for i := range s.TimesJD {
		s.TimesJD[i] = 2459000.5 + float64(i)
	}
	return s
}

func TestManagerSceneLifecycle(t *testing.T) {
	m := NewManager(DefaultConfig())

	if m.HasScene() {
		t.Error("fresh manager reports a scene")
	}
	if m.Scene() != nil {
		t.Error("Scene() != nil before SetScene")
	}

	s := testScene(10)
	m.SetScene(s)
	if !m.HasScene() {
		t.Error("HasScene() = false after SetScene")
	}
	if m.Scene() != s {
		t.Error("Scene() returned a different scene")
	}

	snap := m.Snapshot()
	if snap.TimeIndex != 0 || snap.Playing {
		t.Errorf("SetScene did not reset playback: %+v", snap)
	}
	if snap.CurrentJD != 2459000.5 {
		t.Errorf("CurrentJD = %v, want 2459000.5", snap.CurrentJD)
	}
}

func TestAdvanceOnlyWhilePlaying(t *testing.T) {
	m := NewManager(DefaultConfig())
	m.SetScene(testScene(5))

	m.Advance()
	if idx := m.Snapshot().TimeIndex; idx != 0 {
		t.Errorf("Advance while paused moved index to %d", idx)
	}

	if !m.TogglePlay() {
		t.Fatal("TogglePlay did not start playback")
	}
	m.Advance()
	if idx := m.Snapshot().TimeIndex; idx != 1 {
		t.Errorf("TimeIndex = %d after one tick, want 1", idx)
	}
}

func TestAdvanceWrapsAtGridEnd(t *testing.T) {
	m := NewManager(DefaultConfig())
	m.SetScene(testScene(3))
	m.TogglePlay()

	for i := 0; i < 3; i++ {
		m.Advance()
	}
	if idx := m.Snapshot().TimeIndex; idx != 0 {
		t.Errorf("TimeIndex = %d after full cycle, want wrap to 0", idx)
	}
}

func TestAdvanceWithoutScene(t *testing.T) {
	m := NewManager(DefaultConfig())
	m.TogglePlay()
	m.Advance() // must not panic
	m.Step(5)
	m.SetTimeIndex(3)
	if idx := m.Snapshot().TimeIndex; idx != 0 {
		t.Errorf("TimeIndex = %d with no scene, want 0", idx)
	}
}

func TestStepClamps(t *testing.T) {
	m := NewManager(DefaultConfig())
	m.SetScene(testScene(10))

	m.Step(-5)
	if idx := m.Snapshot().TimeIndex; idx != 0 {
		t.Errorf("Step below start gave %d, want clamp to 0", idx)
	}

	m.Step(100)
	if idx := m.Snapshot().TimeIndex; idx != 9 {
		t.Errorf("Step past end gave %d, want clamp to 9", idx)
	}

	m.Step(-1)
	if idx := m.Snapshot().TimeIndex; idx != 8 {
		t.Errorf("Step(-1) gave %d, want 8", idx)
	}
}

func TestSetTimeIndexClamps(t *testing.T) {
	m := NewManager(DefaultConfig())
	m.SetScene(testScene(10))

	m.SetTimeIndex(7)
	if idx := m.Snapshot().TimeIndex; idx != 7 {
		t.Errorf("SetTimeIndex(7) gave %d", idx)
	}
	m.SetTimeIndex(-3)
	if idx := m.Snapshot().TimeIndex; idx != 0 {
		t.Errorf("SetTimeIndex(-3) gave %d, want 0", idx)
	}
	m.SetTimeIndex(99)
	if idx := m.Snapshot().TimeIndex; idx != 9 {
		t.Errorf("SetTimeIndex(99) gave %d, want 9", idx)
	}
}

func TestSpeedScaling(t *testing.T) {
	m := NewManager(Config{StepsPerTick: 1, MaxSpeed: 8})

	if got := m.FasterBy(2); got != 2 {
		t.Errorf("FasterBy(2) = %d, want 2", got)
	}
	if got := m.FasterBy(2); got != 4 {
		t.Errorf("FasterBy(2) = %d, want 4", got)
	}
	// Cap.
	if got := m.FasterBy(4); got != 8 {
		t.Errorf("FasterBy(4) = %d, want cap 8", got)
	}
	if got := m.SlowerBy(2); got != 4 {
		t.Errorf("SlowerBy(2) = %d, want 4", got)
	}
	// Floor at configured steps per tick.
	if got := m.SlowerBy(100); got != 1 {
		t.Errorf("SlowerBy(100) = %d, want floor 1", got)
	}
}

func TestNewManagerAppliesDefaults(t *testing.T) {
	m := NewManager(Config{})
	snap := m.Snapshot()
	if snap.Speed != 1 {
		t.Errorf("Speed = %d, want 1", snap.Speed)
	}
	if got := m.FasterBy(1000); got != 64 {
		t.Errorf("default max speed = %d, want 64", got)
	}
}

func TestValidationCaching(t *testing.T) {
	m := NewManager(DefaultConfig())

	if _, ok := m.ValidationFor("chiron"); ok {
		t.Error("ValidationFor reported a result before any run")
	}

	m.SetValidating(true)
	if !m.Snapshot().Validating {
		t.Error("Validating flag not set")
	}

	sum := kepler.Summary{
		Checked: 1,
		Results: []kepler.ObjectValidation{
			{ID: "chiron", RMS: kepler.Validation{RMSKm: 1234.5, SampleCount: 10}},
		},
	}
	m.SetValidation(sum)

	snap := m.Snapshot()
	if snap.Validating {
		t.Error("Validating flag still set after completion")
	}
	if snap.Validation == nil || snap.Validation.Checked != 1 {
		t.Errorf("Snapshot.Validation = %+v", snap.Validation)
	}
	if snap.ValidatedAt.IsZero() {
		t.Error("ValidatedAt not recorded")
	}

	v, ok := m.ValidationFor("chiron")
	if !ok || v.RMSKm != 1234.5 {
		t.Errorf("ValidationFor(chiron) = (%+v, %v)", v, ok)
	}
	if _, ok := m.ValidationFor("other"); ok {
		t.Error("ValidationFor reported a result for an unvalidated object")
	}
}

func TestSnapshotRMSMapIsolated(t *testing.T) {
	m := NewManager(DefaultConfig())
	m.SetValidation(kepler.Summary{
		Checked: 1,
		Results: []kepler.ObjectValidation{
			{ID: "a", RMS: kepler.Validation{RMSKm: 1}},
		},
	})

	snap := m.Snapshot()
	snap.ObjectRMS["a"] = kepler.Validation{RMSKm: 999}

	if v, _ := m.ValidationFor("a"); v.RMSKm != 1 {
		t.Errorf("mutating a snapshot leaked into the manager: %v", v)
	}
}
