// Package state provides thread-safe playback state for the viewer.
package state

import (
	"sync"
	"time"

	"github.com/chasenunez/orbital-trajectories/internal/kepler"
	"github.com/chasenunez/orbital-trajectories/internal/scene"
)

// Config holds configuration for the state manager.
type Config struct {
	// StepsPerTick is how many grid indices playback advances per UI tick.
	StepsPerTick int

	// MaxSpeed caps the playback speed multiplier.
	MaxSpeed int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		StepsPerTick: 1,
		MaxSpeed:     64,
	}
}

// Manager owns the loaded scene and playback position with thread-safe
// access. The UI reads immutable snapshots; background validation writes its
// summary back through the manager.
type Manager struct {
	mu sync.RWMutex

	scn     *scene.Scene
	timeIdx int
	playing bool
	speed   int

	validation   *kepler.Summary
	validatedAt  time.Time
	validating   bool
	objectRMS    map[string]kepler.Validation
	maxSpeed     int
	stepsPerTick int
}

// NewManager creates a state manager.
func NewManager(cfg Config) *Manager {
	if cfg.StepsPerTick <= 0 {
		cfg.StepsPerTick = 1
	}
	if cfg.MaxSpeed <= 0 {
		cfg.MaxSpeed = 64
	}
	return &Manager{
		speed:        cfg.StepsPerTick,
		stepsPerTick: cfg.StepsPerTick,
		maxSpeed:     cfg.MaxSpeed,
		objectRMS:    make(map[string]kepler.Validation),
	}
}

// SetScene installs the loaded scene and resets playback to the grid start.
func (m *Manager) SetScene(s *scene.Scene) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scn = s
	m.timeIdx = 0
	m.playing = false
}

// Scene returns the loaded scene, or nil.
func (m *Manager) Scene() *scene.Scene {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.scn
}

// HasScene reports whether a scene is loaded.
func (m *Manager) HasScene() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.scn != nil && len(m.scn.TimesJD) > 0
}

// TogglePlay flips playback and reports the new state.
func (m *Manager) TogglePlay() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playing = !m.playing
	return m.playing
}

// Advance moves the time index forward by the current speed when playing,
// wrapping at the end of the grid.
func (m *Manager) Advance() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.playing || m.scn == nil || len(m.scn.TimesJD) == 0 {
		return
	}
	m.timeIdx = (m.timeIdx + m.speed) % len(m.scn.TimesJD)
}

// Step moves the time index by delta (positive or negative) regardless of
// play state, clamping to the grid bounds.
func (m *Manager) Step(delta int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.scn == nil || len(m.scn.TimesJD) == 0 {
		return
	}
	idx := m.timeIdx + delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(m.scn.TimesJD) {
		idx = len(m.scn.TimesJD) - 1
	}
	m.timeIdx = idx
}

// SetTimeIndex jumps to an absolute grid index, clamped.
func (m *Manager) SetTimeIndex(idx int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.scn == nil || len(m.scn.TimesJD) == 0 {
		return
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(m.scn.TimesJD) {
		idx = len(m.scn.TimesJD) - 1
	}
	m.timeIdx = idx
}

// FasterBy scales playback speed by the given factor, capped.
func (m *Manager) FasterBy(factor int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.speed *= factor
	if m.speed > m.maxSpeed {
		m.speed = m.maxSpeed
	}
	return m.speed
}

// SlowerBy divides playback speed by the given factor, floored at the
// configured steps per tick.
func (m *Manager) SlowerBy(factor int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.speed /= factor
	if m.speed < m.stepsPerTick {
		m.speed = m.stepsPerTick
	}
	return m.speed
}

// SetValidating marks whether a batch validation is in flight.
func (m *Manager) SetValidating(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.validating = v
}

// SetValidation stores a completed batch validation summary and indexes the
// per-object results for the objects view.
func (m *Manager) SetValidation(sum kepler.Summary) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.validation = &sum
	m.validatedAt = time.Now()
	m.validating = false
	m.objectRMS = make(map[string]kepler.Validation, len(sum.Results))
	for _, r := range sum.Results {
		m.objectRMS[r.ID] = r.RMS
	}
}

// ValidationFor returns the cached per-object validation, if any.
func (m *Manager) ValidationFor(id string) (kepler.Validation, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.objectRMS[id]
	return v, ok
}

// Snapshot is an immutable view of playback state for the UI.
type Snapshot struct {
	Scene       *scene.Scene
	TimeIndex   int
	CurrentJD   float64
	Playing     bool
	Speed       int
	Validation  *kepler.Summary
	ValidatedAt time.Time
	Validating  bool
	ObjectRMS   map[string]kepler.Validation
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := Snapshot{
		Scene:       m.scn,
		TimeIndex:   m.timeIdx,
		Playing:     m.playing,
		Speed:       m.speed,
		Validation:  m.validation,
		ValidatedAt: m.validatedAt,
		Validating:  m.validating,
	}
	if m.scn != nil && m.timeIdx < len(m.scn.TimesJD) {
		snap.CurrentJD = m.scn.TimesJD[m.timeIdx]
	}

	rms := make(map[string]kepler.Validation, len(m.objectRMS))
	for k, v := range m.objectRMS {
		rms[k] = v
	}
	snap.ObjectRMS = rms
	return snap
}
