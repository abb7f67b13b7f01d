package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/claude/formcoach/internal/catalog"
)

// Manager errors.
var (
	// ErrSessionActive is returned by Start while another session is running.
	ErrSessionActive = errors.New("a session is already active")
	// ErrNoActiveSession is returned by controls when no session is running.
	ErrNoActiveSession = errors.New("no active session")
)

// Manager enforces the single-active-session rule and owns the lifecycle of
// the engine's driving timer.
type Manager struct {
	catalog *catalog.Catalog
	history Appender
	log     *slog.Logger

	// TickInterval overrides the 1 Hz default; tests shorten it.
	TickInterval time.Duration

	mu     sync.Mutex
	active *Engine
	runner *Runner
}

// NewManager returns a manager with no active session.
func NewManager(cat *catalog.Catalog, history Appender, log *slog.Logger) *Manager {
	return &Manager{catalog: cat, history: history, log: log, TickInterval: time.Second}
}

// Start creates a session for the given workout and starts its timer. Fails
// when a session is already in flight or the workout is missing from the
// catalog.
func (m *Manager) Start(workoutID string) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active != nil && m.active.State() != StateFinished {
		return Snapshot{}, ErrSessionActive
	}
	// A finished engine lingers so its final state stays readable; starting a
	// new session replaces it.
	if m.runner != nil {
		m.runner.Stop()
	}

	w, err := m.catalog.Get(workoutID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("starting session: %w", err)
	}
	engine, err := New(w, m.history)
	if err != nil {
		return Snapshot{}, fmt.Errorf("starting session: %w", err)
	}

	m.active = engine
	m.runner = NewRunner(engine, m.TickInterval)
	m.runner.Start()
	m.log.Info("session started", "session_id", engine.Session().ID, "workout_id", workoutID)
	return engine.Snapshot(), nil
}

// Current returns a snapshot of the active session.
func (m *Manager) Current() (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return Snapshot{}, ErrNoActiveSession
	}
	return m.active.Snapshot(), nil
}

// Pause freezes the active session.
func (m *Manager) Pause() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return ErrNoActiveSession
	}
	m.active.Pause()
	return nil
}

// Resume unfreezes the active session.
func (m *Manager) Resume() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return ErrNoActiveSession
	}
	m.active.Resume()
	return nil
}

// CompleteSet marks the current set done. A history commit failure surfaces
// here; the session stays available for RetryCommit.
func (m *Manager) CompleteSet() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return ErrNoActiveSession
	}
	return m.active.CompleteCurrentSet()
}

// Skip forces an exercise advance.
func (m *Manager) Skip() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return ErrNoActiveSession
	}
	return m.active.SkipToNextExercise()
}

// RetryCommit re-attempts a failed history commit for a finished session.
func (m *Manager) RetryCommit() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return ErrNoActiveSession
	}
	return m.active.RetryCommit()
}

// Abandon stops the timer and discards the active session without recording
// it to history.
func (m *Manager) Abandon() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return ErrNoActiveSession
	}
	m.runner.Stop()
	m.log.Info("session abandoned", "session_id", m.active.Session().ID)
	m.active = nil
	m.runner = nil
	return nil
}

// Shutdown stops any running timer. The active session is discarded, per the
// discard-on-abandon policy.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.runner != nil {
		m.runner.Stop()
	}
	m.active = nil
	m.runner = nil
}
