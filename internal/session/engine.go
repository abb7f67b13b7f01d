// Package session drives a user through a workout: sets, reps, and the rest
// countdown between sets, with pause/resume and an explicit skip escape
// hatch. Completed sessions are committed to history exactly once.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/claude/formcoach/internal/catalog"
	"github.com/claude/formcoach/internal/models"
	"github.com/google/uuid"
)

// State is the engine's progression state.
type State int

const (
	// StateResting counts down the rest timer before the current set.
	StateResting State = iota
	// StateReady means rest has elapsed; waiting for explicit set completion.
	StateReady
	// StatePaused freezes the machine, wrapping the prior state.
	StatePaused
	// StateFinished is terminal; the session has been closed.
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateResting:
		return "resting"
	case StateReady:
		return "ready"
	case StatePaused:
		return "paused"
	case StateFinished:
		return "finished"
	}
	return "unknown"
}

// Appender commits a closed session to history.
type Appender interface {
	AppendSession(models.Session) error
}

// Engine is the per-session state machine. All methods are safe to call
// concurrently: the driving timer and UI events never race on the countdown.
type Engine struct {
	mu      sync.Mutex
	workout catalog.Workout
	sess    models.Session
	history Appender

	state     State
	prior     State // state wrapped by pause
	exIdx     int   // 0-based exercise index
	setIdx    int   // 1-based set number
	remaining int   // rest seconds left before the current set

	appendPending bool
	now           func() time.Time
}

// Snapshot is a point-in-time view of the engine for presentation.
type Snapshot struct {
	State            string         `json:"state"`
	WorkoutID        string         `json:"workoutId"`
	ExerciseIndex    int            `json:"exerciseIndex"`
	ExerciseID       string         `json:"exerciseId"`
	ExerciseName     string         `json:"exerciseName"`
	SetNumber        int            `json:"setNumber"`
	TotalSets        int            `json:"totalSets"`
	Reps             int            `json:"reps"`
	SecondsRemaining int            `json:"secondsRemaining"`
	Session          models.Session `json:"session"`
}

// New builds an engine for the given workout, deep-copying set and rep
// targets so later catalog edits never alter this session. The workout must
// come from the catalog; an empty exercise list fails fast.
func New(w *catalog.Workout, history Appender) (*Engine, error) {
	if w == nil || len(w.Exercises) == 0 {
		return nil, fmt.Errorf("workout has no exercises")
	}
	for _, ex := range w.Exercises {
		if ex.Sets < 1 {
			return nil, fmt.Errorf("exercise %q has no sets", ex.ID)
		}
	}

	e := &Engine{
		workout: *w,
		history: history,
		now:     time.Now,
		setIdx:  1,
	}
	e.sess = models.Session{
		ID:        uuid.NewString(),
		WorkoutID: w.ID,
		StartTime: time.Now().UTC(),
		Exercises: make([]models.ExerciseProgress, len(w.Exercises)),
	}
	for i, ex := range w.Exercises {
		sets := make([]models.SetProgress, ex.Sets)
		for j := range sets {
			sets[j] = models.SetProgress{SetNumber: j + 1, Reps: ex.Reps}
		}
		e.sess.Exercises[i] = models.ExerciseProgress{ExerciseID: ex.ID, Sets: sets}
	}

	e.remaining = w.Exercises[0].RestTime
	e.state = restStateFor(e.remaining)
	return e, nil
}

func restStateFor(remaining int) State {
	if remaining <= 0 {
		return StateReady
	}
	return StateResting
}

// Tick advances the rest countdown by one second. A no-op while paused or
// finished: the timer must never move the machine in those states.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateResting {
		return
	}
	if e.remaining > 0 {
		e.remaining--
	}
	if e.remaining == 0 {
		e.state = StateReady
	}
}

// Pause freezes the machine. Idempotent; pausing a finished session is a no-op.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StatePaused || e.state == StateFinished {
		return
	}
	e.prior = e.state
	e.state = StatePaused
}

// Resume unfreezes a paused machine. Idempotent.
func (e *Engine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StatePaused {
		return
	}
	e.state = e.prior
}

// CompleteCurrentSet marks the current set done and advances. Only legal when
// the rest countdown has fully elapsed; otherwise it is a silent no-op (an
// expected UI race, not a fault). The returned error is non-nil only when
// closing the session and the history commit fails.
func (e *Engine) CompleteCurrentSet() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateReady {
		return nil
	}

	ex := &e.workout.Exercises[e.exIdx]
	prog := &e.sess.Exercises[e.exIdx]
	prog.Sets[e.setIdx-1].Completed = true

	if e.setIdx < ex.Sets {
		e.setIdx++
		e.remaining = ex.RestTime
		e.state = restStateFor(e.remaining)
		return nil
	}

	prog.Completed = true
	return e.advanceExercise()
}

// SkipToNextExercise forces an exercise advance regardless of set or rest
// status, without marking skipped sets completed. Skipping the last exercise
// closes the session. A paused machine stays paused over the new exercise.
func (e *Engine) SkipToNextExercise() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StateFinished {
		return nil
	}

	wasPaused := e.state == StatePaused
	err := e.advanceExercise()
	if wasPaused && e.state != StateFinished {
		e.prior = e.state
		e.state = StatePaused
	}
	return err
}

// advanceExercise moves to the next exercise, or closes the session when
// none remains. Callers must hold e.mu.
func (e *Engine) advanceExercise() error {
	if e.exIdx+1 < len(e.workout.Exercises) {
		e.exIdx++
		e.setIdx = 1
		e.remaining = e.workout.Exercises[e.exIdx].RestTime
		e.state = restStateFor(e.remaining)
		return nil
	}
	return e.finish()
}

// finish closes the session and commits it to history. Completed is true
// only when every exercise finished naturally, keeping the invariant that a
// completed session has no unfinished exercises. Callers must hold e.mu.
func (e *Engine) finish() error {
	end := e.now().UTC()
	e.sess.EndTime = &end
	e.sess.Completed = true
	for _, p := range e.sess.Exercises {
		if !p.Completed {
			e.sess.Completed = false
			break
		}
	}
	e.state = StateFinished
	return e.commit()
}

// commit appends the closed session to history. On failure the session stays
// in memory and RetryCommit can re-attempt; it never appends twice.
func (e *Engine) commit() error {
	if err := e.history.AppendSession(e.sess.Clone()); err != nil {
		e.appendPending = true
		return fmt.Errorf("committing session to history: %w", err)
	}
	e.appendPending = false
	return nil
}

// RetryCommit re-attempts a failed history commit. A no-op when the session
// is not finished or the commit already succeeded.
func (e *Engine) RetryCommit() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateFinished || !e.appendPending {
		return nil
	}
	return e.commit()
}

// State returns the current progression state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Session returns a deep copy of the session record.
func (e *Engine) Session() models.Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sess.Clone()
}

// Snapshot returns a point-in-time view for presentation.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	ex := e.workout.Exercises[e.exIdx]
	return Snapshot{
		State:            e.state.String(),
		WorkoutID:        e.workout.ID,
		ExerciseIndex:    e.exIdx,
		ExerciseID:       ex.ID,
		ExerciseName:     ex.Name,
		SetNumber:        e.setIdx,
		TotalSets:        ex.Sets,
		Reps:             ex.Reps,
		SecondsRemaining: e.remaining,
		Session:          e.sess.Clone(),
	}
}
