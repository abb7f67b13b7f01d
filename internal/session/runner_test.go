package session

import (
	"testing"
	"time"
)

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(2 * time.Millisecond)
	}
	return cond()
}

// TestRunnerDrivesCountdown verifies the runner ticks the engine through the
// rest countdown to the ready state.
func TestRunnerDrivesCountdown(t *testing.T) {
	e, _ := New(testWorkout(2), &recordingAppender{})
	r := NewRunner(e, 5*time.Millisecond)
	r.Start()
	defer r.Stop()

	if !waitFor(t, 2*time.Second, func() bool { return e.State() == StateReady }) {
		t.Fatalf("engine never reached ready, state = %v", e.State())
	}
}

// TestRunnerStopHaltsTicks verifies no tick lands after Stop returns, so a
// discarded session can never be mutated by a dangling timer.
func TestRunnerStopHaltsTicks(t *testing.T) {
	e, _ := New(testWorkout(1000), &recordingAppender{})
	r := NewRunner(e, time.Millisecond)
	r.Start()

	waitFor(t, time.Second, func() bool { return e.Snapshot().SecondsRemaining < 1000 })
	r.Stop()

	remaining := e.Snapshot().SecondsRemaining
	time.Sleep(20 * time.Millisecond)
	if got := e.Snapshot().SecondsRemaining; got != remaining {
		t.Errorf("countdown moved after Stop: %d -> %d", remaining, got)
	}
}

// TestRunnerStopIdempotent verifies Stop is safe to call repeatedly and on a
// never-started runner.
func TestRunnerStopIdempotent(t *testing.T) {
	e, _ := New(testWorkout(10), &recordingAppender{})

	r := NewRunner(e, time.Millisecond)
	r.Stop() // never started
	r.Stop()

	r2 := NewRunner(e, time.Millisecond)
	r2.Start()
	r2.Stop()
	r2.Stop()
	r2.Start() // single-use: must not restart
	time.Sleep(10 * time.Millisecond)
	remaining := e.Snapshot().SecondsRemaining
	time.Sleep(10 * time.Millisecond)
	if got := e.Snapshot().SecondsRemaining; got != remaining {
		t.Error("stopped runner restarted")
	}
}

// TestRunnerPausedTicksDoNotAdvance verifies the countdown holds while the
// engine is paused even though the timer keeps firing.
func TestRunnerPausedTicksDoNotAdvance(t *testing.T) {
	e, _ := New(testWorkout(1000), &recordingAppender{})
	e.Pause()
	r := NewRunner(e, time.Millisecond)
	r.Start()
	defer r.Stop()

	time.Sleep(30 * time.Millisecond)
	if got := e.Snapshot().SecondsRemaining; got != 1000 {
		t.Errorf("remaining = %d while paused, want 1000", got)
	}
}
