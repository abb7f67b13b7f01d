package session

import (
	"sync"
	"time"
)

// Runner drives an engine's rest countdown from a single repeating timer.
// At most one timer goroutine exists per runner; Stop is synchronous, so no
// tick can land on a discarded engine after Stop returns.
type Runner struct {
	engine   *Engine
	interval time.Duration

	mu      sync.Mutex
	stop    chan struct{}
	done    chan struct{}
	stopped bool
}

// NewRunner returns a runner ticking the engine at the given interval.
// A zero interval defaults to one second.
func NewRunner(e *Engine, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = time.Second
	}
	return &Runner{engine: e, interval: interval}
}

// Start launches the timer goroutine. Calling Start on a running or stopped
// runner is a no-op; a runner is single-use.
func (r *Runner) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stop != nil || r.stopped {
		return
	}
	r.stop = make(chan struct{})
	r.done = make(chan struct{})
	go r.loop(r.stop, r.done)
}

func (r *Runner) loop(stop, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			r.engine.Tick()
			// Nothing left to drive once the session closes.
			if r.engine.State() == StateFinished {
				return
			}
		}
	}
}

// Stop cancels the timer and waits for the goroutine to exit. Idempotent and
// safe to call on a runner that was never started.
func (r *Runner) Stop() {
	r.mu.Lock()
	if r.stopped || r.stop == nil {
		r.stopped = true
		r.mu.Unlock()
		return
	}
	r.stopped = true
	close(r.stop)
	done := r.done
	r.mu.Unlock()
	<-done
}
