package focus

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrClosed is returned by Do once the runner has been closed or retired.
var ErrClosed = errors.New("focus: runner closed")

// Runner owns a Controller and the once-per-second tick source that drives
// it. Every tick and every Do call run under one mutex, so at most one
// mutation is in flight.
type Runner struct {
	mu          sync.Mutex
	ctrl        *Controller
	interval    time.Duration
	ticks       <-chan time.Time
	lastTouched time.Time
	now         func() time.Time

	cancel context.CancelFunc
	done   chan struct{}
	closed bool
}

type RunnerOption func(*Runner)

// WithTickSource replaces the internal ticker with ch.
func WithTickSource(ch <-chan time.Time) RunnerOption {
	return func(r *Runner) { r.ticks = ch }
}

func WithInterval(d time.Duration) RunnerOption {
	return func(r *Runner) { r.interval = d }
}

func WithNow(now func() time.Time) RunnerOption {
	return func(r *Runner) { r.now = now }
}

func NewRunner(ctrl *Controller, opts ...RunnerOption) *Runner {
	r := &Runner{
		ctrl:     ctrl,
		interval: time.Second,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.lastTouched = r.now()
	return r
}

// Start launches the tick loop. It returns immediately; the loop stops when
// ctx is cancelled or Close is called. Calling Start twice has no effect.
func (r *Runner) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done != nil || r.closed {
		return
	}

	ctx, r.cancel = context.WithCancel(ctx)
	r.done = make(chan struct{})

	ticks := r.ticks
	var ticker *time.Ticker
	if ticks == nil {
		ticker = time.NewTicker(r.interval)
		ticks = ticker.C
	}

	go func() {
		defer close(r.done)
		if ticker != nil {
			defer ticker.Stop()
		}
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-ticks:
				if !ok {
					return
				}
				r.tick(ctx)
			}
		}
	}()
}

func (r *Runner) tick(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// A tick racing with Close must not reach a torn-down controller.
	if r.closed || ctx.Err() != nil {
		return
	}
	// A finished phase counts as activity so the announcement outlives idle eviction.
	if _, done := r.ctrl.Tick(); done {
		r.lastTouched = r.now()
	}
}

// Do runs fn against the controller under the runner's lock and returns the
// resulting state. fn is not called once the runner is closed.
func (r *Runner) Do(fn func(*Controller)) (State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return State{}, ErrClosed
	}
	fn(r.ctrl)
	r.lastTouched = r.now()
	return r.ctrl.State(), nil
}

// RetireIfIdle marks the runner closed when it is paused and has not been
// touched after cutoff. Later Do calls fail with ErrClosed; Close must still
// be called to stop the tick loop.
func (r *Runner) RetireIfIdle(cutoff time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || r.ctrl.State().Running || r.lastTouched.After(cutoff) {
		return false
	}
	r.closed = true
	return true
}

func (r *Runner) Snapshot() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ctrl.State()
}

func (r *Runner) LastTouched() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastTouched
}

// Close stops the tick loop and waits for it to exit. It is safe to call
// more than once and after RetireIfIdle.
func (r *Runner) Close() {
	r.mu.Lock()
	r.closed = true
	cancel, done := r.cancel, r.done
	r.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}
