package focus

import (
	"context"
	"log/slog"
	"time"
)

const (
	WorkCompleteMessage  = "Your focus session is over. Time for a break."
	BreakCompleteMessage = "Your break time is over. Ready to focus again!"
)

// announceTimeout bounds a single announcement.
const announceTimeout = 30 * time.Second

// Announcer delivers a completion message, for example by speaking it.
// Implementations may be slow or unavailable; their errors are only logged.
type Announcer interface {
	Announce(ctx context.Context, text string) error
}

// CompletionMessage returns the announcement for a finished phase.
func CompletionMessage(finished Phase) string {
	if finished == PhaseBreak {
		return BreakCompleteMessage
	}
	return WorkCompleteMessage
}

type Controller struct {
	clock      *Clock
	announcer  Announcer
	logger     *slog.Logger
	onComplete func(Phase)
}

type ControllerOption func(*Controller)

func WithAnnouncer(a Announcer) ControllerOption {
	return func(c *Controller) { c.announcer = a }
}

func WithLogger(l *slog.Logger) ControllerOption {
	return func(c *Controller) { c.logger = l }
}

// WithCompletionHook registers fn to run synchronously after each phase ends,
// before the announcement is dispatched.
func WithCompletionHook(fn func(Phase)) ControllerOption {
	return func(c *Controller) { c.onComplete = fn }
}

func NewController(workMinutes int, opts ...ControllerOption) *Controller {
	c := &Controller{
		clock:  NewClock(workMinutes),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) State() State {
	return c.clock.State()
}

// ToggleStart starts a paused clock and pauses a running one.
func (c *Controller) ToggleStart() {
	if c.clock.State().Running {
		c.clock.Pause()
		return
	}
	c.clock.Start()
}

func (c *Controller) ResetSession() {
	c.clock.Reset()
}

// ApplyQuickDuration loads one of the preset lengths. Any value in range is
// accepted so callers may offer their own presets.
func (c *Controller) ApplyQuickDuration(minutes int) bool {
	return c.clock.SetCustomDuration(minutes)
}

func (c *Controller) ApplyCustomDuration(minutes int) bool {
	return c.clock.SetCustomDuration(minutes)
}

// Tick advances the clock by one second and announces a finished phase.
func (c *Controller) Tick() (Phase, bool) {
	finished, done := c.clock.Tick()
	if !done {
		return finished, false
	}
	if c.onComplete != nil {
		c.onComplete(finished)
	}
	c.announce(CompletionMessage(finished))
	return finished, true
}

func (c *Controller) announce(text string) {
	if c.announcer == nil {
		return
	}
	a, logger := c.announcer, c.logger
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), announceTimeout)
		defer cancel()
		if err := a.Announce(ctx, text); err != nil {
			logger.Debug("announcement skipped", "error", err)
		}
	}()
}
