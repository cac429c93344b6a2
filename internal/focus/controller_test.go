package focus_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jaekwang-park/dailytasker/internal/focus"
)

type chanAnnouncer struct {
	texts chan string
	err   error
}

func newChanAnnouncer(err error) *chanAnnouncer {
	return &chanAnnouncer{texts: make(chan string, 4), err: err}
}

func (a *chanAnnouncer) Announce(ctx context.Context, text string) error {
	a.texts <- text
	return a.err
}

func (a *chanAnnouncer) next(t *testing.T) string {
	t.Helper()
	select {
	case s := <-a.texts:
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("announcement not delivered")
		return ""
	}
}

// blockingAnnouncer never returns until released.
type blockingAnnouncer struct {
	release chan struct{}
}

func (a *blockingAnnouncer) Announce(ctx context.Context, text string) error {
	<-a.release
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func runToCompletion(c *focus.Controller) focus.Phase {
	if !c.State().Running {
		c.ToggleStart()
	}
	for {
		if p, done := c.Tick(); done {
			return p
		}
	}
}

func TestController_ToggleStart(t *testing.T) {
	c := focus.NewController(25)
	c.ToggleStart()
	if !c.State().Running {
		t.Fatal("expected running after first toggle")
	}
	c.ToggleStart()
	if c.State().Running {
		t.Fatal("expected paused after second toggle")
	}
}

func TestController_AnnouncesPerPhase(t *testing.T) {
	ann := newChanAnnouncer(nil)
	c := focus.NewController(1, focus.WithAnnouncer(ann), focus.WithLogger(discardLogger()))

	if p := runToCompletion(c); p != focus.PhaseWork {
		t.Fatalf("finished=%s, want work", p)
	}
	if got := ann.next(t); got != focus.WorkCompleteMessage {
		t.Errorf("got %q, want %q", got, focus.WorkCompleteMessage)
	}

	if p := runToCompletion(c); p != focus.PhaseBreak {
		t.Fatalf("finished=%s, want break", p)
	}
	if got := ann.next(t); got != focus.BreakCompleteMessage {
		t.Errorf("got %q, want %q", got, focus.BreakCompleteMessage)
	}
}

func TestController_AnnouncerFailureDoesNotAffectClock(t *testing.T) {
	ann := newChanAnnouncer(errors.New("speech unavailable"))
	c := focus.NewController(1, focus.WithAnnouncer(ann), focus.WithLogger(discardLogger()))

	runToCompletion(c)
	ann.next(t)

	want := focus.State{Phase: focus.PhaseBreak, SecondsRemaining: 300, Running: false, WorkMinutes: 1}
	if got := c.State(); got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestController_SlowAnnouncerDoesNotBlockTicks(t *testing.T) {
	ann := &blockingAnnouncer{release: make(chan struct{})}
	defer close(ann.release)
	c := focus.NewController(1, focus.WithAnnouncer(ann), focus.WithLogger(discardLogger()))

	done := make(chan struct{})
	go func() {
		runToCompletion(c)
		c.ToggleStart()
		c.Tick()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("tick blocked on announcer")
	}
	if got := c.State().SecondsRemaining; got != 299 {
		t.Errorf("remaining=%d, want 299", got)
	}
}

func TestController_NoAnnouncer(t *testing.T) {
	c := focus.NewController(1)
	if p := runToCompletion(c); p != focus.PhaseWork {
		t.Errorf("finished=%s, want work", p)
	}
}

func TestController_CompletionHook(t *testing.T) {
	var got []focus.Phase
	c := focus.NewController(1, focus.WithCompletionHook(func(p focus.Phase) {
		got = append(got, p)
	}))

	runToCompletion(c)
	runToCompletion(c)

	if len(got) != 2 || got[0] != focus.PhaseWork || got[1] != focus.PhaseBreak {
		t.Errorf("hook phases=%v, want [work break]", got)
	}
}

func TestController_Durations(t *testing.T) {
	for _, m := range focus.QuickDurations {
		c := focus.NewController(25)
		if !c.ApplyQuickDuration(m) {
			t.Errorf("quick %d rejected", m)
		}
		if got := c.State().SecondsRemaining; got != m*60 {
			t.Errorf("quick %d: remaining=%d, want %d", m, got, m*60)
		}
	}

	c := focus.NewController(25)
	if c.ApplyCustomDuration(0) || c.ApplyCustomDuration(181) {
		t.Error("out-of-range custom duration accepted")
	}
	if got := c.State().SecondsRemaining; got != 1500 {
		t.Errorf("remaining=%d, want 1500", got)
	}
	if !c.ApplyCustomDuration(45) {
		t.Fatal("45 rejected")
	}
	if got := c.State().SecondsRemaining; got != 2700 {
		t.Errorf("remaining=%d, want 2700", got)
	}
}

func TestController_ResetSession(t *testing.T) {
	c := focus.NewController(25)
	c.ToggleStart()
	c.Tick()
	c.Tick()
	c.ResetSession()

	want := focus.State{Phase: focus.PhaseWork, SecondsRemaining: 1500, Running: false, WorkMinutes: 25}
	if got := c.State(); got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
