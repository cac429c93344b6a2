package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jaekwang-park/dailytasker/internal/announce"
	"github.com/jaekwang-park/dailytasker/internal/focus"
	"github.com/jaekwang-park/dailytasker/internal/metrics"
)

const (
	DefaultFocusIdleTimeout = time.Hour
	defaultSweepInterval    = time.Minute
)

// FocusState is a session snapshot plus the last completion message, which
// polling clients may speak locally.
type FocusState struct {
	focus.State
	SessionID        string                 `json:"session_id"`
	LastAnnouncement *announce.Announcement `json:"last_announcement,omitempty"`
}

type focusSession struct {
	id       string
	runner   *focus.Runner
	recorder *announce.Recorder
}

// FocusService keeps one running focus session per user.
type FocusService struct {
	workMinutes   int
	idleTimeout   time.Duration
	sweepInterval time.Duration
	announcer     focus.Announcer
	runnerOpts    []focus.RunnerOption
	logger        *slog.Logger
	now           func() time.Time

	mu       sync.Mutex
	sessions map[string]*focusSession
	ctx      context.Context
	cancel   context.CancelFunc
	swept    chan struct{}
	closed   bool
}

type FocusOption func(*FocusService)

// WithServerAnnouncer adds an announcer that runs alongside the per-user recorder.
func WithServerAnnouncer(a focus.Announcer) FocusOption {
	return func(s *FocusService) { s.announcer = a }
}

func WithIdleTimeout(d time.Duration) FocusOption {
	return func(s *FocusService) { s.idleTimeout = d }
}

func WithSweepInterval(d time.Duration) FocusOption {
	return func(s *FocusService) { s.sweepInterval = d }
}

// WithRunnerOptions is applied to every runner the service creates.
func WithRunnerOptions(opts ...focus.RunnerOption) FocusOption {
	return func(s *FocusService) { s.runnerOpts = append(s.runnerOpts, opts...) }
}

func WithFocusClock(now func() time.Time) FocusOption {
	return func(s *FocusService) { s.now = now }
}

func NewFocusService(workMinutes int, logger *slog.Logger, opts ...FocusOption) *FocusService {
	s := &FocusService{
		workMinutes:   workMinutes,
		idleTimeout:   DefaultFocusIdleTimeout,
		sweepInterval: defaultSweepInterval,
		logger:        logger,
		now:           time.Now,
		sessions:      make(map[string]*focusSession),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	return s
}

// Start launches the idle sweeper. Runners themselves start on first use.
func (s *FocusService) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.swept != nil || s.closed {
		return
	}
	s.swept = make(chan struct{})

	go func() {
		defer close(s.swept)
		ticker := time.NewTicker(s.sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				if n := s.Sweep(); n > 0 {
					s.logger.Debug("focus sessions evicted", "count", n)
				}
			}
		}
	}()
}

func (s *FocusService) State(ctx context.Context, userID string) (FocusState, error) {
	sess, err := s.session(userID)
	if err != nil {
		return FocusState{}, err
	}
	return s.snapshot(sess, sess.runner.Snapshot()), nil
}

func (s *FocusService) Toggle(ctx context.Context, userID string) (FocusState, error) {
	return s.do(userID, func(c *focus.Controller) { c.ToggleStart() })
}

func (s *FocusService) Reset(ctx context.Context, userID string) (FocusState, error) {
	return s.do(userID, func(c *focus.Controller) { c.ResetSession() })
}

func (s *FocusService) ApplyQuick(ctx context.Context, userID string, minutes int) (FocusState, error) {
	return s.applyDuration(userID, minutes, (*focus.Controller).ApplyQuickDuration)
}

func (s *FocusService) ApplyCustom(ctx context.Context, userID string, minutes int) (FocusState, error) {
	return s.applyDuration(userID, minutes, (*focus.Controller).ApplyCustomDuration)
}

func (s *FocusService) applyDuration(userID string, minutes int, apply func(*focus.Controller, int) bool) (FocusState, error) {
	if !focus.ValidMinutes(minutes) {
		return FocusState{}, fmt.Errorf("%w: minutes must be between %d and %d",
			ErrInvalidInput, focus.MinWorkMinutes, focus.MaxWorkMinutes)
	}

	var ok bool
	st, err := s.do(userID, func(c *focus.Controller) { ok = apply(c, minutes) })
	if err != nil {
		return FocusState{}, err
	}
	if !ok {
		return FocusState{}, fmt.Errorf("%w: duration rejected", ErrInvalidInput)
	}
	return st, nil
}

func (s *FocusService) do(userID string, fn func(*focus.Controller)) (FocusState, error) {
	for {
		sess, err := s.session(userID)
		if err != nil {
			return FocusState{}, err
		}
		st, err := sess.runner.Do(fn)
		if errors.Is(err, focus.ErrClosed) {
			// Evicted between lookup and Do; the next lookup starts a fresh session.
			continue
		}
		if err != nil {
			return FocusState{}, err
		}
		return s.snapshot(sess, st), nil
	}
}

func (s *FocusService) snapshot(sess *focusSession, st focus.State) FocusState {
	return FocusState{
		State:            st,
		SessionID:        sess.id,
		LastAnnouncement: sess.recorder.Last(),
	}
}

// session returns the user's session, creating and starting it if needed.
func (s *FocusService) session(userID string) (*focusSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, fmt.Errorf("focus sessions: %w", ErrUnavailable)
	}
	if sess, ok := s.sessions[userID]; ok {
		return sess, nil
	}

	sess := &focusSession{
		id:       uuid.NewString(),
		recorder: announce.NewRecorder(),
	}

	var announcer focus.Announcer = sess.recorder
	if s.announcer != nil {
		announcer = announce.Multi{sess.recorder, s.announcer}
	}

	logger := s.logger.With("user_id", userID, "session_id", sess.id)
	ctrl := focus.NewController(s.workMinutes,
		focus.WithAnnouncer(announcer),
		focus.WithLogger(logger),
		focus.WithCompletionHook(func(p focus.Phase) {
			metrics.FocusCompleted(string(p))
			logger.Info("focus phase completed", "phase", p)
		}),
	)

	opts := append([]focus.RunnerOption{focus.WithNow(s.now)}, s.runnerOpts...)
	sess.runner = focus.NewRunner(ctrl, opts...)
	sess.runner.Start(s.ctx)

	s.sessions[userID] = sess
	metrics.SetActiveFocusSessions(len(s.sessions))
	return sess, nil
}

// Sweep stops and forgets sessions that are paused and idle for longer than
// the idle timeout. It returns how many were evicted.
func (s *FocusService) Sweep() int {
	cutoff := s.now().Add(-s.idleTimeout)

	s.mu.Lock()
	var idle []*focusSession
	for userID, sess := range s.sessions {
		if !sess.runner.RetireIfIdle(cutoff) {
			continue
		}
		idle = append(idle, sess)
		delete(s.sessions, userID)
	}
	metrics.SetActiveFocusSessions(len(s.sessions))
	s.mu.Unlock()

	for _, sess := range idle {
		sess.runner.Close()
	}
	return len(idle)
}

// Close stops the sweeper and every runner. Later calls fail with ErrUnavailable.
func (s *FocusService) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	sessions := s.sessions
	s.sessions = make(map[string]*focusSession)
	swept := s.swept
	s.mu.Unlock()

	s.cancel()
	if swept != nil {
		<-swept
	}
	for _, sess := range sessions {
		sess.runner.Close()
	}
	metrics.SetActiveFocusSessions(0)
}
