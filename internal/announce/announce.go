// Package announce provides focus.Announcer implementations.
package announce

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jaekwang-park/dailytasker/internal/focus"
)

// ErrUnavailable is returned when no speech backend is installed.
var ErrUnavailable = errors.New("speech synthesis unavailable")

// Log writes announcements to a structured logger.
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Announce(ctx context.Context, text string) error {
	l.logger.InfoContext(ctx, "focus announcement", "text", text)
	return nil
}

// Announcement is the most recent message a Recorder received.
type Announcement struct {
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// Recorder keeps the last announcement so polling clients can pick it up.
type Recorder struct {
	mu   sync.Mutex
	last *Announcement
	now  func() time.Time
}

func NewRecorder() *Recorder {
	return &Recorder{now: time.Now}
}

func (r *Recorder) Announce(ctx context.Context, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = &Announcement{Text: text, At: r.now()}
	return nil
}

// Last returns the most recent announcement, or nil if there was none.
func (r *Recorder) Last() *Announcement {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.last == nil {
		return nil
	}
	a := *r.last
	return &a
}

// Multi fans an announcement out to every announcer and joins their errors.
type Multi []focus.Announcer

func (m Multi) Announce(ctx context.Context, text string) error {
	var errs []error
	for _, a := range m {
		if a == nil {
			continue
		}
		if err := a.Announce(ctx, text); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var (
	_ focus.Announcer = (*Log)(nil)
	_ focus.Announcer = (*Recorder)(nil)
	_ focus.Announcer = Multi(nil)
)
