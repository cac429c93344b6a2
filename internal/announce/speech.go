package announce

import (
	"context"
	"fmt"
	"os/exec"
)

// speechCommands are tried in order; the first one on PATH wins.
var speechCommands = []struct {
	name string
	args func(text string) []string
}{
	{"say", func(text string) []string { return []string{"-r", "160", text} }},
	{"espeak", func(text string) []string { return []string{"-s", "140", text} }},
	{"spd-say", func(text string) []string { return []string{"--wait", "-r", "-20", text} }},
}

// Speech speaks announcements through a local text-to-speech command.
type Speech struct {
	path string
	args func(text string) []string
}

// NewSpeech locates a speech command. The returned Speech reports
// ErrUnavailable from Announce when none was found.
func NewSpeech() *Speech {
	return newSpeech(exec.LookPath)
}

func newSpeech(lookPath func(string) (string, error)) *Speech {
	for _, c := range speechCommands {
		if p, err := lookPath(c.name); err == nil {
			return &Speech{path: p, args: c.args}
		}
	}
	return &Speech{}
}

func (s *Speech) Available() bool {
	return s.path != ""
}

func (s *Speech) Announce(ctx context.Context, text string) error {
	if !s.Available() {
		return ErrUnavailable
	}
	if err := exec.CommandContext(ctx, s.path, s.args(text)...).Run(); err != nil {
		return fmt.Errorf("speak: %w", err)
	}
	return nil
}
