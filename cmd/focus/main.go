// Command focus runs the Pomodoro timer in the terminal.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/jaekwang-park/dailytasker/internal/announce"
	"github.com/jaekwang-park/dailytasker/internal/focus"
	"github.com/jaekwang-park/dailytasker/internal/tui"
)

type flags struct {
	Minutes  int
	Speech   bool
	LogLevel string
	LogFile  string
}

func main() {
	f := &flags{}

	cmd := &cli.Command{
		Name:  "focus",
		Usage: "Pomodoro focus timer",
		Description: `Counts down a work session, then a five minute break.

Keys: space start/pause, r reset, 1/2/3 quick lengths, c custom length, q quit.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "minutes",
				Aliases:     []string{"m"},
				Usage:       fmt.Sprintf("work session length in minutes (%d-%d)", focus.MinWorkMinutes, focus.MaxWorkMinutes),
				Sources:     cli.EnvVars("FOCUS_MINUTES"),
				Value:       focus.DefaultWorkMinutes,
				Destination: &f.Minutes,
			},
			&cli.BoolFlag{
				Name:        "speech",
				Usage:       "speak completion messages (say, espeak or spd-say)",
				Sources:     cli.EnvVars("SPEECH_ENABLED"),
				Destination: &f.Speech,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error)",
				Sources:     cli.EnvVars("LOG_LEVEL"),
				Value:       "info",
				Destination: &f.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file",
				Sources:     cli.EnvVars("FOCUS_LOG_FILE"),
				Value:       filepath.Join(os.TempDir(), "dailytasker-focus.log"),
				Destination: &f.LogFile,
			},
		},
		Action: func(ctx context.Context, _ *cli.Command) error {
			return run(ctx, f)
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, f *flags) error {
	if !focus.ValidMinutes(f.Minutes) {
		return fmt.Errorf("--minutes must be between %d and %d, got %d",
			focus.MinWorkMinutes, focus.MaxWorkMinutes, f.Minutes)
	}

	// stdout belongs to the UI, so logs always go to a file.
	logFile, err := os.OpenFile(f.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close() //nolint:errcheck

	charmLogger, err := newLogger(f.LogLevel, logFile)
	if err != nil {
		return err
	}
	logger := slog.New(charmLogger)

	recorder := announce.NewRecorder()
	announcers := announce.Multi{recorder, announce.NewLog(logger)}
	if f.Speech {
		speech := announce.NewSpeech()
		if speech.Available() {
			announcers = append(announcers, speech)
		} else {
			charmLogger.Warn("speech requested but no speech command found")
		}
	}

	ctrl := focus.NewController(f.Minutes,
		focus.WithAnnouncer(announcers),
		focus.WithLogger(logger),
	)
	charmLogger.Info("focus timer started", "minutes", f.Minutes, "speech", f.Speech)

	p := tea.NewProgram(tui.New(ctrl, recorder), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		charmLogger.Error("program exited", "error", err)
		return err
	}
	return nil
}

func newLogger(level string, w io.Writer) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
	}), nil
}
