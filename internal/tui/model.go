// Package tui is the terminal front end of the focus timer.
package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jaekwang-park/dailytasker/internal/announce"
	"github.com/jaekwang-park/dailytasker/internal/focus"
)

const tickInterval = time.Second

type tickMsg time.Time

func scheduleTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model owns the controller outright. Bubbletea delivers every message on
// one goroutine, so no locking is needed.
type Model struct {
	ctrl     *focus.Controller
	recorder *announce.Recorder
	quick    []int
	interval time.Duration

	keys    keyMap
	help    help.Model
	input   textinput.Model
	editing bool
	errMsg  string
}

// New builds the model. recorder may be nil; when set, its last message is
// shown under the clock.
func New(ctrl *focus.Controller, recorder *announce.Recorder) Model {
	in := textinput.New()
	in.Placeholder = fmt.Sprintf("%d-%d", focus.MinWorkMinutes, focus.MaxWorkMinutes)
	in.CharLimit = 3
	in.Prompt = "minutes: "
	in.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("221"))

	return Model{
		ctrl:     ctrl,
		recorder: recorder,
		quick:    focus.QuickDurations,
		interval: tickInterval,
		keys:     newKeyMap(focus.QuickDurations),
		help:     help.New(),
		input:    in,
	}
}

func (m Model) Init() tea.Cmd {
	return scheduleTick(m.interval)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.ctrl.Tick()
		return m, scheduleTick(m.interval)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errMsg = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		m.ctrl.ToggleStart()
	case key.Matches(msg, m.keys.Reset):
		m.ctrl.ResetSession()
	case key.Matches(msg, m.keys.Quick1):
		m.applyQuick(0)
	case key.Matches(msg, m.keys.Quick2):
		m.applyQuick(1)
	case key.Matches(msg, m.keys.Quick3):
		m.applyQuick(2)
	case key.Matches(msg, m.keys.Custom):
		m.editing = true
		m.input.SetValue("")
		return m, m.input.Focus()
	}
	return m, nil
}

func (m *Model) applyQuick(i int) {
	if i < len(m.quick) {
		m.ctrl.ApplyQuickDuration(m.quick[i])
	}
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeInput()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		minutes, err := strconv.Atoi(strings.TrimSpace(m.input.Value()))
		if err != nil || !m.ctrl.ApplyCustomDuration(minutes) {
			m.errMsg = fmt.Sprintf("enter a whole number from %d to %d", focus.MinWorkMinutes, focus.MaxWorkMinutes)
			return m, nil
		}
		m.closeInput()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) closeInput() {
	m.editing = false
	m.errMsg = ""
	m.input.Blur()
	m.input.SetValue("")
}

func (m Model) View() string {
	st := m.ctrl.State()

	var b strings.Builder
	b.WriteString(titleStyle.Render("DailyTasker focus"))
	b.WriteString("\n\n")

	phase := workStyle.Render("FOCUS")
	if st.Phase == focus.PhaseBreak {
		phase = breakStyle.Render("BREAK")
	}
	status := "paused"
	if st.Running {
		status = "running"
	}
	b.WriteString(phase + "  " + mutedStyle.Render(fmt.Sprintf("%s · %d min sessions", status, st.WorkMinutes)))
	b.WriteString("\n")
	b.WriteString(clockStyle.Render(FormatRemaining(st.SecondsRemaining)))
	b.WriteString("\n")

	if m.recorder != nil {
		if last := m.recorder.Last(); last != nil {
			b.WriteString(announceStyle.Render(last.Text))
			b.WriteString("\n")
		}
	}

	if m.editing {
		b.WriteString("\n" + m.input.View() + "\n")
	}
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg) + "\n")
	}

	b.WriteString("\n")
	if m.editing {
		b.WriteString(m.help.View(editingKeys{m.keys}))
	} else {
		b.WriteString(m.help.View(m.keys))
	}
	b.WriteString("\n")
	return b.String()
}

// FormatRemaining renders seconds as MM:SS; sessions over an hour keep
// counting minutes past 59.
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func quickLabel(minutes int) string {
	return fmt.Sprintf("%d min", minutes)
}
