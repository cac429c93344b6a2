// Package focus implements the Pomodoro session clock and the operations
// layered over it.
//
// A Clock is not safe for concurrent use. Callers drive it from a single
// execution context: the Runner serialises access for servers, and the
// terminal UI calls it from its update loop.
package focus

type Phase string

const (
	PhaseWork  Phase = "work"
	PhaseBreak Phase = "break"
)

const (
	MinWorkMinutes     = 1
	MaxWorkMinutes     = 180
	DefaultWorkMinutes = 25
	BreakMinutes       = 5
)

// QuickDurations are the preset work lengths offered next to the custom input.
var QuickDurations = []int{15, 25, 45}

// ValidMinutes reports whether m is an accepted work length.
func ValidMinutes(m int) bool {
	return m >= MinWorkMinutes && m <= MaxWorkMinutes
}

type State struct {
	Phase            Phase `json:"phase"`
	SecondsRemaining int   `json:"seconds_remaining"`
	Running          bool  `json:"running"`
	WorkMinutes      int   `json:"work_minutes"`
}

type Clock struct {
	state State
}

// NewClock returns a paused clock at the start of a work phase. Out-of-range
// minutes fall back to DefaultWorkMinutes.
func NewClock(workMinutes int) *Clock {
	if !ValidMinutes(workMinutes) {
		workMinutes = DefaultWorkMinutes
	}
	return &Clock{state: State{
		Phase:            PhaseWork,
		SecondsRemaining: workMinutes * 60,
		WorkMinutes:      workMinutes,
	}}
}

func (c *Clock) State() State {
	return c.state
}

func (c *Clock) Start() {
	c.state.Running = true
}

func (c *Clock) Pause() {
	c.state.Running = false
}

// Tick advances the countdown by one second. When the countdown reaches zero
// it returns the phase that just finished and true; the clock has then
// flipped to the other phase, reloaded its duration and stopped running.
func (c *Clock) Tick() (Phase, bool) {
	if !c.state.Running {
		return "", false
	}
	if c.state.SecondsRemaining > 0 {
		c.state.SecondsRemaining--
	}
	if c.state.SecondsRemaining > 0 {
		return "", false
	}

	finished := c.state.Phase
	if finished == PhaseWork {
		c.state.Phase = PhaseBreak
	} else {
		c.state.Phase = PhaseWork
	}
	c.state.SecondsRemaining = c.phaseSeconds(c.state.Phase)
	c.state.Running = false
	return finished, true
}

// Reset stops the clock and reloads the current phase's duration.
func (c *Clock) Reset() {
	c.state.Running = false
	c.state.SecondsRemaining = c.phaseSeconds(c.state.Phase)
}

// SetCustomDuration stops the clock and loads a new work length. Values
// outside [MinWorkMinutes, MaxWorkMinutes] are rejected and leave the state
// untouched. The phase label is not changed.
func (c *Clock) SetCustomDuration(minutes int) bool {
	if !ValidMinutes(minutes) {
		return false
	}
	c.state.Running = false
	c.state.WorkMinutes = minutes
	c.state.SecondsRemaining = minutes * 60
	return true
}

func (c *Clock) phaseSeconds(p Phase) int {
	if p == PhaseBreak {
		return BreakMinutes * 60
	}
	return c.state.WorkMinutes * 60
}
