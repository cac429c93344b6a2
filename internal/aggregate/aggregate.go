// Package aggregate derives filtered views and counters from a task list.
// Every function is pure: inputs are never mutated and results are fresh slices.
package aggregate

import (
	"time"

	"github.com/jaekwang-park/dailytasker/internal/model"
)

// FilterTasks returns the tasks selected by mode, preserving their order.
// FilterToday selects incomplete tasks; it does not look at dates.
// An unknown mode behaves like FilterAll.
func FilterTasks(tasks []model.Task, mode model.FilterMode) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		switch mode {
		case model.FilterToday:
			if t.Completed {
				continue
			}
		case model.FilterCompleted:
			if !t.Completed {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// CountByCompletion counts tasks in a single pass.
func CountByCompletion(tasks []model.Task) model.TaskCounts {
	var c model.TaskCounts
	for _, t := range tasks {
		c.Total++
		if t.Completed {
			c.Completed++
		} else {
			c.Incomplete++
		}
	}
	return c
}

// DailyProgress measures the completed tasks in the list against goal.
// Completion time is not stored, so every completed task counts toward day
// regardless of when it was created.
func DailyProgress(tasks []model.Task, day time.Time, goal int) model.Progress {
	done := CountByCompletion(tasks).Completed

	remaining := goal - done
	if remaining < 0 {
		remaining = 0
	}

	return model.Progress{
		Day:            day.Format(time.DateOnly),
		CompletedToday: done,
		Goal:           goal,
		Remaining:      remaining,
		GoalReached:    done >= goal,
		PointsToday:    done * model.PointsPerCompletion,
	}
}
