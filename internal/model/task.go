package model

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// FilterMode selects a view over a task list. FilterToday keeps the
// incomplete tasks regardless of their creation date.
type FilterMode string

const (
	FilterAll       FilterMode = "all"
	FilterToday     FilterMode = "today"
	FilterCompleted FilterMode = "completed"
)

func (m FilterMode) IsValid() bool {
	return m == FilterAll || m == FilterToday || m == FilterCompleted
}

type Task struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	Priority  Priority  `json:"priority"`
	DueTime   *string   `json:"due_time,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TaskCounts struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Incomplete int `json:"incomplete"`
}

type TaskListResult struct {
	Filter FilterMode `json:"filter"`
	Tasks  []Task     `json:"tasks"`
	Counts TaskCounts `json:"counts"`
}
