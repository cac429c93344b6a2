package model

import "time"

// PointsPerCompletion is awarded each time a task moves to completed.
const PointsPerCompletion = 10

// DailyGoal is the number of completed tasks a day is measured against.
const DailyGoal = 5

type UserStats struct {
	UserID           string     `json:"user_id"`
	Points           int        `json:"points"`
	CurrentStreak    int        `json:"current_streak"`
	LongestStreak    int        `json:"longest_streak"`
	LastActivityDate *time.Time `json:"last_activity_date"`
}

type Progress struct {
	Day            string    `json:"day"`
	CompletedToday int       `json:"completed_today"`
	Goal           int       `json:"goal"`
	Remaining      int       `json:"remaining"`
	GoalReached    bool      `json:"goal_reached"`
	PointsToday    int       `json:"points_today"`
	Stats          UserStats `json:"stats"`
}

// RecordCompletion returns the stats after one task completion on day.
// Completing again on the same day keeps the streak, completing on the day
// after the last activity extends it, and any gap restarts it at one.
func (s UserStats) RecordCompletion(day time.Time) UserStats {
	y, m, d := day.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	next := s
	next.Points += PointsPerCompletion

	switch {
	case s.LastActivityDate == nil:
		next.CurrentStreak = 1
	case sameDay(*s.LastActivityDate, today):
		if next.CurrentStreak < 1 {
			next.CurrentStreak = 1
		}
	case sameDay(s.LastActivityDate.AddDate(0, 0, 1), today):
		next.CurrentStreak = s.CurrentStreak + 1
	default:
		next.CurrentStreak = 1
	}

	if next.CurrentStreak > next.LongestStreak {
		next.LongestStreak = next.CurrentStreak
	}
	next.LastActivityDate = &today
	return next
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
