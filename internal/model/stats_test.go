package model_test

import (
	"testing"
	"time"

	"github.com/jaekwang-park/dailytasker/internal/model"
)

func day(s string) *time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestUserStats_RecordCompletion(t *testing.T) {
	today := time.Date(2025, 3, 14, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		name        string
		before      model.UserStats
		wantPoints  int
		wantCurrent int
		wantLongest int
	}{
		{
			name:        "first completion ever",
			before:      model.UserStats{},
			wantPoints:  10,
			wantCurrent: 1,
			wantLongest: 1,
		},
		{
			name:        "same day keeps streak",
			before:      model.UserStats{Points: 30, CurrentStreak: 3, LongestStreak: 5, LastActivityDate: day("2025-03-14")},
			wantPoints:  40,
			wantCurrent: 3,
			wantLongest: 5,
		},
		{
			name:        "next day extends streak",
			before:      model.UserStats{Points: 30, CurrentStreak: 3, LongestStreak: 3, LastActivityDate: day("2025-03-13")},
			wantPoints:  40,
			wantCurrent: 4,
			wantLongest: 4,
		},
		{
			name:        "gap restarts streak",
			before:      model.UserStats{Points: 30, CurrentStreak: 7, LongestStreak: 7, LastActivityDate: day("2025-03-10")},
			wantPoints:  40,
			wantCurrent: 1,
			wantLongest: 7,
		},
		{
			name:        "month boundary",
			before:      model.UserStats{CurrentStreak: 2, LongestStreak: 2, LastActivityDate: day("2025-02-28")},
			wantPoints:  10,
			wantCurrent: 1,
			wantLongest: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.before.RecordCompletion(today)
			if got.Points != tt.wantPoints {
				t.Errorf("points=%d, want %d", got.Points, tt.wantPoints)
			}
			if got.CurrentStreak != tt.wantCurrent {
				t.Errorf("current=%d, want %d", got.CurrentStreak, tt.wantCurrent)
			}
			if got.LongestStreak != tt.wantLongest {
				t.Errorf("longest=%d, want %d", got.LongestStreak, tt.wantLongest)
			}
			if got.LastActivityDate == nil || got.LastActivityDate.Format(time.DateOnly) != "2025-03-14" {
				t.Errorf("lastActivity=%v, want 2025-03-14", got.LastActivityDate)
			}
		})
	}
}

func TestUserStats_RecordCompletionAcrossMonthEnd(t *testing.T) {
	before := model.UserStats{CurrentStreak: 2, LongestStreak: 2, LastActivityDate: day("2025-03-31")}
	got := before.RecordCompletion(time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC))
	if got.CurrentStreak != 3 {
		t.Errorf("current=%d, want 3", got.CurrentStreak)
	}
}
