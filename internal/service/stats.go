package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jaekwang-park/dailytasker/internal/aggregate"
	"github.com/jaekwang-park/dailytasker/internal/model"
	"github.com/jaekwang-park/dailytasker/internal/repository"
)

type StatsService struct {
	repo  repository.StatsRepository
	tasks repository.TaskRepository
	now   func() time.Time
}

func NewStatsService(repo repository.StatsRepository, tasks repository.TaskRepository, now func() time.Time) *StatsService {
	if now == nil {
		now = time.Now
	}
	return &StatsService{repo: repo, tasks: tasks, now: now}
}

// Get returns the user's stats, or zero stats if nothing was completed yet.
func (s *StatsService) Get(ctx context.Context, userID string) (model.UserStats, error) {
	stats, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.UserStats{UserID: userID}, nil
		}
		return model.UserStats{}, fmt.Errorf("failed to get stats: %w", err)
	}
	return stats, nil
}

func (s *StatsService) IncrementOnCompletion(ctx context.Context, userID string) (model.UserStats, error) {
	stats, err := s.repo.IncrementOnCompletion(ctx, userID, s.now())
	if err != nil {
		return model.UserStats{}, fmt.Errorf("failed to increment stats: %w", err)
	}
	return stats, nil
}

// Progress reports today's completions against model.DailyGoal.
func (s *StatsService) Progress(ctx context.Context, userID string) (model.Progress, error) {
	tasks, err := s.tasks.ListByUser(ctx, userID)
	if err != nil {
		return model.Progress{}, fmt.Errorf("failed to list tasks for progress: %w", err)
	}

	stats, err := s.Get(ctx, userID)
	if err != nil {
		return model.Progress{}, err
	}

	p := aggregate.DailyProgress(tasks, s.now(), model.DailyGoal)
	p.Stats = stats
	return p, nil
}
