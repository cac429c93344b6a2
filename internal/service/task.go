package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/jaekwang-park/dailytasker/internal/aggregate"
	"github.com/jaekwang-park/dailytasker/internal/metrics"
	"github.com/jaekwang-park/dailytasker/internal/model"
	"github.com/jaekwang-park/dailytasker/internal/repository"
)

// CompletionRecorder is notified when a task moves from open to done.
type CompletionRecorder interface {
	IncrementOnCompletion(ctx context.Context, userID string) (model.UserStats, error)
}

type CreateTaskInput struct {
	Title    string
	Priority model.Priority // empty means medium
	DueTime  *string
}

type TaskService struct {
	repo   repository.TaskRepository
	stats  CompletionRecorder
	logger *slog.Logger
}

func NewTaskService(repo repository.TaskRepository, stats CompletionRecorder, logger *slog.Logger) *TaskService {
	return &TaskService{repo: repo, stats: stats, logger: logger}
}

// List returns the tasks selected by mode together with counts over the
// user's whole list.
func (s *TaskService) List(ctx context.Context, userID string, mode model.FilterMode) (model.TaskListResult, error) {
	if mode == "" {
		mode = model.FilterAll
	}
	if !mode.IsValid() {
		return model.TaskListResult{}, fmt.Errorf("%w: unknown filter %q", ErrInvalidInput, mode)
	}

	tasks, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return model.TaskListResult{}, fmt.Errorf("failed to list tasks: %w", err)
	}

	return model.TaskListResult{
		Filter: mode,
		Tasks:  aggregate.FilterTasks(tasks, mode),
		Counts: aggregate.CountByCompletion(tasks),
	}, nil
}

func (s *TaskService) Create(ctx context.Context, userID string, input CreateTaskInput) (model.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return model.Task{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	priority := input.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !priority.IsValid() {
		return model.Task{}, fmt.Errorf("%w: invalid priority %q", ErrInvalidInput, priority)
	}

	var dueTime *string
	if input.DueTime != nil {
		if dt := strings.TrimSpace(*input.DueTime); dt != "" {
			dueTime = &dt
		}
	}

	created, err := s.repo.Create(ctx, model.Task{
		UserID:   userID,
		Title:    title,
		Priority: priority,
		DueTime:  dueTime,
	})
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	metrics.TrackTaskOperation("create")
	return created, nil
}

func (s *TaskService) SetCompleted(ctx context.Context, userID, taskID string, completed bool) (model.Task, error) {
	existing, err := s.get(ctx, userID, taskID)
	if err != nil {
		return model.Task{}, err
	}
	return s.setCompleted(ctx, existing, completed)
}

func (s *TaskService) Toggle(ctx context.Context, userID, taskID string) (model.Task, error) {
	existing, err := s.get(ctx, userID, taskID)
	if err != nil {
		return model.Task{}, err
	}
	return s.setCompleted(ctx, existing, !existing.Completed)
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	if err := validateTaskID(taskID); err != nil {
		return err
	}

	err := s.repo.Delete(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	metrics.TrackTaskOperation("delete")
	return nil
}

func (s *TaskService) get(ctx context.Context, userID, taskID string) (model.Task, error) {
	if err := validateTaskID(taskID); err != nil {
		return model.Task{}, err
	}

	task, err := s.repo.GetByID(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

func (s *TaskService) setCompleted(ctx context.Context, existing model.Task, completed bool) (model.Task, error) {
	if existing.Completed == completed {
		return existing, nil
	}

	updated, err := s.repo.SetCompleted(ctx, existing.UserID, existing.ID, completed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// A concurrent request got there first, or the task is gone.
			return s.get(ctx, existing.UserID, existing.ID)
		}
		return model.Task{}, fmt.Errorf("failed to update task completion: %w", err)
	}

	if !completed {
		metrics.TrackTaskOperation("uncomplete")
		return updated, nil
	}

	metrics.TrackTaskOperation("complete")
	if s.stats != nil {
		if _, err := s.stats.IncrementOnCompletion(ctx, existing.UserID); err != nil {
			s.logger.ErrorContext(ctx, "failed to record completion",
				"error", err,
				"user_id", existing.UserID,
				"task_id", existing.ID,
			)
		}
	}
	return updated, nil
}

// Task ids are UUIDs; anything else cannot name a row.
func validateTaskID(taskID string) error {
	if _, err := uuid.Parse(taskID); err != nil {
		return fmt.Errorf("%w: invalid task id", ErrInvalidInput)
	}
	return nil
}
