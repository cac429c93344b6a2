package service_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/jaekwang-park/dailytasker/internal/model"
)

// mockTaskRepo implements repository.TaskRepository for testing
type mockTaskRepo struct {
	createFn       func(ctx context.Context, task model.Task) (model.Task, error)
	getByIDFn      func(ctx context.Context, userID, taskID string) (model.Task, error)
	setCompletedFn func(ctx context.Context, userID, taskID string, completed bool) (model.Task, error)
	deleteFn       func(ctx context.Context, userID, taskID string) error
	listByUserFn   func(ctx context.Context, userID string) ([]model.Task, error)
}

func (m *mockTaskRepo) Create(ctx context.Context, task model.Task) (model.Task, error) {
	return m.createFn(ctx, task)
}
func (m *mockTaskRepo) GetByID(ctx context.Context, userID, taskID string) (model.Task, error) {
	return m.getByIDFn(ctx, userID, taskID)
}
func (m *mockTaskRepo) SetCompleted(ctx context.Context, userID, taskID string, completed bool) (model.Task, error) {
	return m.setCompletedFn(ctx, userID, taskID, completed)
}
func (m *mockTaskRepo) Delete(ctx context.Context, userID, taskID string) error {
	return m.deleteFn(ctx, userID, taskID)
}
func (m *mockTaskRepo) ListByUser(ctx context.Context, userID string) ([]model.Task, error) {
	return m.listByUserFn(ctx, userID)
}

// mockStatsRepo implements repository.StatsRepository for testing
type mockStatsRepo struct {
	getFn       func(ctx context.Context, userID string) (model.UserStats, error)
	incrementFn func(ctx context.Context, userID string, day time.Time) (model.UserStats, error)
}

func (m *mockStatsRepo) Get(ctx context.Context, userID string) (model.UserStats, error) {
	return m.getFn(ctx, userID)
}
func (m *mockStatsRepo) IncrementOnCompletion(ctx context.Context, userID string, day time.Time) (model.UserStats, error) {
	return m.incrementFn(ctx, userID, day)
}

// mockRecorder implements service.CompletionRecorder for testing
type mockRecorder struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (m *mockRecorder) IncrementOnCompletion(ctx context.Context, userID string) (model.UserStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, userID)
	return model.UserStats{UserID: userID}, m.err
}

const (
	taskID1 = "6f1c2a3e-0b1d-4c5e-9f00-000000000001"
	taskID2 = "6f1c2a3e-0b1d-4c5e-9f00-000000000002"
	taskID3 = "6f1c2a3e-0b1d-4c5e-9f00-000000000003"
)

var now = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleTask() model.Task {
	return model.Task{
		ID:        taskID1,
		UserID:    "user-1",
		Title:     "Write report",
		Priority:  model.PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
