package repository

import (
	"context"

	"github.com/jaekwang-park/dailytasker/internal/model"
)

type TaskRepository interface {
	Create(ctx context.Context, task model.Task) (model.Task, error)
	GetByID(ctx context.Context, userID, taskID string) (model.Task, error)
	// SetCompleted returns sql.ErrNoRows when the task is missing or already
	// in the requested state.
	SetCompleted(ctx context.Context, userID, taskID string, completed bool) (model.Task, error)
	Delete(ctx context.Context, userID, taskID string) error
	// ListByUser returns every task owned by userID, newest first.
	ListByUser(ctx context.Context, userID string) ([]model.Task, error)
}
