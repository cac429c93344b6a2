package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jaekwang-park/dailytasker/internal/model"
)

type PostgresTaskRepository struct {
	db *sql.DB
}

func NewPostgresTask(db *sql.DB) *PostgresTaskRepository {
	return &PostgresTaskRepository{db: db}
}

const taskColumns = `id, user_id, title, completed, priority, due_time, created_at, updated_at`

func (r *PostgresTaskRepository) Create(ctx context.Context, task model.Task) (model.Task, error) {
	query := `
		INSERT INTO tasks (user_id, title, completed, priority, due_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + taskColumns

	row := r.db.QueryRowContext(ctx, query,
		task.UserID, task.Title, task.Completed, task.Priority, task.DueTime,
	)

	return scanTask(row)
}

func (r *PostgresTaskRepository) GetByID(ctx context.Context, userID, taskID string) (model.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE id = $1 AND user_id = $2`

	row := r.db.QueryRowContext(ctx, query, taskID, userID)
	return scanTask(row)
}

func (r *PostgresTaskRepository) SetCompleted(ctx context.Context, userID, taskID string, completed bool) (model.Task, error) {
	query := `
		UPDATE tasks
		SET completed = $1, updated_at = now()
		WHERE id = $2 AND user_id = $3 AND completed <> $1
		RETURNING ` + taskColumns

	row := r.db.QueryRowContext(ctx, query, completed, taskID, userID)
	return scanTask(row)
}

func (r *PostgresTaskRepository) Delete(ctx context.Context, userID, taskID string) error {
	query := `DELETE FROM tasks WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, taskID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *PostgresTaskRepository) ListByUser(ctx context.Context, userID string) ([]model.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at DESC, id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanTask(row scannable) (model.Task, error) {
	var t model.Task
	var dueTime sql.NullString
	err := row.Scan(
		&t.ID, &t.UserID, &t.Title, &t.Completed,
		&t.Priority, &dueTime, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to scan task: %w", err)
	}
	if dueTime.Valid {
		t.DueTime = &dueTime.String
	}
	return t, nil
}

// ensure compile-time interface compliance
var _ TaskRepository = (*PostgresTaskRepository)(nil)
