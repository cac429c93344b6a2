package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jaekwang-park/dailytasker/internal/model"
)

type PostgresStatsRepository struct {
	db *sql.DB
}

func NewPostgresStats(db *sql.DB) *PostgresStatsRepository {
	return &PostgresStatsRepository{db: db}
}

func (r *PostgresStatsRepository) Get(ctx context.Context, userID string) (model.UserStats, error) {
	query := `
		SELECT user_id, points, current_streak, longest_streak, last_activity_date
		FROM user_stats
		WHERE user_id = $1`

	return scanStats(r.db.QueryRowContext(ctx, query, userID))
}

// IncrementOnCompletion locks the user's row, applies one completion and
// writes the result back in a single transaction.
func (r *PostgresStatsRepository) IncrementOnCompletion(ctx context.Context, userID string, day time.Time) (model.UserStats, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.UserStats{}, fmt.Errorf("failed to begin stats transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO user_stats (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID,
	); err != nil {
		return model.UserStats{}, fmt.Errorf("failed to ensure stats row: %w", err)
	}

	current, err := scanStats(tx.QueryRowContext(ctx, `
		SELECT user_id, points, current_streak, longest_streak, last_activity_date
		FROM user_stats
		WHERE user_id = $1
		FOR UPDATE`, userID))
	if err != nil {
		return model.UserStats{}, err
	}

	next := current.RecordCompletion(day)

	updated, err := scanStats(tx.QueryRowContext(ctx, `
		UPDATE user_stats
		SET points = $1, current_streak = $2, longest_streak = $3,
		    last_activity_date = $4, updated_at = now()
		WHERE user_id = $5
		RETURNING user_id, points, current_streak, longest_streak, last_activity_date`,
		next.Points, next.CurrentStreak, next.LongestStreak, next.LastActivityDate, userID,
	))
	if err != nil {
		return model.UserStats{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.UserStats{}, fmt.Errorf("failed to commit stats: %w", err)
	}
	return updated, nil
}

func scanStats(row scannable) (model.UserStats, error) {
	var s model.UserStats
	var last sql.NullTime
	if err := row.Scan(&s.UserID, &s.Points, &s.CurrentStreak, &s.LongestStreak, &last); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.UserStats{}, fmt.Errorf("stats not found: %w", err)
		}
		return model.UserStats{}, fmt.Errorf("failed to scan stats: %w", err)
	}
	if last.Valid {
		s.LastActivityDate = &last.Time
	}
	return s, nil
}

var _ StatsRepository = (*PostgresStatsRepository)(nil)
