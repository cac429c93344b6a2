package repository

import (
	"context"
	"time"

	"github.com/jaekwang-park/dailytasker/internal/model"
)

type StatsRepository interface {
	// Get returns sql.ErrNoRows (wrapped) when the user has no stats yet.
	Get(ctx context.Context, userID string) (model.UserStats, error)
	IncrementOnCompletion(ctx context.Context, userID string, day time.Time) (model.UserStats, error)
}
