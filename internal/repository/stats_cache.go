package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jaekwang-park/dailytasker/internal/model"
)

const defaultStatsTTL = 5 * time.Minute

// CachedStatsRepository puts a Redis read-through cache in front of another
// StatsRepository. Redis errors are logged and the call falls through to the
// wrapped repository.
type CachedStatsRepository struct {
	next   StatsRepository
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedStats(next StatsRepository, client *redis.Client, logger *slog.Logger) *CachedStatsRepository {
	return &CachedStatsRepository{
		next:   next,
		client: client,
		ttl:    defaultStatsTTL,
		logger: logger,
	}
}

// NewRedisClient parses a redis:// URL and checks the connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func statsKey(userID string) string {
	return "dailytasker:stats:" + userID
}

func (r *CachedStatsRepository) Get(ctx context.Context, userID string) (model.UserStats, error) {
	data, err := r.client.Get(ctx, statsKey(userID)).Bytes()
	switch {
	case err == nil:
		var s model.UserStats
		if jsonErr := json.Unmarshal(data, &s); jsonErr == nil {
			return s, nil
		}
		r.logger.WarnContext(ctx, "discarding corrupt stats cache entry", "user_id", userID)
	case !errors.Is(err, redis.Nil):
		r.logger.WarnContext(ctx, "stats cache read failed", "error", err)
	}

	stats, err := r.next.Get(ctx, userID)
	if err != nil {
		return model.UserStats{}, err
	}
	r.store(ctx, stats)
	return stats, nil
}

func (r *CachedStatsRepository) IncrementOnCompletion(ctx context.Context, userID string, day time.Time) (model.UserStats, error) {
	stats, err := r.next.IncrementOnCompletion(ctx, userID, day)
	if err != nil {
		if delErr := r.client.Del(ctx, statsKey(userID)).Err(); delErr != nil {
			r.logger.WarnContext(ctx, "stats cache invalidation failed", "error", delErr)
		}
		return model.UserStats{}, err
	}
	r.store(ctx, stats)
	return stats, nil
}

func (r *CachedStatsRepository) store(ctx context.Context, stats model.UserStats) {
	data, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, statsKey(stats.UserID), data, r.ttl).Err(); err != nil {
		r.logger.WarnContext(ctx, "stats cache write failed", "error", err)
	}
}

var _ StatsRepository = (*CachedStatsRepository)(nil)
