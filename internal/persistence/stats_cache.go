package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/quickdesk/quickdesk/internal/domain"
)

const statsCacheKey = "quickdesk:ticket_stats"

// StatsCache keeps the computed ticket statistics in Redis for a short
// TTL. Every method tolerates a missing or unreachable Redis: cache errors
// are logged and the caller recomputes from storage.
type StatsCache struct {
	redis  *Redis
	ttl    time.Duration
	logger *zap.Logger
}

// NewStatsCache creates a cache over the shared Redis client. A nil redis
// or non-positive TTL disables caching entirely.
func NewStatsCache(redis *Redis, ttl time.Duration, logger *zap.Logger) *StatsCache {
	return &StatsCache{redis: redis, ttl: ttl, logger: logger}
}

func (c *StatsCache) enabled() bool {
	return c != nil && c.redis != nil && c.redis.Client != nil && c.ttl > 0
}

// Get returns the cached stats, or false on miss or cache failure.
func (c *StatsCache) Get(ctx context.Context) (domain.Stats, bool) {
	if !c.enabled() {
		return domain.Stats{}, false
	}
	raw, err := c.redis.Client.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.logger.Warn("stats cache read failed", zap.Error(err))
		}
		return domain.Stats{}, false
	}
	var stats domain.Stats
	if err := json.Unmarshal(raw, &stats); err != nil {
		c.logger.Warn("stats cache payload invalid", zap.Error(err))
		return domain.Stats{}, false
	}
	return stats, true
}

// Set stores freshly computed stats.
func (c *StatsCache) Set(ctx context.Context, stats domain.Stats) {
	if !c.enabled() {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := c.redis.Client.Set(ctx, statsCacheKey, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("stats cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached stats after a ticket mutation.
func (c *StatsCache) Invalidate(ctx context.Context) {
	if !c.enabled() {
		return
	}
	if err := c.redis.Client.Del(ctx, statsCacheKey).Err(); err != nil {
		c.logger.Warn("stats cache invalidation failed", zap.Error(err))
	}
}
