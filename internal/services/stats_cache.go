package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"lakesideBack/internal/models"
)

const statsCacheKey = "reviews:stats"

// StatsCache keeps the aggregate rating stats in Redis for a short TTL, so
// the public stats endpoint does not hit the database on every page load.
// A nil cache is a no-op, Redis is optional.
type StatsCache struct {
	RDB      *redis.Client
	TTL      time.Duration
	ErrorLog *log.Logger
}

func (c *StatsCache) Get(ctx context.Context) (models.ReviewStats, bool) {
	if c == nil || c.RDB == nil {
		return models.ReviewStats{}, false
	}
	val, err := c.RDB.Get(ctx, statsCacheKey).Result()
	if err == redis.Nil {
		return models.ReviewStats{}, false
	}
	if err != nil {
		c.logf("stats cache: get: %v", err)
		return models.ReviewStats{}, false
	}
	var stats models.ReviewStats
	if err := json.Unmarshal([]byte(val), &stats); err != nil {
		c.logf("stats cache: decode: %v", err)
		return models.ReviewStats{}, false
	}
	return stats, true
}

func (c *StatsCache) Set(ctx context.Context, stats models.ReviewStats) {
	if c == nil || c.RDB == nil {
		return
	}
	b, err := json.Marshal(stats)
	if err != nil {
		c.logf("stats cache: encode: %v", err)
		return
	}
	ttl := c.TTL
	if ttl == 0 {
		ttl = 5 * time.Minute
	}
	if err := c.RDB.Set(ctx, statsCacheKey, b, ttl).Err(); err != nil {
		c.logf("stats cache: set: %v", err)
	}
}

func (c *StatsCache) Invalidate(ctx context.Context) {
	if c == nil || c.RDB == nil {
		return
	}
	if err := c.RDB.Del(ctx, statsCacheKey).Err(); err != nil {
		c.logf("stats cache: invalidate: %v", err)
	}
}

func (c *StatsCache) logf(format string, args ...interface{}) {
	if c.ErrorLog != nil {
		c.ErrorLog.Printf(format, args...)
	}
}
