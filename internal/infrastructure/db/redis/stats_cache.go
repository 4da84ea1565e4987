package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/qoder/minijira/internal/core/ports"
)

const statsTTL = 30 * time.Second

// StatsCache caches per-user dashboard stats in Redis.
// Key format: dashboard:stats:<user_id>
//
// All operations are best-effort: a Redis failure degrades to a cache miss
// and is logged, never surfaced to the request.
type StatsCache struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewStatsCache(client *redis.Client, log zerolog.Logger) *StatsCache {
	return &StatsCache{client: client, log: log}
}

func (c *StatsCache) Get(ctx context.Context, userID int64) (*ports.DashboardStats, bool) {
	raw, err := c.client.Get(ctx, c.key(userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Msg("stats cache read failed")
		}
		return nil, false
	}

	var stats ports.DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, false
	}
	return &stats, true
}

func (c *StatsCache) Set(ctx context.Context, userID int64, stats *ports.DashboardStats) {
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(userID), raw, statsTTL).Err(); err != nil {
		c.log.Warn().Err(err).Msg("stats cache write failed")
	}
}

func (c *StatsCache) Invalidate(ctx context.Context, userID int64) {
	if err := c.client.Del(ctx, c.key(userID)).Err(); err != nil {
		c.log.Warn().Err(err).Msg("stats cache invalidation failed")
	}
}

func (c *StatsCache) key(userID int64) string {
	return fmt.Sprintf("dashboard:stats:%d", userID)
}
