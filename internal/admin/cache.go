package admin

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

const statsKey = "admin_stats"

// Cache holds the aggregated stats blob in Redis for a short TTL so the
// dashboard does not re-count every table on each refresh.
type Cache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{Client: client, TTL: ttl}
}

func (c *Cache) GetStats(ctx context.Context) (*Stats, bool) {
	raw, err := c.Client.Get(ctx, statsKey).Result()
	if err != nil {
		return nil, false
	}
	var stats Stats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		return nil, false
	}
	return &stats, true
}

func (c *Cache) SetStats(ctx context.Context, stats *Stats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, statsKey, raw, c.TTL).Err()
}

func (c *Cache) InvalidateStats(ctx context.Context) error {
	return c.Client.Del(ctx, statsKey).Err()
}
