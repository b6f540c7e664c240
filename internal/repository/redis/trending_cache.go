package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pulseMontreal/domain"

	"github.com/redis/go-redis/v9"
)

// TrendingCache holds precomputed trending rankings for a short TTL.
// Recomputation is relatively expensive and the results do not need to be
// real-time-exact.
type TrendingCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewTrendingCache(client *redis.Client, ttl time.Duration) *TrendingCache {
	return &TrendingCache{
		client: client,
		ttl:    ttl,
	}
}

func trendingKey(scope string, limit int) string {
	return fmt.Sprintf("trending:%s:%d", scope, limit)
}

// Get returns (nil, false, nil) on a cache miss.
func (c *TrendingCache) Get(ctx context.Context, scope string, limit int) ([]domain.TrendingEvent, bool, error) {
	val, err := c.client.Get(ctx, trendingKey(scope, limit)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get trending from Redis: %w", err)
	}

	var entries []domain.TrendingEvent
	if err := json.Unmarshal([]byte(val), &entries); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal trending entries: %w", err)
	}

	return entries, true, nil
}

func (c *TrendingCache) Set(ctx context.Context, scope string, limit int, entries []domain.TrendingEvent) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal trending entries: %w", err)
	}

	if err := c.client.Set(ctx, trendingKey(scope, limit), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store trending in Redis: %w", err)
	}

	return nil
}
