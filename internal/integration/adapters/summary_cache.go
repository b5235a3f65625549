package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
)

// redisSummaryCache implements adapter.SummaryCache on top of redis, storing
// values as JSON.
type redisSummaryCache struct {
	client *redis.Client
}

// NewRedisSummaryCache creates a summary cache backed by client.
func NewRedisSummaryCache(client *redis.Client) adapter.SummaryCache {
	return &redisSummaryCache{client: client}
}

// Get loads the JSON stored under key into dest.
func (c *redisSummaryCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read summary %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to decode summary %s: %w", key, err)
	}
	return true, nil
}

// Set stores value under key as JSON for ttl.
func (c *redisSummaryCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode summary %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write summary %s: %w", key, err)
	}
	return nil
}
