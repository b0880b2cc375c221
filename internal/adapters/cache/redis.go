package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	portsrepo "github.com/SscSPs/credit_tracking_app/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
)

// RedisReportCache shares cached reports between service instances. Invalidation bumps a
// generation counter; reports of older generations are left to expire.
type RedisReportCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisReportCache creates a cache storing reports under prefix for ttl each.
func NewRedisReportCache(client *redis.Client, prefix string, ttl time.Duration) *RedisReportCache {
	return &RedisReportCache{client: client, prefix: prefix, ttl: ttl}
}

var _ portsrepo.ReportCache = (*RedisReportCache)(nil)

func (c *RedisReportCache) generationKey() string {
	return c.prefix + ":generation"
}

func (c *RedisReportCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, c.generationKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read cache generation: %w", err)
	}
	return gen, nil
}

func (c *RedisReportCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, c.prefix+":"+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cached report %q: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("failed to decode cached report %q: %w", key, err)
	}
	return true, nil
}

func (c *RedisReportCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode report %q: %w", key, err)
	}
	if err := c.client.Set(ctx, c.prefix+":"+key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store report %q: %w", key, err)
	}
	return nil
}

func (c *RedisReportCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, c.generationKey()).Err(); err != nil {
		return fmt.Errorf("failed to bump cache generation: %w", err)
	}
	return nil
}

// Ping checks connectivity.
func (c *RedisReportCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
