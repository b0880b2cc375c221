package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	portsrepo "github.com/SscSPs/credit_tracking_app/internal/core/ports/repositories"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryReportCache is an in-process, size-bounded report cache with per-entry TTL.
// Values are stored JSON-encoded so callers never share memory with the cache.
type MemoryReportCache struct {
	lru        *expirable.LRU[string, []byte]
	generation atomic.Int64
}

// NewMemoryReportCache creates a cache holding at most size reports for ttl each.
func NewMemoryReportCache(size int, ttl time.Duration) *MemoryReportCache {
	return &MemoryReportCache{
		lru: expirable.NewLRU[string, []byte](size, nil, ttl),
	}
}

var _ portsrepo.ReportCache = (*MemoryReportCache)(nil)

func (c *MemoryReportCache) Generation(ctx context.Context) (int64, error) {
	return c.generation.Load(), nil
}

func (c *MemoryReportCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, ok := c.lru.Get(key)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.lru.Remove(key)
		return false, fmt.Errorf("failed to decode cached report %q: %w", key, err)
	}
	return true, nil
}

func (c *MemoryReportCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode report %q: %w", key, err)
	}
	c.lru.Add(key, raw)
	return nil
}

func (c *MemoryReportCache) Invalidate(ctx context.Context) error {
	c.generation.Add(1)
	c.lru.Purge()
	return nil
}

// Len reports the number of cached reports.
func (c *MemoryReportCache) Len() int {
	return c.lru.Len()
}
