package cache

import (
	"context"
	"testing"
	"time"

	portsrepo "github.com/SscSPs/credit_tracking_app/internal/core/ports/repositories"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type report struct {
	Date  string `json:"date"`
	Total int    `json:"total"`
}

func exerciseReportCache(t *testing.T, c portsrepo.ReportCache) {
	t.Helper()
	ctx := context.Background()

	gen, err := c.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), gen)

	var got report
	found, err := c.Get(ctx, "daily:2024-01-05", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "daily:2024-01-05", report{Date: "2024-01-05", Total: 42}))
	found, err = c.Get(ctx, "daily:2024-01-05", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, report{Date: "2024-01-05", Total: 42}, got)

	require.NoError(t, c.Invalidate(ctx))
	gen, err = c.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)
}

func TestMemoryReportCache(t *testing.T) {
	c := NewMemoryReportCache(16, time.Minute)
	exerciseReportCache(t, c)
	assert.Equal(t, 0, c.Len(), "invalidate purges entries")
}

func TestMemoryReportCache_Bounded(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryReportCache(2, time.Minute)
	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, c.Set(ctx, k, report{Date: k}))
	}
	assert.Equal(t, 2, c.Len())

	var got report
	found, err := c.Get(ctx, "a", &got)
	require.NoError(t, err)
	assert.False(t, found, "oldest entry is evicted")
}

func TestRedisReportCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := NewRedisReportCache(rdb, "reports", time.Minute)

	require.NoError(t, c.Ping(context.Background()))
	exerciseReportCache(t, c)

	mr.FastForward(2 * time.Minute)
	var got report
	found, err := c.Get(context.Background(), "daily:2024-01-05", &got)
	require.NoError(t, err)
	assert.False(t, found, "reports expire after the ttl")
}

func TestRedisReportCache_Unavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := NewRedisReportCache(rdb, "reports", time.Minute)
	mr.Close()

	_, err := c.Generation(context.Background())
	assert.Error(t, err)
	assert.Error(t, c.Invalidate(context.Background()))
}
