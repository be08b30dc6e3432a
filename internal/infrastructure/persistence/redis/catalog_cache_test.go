package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	dto "github.com/prometheus/client_model/go"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/xiebiao/posbuzz/internal/domain/product"
	"github.com/xiebiao/posbuzz/pkg/circuitbreaker"
	"github.com/xiebiao/posbuzz/pkg/metrics"
)

func newTestCache(t *testing.T, opts CatalogCacheOptions) (*CatalogCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1, DialTimeout: 200 * time.Millisecond})
	t.Cleanup(func() { client.Close() })

	if opts.TTL == 0 {
		opts.TTL = 300 * time.Second
	}
	return NewCatalogCache(client, opts, zaptest.NewLogger(t)), mr
}

func TestCatalogCache_GetSet(t *testing.T) {
	cache, mr := newTestCache(t, CatalogCacheOptions{})
	ctx := context.Background()

	_, err := cache.Get(ctx, product.CacheKey(1))
	assert.ErrorIs(t, err, product.ErrCacheMiss)

	body := []byte(`{"id":1,"name":"Cola","price":"2.50"}`)
	require.NoError(t, cache.Set(ctx, product.CacheKey(1), body))

	got, err := cache.Get(ctx, product.CacheKey(1))
	require.NoError(t, err)
	assert.Equal(t, body, got)
	assert.Equal(t, 300*time.Second, mr.TTL("product:1"))
}

func TestCatalogCache_Invalidate(t *testing.T) {
	cache, mr := newTestCache(t, CatalogCacheOptions{})
	ctx := context.Background()

	require.NoError(t, mr.Set("product:1", "a"))
	require.NoError(t, mr.Set("product:2", "b"))
	require.NoError(t, mr.Set("products:page:1:limit:10:search:none", "[]"))
	require.NoError(t, mr.Set("products:page:2:limit:10:search:cola", "[]"))
	require.NoError(t, mr.Set("session:7", "keep"))

	require.NoError(t, cache.Invalidate(ctx, 1))

	assert.False(t, mr.Exists("product:1"))
	assert.True(t, mr.Exists("product:2"), "其他商品的缓存不受影响")
	assert.False(t, mr.Exists("products:page:1:limit:10:search:none"))
	assert.False(t, mr.Exists("products:page:2:limit:10:search:cola"))
	assert.True(t, mr.Exists("session:7"))
}

func TestCatalogCache_InvalidateManyListKeys(t *testing.T) {
	cache, mr := newTestCache(t, CatalogCacheOptions{})

	for i := 1; i <= 250; i++ {
		require.NoError(t, mr.Set(product.ListCacheKey(i, 10, ""), "[]"))
	}

	require.NoError(t, cache.Invalidate(context.Background()))
	assert.Empty(t, mr.Keys())
}

func TestCatalogCache_BreakerOpensWhenRedisDown(t *testing.T) {
	cache, mr := newTestCache(t, CatalogCacheOptions{BreakerFailures: 2, BreakerTimeout: time.Minute})
	ctx := context.Background()
	mr.Close()

	for i := 0; i < 2; i++ {
		_, err := cache.Get(ctx, product.CacheKey(1))
		require.Error(t, err)
		assert.False(t, errors.Is(err, product.ErrCacheMiss))
	}

	assert.Equal(t, circuitbreaker.StateOpen, cache.BreakerState())

	_, err := cache.Get(ctx, product.CacheKey(1))
	assert.ErrorIs(t, err, circuitbreaker.ErrOpenState)
	assert.ErrorIs(t, cache.Set(ctx, product.CacheKey(1), []byte("{}")), circuitbreaker.ErrOpenState)
}

func TestCatalogCache_ConsecutiveFailuresGauge(t *testing.T) {
	metrics.InitMetrics()
	cache, mr := newTestCache(t, CatalogCacheOptions{BreakerFailures: 5, BreakerTimeout: time.Minute})
	ctx := context.Background()
	gauge := metrics.CircuitBreakerConsecutiveFailures.WithLabelValues("catalog-cache")

	_, err := cache.Get(ctx, product.CacheKey(1))
	assert.ErrorIs(t, err, product.ErrCacheMiss)
	assert.Equal(t, float64(0), gaugeValue(t, gauge))

	mr.Close()
	for i := 0; i < 2; i++ {
		_, _ = cache.Get(ctx, product.CacheKey(1))
	}
	assert.Equal(t, float64(2), gaugeValue(t, gauge))
}

func gaugeValue(t *testing.T, g interface{ Write(*dto.Metric) error }) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, g.Write(&m))
	return m.GetGauge().GetValue()
}

func TestCatalogCache_MissDoesNotTripBreaker(t *testing.T) {
	cache, _ := newTestCache(t, CatalogCacheOptions{BreakerFailures: 1})

	for i := 0; i < 5; i++ {
		_, err := cache.Get(context.Background(), product.CacheKey(uint(i+1)))
		assert.ErrorIs(t, err, product.ErrCacheMiss)
	}
	assert.Equal(t, circuitbreaker.StateClosed, cache.BreakerState())
}
