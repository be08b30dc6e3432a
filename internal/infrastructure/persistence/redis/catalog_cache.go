package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/xiebiao/posbuzz/internal/domain/product"
	"github.com/xiebiao/posbuzz/pkg/circuitbreaker"
	"github.com/xiebiao/posbuzz/pkg/metrics"
)

const (
	catalogCacheName = "catalog"
	scanBatchSize    = 100
)

// CatalogCache 商品目录缓存(Redis实现)
// 1. 值为接口响应的JSON原文,命中时原样返回
// 2. 所有Redis调用经过熔断器,Redis不可用时快速失败,由调用方降级查库
// 3. 失效时删除商品键,并用SCAN删除全部products:*列表键(不使用KEYS阻塞Redis)
type CatalogCache struct {
	client  *redis.Client
	ttl     time.Duration
	breaker *circuitbreaker.CircuitBreaker
	logger  *zap.Logger
}

// CatalogCacheOptions 缓存配置
type CatalogCacheOptions struct {
	TTL             time.Duration
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

// NewCatalogCache 创建商品目录缓存
func NewCatalogCache(client *redis.Client, opts CatalogCacheOptions, logger *zap.Logger) *CatalogCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.BreakerFailures == 0 {
		opts.BreakerFailures = 5
	}

	breaker := circuitbreaker.NewCircuitBreaker("catalog-cache", circuitbreaker.Config{
		MaxRequests: 1,
		Timeout:     opts.BreakerTimeout,
		ReadyToTrip: func(c circuitbreaker.Counts) bool {
			return c.ConsecutiveFailures >= opts.BreakerFailures
		},
		// 未命中是正常结果
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, redis.Nil)
		},
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			logger.Warn("缓存熔断器状态变化",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
			metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": name}, float64(to))
		},
	})

	return &CatalogCache{
		client:  client,
		ttl:     opts.TTL,
		breaker: breaker,
		logger:  logger,
	}
}

// Get 读取缓存
func (c *CatalogCache) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := c.execute(func() error {
		var err error
		data, err = c.client.Get(ctx, key).Bytes()
		return err
	})

	switch {
	case err == nil:
		metrics.CacheResult(catalogCacheName, "hit")
		return data, nil
	case errors.Is(err, redis.Nil):
		metrics.CacheResult(catalogCacheName, "miss")
		return nil, product.ErrCacheMiss
	default:
		metrics.CacheResult(catalogCacheName, "error")
		return nil, err
	}
}

// Set 写入缓存(带TTL)
func (c *CatalogCache) Set(ctx context.Context, key string, value []byte) error {
	return c.execute(func() error {
		return c.client.Set(ctx, key, value, c.ttl).Err()
	})
}

// Invalidate 删除商品键及全部列表键
func (c *CatalogCache) Invalidate(ctx context.Context, productIDs ...uint) error {
	err := c.execute(func() error {
		if len(productIDs) > 0 {
			keys := make([]string, len(productIDs))
			for i, id := range productIDs {
				keys[i] = product.CacheKey(id)
			}
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		return c.deleteByPattern(ctx, product.ListCacheKeyPattern)
	})
	if err == nil {
		metrics.IncCounterVec(metrics.CacheInvalidationsTotal, map[string]string{"cache": catalogCacheName})
	}
	return err
}

// deleteByPattern 先完整SCAN出匹配的键，再分批UNLINK
// 边遍历边删除会让游标跳过部分键
func (c *CatalogCache) deleteByPattern(ctx context.Context, pattern string) error {
	var keys []string
	iter := c.client.Scan(ctx, 0, pattern, scanBatchSize).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}

	for start := 0; start < len(keys); start += scanBatchSize {
		end := start + scanBatchSize
		if end > len(keys) {
			end = len(keys)
		}
		if err := c.client.Unlink(ctx, keys[start:end]...).Err(); err != nil {
			return err
		}
	}
	return nil
}

func (c *CatalogCache) execute(fn func() error) error {
	err := c.breaker.Execute(fn)

	result := "success"
	switch {
	case errors.Is(err, circuitbreaker.ErrOpenState):
		result = "rejected"
	case err != nil && !errors.Is(err, redis.Nil):
		result = "failure"
	}
	metrics.IncCounterVec(metrics.CircuitBreakerRequests, map[string]string{
		"name":   c.breaker.Name(),
		"result": result,
	})
	metrics.SetGaugeVec(metrics.CircuitBreakerConsecutiveFailures,
		map[string]string{"name": c.breaker.Name()},
		float64(c.breaker.Counts().ConsecutiveFailures))
	return err
}

// BreakerState 熔断器当前状态
func (c *CatalogCache) BreakerState() circuitbreaker.State {
	return c.breaker.State()
}

var _ product.Cache = (*CatalogCache)(nil)
