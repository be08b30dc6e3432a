package product

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	// ListCacheKeyPattern 所有列表缓存键(写操作时整体失效)
	ListCacheKeyPattern = "products:*"

	noSearch = "none"
)

// CacheKey 单个商品的缓存键
func CacheKey(id uint) string {
	return fmt.Sprintf("product:%d", id)
}

// ListCacheKey 列表查询的缓存键,搜索词为空时记为none
func ListCacheKey(page, limit int, search string) string {
	search = strings.TrimSpace(search)
	if search == "" {
		search = noSearch
	}
	return fmt.Sprintf("products:page:%d:limit:%d:search:%s", page, limit, search)
}

// ErrCacheMiss 缓存未命中
var ErrCacheMiss = errors.New("product cache miss")

// Cache 商品目录缓存
// 实现方的任何错误都只会让调用方降级到数据库查询
type Cache interface {
	// Get 读取缓存的JSON,未命中返回ErrCacheMiss
	Get(ctx context.Context, key string) ([]byte, error)

	// Set 写入缓存
	Set(ctx context.Context, key string, value []byte) error

	// Invalidate 删除单个商品的缓存以及全部列表缓存
	Invalidate(ctx context.Context, productIDs ...uint) error
}
