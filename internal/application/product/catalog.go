package product

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/xiebiao/posbuzz/internal/domain/product"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// CatalogQuery 商品目录查询(读穿透缓存)
// 1. 命中时原样返回缓存的JSON
// 2. 未命中时查库、序列化、写缓存
// 3. 缓存任何错误都降级为直接查库,只记录Warn日志
type CatalogQuery struct {
	service product.Service
	cache   product.Cache
	logger  *zap.Logger
}

// NewCatalogQuery 创建商品目录查询
func NewCatalogQuery(service product.Service, cache product.Cache, logger *zap.Logger) *CatalogQuery {
	return &CatalogQuery{service: service, cache: cache, logger: logger}
}

// ListRequest 列表查询参数
type ListRequest struct {
	Page   int
	Limit  int
	Search string
}

// normalize 页码默认1,每页默认10、最多100
func (r ListRequest) normalize() ListRequest {
	if r.Page < 1 {
		r.Page = defaultPage
	}
	if r.Limit < 1 {
		r.Limit = defaultLimit
	}
	if r.Limit > maxLimit {
		r.Limit = maxLimit
	}
	return r
}

// List 分页查询商品,返回序列化后的ProductListResponse
func (q *CatalogQuery) List(ctx context.Context, req ListRequest) (json.RawMessage, error) {
	req = req.normalize()
	key := product.ListCacheKey(req.Page, req.Limit, req.Search)

	return q.readThrough(ctx, key, func() (interface{}, error) {
		products, total, err := q.service.ListProducts(ctx, product.ListParams{
			Page:     req.Page,
			PageSize: req.Limit,
			Search:   req.Search,
		})
		if err != nil {
			return nil, err
		}

		items := make([]ProductResponse, len(products))
		for i, p := range products {
			items[i] = NewProductResponse(p)
		}
		return ProductListResponse{
			Items:      items,
			Total:      total,
			Page:       req.Page,
			Limit:      req.Limit,
			TotalPages: int((total + int64(req.Limit) - 1) / int64(req.Limit)),
		}, nil
	})
}

// Get 查询单个商品,返回序列化后的ProductResponse
// 商品不存在时不写缓存
func (q *CatalogQuery) Get(ctx context.Context, id uint) (json.RawMessage, error) {
	return q.readThrough(ctx, product.CacheKey(id), func() (interface{}, error) {
		p, err := q.service.GetProduct(ctx, id)
		if err != nil {
			return nil, err
		}
		return NewProductResponse(p), nil
	})
}

func (q *CatalogQuery) readThrough(ctx context.Context, key string, load func() (interface{}, error)) (json.RawMessage, error) {
	if q.cache != nil {
		data, err := q.cache.Get(ctx, key)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, product.ErrCacheMiss) {
			q.logger.Warn("读取商品缓存失败,降级查询数据库", zap.String("key", key), zap.Error(err))
		}
	}

	value, err := load()
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	if q.cache != nil {
		if err := q.cache.Set(ctx, key, data); err != nil {
			q.logger.Warn("写入商品缓存失败", zap.String("key", key), zap.Error(err))
		}
	}
	return data, nil
}
