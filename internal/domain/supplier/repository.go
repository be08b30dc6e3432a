package supplier

import "context"

// Repository 供应商仓储接口
type Repository interface {
	Create(ctx context.Context, s *Supplier) error
	FindByID(ctx context.Context, id uint) (*Supplier, error)
	Update(ctx context.Context, s *Supplier) error
	Delete(ctx context.Context, id uint) error

	// ListWithProductCount 全部供应商及其商品数（按名称排序）
	ListWithProductCount(ctx context.Context) ([]*WithProductCount, error)

	// CountProducts 关联的未删除商品数
	CountProducts(ctx context.Context, id uint) (int64, error)
}
