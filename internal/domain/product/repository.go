package product

import (
	"context"
)

// Repository 商品仓储接口
// 由domain层定义,infrastructure层实现;事务通过context传递
type Repository interface {
	// Create 创建商品,SKU重复返回ErrSKUDuplicate
	Create(ctx context.Context, product *Product) error

	// FindByID 根据ID查找商品,不存在返回ErrProductNotFound
	FindByID(ctx context.Context, id uint) (*Product, error)

	// FindBySKU 根据SKU查找商品
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// Update 更新商品信息
	Update(ctx context.Context, product *Product) error

	// Delete 删除商品(软删除,历史销售记录仍可关联)
	Delete(ctx context.Context, id uint) error

	// List 分页查询,Search匹配名称或SKU
	List(ctx context.Context, params ListParams) ([]*Product, int64, error)

	// LockByID 悲观锁查询(SELECT ... FOR UPDATE),必须在事务内调用
	LockByID(ctx context.Context, id uint) (*Product, error)

	// UpdateStock 原子更新库存
	// delta为正数表示增加,负数表示减少;结果为负时返回ErrInsufficientStock
	UpdateStock(ctx context.Context, id uint, delta int) error
}

// ListParams 列表查询参数
type ListParams struct {
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
	Search   string // 搜索关键词(名称、SKU)
}
