package sale

import "context"

// Repository 销售单仓储接口
type Repository interface {
	// Create 创建销售单（主表与明细一起写入，事务通过context传递）
	Create(ctx context.Context, sale *Sale) error

	// FindByID 查询销售单，明细附带商品名称与SKU（含已软删除商品）
	FindByID(ctx context.Context, id uint) (*Sale, error)

	// List 按创建时间倒序分页
	List(ctx context.Context, params ListParams) ([]*Sale, int64, error)

	// ListByCustomer 顾客最近的销售单
	ListByCustomer(ctx context.Context, customerID uint, limit int) ([]*Sale, error)
}

// ListParams 列表查询参数
type ListParams struct {
	Page       int
	PageSize   int
	OperatorID *uint // 非nil时只查该收银员的销售单
	CustomerID *uint
}
