package inventory

import "context"

// Repository 库存台账仓储接口
type Repository interface {
	// Create 追加一条记录（事务通过context传递）
	Create(ctx context.Context, log *Log) error

	// ListByProductID 查询指定商品的台账（按时间倒序分页）
	ListByProductID(ctx context.Context, productID uint, page, pageSize int) ([]*Log, int64, error)
}
