package customer

import (
	"context"

	"github.com/xiebiao/posbuzz/internal/domain/loyalty"
)

// Repository 顾客仓储接口
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	FindByID(ctx context.Context, id uint) (*Customer, error)
	FindByEmail(ctx context.Context, email string) (*Customer, error)
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, id uint) error

	// List 按创建时间倒序分页，search匹配姓名、邮箱、电话
	List(ctx context.Context, page, pageSize int, search string) ([]*Customer, int64, error)

	// LockByID 悲观锁查询，必须在事务内调用
	LockByID(ctx context.Context, id uint) (*Customer, error)

	// UpdateLoyalty 写入累计积分与等级
	UpdateLoyalty(ctx context.Context, id uint, points int, tier loyalty.Tier) error
}
