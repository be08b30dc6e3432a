package promotion

import (
	"context"
	"time"
)

// Repository 促销仓储接口
type Repository interface {
	Create(ctx context.Context, p *Promotion) error
	FindByID(ctx context.Context, id uint) (*Promotion, error)
	Update(ctx context.Context, p *Promotion) error
	Delete(ctx context.Context, id uint) error

	// List 按创建时间倒序
	List(ctx context.Context) ([]*Promotion, error)

	// ListActive 启用且now在有效期内的促销
	ListActive(ctx context.Context, now time.Time) ([]*Promotion, error)
}
