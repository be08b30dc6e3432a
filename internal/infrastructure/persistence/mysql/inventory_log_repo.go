package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/posbuzz/internal/domain/inventory"
	apperrors "github.com/xiebiao/posbuzz/pkg/errors"
)

type inventoryLogRepository struct {
	db *gorm.DB
}

// NewInventoryLogRepository 创建库存台账仓储
func NewInventoryLogRepository(db *gorm.DB) inventory.Repository {
	return &inventoryLogRepository{db: db}
}

// Create 追加台账记录(参与context中的事务)
func (r *inventoryLogRepository) Create(ctx context.Context, l *inventory.Log) error {
	model := &InventoryLogModel{
		ProductID:   l.ProductID,
		Delta:       l.Delta,
		Reason:      string(l.Reason),
		Note:        l.Note,
		OperatorID:  l.OperatorID,
		StockBefore: l.StockBefore,
		StockAfter:  l.StockAfter,
		CreatedAt:   l.CreatedAt,
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "写入库存台账失败")
	}

	l.ID = model.ID
	l.CreatedAt = model.CreatedAt
	return nil
}

// ListByProductID 按时间倒序分页查询商品台账
func (r *inventoryLogRepository) ListByProductID(ctx context.Context, productID uint, page, pageSize int) ([]*inventory.Log, int64, error) {
	page, pageSize = normalizePage(page, pageSize)

	query := getDB(ctx, r.db).Model(&InventoryLogModel{}).Where("product_id = ?", productID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询库存台账总数失败")
	}

	var models []InventoryLogModel
	err := query.Order("created_at DESC").Order("id DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询库存台账失败")
	}

	logs := make([]*inventory.Log, len(models))
	for i, m := range models {
		logs[i] = &inventory.Log{
			ID:          m.ID,
			ProductID:   m.ProductID,
			Delta:       m.Delta,
			Reason:      inventory.Reason(m.Reason),
			Note:        m.Note,
			OperatorID:  m.OperatorID,
			StockBefore: m.StockBefore,
			StockAfter:  m.StockAfter,
			CreatedAt:   m.CreatedAt,
		}
	}
	return logs, total, nil
}
