package mysql

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/xiebiao/posbuzz/internal/domain/analytics"
	apperrors "github.com/xiebiao/posbuzz/pkg/errors"
)

// analyticsRepository 统计数据源
// 只做投影查询,聚合在domain/analytics中完成
type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository 创建统计数据源
func NewAnalyticsRepository(db *gorm.DB) analytics.Repository {
	return &analyticsRepository{db: db}
}

type lineRow struct {
	ProductID   uint
	ProductName string
	ProductSKU  string
	Quantity    int
	UnitPrice   decimal.Decimal
	UnitCost    decimal.Decimal
}

// Lines 全部销售明细(商品名称取自含软删除的商品表)
func (r *analyticsRepository) Lines(ctx context.Context) ([]analytics.Line, error) {
	var rows []lineRow
	err := getDB(ctx, r.db).Table("sale_items AS si").
		Select("si.product_id, COALESCE(p.name, '') AS product_name, COALESCE(p.sku, '') AS product_sku, " +
			"si.quantity, si.unit_price, si.unit_cost").
		Joins("LEFT JOIN products p ON p.id = si.product_id").
		Order("si.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询销售明细失败")
	}

	lines := make([]analytics.Line, len(rows))
	for i, row := range rows {
		lines[i] = analytics.Line(row)
	}
	return lines, nil
}

type saleFactRow struct {
	SaleID       uint
	OperatorID   uint
	OperatorName string
	Discount     decimal.Decimal
	FinalAmount  decimal.Decimal
	CreatedAt    time.Time
}

// Sales 销售单及收银员姓名
func (r *analyticsRepository) Sales(ctx context.Context, since time.Time) ([]analytics.SaleFact, error) {
	query := getDB(ctx, r.db).Table("sales AS s").
		Select("s.id AS sale_id, s.operator_id, COALESCE(u.name, '') AS operator_name, " +
			"s.discount, s.final_amount, s.created_at").
		Joins("LEFT JOIN users u ON u.id = s.operator_id")
	if !since.IsZero() {
		query = query.Where("s.created_at >= ?", since)
	}

	var rows []saleFactRow
	if err := query.Order("s.created_at ASC").Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询销售单失败")
	}

	facts := make([]analytics.SaleFact, len(rows))
	for i, row := range rows {
		facts[i] = analytics.SaleFact(row)
	}
	return facts, nil
}

