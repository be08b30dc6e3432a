package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/posbuzz/internal/domain/sale"
	apperrors "github.com/xiebiao/posbuzz/pkg/errors"
)

// saleRepository 销售单仓储实现(MySQL)
// 1. 销售单与明细一起创建(GORM自动处理一对多关系)
// 2. 查询时使用Preload预加载明细与商品,避免N+1问题
type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository 创建销售单仓储
func NewSaleRepository(db *gorm.DB) sale.Repository {
	return &saleRepository{db: db}
}

// Create 创建销售单(包含明细)
// Items会被GORM一并INSERT;Product/Operator关联为nil,不会被回写
func (r *saleRepository) Create(ctx context.Context, s *sale.Sale) error {
	model := toSaleModel(s)

	if err := getDB(ctx, r.db).Omit("Operator", "Items.Product").Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.New(apperrors.ErrCodeDuplicateEntry, "销售单号重复").WithDetails(map[string]interface{}{"sale_no": s.SaleNo})
		}
		return apperrors.Wrap(err, "创建销售单失败")
	}

	s.ID = model.ID
	s.CreatedAt = model.CreatedAt
	for i := range s.Items {
		s.Items[i].ID = model.Items[i].ID
		s.Items[i].SaleID = model.ID
	}
	return nil
}

// FindByID 查询销售单
// 明细商品与收银员用Unscoped预加载,已软删除的商品仍能显示名称
func (r *saleRepository) FindByID(ctx context.Context, id uint) (*sale.Sale, error) {
	var model SaleModel
	if err := withSaleAssociations(getDB(ctx, r.db)).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, sale.NotFound(id)
		}
		return nil, apperrors.Wrap(err, "查询销售单失败")
	}
	return toSaleEntity(&model), nil
}

// List 分页查询销售单
func (r *saleRepository) List(ctx context.Context, params sale.ListParams) ([]*sale.Sale, int64, error) {
	page, pageSize := normalizePage(params.Page, params.PageSize)

	query := getDB(ctx, r.db).Model(&SaleModel{})
	if params.OperatorID != nil {
		query = query.Where("operator_id = ?", *params.OperatorID)
	}
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询销售单总数失败")
	}

	var models []SaleModel
	err := withSaleAssociations(query).
		Order("created_at DESC").Order("id DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询销售单列表失败")
	}

	return toSaleEntities(models), total, nil
}

// ListByCustomer 顾客最近的销售单
func (r *saleRepository) ListByCustomer(ctx context.Context, customerID uint, limit int) ([]*sale.Sale, error) {
	if limit <= 0 {
		limit = 5
	}

	var models []SaleModel
	err := withSaleAssociations(getDB(ctx, r.db)).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询顾客销售记录失败")
	}
	return toSaleEntities(models), nil
}

func withSaleAssociations(db *gorm.DB) *gorm.DB {
	unscoped := func(tx *gorm.DB) *gorm.DB { return tx.Unscoped() }
	return db.
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Preload("Items.Product", unscoped).
		Preload("Operator", unscoped)
}

func toSaleModel(s *sale.Sale) *SaleModel {
	items := make([]SaleItemModel, len(s.Items))
	for i, item := range s.Items {
		items[i] = SaleItemModel{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			UnitCost:  item.UnitCost,
			Subtotal:  item.Subtotal,
		}
	}

	return &SaleModel{
		ID:            s.ID,
		SaleNo:        s.SaleNo,
		OperatorID:    s.OperatorID,
		CustomerID:    s.CustomerID,
		PromotionID:   s.PromotionID,
		Subtotal:      s.Subtotal,
		Discount:      s.Discount,
		FinalAmount:   s.FinalAmount,
		PaymentMethod: string(s.PaymentMethod),
		PointsEarned:  s.PointsEarned,
		Items:         items,
		CreatedAt:     s.CreatedAt,
	}
}

// toSaleEntity GORM模型 → 领域实体
func toSaleEntity(m *SaleModel) *sale.Sale {
	items := make([]sale.Item, len(m.Items))
	for i, im := range m.Items {
		items[i] = sale.Item{
			ID:        im.ID,
			SaleID:    im.SaleID,
			ProductID: im.ProductID,
			Quantity:  im.Quantity,
			UnitPrice: im.UnitPrice,
			UnitCost:  im.UnitCost,
			Subtotal:  im.Subtotal,
		}
		if im.Product != nil {
			items[i].ProductName = im.Product.Name
			items[i].ProductSKU = im.Product.SKU
		}
	}

	s := &sale.Sale{
		ID:            m.ID,
		SaleNo:        m.SaleNo,
		OperatorID:    m.OperatorID,
		CustomerID:    m.CustomerID,
		PromotionID:   m.PromotionID,
		Subtotal:      m.Subtotal,
		Discount:      m.Discount,
		FinalAmount:   m.FinalAmount,
		PaymentMethod: sale.PaymentMethod(m.PaymentMethod),
		PointsEarned:  m.PointsEarned,
		Items:         items,
		CreatedAt:     m.CreatedAt,
	}
	if m.Operator != nil {
		s.OperatorName = m.Operator.Name
	}
	return s
}

func toSaleEntities(models []SaleModel) []*sale.Sale {
	result := make([]*sale.Sale, len(models))
	for i := range models {
		result[i] = toSaleEntity(&models[i])
	}
	return result
}
