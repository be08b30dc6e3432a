package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/posbuzz/internal/domain/supplier"
	apperrors "github.com/xiebiao/posbuzz/pkg/errors"
)

type supplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository 创建供应商仓储
func NewSupplierRepository(db *gorm.DB) supplier.Repository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) Create(ctx context.Context, s *supplier.Supplier) error {
	model := toSupplierModel(s)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建供应商失败")
	}
	s.ID = model.ID
	s.CreatedAt = model.CreatedAt
	s.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *supplierRepository) FindByID(ctx context.Context, id uint) (*supplier.Supplier, error) {
	var model SupplierModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, supplier.NotFound(id)
		}
		return nil, apperrors.Wrap(err, "查询供应商失败")
	}
	return toSupplierEntity(&model), nil
}

func (r *supplierRepository) Update(ctx context.Context, s *supplier.Supplier) error {
	result := getDB(ctx, r.db).Model(&SupplierModel{ID: s.ID}).
		Select("name", "email", "phone", "address", "updated_at").
		Updates(toSupplierModel(s))
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新供应商失败")
	}
	if result.RowsAffected == 0 {
		return supplier.NotFound(s.ID)
	}
	return nil
}

// Delete 删除供应商
// 外键约束兜底:即使服务层检查后有新商品关联,也不会留下悬空引用
func (r *supplierRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&SupplierModel{}, id)
	if result.Error != nil {
		if isForeignKeyError(result.Error) {
			return supplier.ErrHasProducts
		}
		return apperrors.Wrap(result.Error, "删除供应商失败")
	}
	if result.RowsAffected == 0 {
		return supplier.NotFound(id)
	}
	return nil
}

// supplierWithCountRow 列表查询结果行
type supplierWithCountRow struct {
	SupplierModel
	ProductCount int64
}

// ListWithProductCount 供应商列表及在售商品数
// SELECT s.*, COUNT(p.id) AS product_count FROM suppliers s
// LEFT JOIN products p ON p.supplier_id = s.id AND p.deleted_at IS NULL
// GROUP BY s.id ORDER BY s.name
func (r *supplierRepository) ListWithProductCount(ctx context.Context) ([]*supplier.WithProductCount, error) {
	var rows []supplierWithCountRow
	err := getDB(ctx, r.db).Table("suppliers AS s").
		Select("s.*, COUNT(p.id) AS product_count").
		Joins("LEFT JOIN products p ON p.supplier_id = s.id AND p.deleted_at IS NULL").
		Where("s.deleted_at IS NULL").
		Group("s.id").
		Order("s.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询供应商列表失败")
	}

	result := make([]*supplier.WithProductCount, len(rows))
	for i := range rows {
		result[i] = &supplier.WithProductCount{
			Supplier:     *toSupplierEntity(&rows[i].SupplierModel),
			ProductCount: rows[i].ProductCount,
		}
	}
	return result, nil
}

func (r *supplierRepository) CountProducts(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&ProductModel{}).Where("supplier_id = ?", id).Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计供应商商品失败")
	}
	return count, nil
}

func toSupplierModel(s *supplier.Supplier) *SupplierModel {
	return &SupplierModel{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Phone:     s.Phone,
		Address:   s.Address,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toSupplierEntity(m *SupplierModel) *supplier.Supplier {
	return &supplier.Supplier{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Address:   m.Address,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
