package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/posbuzz/internal/domain/product"
	apperrors "github.com/xiebiao/posbuzz/pkg/errors"
)

// productRepository 商品仓储实现(MySQL)
// 1. 实现domain/product/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误(如SKU重复),转换为业务错误
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) product.Repository {
	return &productRepository{db: db}
}

// Create 创建商品
func (r *productRepository) Create(ctx context.Context, p *product.Product) error {
	model := toProductModel(p)

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return product.ErrSKUDuplicate
		}
		if isForeignKeyError(err) {
			return apperrors.ErrInvalidParams.WithMessage("供应商不存在")
		}
		return apperrors.Wrap(err, "创建商品失败")
	}

	p.ID = model.ID
	p.CreatedAt = model.CreatedAt
	p.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找商品
func (r *productRepository) FindByID(ctx context.Context, id uint) (*product.Product, error) {
	var model ProductModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.NotFound(id)
		}
		return nil, apperrors.Wrap(err, "查询商品失败")
	}
	return toProductEntity(&model), nil
}

// FindBySKU 根据SKU查找商品
func (r *productRepository) FindBySKU(ctx context.Context, sku string) (*product.Product, error) {
	var model ProductModel
	if err := getDB(ctx, r.db).Where("sku = ?", sku).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.ErrProductNotFound
		}
		return nil, apperrors.Wrap(err, "查询商品失败")
	}
	return toProductEntity(&model), nil
}

// Update 更新商品信息
// Select("*")保证零值字段(如库存0、供应商置空)也会写入
func (r *productRepository) Update(ctx context.Context, p *product.Product) error {
	model := toProductModel(p)

	result := getDB(ctx, r.db).Model(model).Select("*").Omit("created_at", "deleted_at").Updates(model)
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return product.ErrSKUDuplicate
		}
		if isForeignKeyError(result.Error) {
			return apperrors.ErrInvalidParams.WithMessage("供应商不存在")
		}
		return apperrors.Wrap(result.Error, "更新商品失败")
	}
	if result.RowsAffected == 0 {
		return product.NotFound(p.ID)
	}

	p.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除商品(软删除)
func (r *productRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&ProductModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除商品失败")
	}
	if result.RowsAffected == 0 {
		return product.NotFound(id)
	}
	return nil
}

// List 分页查询商品列表
// 搜索匹配名称或SKU,按创建时间倒序
func (r *productRepository) List(ctx context.Context, params product.ListParams) ([]*product.Product, int64, error) {
	page, pageSize := normalizePage(params.Page, params.PageSize)

	query := getDB(ctx, r.db).Model(&ProductModel{})
	if params.Search != "" {
		pattern := likePattern(params.Search)
		query = query.Where("name LIKE ? OR sku LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询商品总数失败")
	}

	var models []ProductModel
	err := query.Order("created_at DESC").Order("id DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询商品列表失败")
	}

	products := make([]*product.Product, len(models))
	for i := range models {
		products[i] = toProductEntity(&models[i])
	}
	return products, total, nil
}

// LockByID 悲观锁查询商品(SELECT ... FOR UPDATE)
// 必须通过getDB从context获取事务DB,否则锁在语句结束时就释放了
func (r *productRepository) LockByID(ctx context.Context, id uint) (*product.Product, error) {
	var model ProductModel
	err := getDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.NotFound(id)
		}
		return nil, apperrors.Wrap(err, "锁定商品失败")
	}
	return toProductEntity(&model), nil
}

// UpdateStock 更新库存(原子操作)
// UPDATE products SET stock_quantity = stock_quantity + delta
// WHERE id = ? AND stock_quantity + delta >= 0
func (r *productRepository) UpdateStock(ctx context.Context, id uint, delta int) error {
	db := getDB(ctx, r.db)
	result := db.Model(&ProductModel{}).
		Where("id = ?", id).
		Where("stock_quantity + ? >= 0", delta).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", delta))

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新库存失败")
	}

	if result.RowsAffected == 0 {
		// 商品不存在,或者库存不足;再查一次确定原因
		var model ProductModel
		if err := db.First(&model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return product.NotFound(id)
			}
			return apperrors.Wrap(err, "查询商品失败")
		}
		return product.InsufficientStock(id, model.StockQuantity, -delta)
	}

	return nil
}

func toProductModel(p *product.Product) *ProductModel {
	return &ProductModel{
		ID:                p.ID,
		Name:              p.Name,
		SKU:               p.SKU,
		Description:       p.Description,
		Category:          p.Category,
		Price:             p.Price,
		CostPrice:         p.CostPrice,
		StockQuantity:     p.StockQuantity,
		LowStockThreshold: p.LowStockThreshold,
		SupplierID:        p.SupplierID,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// toProductEntity GORM模型 → 领域实体
func toProductEntity(model *ProductModel) *product.Product {
	return &product.Product{
		ID:                model.ID,
		Name:              model.Name,
		SKU:               model.SKU,
		Description:       model.Description,
		Category:          model.Category,
		Price:             model.Price,
		CostPrice:         model.CostPrice,
		StockQuantity:     model.StockQuantity,
		LowStockThreshold: model.LowStockThreshold,
		SupplierID:        model.SupplierID,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}
}
