package product

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Service 商品领域服务
// 封装商品的业务规则校验,缓存失效由应用层负责
type Service interface {
	// CreateProduct 创建商品
	// 业务规则:名称>=3个字符、SKU唯一、售价>0、成本价>=0、库存>=0
	CreateProduct(ctx context.Context, params CreateParams) (*Product, error)

	// GetProduct 根据ID获取商品
	GetProduct(ctx context.Context, id uint) (*Product, error)

	// UpdateProduct 修改商品,修改SKU时重新检查唯一性
	UpdateProduct(ctx context.Context, id uint, fields UpdateFields) (*Product, error)

	// DeleteProduct 删除商品(软删除)
	DeleteProduct(ctx context.Context, id uint) error

	// ListProducts 分页查询商品
	ListProducts(ctx context.Context, params ListParams) ([]*Product, int64, error)
}

// CreateParams 创建商品参数
type CreateParams struct {
	Name              string
	SKU               string
	Description       string
	Category          string
	Price             decimal.Decimal
	CostPrice         decimal.Decimal
	StockQuantity     int
	LowStockThreshold *int
	SupplierID        *uint
}

type service struct {
	repo Repository
}

// NewService 创建商品领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateProduct 创建商品
func (s *service) CreateProduct(ctx context.Context, params CreateParams) (*Product, error) {
	p := NewProduct(strings.TrimSpace(params.Name), strings.TrimSpace(params.SKU), params.Price, params.CostPrice, params.StockQuantity)
	p.Description = params.Description
	p.Category = params.Category
	p.SupplierID = params.SupplierID
	if params.LowStockThreshold != nil {
		p.LowStockThreshold = *params.LowStockThreshold
	}

	if err := validate(p); err != nil {
		return nil, err
	}

	if err := s.ensureSKUAvailable(ctx, p.SKU, 0); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetProduct 根据ID获取商品
func (s *service) GetProduct(ctx context.Context, id uint) (*Product, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateProduct 修改商品
func (s *service) UpdateProduct(ctx context.Context, id uint, fields UpdateFields) (*Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if fields.Name != nil {
		name := strings.TrimSpace(*fields.Name)
		fields.Name = &name
	}
	if fields.SKU != nil {
		sku := strings.TrimSpace(*fields.SKU)
		fields.SKU = &sku
	}
	skuChanged := fields.SKU != nil && *fields.SKU != p.SKU

	p.ApplyUpdate(fields)
	if err := validate(p); err != nil {
		return nil, err
	}

	if skuChanged {
		if err := s.ensureSKUAvailable(ctx, p.SKU, p.ID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteProduct 删除商品
func (s *service) DeleteProduct(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ListProducts 分页查询商品
func (s *service) ListProducts(ctx context.Context, params ListParams) ([]*Product, int64, error) {
	return s.repo.List(ctx, params)
}

// ensureSKUAvailable 检查SKU是否被其他商品占用
// 并发下仍可能冲突,最终由数据库唯一索引兜底(仓储转换为ErrSKUDuplicate)
func (s *service) ensureSKUAvailable(ctx context.Context, sku string, selfID uint) error {
	existing, err := s.repo.FindBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return nil
		}
		return err
	}
	if existing != nil && existing.ID != selfID {
		return ErrSKUDuplicate
	}
	return nil
}

// validate 商品字段校验
func validate(p *Product) error {
	if utf8.RuneCountInString(p.Name) < 3 {
		return ErrInvalidName
	}
	if p.SKU == "" {
		return ErrInvalidSKU
	}
	if !p.Price.IsPositive() {
		return ErrInvalidPrice
	}
	if p.CostPrice.IsNegative() {
		return ErrInvalidCostPrice
	}
	if p.StockQuantity < 0 {
		return ErrInvalidStock
	}
	if p.LowStockThreshold < 0 {
		return ErrInvalidThreshold
	}
	return nil
}
