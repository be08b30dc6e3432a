package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultLowStockThreshold 默认低库存预警阈值
const DefaultLowStockThreshold = 10

// Product 商品实体(聚合根)
// 设计说明:
// 1. 金额使用decimal.Decimal(避免浮点数精度问题)
// 2. SKU作为业务唯一标识(数据库层保证唯一性)
// 3. 库存不能为负数,扣减只能通过DecrStock或仓储的条件更新
type Product struct {
	ID                uint
	Name              string
	SKU               string
	Description       string
	Category          string
	Price             decimal.Decimal // 售价
	CostPrice         decimal.Decimal // 成本价
	StockQuantity     int
	LowStockThreshold int
	SupplierID        *uint
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewProduct 创建新商品(工厂方法)
func NewProduct(name, sku string, price, costPrice decimal.Decimal, stock int) *Product {
	now := time.Now()
	return &Product{
		Name:              name,
		SKU:               sku,
		Price:             price,
		CostPrice:         costPrice,
		StockQuantity:     stock,
		LowStockThreshold: DefaultLowStockThreshold,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// DecrStock 扣减库存
// 业务规则:扣减后库存不能为负数
func (p *Product) DecrStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if p.StockQuantity < quantity {
		return InsufficientStock(p.ID, p.StockQuantity, quantity)
	}
	p.StockQuantity -= quantity
	p.UpdatedAt = time.Now()
	return nil
}

// IncrStock 增加库存(补货)
func (p *Product) IncrStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	p.StockQuantity += quantity
	p.UpdatedAt = time.Now()
	return nil
}

// IsLowStock 库存是否低于预警阈值
func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.LowStockThreshold
}

// Margin 单件毛利
func (p *Product) Margin() decimal.Decimal {
	return p.Price.Sub(p.CostPrice)
}

// UpdateFields 商品可修改字段(nil表示不修改)
type UpdateFields struct {
	Name              *string
	SKU               *string
	Description       *string
	Category          *string
	Price             *decimal.Decimal
	CostPrice         *decimal.Decimal
	StockQuantity     *int
	LowStockThreshold *int
	SupplierID        *uint
}

// ApplyUpdate 应用修改(调用方负责先校验)
func (p *Product) ApplyUpdate(f UpdateFields) {
	if f.Name != nil {
		p.Name = *f.Name
	}
	if f.SKU != nil {
		p.SKU = *f.SKU
	}
	if f.Description != nil {
		p.Description = *f.Description
	}
	if f.Category != nil {
		p.Category = *f.Category
	}
	if f.Price != nil {
		p.Price = *f.Price
	}
	if f.CostPrice != nil {
		p.CostPrice = *f.CostPrice
	}
	if f.StockQuantity != nil {
		p.StockQuantity = *f.StockQuantity
	}
	if f.LowStockThreshold != nil {
		p.LowStockThreshold = *f.LowStockThreshold
	}
	if f.SupplierID != nil {
		p.SupplierID = f.SupplierID
	}
	p.UpdatedAt = time.Now()
}
