package dto

import (
	"github.com/shopspring/decimal"

	"github.com/xiebiao/posbuzz/internal/domain/product"
)

// CreateProductRequest 创建商品请求
// 金额可传数字或字符串（"12.50"），按十进制精确解析
type CreateProductRequest struct {
	Name              string           `json:"name" binding:"required,max=100" example:"Arabica Beans 1kg"`
	SKU               string           `json:"sku" binding:"required,max=64" example:"COF-ARA-1KG"`
	Description       string           `json:"description" binding:"max=2000"`
	Category          string           `json:"category" binding:"max=50" example:"coffee"`
	Price             *decimal.Decimal `json:"price" binding:"required" swaggertype:"string" example:"25.00"`
	CostPrice         *decimal.Decimal `json:"cost_price" binding:"required" swaggertype:"string" example:"15.00"`
	StockQuantity     int              `json:"stock_quantity" binding:"min=0" example:"40"`
	LowStockThreshold *int             `json:"low_stock_threshold" binding:"omitempty,min=0" example:"10"`
	SupplierID        *uint            `json:"supplier_id"`
}

// ToParams 转换为领域参数
func (r CreateProductRequest) ToParams() product.CreateParams {
	return product.CreateParams{
		Name:              r.Name,
		SKU:               r.SKU,
		Description:       r.Description,
		Category:          r.Category,
		Price:             *r.Price,
		CostPrice:         *r.CostPrice,
		StockQuantity:     r.StockQuantity,
		LowStockThreshold: r.LowStockThreshold,
		SupplierID:        r.SupplierID,
	}
}

// UpdateProductRequest 修改商品请求，未传的字段保持不变
type UpdateProductRequest struct {
	Name              *string          `json:"name" binding:"omitempty,max=100"`
	SKU               *string          `json:"sku" binding:"omitempty,max=64"`
	Description       *string          `json:"description" binding:"omitempty,max=2000"`
	Category          *string          `json:"category" binding:"omitempty,max=50"`
	Price             *decimal.Decimal `json:"price" swaggertype:"string"`
	CostPrice         *decimal.Decimal `json:"cost_price" swaggertype:"string"`
	StockQuantity     *int             `json:"stock_quantity" binding:"omitempty,min=0"`
	LowStockThreshold *int             `json:"low_stock_threshold" binding:"omitempty,min=0"`
	SupplierID        *uint            `json:"supplier_id"`
}

// ToFields 转换为领域更新字段
func (r UpdateProductRequest) ToFields() product.UpdateFields {
	return product.UpdateFields{
		Name:              r.Name,
		SKU:               r.SKU,
		Description:       r.Description,
		Category:          r.Category,
		Price:             r.Price,
		CostPrice:         r.CostPrice,
		StockQuantity:     r.StockQuantity,
		LowStockThreshold: r.LowStockThreshold,
		SupplierID:        r.SupplierID,
	}
}

// ListProductsQuery 商品列表查询参数
type ListProductsQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1" example:"1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100" example:"10"`
	Search string `form:"search" binding:"omitempty,max=100" example:"coffee"`
}

// RestockRequest 入库请求
type RestockRequest struct {
	Quantity int    `json:"quantity" binding:"required,min=1" example:"20"`
	Note     string `json:"note" binding:"max=255" example:"weekly delivery"`
}

// PageQuery 通用分页参数
type PageQuery struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}
