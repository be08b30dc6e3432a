package product

import (
	"github.com/xiebiao/posbuzz/internal/domain/inventory"
	"github.com/xiebiao/posbuzz/internal/domain/product"
)

const timeLayout = "2006-01-02 15:04:05"

// ProductResponse 商品响应
type ProductResponse struct {
	ID                uint   `json:"id"`
	Name              string `json:"name"`
	SKU               string `json:"sku"`
	Description       string `json:"description"`
	Category          string `json:"category"`
	Price             string `json:"price"`
	CostPrice         string `json:"cost_price"`
	StockQuantity     int    `json:"stock_quantity"`
	LowStockThreshold int    `json:"low_stock_threshold"`
	LowStock          bool   `json:"low_stock"`
	SupplierID        *uint  `json:"supplier_id,omitempty"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

// ProductListResponse 商品分页列表(整体作为缓存值)
type ProductListResponse struct {
	Items      []ProductResponse `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

// InventoryLogResponse 库存台账响应
type InventoryLogResponse struct {
	ID          uint   `json:"id"`
	ProductID   uint   `json:"product_id"`
	Delta       int    `json:"delta"`
	Reason      string `json:"reason"`
	Note        string `json:"note"`
	OperatorID  uint   `json:"operator_id"`
	StockBefore int    `json:"stock_before"`
	StockAfter  int    `json:"stock_after"`
	CreatedAt   string `json:"created_at"`
}

// NewProductResponse 领域实体 → 响应DTO
func NewProductResponse(p *product.Product) ProductResponse {
	return ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		SKU:               p.SKU,
		Description:       p.Description,
		Category:          p.Category,
		Price:             p.Price.StringFixed(2),
		CostPrice:         p.CostPrice.StringFixed(2),
		StockQuantity:     p.StockQuantity,
		LowStockThreshold: p.LowStockThreshold,
		LowStock:          p.IsLowStock(),
		SupplierID:        p.SupplierID,
		CreatedAt:         p.CreatedAt.Format(timeLayout),
		UpdatedAt:         p.UpdatedAt.Format(timeLayout),
	}
}

func newInventoryLogResponse(l *inventory.Log) InventoryLogResponse {
	return InventoryLogResponse{
		ID:          l.ID,
		ProductID:   l.ProductID,
		Delta:       l.Delta,
		Reason:      string(l.Reason),
		Note:        l.Note,
		OperatorID:  l.OperatorID,
		StockBefore: l.StockBefore,
		StockAfter:  l.StockAfter,
		CreatedAt:   l.CreatedAt.Format(timeLayout),
	}
}
