package sale

import (
	"github.com/xiebiao/posbuzz/internal/domain/loyalty"
	"github.com/xiebiao/posbuzz/internal/domain/sale"
)

const timeLayout = "2006-01-02 15:04:05"

// CreateSaleRequest 开单请求
type CreateSaleRequest struct {
	OperatorID    uint // 收银员ID(从JWT中提取)
	Items         []CreateSaleItem
	CustomerID    *uint
	PromotionID   *uint
	PaymentMethod string // 为空时默认CASH
}

// CreateSaleItem 开单明细
type CreateSaleItem struct {
	ProductID uint
	Quantity  int
}

// SaleResponse 销售单响应
// 金额统一保留两位小数的字符串,避免前端浮点误差
type SaleResponse struct {
	ID            uint               `json:"id"`
	SaleNo        string             `json:"sale_no"`
	OperatorID    uint               `json:"operator_id"`
	OperatorName  string             `json:"operator_name"`
	CustomerID    *uint              `json:"customer_id,omitempty"`
	PromotionID   *uint              `json:"promotion_id,omitempty"`
	Subtotal      string             `json:"subtotal"`
	Discount      string             `json:"discount"`
	FinalAmount   string             `json:"final_amount"`
	PaymentMethod string             `json:"payment_method"`
	PointsEarned  int                `json:"points_earned"`
	Items         []SaleItemResponse `json:"items"`
	CreatedAt     string             `json:"created_at"`
}

// SaleItemResponse 销售明细响应
type SaleItemResponse struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	ProductSKU  string `json:"product_sku"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Subtotal    string `json:"subtotal"`
}

// LoyaltyResponse 本次消费的积分结果
type LoyaltyResponse struct {
	PointsEarned int          `json:"points_earned"`
	TotalPoints  int          `json:"total_points"`
	Tier         loyalty.Tier `json:"tier"`
	Upgraded     bool         `json:"upgraded"`
}

// CreateSaleResponse 开单响应
type CreateSaleResponse struct {
	SaleResponse
	Loyalty *LoyaltyResponse `json:"loyalty,omitempty"`
}

// NewSaleResponse 领域实体 → 响应DTO
func NewSaleResponse(s *sale.Sale) SaleResponse {
	items := make([]SaleItemResponse, len(s.Items))
	for i, item := range s.Items {
		items[i] = SaleItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			ProductSKU:  item.ProductSKU,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			Subtotal:    item.Subtotal.StringFixed(2),
		}
	}

	return SaleResponse{
		ID:            s.ID,
		SaleNo:        s.SaleNo,
		OperatorID:    s.OperatorID,
		OperatorName:  s.OperatorName,
		CustomerID:    s.CustomerID,
		PromotionID:   s.PromotionID,
		Subtotal:      s.Subtotal.StringFixed(2),
		Discount:      s.Discount.StringFixed(2),
		FinalAmount:   s.FinalAmount.StringFixed(2),
		PaymentMethod: string(s.PaymentMethod),
		PointsEarned:  s.PointsEarned,
		Items:         items,
		CreatedAt:     s.CreatedAt.Format(timeLayout),
	}
}
