// Package customer 顾客详情(含最近消费)
package customer

import (
	"context"

	"github.com/xiebiao/posbuzz/internal/domain/customer"
	"github.com/xiebiao/posbuzz/internal/domain/sale"
)

// RecentSalesLimit 详情页展示的最近销售单数量
const RecentSalesLimit = 5

// CustomerResponse 顾客响应
type CustomerResponse struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	LoyaltyPoints int     `json:"loyalty_points"`
	Tier          string  `json:"tier"`
	CreatedAt     string  `json:"created_at"`
}

// RecentSale 最近消费记录
type RecentSale struct {
	ID           uint   `json:"id"`
	SaleNo       string `json:"sale_no"`
	FinalAmount  string `json:"final_amount"`
	PointsEarned int    `json:"points_earned"`
	ItemCount    int    `json:"item_count"`
	CreatedAt    string `json:"created_at"`
}

// DetailResponse 顾客详情
type DetailResponse struct {
	CustomerResponse
	RecentSales []RecentSale `json:"recent_sales"`
}

// NewCustomerResponse 领域实体 → 响应DTO
func NewCustomerResponse(c *customer.Customer) CustomerResponse {
	return CustomerResponse{
		ID:            c.ID,
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		LoyaltyPoints: c.LoyaltyPoints,
		Tier:          string(c.Tier),
		CreatedAt:     c.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// DetailUseCase 顾客详情用例
type DetailUseCase struct {
	customerService customer.Service
	saleRepo        sale.Repository
}

// NewDetailUseCase 创建顾客详情用例
func NewDetailUseCase(customerService customer.Service, saleRepo sale.Repository) *DetailUseCase {
	return &DetailUseCase{customerService: customerService, saleRepo: saleRepo}
}

// Execute 查询顾客及最近的销售单
func (uc *DetailUseCase) Execute(ctx context.Context, id uint) (*DetailResponse, error) {
	c, err := uc.customerService.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	sales, err := uc.saleRepo.ListByCustomer(ctx, id, RecentSalesLimit)
	if err != nil {
		return nil, err
	}

	recent := make([]RecentSale, len(sales))
	for i, s := range sales {
		recent[i] = RecentSale{
			ID:           s.ID,
			SaleNo:       s.SaleNo,
			FinalAmount:  s.FinalAmount.StringFixed(2),
			PointsEarned: s.PointsEarned,
			ItemCount:    s.ItemCount(),
			CreatedAt:    s.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}

	return &DetailResponse{CustomerResponse: NewCustomerResponse(c), RecentSales: recent}, nil
}
