package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/posbuzz/internal/domain/customer"
	"github.com/xiebiao/posbuzz/internal/domain/promotion"
	"github.com/xiebiao/posbuzz/internal/domain/supplier"
	apperrors "github.com/xiebiao/posbuzz/pkg/errors"
)

const (
	timeLayout = "2006-01-02 15:04:05"
	dateLayout = "2006-01-02"
)

// =========================================
// 顾客
// =========================================

// CreateCustomerRequest 登记顾客
type CreateCustomerRequest struct {
	Name  string  `json:"name" binding:"required,max=100" example:"Wang Fang"`
	Email *string `json:"email" binding:"omitempty,max=100" example:"wang@example.com"`
	Phone *string `json:"phone" binding:"omitempty,max=30" example:"13800000000"`
}

// UpdateCustomerRequest 修改顾客信息
type UpdateCustomerRequest struct {
	Name  *string `json:"name" binding:"omitempty,max=100"`
	Email *string `json:"email" binding:"omitempty,max=100"`
	Phone *string `json:"phone" binding:"omitempty,max=30"`
}

// ToFields 转换为领域更新字段
func (r UpdateCustomerRequest) ToFields() customer.UpdateFields {
	return customer.UpdateFields{Name: r.Name, Email: r.Email, Phone: r.Phone}
}

// ListCustomersQuery 顾客列表查询参数
type ListCustomersQuery struct {
	PageQuery
	Search string `form:"search" binding:"omitempty,max=100"`
}

// =========================================
// 供应商
// =========================================

// SupplierRequest 创建/修改供应商
type SupplierRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=100" example:"Bean Co."`
	Email   *string `json:"email" binding:"omitempty,max=100"`
	Phone   *string `json:"phone" binding:"omitempty,max=30"`
	Address *string `json:"address" binding:"omitempty,max=255"`
}

// ToFields 转换为领域字段
func (r SupplierRequest) ToFields() supplier.UpdateFields {
	return supplier.UpdateFields{Name: r.Name, Email: r.Email, Phone: r.Phone, Address: r.Address}
}

// SupplierResponse 供应商响应
type SupplierResponse struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	ProductCount *int64  `json:"product_count,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// NewSupplierResponse 领域实体 → 响应
func NewSupplierResponse(s *supplier.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Phone:     s.Phone,
		Address:   s.Address,
		CreatedAt: s.CreatedAt.Format(timeLayout),
	}
}

// NewSupplierListResponse 供应商列表（含商品数）
func NewSupplierListResponse(list []*supplier.WithProductCount) []SupplierResponse {
	result := make([]SupplierResponse, len(list))
	for i, s := range list {
		count := s.ProductCount
		result[i] = NewSupplierResponse(&s.Supplier)
		result[i].ProductCount = &count
	}
	return result
}

// =========================================
// 促销
// =========================================

// CreatePromotionRequest 创建促销
// value对PERCENTAGE为百分数（10表示九折），对FIXED_AMOUNT为立减金额
type CreatePromotionRequest struct {
	Name        string           `json:"name" binding:"required,max=100" example:"Spring 10% off"`
	Description string           `json:"description" binding:"max=500"`
	Type        string           `json:"type" binding:"required,oneof=PERCENTAGE FIXED_AMOUNT" example:"PERCENTAGE"`
	Value       *decimal.Decimal `json:"value" binding:"required" swaggertype:"string" example:"10"`
	MinSpend    *decimal.Decimal `json:"min_spend" swaggertype:"string" example:"50.00"`
	Active      *bool            `json:"active" example:"true"`
	StartDate   string           `json:"start_date" binding:"required" example:"2024-03-01"`
	EndDate     string           `json:"end_date" binding:"required" example:"2024-03-31"`
}

// ToPromotion 转换为领域实体（日期按服务器本地时区解析，结束日期包含当天）
func (r CreatePromotionRequest) ToPromotion() (*promotion.Promotion, error) {
	start, err := parseDate(r.StartDate, false)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(r.EndDate, true)
	if err != nil {
		return nil, err
	}

	active := true
	if r.Active != nil {
		active = *r.Active
	}

	return &promotion.Promotion{
		Name:        r.Name,
		Description: r.Description,
		Type:        promotion.Type(r.Type),
		Value:       *r.Value,
		MinSpend:    r.MinSpend,
		Active:      active,
		StartDate:   start,
		EndDate:     end,
	}, nil
}

// UpdatePromotionRequest 修改促销，未传的字段保持不变
type UpdatePromotionRequest struct {
	Name          *string          `json:"name" binding:"omitempty,max=100"`
	Description   *string          `json:"description" binding:"omitempty,max=500"`
	Type          *string          `json:"type" binding:"omitempty,oneof=PERCENTAGE FIXED_AMOUNT"`
	Value         *decimal.Decimal `json:"value" swaggertype:"string"`
	MinSpend      *decimal.Decimal `json:"min_spend" swaggertype:"string"`
	ClearMinSpend bool             `json:"clear_min_spend"`
	Active        *bool            `json:"active"`
	StartDate     *string          `json:"start_date"`
	EndDate       *string          `json:"end_date"`
}

// ToFields 转换为领域更新字段
func (r UpdatePromotionRequest) ToFields() (promotion.UpdateFields, error) {
	fields := promotion.UpdateFields{
		Name:        r.Name,
		Description: r.Description,
		Value:       r.Value,
		MinSpend:    r.MinSpend,
		ClearMin:    r.ClearMinSpend,
		Active:      r.Active,
	}
	if r.Type != nil {
		t := promotion.Type(*r.Type)
		fields.Type = &t
	}
	if r.StartDate != nil {
		start, err := parseDate(*r.StartDate, false)
		if err != nil {
			return fields, err
		}
		fields.StartDate = &start
	}
	if r.EndDate != nil {
		end, err := parseDate(*r.EndDate, true)
		if err != nil {
			return fields, err
		}
		fields.EndDate = &end
	}
	return fields, nil
}

// PromotionResponse 促销响应
type PromotionResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
	Value       string  `json:"value"`
	MinSpend    *string `json:"min_spend,omitempty"`
	Active      bool    `json:"active"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
}

// NewPromotionResponse 领域实体 → 响应
func NewPromotionResponse(p *promotion.Promotion) PromotionResponse {
	resp := PromotionResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Type:        string(p.Type),
		Value:       p.Value.StringFixed(2),
		Active:      p.Active,
		StartDate:   p.StartDate.Format(timeLayout),
		EndDate:     p.EndDate.Format(timeLayout),
	}
	if p.MinSpend != nil {
		s := p.MinSpend.StringFixed(2)
		resp.MinSpend = &s
	}
	return resp
}

// NewPromotionListResponse 促销列表
func NewPromotionListResponse(list []*promotion.Promotion) []PromotionResponse {
	result := make([]PromotionResponse, len(list))
	for i, p := range list {
		result[i] = NewPromotionResponse(p)
	}
	return result
}

// parseDate 解析日期，接受"2006-01-02"或RFC3339
// endOfDay为true时纯日期取次日零点前1纳秒（按日历日计算，跨夏令时也正确）
func parseDate(s string, endOfDay bool) (time.Time, error) {
	if t, err := time.ParseInLocation(dateLayout, s, time.Local); err == nil {
		if endOfDay {
			return t.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
		}
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, apperrors.Validation("日期格式错误，应为YYYY-MM-DD或RFC3339").
			WithDetails(map[string]interface{}{"value": s})
	}
	return t, nil
}
