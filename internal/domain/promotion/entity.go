// Package promotion 促销规则与折扣计算
package promotion

import (
	"time"

	"github.com/shopspring/decimal"
)

// Type 折扣类型
type Type string

const (
	TypePercentage  Type = "PERCENTAGE"   // 按比例折扣，Value为百分数
	TypeFixedAmount Type = "FIXED_AMOUNT" // 固定金额立减
)

// IsValid 是否为已知类型
func (t Type) IsValid() bool {
	return t == TypePercentage || t == TypeFixedAmount
}

var hundred = decimal.NewFromInt(100)

// Promotion 促销活动
type Promotion struct {
	ID          uint
	Name        string
	Description string
	Type        Type
	Value       decimal.Decimal
	MinSpend    *decimal.Decimal // nil表示无门槛
	Active      bool
	StartDate   time.Time
	EndDate     time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// InWindow now是否在[StartDate, EndDate]内（含边界）
func (p *Promotion) InWindow(now time.Time) bool {
	return !now.Before(p.StartDate) && !now.After(p.EndDate)
}

// IsApplicable 启用、在有效期内且满足最低消费
func (p *Promotion) IsApplicable(subtotal decimal.Decimal, now time.Time) bool {
	if !p.Active || !p.InWindow(now) {
		return false
	}
	if p.MinSpend != nil && subtotal.LessThan(*p.MinSpend) {
		return false
	}
	return true
}

// DiscountFor 计算折扣金额，结果总在[0, subtotal]内
// 不适用时返回0（不视为错误）
func (p *Promotion) DiscountFor(subtotal decimal.Decimal, now time.Time) decimal.Decimal {
	if !subtotal.IsPositive() || !p.IsApplicable(subtotal, now) {
		return decimal.Zero
	}

	var discount decimal.Decimal
	switch p.Type {
	case TypePercentage:
		discount = subtotal.Mul(p.Value).Div(hundred).Round(2)
	case TypeFixedAmount:
		discount = p.Value
	default:
		return decimal.Zero
	}

	if discount.IsNegative() {
		return decimal.Zero
	}
	if discount.GreaterThan(subtotal) {
		return subtotal
	}
	return discount
}

// UpdateFields 可修改字段（nil表示不修改）
type UpdateFields struct {
	Name        *string
	Description *string
	Type        *Type
	Value       *decimal.Decimal
	MinSpend    *decimal.Decimal
	ClearMin    bool // 取消最低消费门槛
	Active      *bool
	StartDate   *time.Time
	EndDate     *time.Time
}

// ApplyUpdate 应用修改
func (p *Promotion) ApplyUpdate(f UpdateFields) {
	if f.Name != nil {
		p.Name = *f.Name
	}
	if f.Description != nil {
		p.Description = *f.Description
	}
	if f.Type != nil {
		p.Type = *f.Type
	}
	if f.Value != nil {
		p.Value = *f.Value
	}
	if f.ClearMin {
		p.MinSpend = nil
	} else if f.MinSpend != nil {
		v := *f.MinSpend
		p.MinSpend = &v
	}
	if f.Active != nil {
		p.Active = *f.Active
	}
	if f.StartDate != nil {
		p.StartDate = *f.StartDate
	}
	if f.EndDate != nil {
		p.EndDate = *f.EndDate
	}
	p.UpdatedAt = time.Now()
}

// Validate 规则校验
// PERCENTAGE取值(0,100]，FIXED_AMOUNT取值>0，结束时间晚于开始时间
func (p *Promotion) Validate() error {
	if p.Name == "" {
		return ErrInvalidName
	}
	if !p.Type.IsValid() {
		return ErrInvalidType
	}
	if !p.Value.IsPositive() {
		return ErrInvalidValue
	}
	if p.Type == TypePercentage && p.Value.GreaterThan(hundred) {
		return ErrInvalidValue
	}
	if p.MinSpend != nil && p.MinSpend.IsNegative() {
		return ErrInvalidMinSpend
	}
	if !p.EndDate.After(p.StartDate) {
		return ErrInvalidWindow
	}
	return nil
}
