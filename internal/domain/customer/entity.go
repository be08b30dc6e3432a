// Package customer 顾客与会员积分
package customer

import (
	"time"

	"github.com/xiebiao/posbuzz/internal/domain/loyalty"
)

// Customer 顾客
// LoyaltyPoints只增不减，Tier由积分按等级表推导
type Customer struct {
	ID            uint
	Name          string
	Email         *string
	Phone         *string
	LoyaltyPoints int
	Tier          loyalty.Tier
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewCustomer 创建顾客，初始等级为积分规则的基础等级
func NewCustomer(name string, email, phone *string, baseTier loyalty.Tier) *Customer {
	now := time.Now()
	return &Customer{
		Name:      name,
		Email:     email,
		Phone:     phone,
		Tier:      baseTier,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ApplyAccrual 记入一次消费积分
func (c *Customer) ApplyAccrual(a loyalty.Accrual) {
	c.LoyaltyPoints = a.TotalPoints
	c.Tier = a.Tier
	c.UpdatedAt = time.Now()
}

// UpdateFields 可修改字段（积分与等级只能由销售流程修改）
type UpdateFields struct {
	Name  *string
	Email *string
	Phone *string
}

// ApplyUpdate 应用修改，空字符串表示清除联系方式
func (c *Customer) ApplyUpdate(f UpdateFields) {
	if f.Name != nil {
		c.Name = *f.Name
	}
	if f.Email != nil {
		c.Email = emptyToNil(*f.Email)
	}
	if f.Phone != nil {
		c.Phone = emptyToNil(*f.Phone)
	}
	c.UpdatedAt = time.Now()
}

func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
