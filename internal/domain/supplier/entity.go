// Package supplier 供应商
package supplier

import "time"

// Supplier 供应商
type Supplier struct {
	ID        uint
	Name      string
	Email     *string
	Phone     *string
	Address   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WithProductCount 列表视图：供应商及其在售商品数
type WithProductCount struct {
	Supplier
	ProductCount int64
}

// UpdateFields 可修改字段，空字符串表示清除
type UpdateFields struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
}

// ApplyUpdate 应用修改
func (s *Supplier) ApplyUpdate(f UpdateFields) {
	if f.Name != nil {
		s.Name = *f.Name
	}
	if f.Email != nil {
		s.Email = emptyToNil(*f.Email)
	}
	if f.Phone != nil {
		s.Phone = emptyToNil(*f.Phone)
	}
	if f.Address != nil {
		s.Address = emptyToNil(*f.Address)
	}
	s.UpdatedAt = time.Now()
}

func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
