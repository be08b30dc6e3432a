package supplier

import (
	"context"
	"regexp"
	"strings"
	"time"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Service 供应商领域服务
type Service interface {
	CreateSupplier(ctx context.Context, fields UpdateFields) (*Supplier, error)
	GetSupplier(ctx context.Context, id uint) (*Supplier, error)
	UpdateSupplier(ctx context.Context, id uint, fields UpdateFields) (*Supplier, error)

	// DeleteSupplier 仍有关联商品时拒绝删除
	DeleteSupplier(ctx context.Context, id uint) error

	ListSuppliers(ctx context.Context) ([]*WithProductCount, error)
}

type service struct {
	repo Repository
}

// NewService 创建供应商领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateSupplier(ctx context.Context, fields UpdateFields) (*Supplier, error) {
	now := time.Now()
	sup := &Supplier{CreatedAt: now}
	sup.ApplyUpdate(trimFields(fields))

	if err := validate(sup); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *service) GetSupplier(ctx context.Context, id uint) (*Supplier, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) UpdateSupplier(ctx context.Context, id uint, fields UpdateFields) (*Supplier, error) {
	sup, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sup.ApplyUpdate(trimFields(fields))
	if err := validate(sup); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *service) DeleteSupplier(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	n, err := s.repo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrHasProducts.WithDetails(map[string]interface{}{"supplier_id": id, "product_count": n})
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) ListSuppliers(ctx context.Context) ([]*WithProductCount, error) {
	return s.repo.ListWithProductCount(ctx)
}

func validate(s *Supplier) error {
	if s.Name == "" {
		return ErrInvalidName
	}
	if s.Email != nil && !emailPattern.MatchString(*s.Email) {
		return ErrInvalidEmail
	}
	return nil
}

func trimFields(f UpdateFields) UpdateFields {
	trim := func(p *string) *string {
		if p == nil {
			return nil
		}
		v := strings.TrimSpace(*p)
		return &v
	}
	return UpdateFields{
		Name:    trim(f.Name),
		Email:   trim(f.Email),
		Phone:   trim(f.Phone),
		Address: trim(f.Address),
	}
}
