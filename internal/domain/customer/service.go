package customer

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/xiebiao/posbuzz/internal/domain/loyalty"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Service 顾客领域服务
type Service interface {
	CreateCustomer(ctx context.Context, name string, email, phone *string) (*Customer, error)
	GetCustomer(ctx context.Context, id uint) (*Customer, error)
	UpdateCustomer(ctx context.Context, id uint, fields UpdateFields) (*Customer, error)
	DeleteCustomer(ctx context.Context, id uint) error
	ListCustomers(ctx context.Context, page, pageSize int, search string) ([]*Customer, int64, error)
}

type service struct {
	repo     Repository
	baseTier loyalty.Tier
}

// NewService 创建顾客领域服务
func NewService(repo Repository, program *loyalty.Program) Service {
	return &service{repo: repo, baseTier: program.BaseTier()}
}

func (s *service) CreateCustomer(ctx context.Context, name string, email, phone *string) (*Customer, error) {
	c := NewCustomer(strings.TrimSpace(name), nil, nil, s.baseTier)
	c.ApplyUpdate(UpdateFields{Email: trimPtr(email), Phone: trimPtr(phone)})

	if err := s.validate(ctx, c); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetCustomer(ctx context.Context, id uint) (*Customer, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) UpdateCustomer(ctx context.Context, id uint, fields UpdateFields) (*Customer, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if fields.Name != nil {
		name := strings.TrimSpace(*fields.Name)
		fields.Name = &name
	}
	fields.Email = trimPtr(fields.Email)
	fields.Phone = trimPtr(fields.Phone)
	c.ApplyUpdate(fields)

	if err := s.validate(ctx, c); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) DeleteCustomer(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) ListCustomers(ctx context.Context, page, pageSize int, search string) ([]*Customer, int64, error) {
	return s.repo.List(ctx, page, pageSize, strings.TrimSpace(search))
}

// validate 姓名必填；邮箱可选，填写时需合法且不被其他顾客占用
func (s *service) validate(ctx context.Context, c *Customer) error {
	if c.Name == "" {
		return ErrInvalidName
	}
	if c.Email == nil {
		return nil
	}
	if !emailPattern.MatchString(*c.Email) {
		return ErrInvalidEmail
	}

	existing, err := s.repo.FindByEmail(ctx, *c.Email)
	if err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != c.ID {
		return ErrEmailDuplicate
	}
	return nil
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
