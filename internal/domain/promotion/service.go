package promotion

import (
	"context"
	"strings"
	"time"
)

// Service 促销领域服务
type Service interface {
	CreatePromotion(ctx context.Context, p *Promotion) (*Promotion, error)
	GetPromotion(ctx context.Context, id uint) (*Promotion, error)
	UpdatePromotion(ctx context.Context, id uint, fields UpdateFields) (*Promotion, error)
	DeletePromotion(ctx context.Context, id uint) error
	ListPromotions(ctx context.Context) ([]*Promotion, error)

	// FindActive 当前可用的促销（收银台下拉框）
	FindActive(ctx context.Context) ([]*Promotion, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService 创建促销领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) CreatePromotion(ctx context.Context, p *Promotion) (*Promotion, error) {
	p.Name = strings.TrimSpace(p.Name)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetPromotion(ctx context.Context, id uint) (*Promotion, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) UpdatePromotion(ctx context.Context, id uint, fields UpdateFields) (*Promotion, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p.ApplyUpdate(fields)
	p.Name = strings.TrimSpace(p.Name)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) DeletePromotion(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) ListPromotions(ctx context.Context) ([]*Promotion, error) {
	return s.repo.List(ctx)
}

func (s *service) FindActive(ctx context.Context) ([]*Promotion, error) {
	return s.repo.ListActive(ctx, s.now())
}
