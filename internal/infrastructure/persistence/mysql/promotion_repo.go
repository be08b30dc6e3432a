package mysql

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/xiebiao/posbuzz/internal/domain/promotion"
	apperrors "github.com/xiebiao/posbuzz/pkg/errors"
)

type promotionRepository struct {
	db *gorm.DB
}

// NewPromotionRepository 创建促销仓储
func NewPromotionRepository(db *gorm.DB) promotion.Repository {
	return &promotionRepository{db: db}
}

func (r *promotionRepository) Create(ctx context.Context, p *promotion.Promotion) error {
	model := toPromotionModel(p)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建促销失败")
	}
	p.ID = model.ID
	p.CreatedAt = model.CreatedAt
	p.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *promotionRepository) FindByID(ctx context.Context, id uint) (*promotion.Promotion, error) {
	var model PromotionModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, promotion.NotFound(id)
		}
		return nil, apperrors.Wrap(err, "查询促销失败")
	}
	return toPromotionEntity(&model), nil
}

// Update 更新全部字段(Active=false、MinSpend=NULL等零值也需要写入)
func (r *promotionRepository) Update(ctx context.Context, p *promotion.Promotion) error {
	model := toPromotionModel(p)
	result := getDB(ctx, r.db).Model(model).Select("*").Omit("created_at", "deleted_at").Updates(model)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新促销失败")
	}
	if result.RowsAffected == 0 {
		return promotion.NotFound(p.ID)
	}
	p.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *promotionRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&PromotionModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除促销失败")
	}
	if result.RowsAffected == 0 {
		return promotion.NotFound(id)
	}
	return nil
}

func (r *promotionRepository) List(ctx context.Context) ([]*promotion.Promotion, error) {
	var models []PromotionModel
	if err := getDB(ctx, r.db).Order("created_at DESC").Order("id DESC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询促销列表失败")
	}
	return toPromotionEntities(models), nil
}

// ListActive 启用且now在[start_date, end_date]内
func (r *promotionRepository) ListActive(ctx context.Context, now time.Time) ([]*promotion.Promotion, error) {
	var models []PromotionModel
	err := getDB(ctx, r.db).
		Where("active = ? AND start_date <= ? AND end_date >= ?", true, now, now).
		Order("end_date ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询有效促销失败")
	}
	return toPromotionEntities(models), nil
}

func toPromotionModel(p *promotion.Promotion) *PromotionModel {
	model := &PromotionModel{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Type:        string(p.Type),
		Value:       p.Value,
		Active:      p.Active,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.MinSpend != nil {
		model.MinSpend = decimal.NewNullDecimal(*p.MinSpend)
	}
	return model
}

func toPromotionEntity(m *PromotionModel) *promotion.Promotion {
	p := &promotion.Promotion{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Type:        promotion.Type(m.Type),
		Value:       m.Value,
		Active:      m.Active,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.MinSpend.Valid {
		minSpend := m.MinSpend.Decimal
		p.MinSpend = &minSpend
	}
	return p
}

func toPromotionEntities(models []PromotionModel) []*promotion.Promotion {
	result := make([]*promotion.Promotion, len(models))
	for i := range models {
		result[i] = toPromotionEntity(&models[i])
	}
	return result
}
