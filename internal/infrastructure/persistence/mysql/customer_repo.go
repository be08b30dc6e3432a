package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/posbuzz/internal/domain/customer"
	"github.com/xiebiao/posbuzz/internal/domain/loyalty"
	apperrors "github.com/xiebiao/posbuzz/pkg/errors"
)

// customerRepository 顾客仓储实现(MySQL)
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository 创建顾客仓储
func NewCustomerRepository(db *gorm.DB) customer.Repository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) error {
	model := toCustomerModel(c)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return customer.ErrEmailDuplicate
		}
		return apperrors.Wrap(err, "创建顾客失败")
	}

	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *customerRepository) FindByID(ctx context.Context, id uint) (*customer.Customer, error) {
	var model CustomerModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customer.NotFound(id)
		}
		return nil, apperrors.Wrap(err, "查询顾客失败")
	}
	return toCustomerEntity(&model), nil
}

func (r *customerRepository) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	var model CustomerModel
	if err := getDB(ctx, r.db).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, apperrors.Wrap(err, "查询顾客失败")
	}
	return toCustomerEntity(&model), nil
}

// Update 更新顾客资料(不修改积分与等级)
func (r *customerRepository) Update(ctx context.Context, c *customer.Customer) error {
	result := getDB(ctx, r.db).Model(&CustomerModel{ID: c.ID}).
		Select("name", "email", "phone", "updated_at").
		Updates(&CustomerModel{Name: c.Name, Email: c.Email, Phone: c.Phone, UpdatedAt: c.UpdatedAt})
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return customer.ErrEmailDuplicate
		}
		return apperrors.Wrap(result.Error, "更新顾客失败")
	}
	if result.RowsAffected == 0 {
		return customer.NotFound(c.ID)
	}
	return nil
}

// Delete 删除顾客(软删除,历史销售仍保留customer_id)
func (r *customerRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&CustomerModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除顾客失败")
	}
	if result.RowsAffected == 0 {
		return customer.NotFound(id)
	}
	return nil
}

func (r *customerRepository) List(ctx context.Context, page, pageSize int, search string) ([]*customer.Customer, int64, error) {
	page, pageSize = normalizePage(page, pageSize)

	query := getDB(ctx, r.db).Model(&CustomerModel{})
	if search != "" {
		pattern := likePattern(search)
		query = query.Where("name LIKE ? OR email LIKE ? OR phone LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询顾客总数失败")
	}

	var models []CustomerModel
	err := query.Order("created_at DESC").Order("id DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询顾客列表失败")
	}

	customers := make([]*customer.Customer, len(models))
	for i := range models {
		customers[i] = toCustomerEntity(&models[i])
	}
	return customers, total, nil
}

// LockByID 悲观锁查询,销售事务中串行化同一顾客的积分累计
func (r *customerRepository) LockByID(ctx context.Context, id uint) (*customer.Customer, error) {
	var model CustomerModel
	err := getDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customer.NotFound(id)
		}
		return nil, apperrors.Wrap(err, "锁定顾客失败")
	}
	return toCustomerEntity(&model), nil
}

func (r *customerRepository) UpdateLoyalty(ctx context.Context, id uint, points int, tier loyalty.Tier) error {
	result := getDB(ctx, r.db).Model(&CustomerModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"loyalty_points": points, "tier": string(tier)})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新顾客积分失败")
	}
	if result.RowsAffected == 0 {
		return customer.NotFound(id)
	}
	return nil
}

func toCustomerModel(c *customer.Customer) *CustomerModel {
	return &CustomerModel{
		ID:            c.ID,
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		LoyaltyPoints: c.LoyaltyPoints,
		Tier:          string(c.Tier),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func toCustomerEntity(m *CustomerModel) *customer.Customer {
	return &customer.Customer{
		ID:            m.ID,
		Name:          m.Name,
		Email:         m.Email,
		Phone:         m.Phone,
		LoyaltyPoints: m.LoyaltyPoints,
		Tier:          loyalty.Tier(m.Tier),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
