package user

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/posbuzz/pkg/errors"
)

// DefaultBcryptCost 密码哈希强度（cost每+1，耗时翻倍）
const DefaultBcryptCost = 12

var (
	emailPattern  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	letterPattern = regexp.MustCompile(`[a-zA-Z]`)
	digitPattern  = regexp.MustCompile(`[0-9]`)
)

// Service 用户领域服务
// 包含不属于单个实体的业务逻辑（密码加密、验证、角色授予）
type Service interface {
	// Register 注册收银员账号
	Register(ctx context.Context, email, password, name string) (*User, error)

	// Login 校验邮箱与密码
	Login(ctx context.Context, email, password string) (*User, error)

	// ValidatePassword 验证密码
	ValidatePassword(hashedPassword, plainPassword string) error

	// Provision 创建或重置账号（运维工具使用）：存在则重置密码和角色，不存在则创建
	Provision(ctx context.Context, email, password, name string, role Role) (*User, error)

	// ChangeRole 修改指定邮箱用户的角色
	ChangeRole(ctx context.Context, email string, role Role) (*User, error)
}

type service struct {
	repo Repository
	cost int
}

// NewService 创建用户服务
func NewService(repo Repository) Service {
	return NewServiceWithCost(repo, DefaultBcryptCost)
}

// NewServiceWithCost 指定bcrypt cost（测试中使用bcrypt.MinCost）
func NewServiceWithCost(repo Repository, cost int) Service {
	return &service{repo: repo, cost: cost}
}

// Register 用户注册
// 业务规则：
// 1. 邮箱格式校验
// 2. 密码强度校验（8-20位，包含字母和数字）
// 3. 角色固定为收银员
// 4. 邮箱唯一性由数据库UNIQUE索引保证
func (s *service) Register(ctx context.Context, email, password, name string) (*User, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)

	if err := validateProfile(email, name); err != nil {
		return nil, err
	}
	if err := validatePasswordStrength(password); err != nil {
		return nil, err
	}

	hashed, err := s.hash(password)
	if err != nil {
		return nil, err
	}

	user := NewUser(email, hashed, name, RoleCashier)
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err // Repository已转换为业务错误
	}
	return user, nil
}

// Login 用户登录
// 邮箱不存在与密码错误返回同一个错误，避免探测已注册邮箱
func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidPassword
		}
		return nil, err
	}

	if err := s.ValidatePassword(user.Password, password); err != nil {
		return nil, err
	}
	return user, nil
}

// ValidatePassword 验证明文密码与哈希值是否匹配
func (s *service) ValidatePassword(hashedPassword, plainPassword string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return apperrors.ErrInvalidPassword
		}
		return apperrors.Wrap(err, "密码验证失败")
	}
	return nil
}

// Provision 创建或重置账号
func (s *service) Provision(ctx context.Context, email, password, name string, role Role) (*User, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)

	if !role.IsValid() {
		return nil, ErrInvalidRole
	}
	if err := validateProfile(email, name); err != nil {
		return nil, err
	}
	if err := validatePasswordStrength(password); err != nil {
		return nil, err
	}

	hashed, err := s.hash(password)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		existing.Password = hashed
		existing.UpdateName(name)
		if err := existing.ChangeRole(role); err != nil {
			return nil, err
		}
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	case errors.Is(err, apperrors.ErrUserNotFound):
		user := NewUser(email, hashed, name, role)
		if err := s.repo.Create(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	default:
		return nil, err
	}
}

// ChangeRole 修改角色
func (s *service) ChangeRole(ctx context.Context, email string, role Role) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if err := user.ChangeRole(role); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", apperrors.Wrap(err, "密码加密失败")
	}
	return string(hashed), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateProfile(email, name string) error {
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	if n := utf8.RuneCountInString(name); n < 2 || n > 50 {
		return ErrInvalidName
	}
	return nil
}

// validatePasswordStrength 密码强度校验
// 规则：8-20位，必须包含字母和数字
func validatePasswordStrength(password string) error {
	if len(password) < 8 || len(password) > 20 {
		return apperrors.ErrWeakPassword
	}
	if !letterPattern.MatchString(password) || !digitPattern.MatchString(password) {
		return apperrors.ErrWeakPassword
	}
	return nil
}
