package user

import (
	"time"
)

// Role 用户角色
type Role string

const (
	RoleAdmin   Role = "ADMIN"   // 管理员：商品、促销、统计等写操作
	RoleCashier Role = "CASHIER" // 收银员：开单、查询自己的销售单
)

// IsValid 是否为已知角色
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleCashier
}

// User 用户实体（聚合根）
// DDD设计说明：
// 1. 密码只保存bcrypt哈希值
// 2. 领域实体不依赖GORM tag（infrastructure层的Repository实现时会处理映射）
// 3. 注册用户一律为收银员，管理员只能通过运维工具授予
type User struct {
	ID        uint
	Email     string
	Password  string // bcrypt哈希值
	Name      string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建新用户（工厂方法）
// hashedPassword必须是bcrypt加密后的密码
func NewUser(email, hashedPassword, name string, role Role) *User {
	now := time.Now()
	return &User{
		Email:     email,
		Password:  hashedPassword,
		Name:      name,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsAdmin 是否为管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ChangeRole 修改角色（领域行为）
func (u *User) ChangeRole(role Role) error {
	if !role.IsValid() {
		return ErrInvalidRole
	}
	u.Role = role
	u.UpdatedAt = time.Now()
	return nil
}

// UpdateName 更新显示名称
func (u *User) UpdateName(name string) {
	u.Name = name
	u.UpdatedAt = time.Now()
}
