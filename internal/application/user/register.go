package user

import (
	"context"

	"github.com/xiebiao/posbuzz/internal/domain/user"
)

// RegisterUseCase 用户注册用例
// 注册的账号一律为收银员，管理员只能通过posbuzz-admin授予
type RegisterUseCase struct {
	userService user.Service
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service) *RegisterUseCase {
	return &RegisterUseCase{
		userService: userService,
	}
}

// Execute 执行注册
// 返回应用层DTO，不直接暴露领域实体
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*UserInfo, error) {
	u, err := uc.userService.Register(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		return nil, err
	}

	info := NewUserInfo(u)
	return &info, nil
}
