package dto

// RegisterRequest HTTP层注册请求
// 密码强度、邮箱唯一性在领域服务中校验
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"cashier@posbuzz.local"`
	Password string `json:"password" binding:"required,min=8,max=20" example:"cashier123"`
	Name     string `json:"name" binding:"required,min=2,max=50" example:"Lin"`
}

// LoginRequest HTTP层登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@posbuzz.local"`
	Password string `json:"password" binding:"required" example:"admin1234"`
}
