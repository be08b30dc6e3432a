package customer

import (
	apperrors "github.com/xiebiao/posbuzz/pkg/errors"
)

// 顾客领域错误定义
var (
	ErrCustomerNotFound = apperrors.New(apperrors.ErrCodeCustomerNotFound, "顾客不存在")
	ErrEmailDuplicate   = apperrors.New(apperrors.ErrCodeDuplicateEntry, "该邮箱已登记为其他顾客")
	ErrInvalidName      = apperrors.New(apperrors.ErrCodeInvalidParams, "顾客姓名不能为空")
	ErrInvalidEmail     = apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")
)

// NotFound 顾客不存在（携带顾客ID）
func NotFound(id uint) *apperrors.AppError {
	return ErrCustomerNotFound.WithDetails(map[string]interface{}{"customer_id": id})
}
