package supplier

import (
	apperrors "github.com/xiebiao/posbuzz/pkg/errors"
)

var (
	ErrSupplierNotFound = apperrors.New(apperrors.ErrCodeSupplierNotFound, "供应商不存在")
	ErrInvalidName      = apperrors.New(apperrors.ErrCodeInvalidParams, "供应商名称不能为空")
	ErrInvalidEmail     = apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")
	ErrHasProducts      = apperrors.New(apperrors.ErrCodeBusinessError, "供应商仍关联商品，无法删除")
)

// NotFound 供应商不存在（携带供应商ID）
func NotFound(id uint) *apperrors.AppError {
	return ErrSupplierNotFound.WithDetails(map[string]interface{}{"supplier_id": id})
}
