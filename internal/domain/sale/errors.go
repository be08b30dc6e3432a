package sale

import (
	apperrors "github.com/xiebiao/posbuzz/pkg/errors"
)

// 销售领域错误定义
var (
	ErrSaleNotFound         = apperrors.New(apperrors.ErrCodeSaleNotFound, "销售单不存在")
	ErrEmptySale            = apperrors.New(apperrors.ErrCodeEmptyCart, "购物车不能为空")
	ErrInvalidQuantity      = apperrors.New(apperrors.ErrCodeInvalidParams, "购买数量必须大于0")
	ErrInvalidPaymentMethod = apperrors.New(apperrors.ErrCodeInvalidParams, "支付方式必须为CASH、CARD或OTHER")
	ErrInvalidDiscount      = apperrors.New(apperrors.ErrCodeBusinessError, "折扣金额超出范围")
)

// NotFound 销售单不存在（携带ID）
func NotFound(id uint) *apperrors.AppError {
	return ErrSaleNotFound.WithDetails(map[string]interface{}{"sale_id": id})
}
