package promotion

import (
	apperrors "github.com/xiebiao/posbuzz/pkg/errors"
)

// 促销领域错误定义
var (
	ErrPromotionNotFound = apperrors.New(apperrors.ErrCodePromotionNotFound, "促销活动不存在")

	ErrInvalidName     = apperrors.New(apperrors.ErrCodeInvalidParams, "促销名称不能为空")
	ErrInvalidType     = apperrors.New(apperrors.ErrCodeInvalidParams, "折扣类型必须为PERCENTAGE或FIXED_AMOUNT")
	ErrInvalidValue    = apperrors.New(apperrors.ErrCodeInvalidParams, "折扣值无效（百分比需在0-100之间，固定金额需大于0）")
	ErrInvalidMinSpend = apperrors.New(apperrors.ErrCodeInvalidParams, "最低消费不能为负数")
	ErrInvalidWindow   = apperrors.New(apperrors.ErrCodeInvalidParams, "结束时间必须晚于开始时间")
)

// NotFound 促销不存在（携带促销ID）
func NotFound(id uint) *apperrors.AppError {
	return ErrPromotionNotFound.WithDetails(map[string]interface{}{"promotion_id": id})
}
