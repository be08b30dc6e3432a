package product

import (
	apperrors "github.com/xiebiao/posbuzz/pkg/errors"
)

// 商品领域错误定义
var (
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = apperrors.New(apperrors.ErrCodeProductNotFound, "商品不存在")

	// ErrSKUDuplicate SKU已存在
	ErrSKUDuplicate = apperrors.New(apperrors.ErrCodeSKUDuplicate, "SKU已存在")

	// ErrInsufficientStock 库存不足
	ErrInsufficientStock = apperrors.New(apperrors.ErrCodeInsufficientStock, "库存不足")

	ErrInvalidName      = apperrors.New(apperrors.ErrCodeInvalidParams, "商品名称至少3个字符")
	ErrInvalidSKU       = apperrors.New(apperrors.ErrCodeInvalidParams, "SKU不能为空")
	ErrInvalidPrice     = apperrors.New(apperrors.ErrCodeInvalidParams, "售价必须大于0")
	ErrInvalidCostPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "成本价不能为负数")
	ErrInvalidStock     = apperrors.New(apperrors.ErrCodeInvalidParams, "库存不能为负数")
	ErrInvalidThreshold = apperrors.New(apperrors.ErrCodeInvalidParams, "低库存阈值不能为负数")
	ErrInvalidQuantity  = apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须大于0")
)

// NotFound 商品不存在(携带商品ID)
func NotFound(id uint) *apperrors.AppError {
	return ErrProductNotFound.WithDetails(map[string]interface{}{"product_id": id})
}

// InsufficientStock 库存不足(携带商品ID、可用库存、请求数量)
func InsufficientStock(id uint, available, requested int) *apperrors.AppError {
	return ErrInsufficientStock.WithDetails(map[string]interface{}{
		"product_id": id,
		"available":  available,
		"requested":  requested,
	})
}
