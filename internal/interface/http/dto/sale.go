package dto

// CreateSaleRequest 开单请求
// 明细数量在用例中校验（需要返回出错的product_id），这里只校验结构
type CreateSaleRequest struct {
	Items         []CreateSaleItemRequest `json:"items"`
	CustomerID    *uint                   `json:"customer_id" example:"3"`
	PromotionID   *uint                   `json:"promotion_id" example:"1"`
	PaymentMethod string                  `json:"payment_method" example:"CASH"`
}

// CreateSaleItemRequest 开单明细
type CreateSaleItemRequest struct {
	ProductID uint `json:"product_id" binding:"required" example:"1"`
	Quantity  int  `json:"quantity" example:"3"`
}

// ListSalesQuery 销售单列表查询参数
type ListSalesQuery struct {
	PageQuery
	CustomerID *uint `form:"customer_id"`
}
