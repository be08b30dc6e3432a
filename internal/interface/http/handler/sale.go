package handler

import (
	"github.com/gin-gonic/gin"

	appsale "github.com/xiebiao/posbuzz/internal/application/sale"
	"github.com/xiebiao/posbuzz/internal/interface/http/dto"
	"github.com/xiebiao/posbuzz/internal/interface/http/middleware"
	"github.com/xiebiao/posbuzz/pkg/response"
)

// SaleHandler 销售HTTP处理器
type SaleHandler struct {
	createSale *appsale.CreateSaleUseCase
	listSales  *appsale.ListSalesUseCase
	getSale    *appsale.GetSaleUseCase
}

// NewSaleHandler 创建销售处理器
func NewSaleHandler(
	createSale *appsale.CreateSaleUseCase,
	listSales *appsale.ListSalesUseCase,
	getSale *appsale.GetSaleUseCase,
) *SaleHandler {
	return &SaleHandler{
		createSale: createSale,
		listSales:  listSales,
		getSale:    getSale,
	}
}

// Create 开单
// @Summary      开单
// @Description  单个事务内锁定库存行、校验并扣减库存、写库存流水、应用促销、累计会员积分
// @Description  任一步失败整单回滚，不会出现部分扣减
// @Tags         销售
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateSaleRequest true "开单信息"
// @Success      201 {object} response.Response{data=appsale.CreateSaleResponse} "开单成功"
// @Failure      400 {object} response.Response "购物车为空或数量非法"
// @Failure      404 {object} response.Response "商品/顾客/促销不存在"
// @Failure      422 {object} response.Response "库存不足"
// @Router       /sales [post]
func (h *SaleHandler) Create(c *gin.Context) {
	var req dto.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	items := make([]appsale.CreateSaleItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = appsale.CreateSaleItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	result, err := h.createSale.Execute(c.Request.Context(), appsale.CreateSaleRequest{
		OperatorID:    middleware.MustGetUserID(c),
		Items:         items,
		CustomerID:    req.CustomerID,
		PromotionID:   req.PromotionID,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// List 销售单列表
// @Summary      销售单列表
// @Description  管理员查看全部，收银员只能查看自己开的单
// @Tags         销售
// @Produce      json
// @Security     BearerAuth
// @Param        page        query int false "页码"
// @Param        page_size   query int false "每页数量"
// @Param        customer_id query int false "顾客ID"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /sales [get]
func (h *SaleHandler) List(c *gin.Context) {
	var q dto.ListSalesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PageSize == 0 {
		q.PageSize = 20
	}

	result, err := h.listSales.Execute(c.Request.Context(), appsale.ListSalesRequest{
		Viewer:     viewer(c),
		Page:       q.Page,
		PageSize:   q.PageSize,
		CustomerID: q.CustomerID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, result.Sales, result.Total, q.Page, q.PageSize)
}

// Get 销售单详情
// @Summary      销售单详情
// @Tags         销售
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "销售单ID"
// @Success      200 {object} response.Response{data=appsale.SaleResponse}
// @Failure      404 {object} response.Response "销售单不存在"
// @Router       /sales/{id} [get]
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := h.getSale.Execute(c.Request.Context(), viewer(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func viewer(c *gin.Context) appsale.Viewer {
	return appsale.Viewer{
		UserID: middleware.MustGetUserID(c),
		Role:   middleware.GetRole(c),
	}
}
