package handler

import (
	"github.com/gin-gonic/gin"

	appproduct "github.com/xiebiao/posbuzz/internal/application/product"
	"github.com/xiebiao/posbuzz/internal/interface/http/dto"
	"github.com/xiebiao/posbuzz/internal/interface/http/middleware"
	"github.com/xiebiao/posbuzz/pkg/response"
)

// ProductHandler 商品HTTP处理器
// 读接口走目录缓存（命中时原样输出缓存的JSON），写接口提交后失效缓存
type ProductHandler struct {
	catalog *appproduct.CatalogQuery
	manage  *appproduct.ManageUseCase
}

// NewProductHandler 创建商品处理器
func NewProductHandler(catalog *appproduct.CatalogQuery, manage *appproduct.ManageUseCase) *ProductHandler {
	return &ProductHandler{catalog: catalog, manage: manage}
}

// List 商品列表
// @Summary      商品列表
// @Description  分页查询商品，按名称或SKU模糊搜索（结果缓存300秒）
// @Tags         商品
// @Produce      json
// @Param        page   query int    false "页码"     default(1)
// @Param        limit  query int    false "每页数量" default(10)
// @Param        search query string false "关键字"
// @Success      200 {object} response.Response{data=appproduct.ProductListResponse}
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var q dto.ListProductsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	data, err := h.catalog.List(c.Request.Context(), appproduct.ListRequest{
		Page:   q.Page,
		Limit:  q.Limit,
		Search: q.Search,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, data)
}

// Get 商品详情
// @Summary      商品详情
// @Tags         商品
// @Produce      json
// @Param        id path int true "商品ID"
// @Success      200 {object} response.Response{data=appproduct.ProductResponse}
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	data, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, data)
}

// Create 创建商品
// @Summary      创建商品
// @Description  初始库存大于0时写入一条RESTOCK库存流水
// @Tags         商品
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateProductRequest true "商品信息"
// @Success      201 {object} response.Response{data=appproduct.ProductResponse}
// @Failure      409 {object} response.Response "SKU已存在"
// @Router       /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.manage.Create(c.Request.Context(), middleware.MustGetUserID(c), req.ToParams())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Update 修改商品
// @Summary      修改商品
// @Tags         商品
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                       true "商品ID"
// @Param        request body dto.UpdateProductRequest true "修改字段"
// @Success      200 {object} response.Response{data=appproduct.ProductResponse}
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.manage.Update(c.Request.Context(), middleware.MustGetUserID(c), id, req.ToFields())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Delete 删除商品（软删除，历史销售单仍可关联）
// @Summary      删除商品
// @Tags         商品
// @Security     BearerAuth
// @Param        id path int true "商品ID"
// @Success      200 {object} response.Response
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.manage.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Restock 入库
// @Summary      入库
// @Tags         商品
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                 true "商品ID"
// @Param        request body dto.RestockRequest true "入库数量"
// @Success      200 {object} response.Response{data=appproduct.ProductResponse}
// @Router       /products/{id}/restock [post]
func (h *ProductHandler) Restock(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.manage.Restock(c.Request.Context(), middleware.MustGetUserID(c), id, req.Quantity, req.Note)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// InventoryLogs 库存流水
// @Summary      库存流水
// @Tags         商品
// @Produce      json
// @Security     BearerAuth
// @Param        id        path  int true  "商品ID"
// @Param        page      query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /products/{id}/inventory-logs [get]
func (h *ProductHandler) InventoryLogs(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var q dto.PageQuery
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

	logs, total, err := h.manage.InventoryLogs(c.Request.Context(), id, q.Page, q.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, logs, total, q.Page, q.PageSize)
}
