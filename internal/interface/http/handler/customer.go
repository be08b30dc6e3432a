package handler

import (
	"github.com/gin-gonic/gin"

	appcustomer "github.com/xiebiao/posbuzz/internal/application/customer"
	"github.com/xiebiao/posbuzz/internal/domain/customer"
	"github.com/xiebiao/posbuzz/internal/interface/http/dto"
	"github.com/xiebiao/posbuzz/pkg/response"
)

// CustomerHandler 顾客HTTP处理器
type CustomerHandler struct {
	service customer.Service
	detail  *appcustomer.DetailUseCase
}

// NewCustomerHandler 创建顾客处理器
func NewCustomerHandler(service customer.Service, detail *appcustomer.DetailUseCase) *CustomerHandler {
	return &CustomerHandler{service: service, detail: detail}
}

// Create 登记顾客
// @Summary      登记顾客
// @Tags         顾客
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateCustomerRequest true "顾客信息"
// @Success      201 {object} response.Response{data=appcustomer.CustomerResponse}
// @Router       /customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	created, err := h.service.CreateCustomer(c.Request.Context(), req.Name, req.Email, req.Phone)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, appcustomer.NewCustomerResponse(created))
}

// List 顾客列表
// @Summary      顾客列表
// @Tags         顾客
// @Produce      json
// @Security     BearerAuth
// @Param        page      query int    false "页码"
// @Param        page_size query int    false "每页数量"
// @Param        search    query string false "姓名/邮箱/手机号"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	var q dto.ListCustomersQuery
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

	list, total, err := h.service.ListCustomers(c.Request.Context(), q.Page, q.PageSize, q.Search)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]appcustomer.CustomerResponse, len(list))
	for i, cu := range list {
		items[i] = appcustomer.NewCustomerResponse(cu)
	}
	response.SuccessWithPage(c, items, total, q.Page, q.PageSize)
}

// Get 顾客详情（含最近5笔消费）
// @Summary      顾客详情
// @Tags         顾客
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "顾客ID"
// @Success      200 {object} response.Response{data=appcustomer.DetailResponse}
// @Router       /customers/{id} [get]
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := h.detail.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Update 修改顾客信息（积分与等级只能由开单累计）
// @Summary      修改顾客信息
// @Tags         顾客
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                        true "顾客ID"
// @Param        request body dto.UpdateCustomerRequest true "修改字段"
// @Success      200 {object} response.Response{data=appcustomer.CustomerResponse}
// @Router       /customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	updated, err := h.service.UpdateCustomer(c.Request.Context(), id, req.ToFields())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, appcustomer.NewCustomerResponse(updated))
}

// Delete 删除顾客
// @Summary      删除顾客
// @Tags         顾客
// @Security     BearerAuth
// @Param        id path int true "顾客ID"
// @Success      200 {object} response.Response
// @Router       /customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteCustomer(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
