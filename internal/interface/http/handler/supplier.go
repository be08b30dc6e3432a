package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/posbuzz/internal/domain/supplier"
	"github.com/xiebiao/posbuzz/internal/interface/http/dto"
	"github.com/xiebiao/posbuzz/pkg/response"
)

// SupplierHandler 供应商HTTP处理器
type SupplierHandler struct {
	service supplier.Service
}

// NewSupplierHandler 创建供应商处理器
func NewSupplierHandler(service supplier.Service) *SupplierHandler {
	return &SupplierHandler{service: service}
}

// Create 新增供应商
// @Summary      新增供应商
// @Tags         供应商
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.SupplierRequest true "供应商信息"
// @Success      201 {object} response.Response{data=dto.SupplierResponse}
// @Router       /suppliers [post]
func (h *SupplierHandler) Create(c *gin.Context) {
	var req dto.SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	created, err := h.service.CreateSupplier(c.Request.Context(), req.ToFields())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewSupplierResponse(created))
}

// List 供应商列表（含关联商品数）
// @Summary      供应商列表
// @Tags         供应商
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]dto.SupplierResponse}
// @Router       /suppliers [get]
func (h *SupplierHandler) List(c *gin.Context) {
	list, err := h.service.ListSuppliers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewSupplierListResponse(list))
}

// Get 供应商详情
// @Summary      供应商详情
// @Tags         供应商
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "供应商ID"
// @Success      200 {object} response.Response{data=dto.SupplierResponse}
// @Router       /suppliers/{id} [get]
func (h *SupplierHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s, err := h.service.GetSupplier(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewSupplierResponse(s))
}

// Update 修改供应商
// @Summary      修改供应商
// @Tags         供应商
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                  true "供应商ID"
// @Param        request body dto.SupplierRequest true "修改字段"
// @Success      200 {object} response.Response{data=dto.SupplierResponse}
// @Router       /suppliers/{id} [put]
func (h *SupplierHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	updated, err := h.service.UpdateSupplier(c.Request.Context(), id, req.ToFields())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewSupplierResponse(updated))
}

// Delete 删除供应商（仍有关联商品时拒绝）
// @Summary      删除供应商
// @Tags         供应商
// @Security     BearerAuth
// @Param        id path int true "供应商ID"
// @Success      200 {object} response.Response
// @Router       /suppliers/{id} [delete]
func (h *SupplierHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteSupplier(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
