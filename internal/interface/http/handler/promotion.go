package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/posbuzz/internal/domain/promotion"
	"github.com/xiebiao/posbuzz/internal/interface/http/dto"
	"github.com/xiebiao/posbuzz/pkg/response"
)

// PromotionHandler 促销HTTP处理器
type PromotionHandler struct {
	service promotion.Service
}

// NewPromotionHandler 创建促销处理器
func NewPromotionHandler(service promotion.Service) *PromotionHandler {
	return &PromotionHandler{service: service}
}

// Create 创建促销
// @Summary      创建促销
// @Tags         促销
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreatePromotionRequest true "促销信息"
// @Success      201 {object} response.Response{data=dto.PromotionResponse}
// @Router       /promotions [post]
func (h *PromotionHandler) Create(c *gin.Context) {
	var req dto.CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	p, err := req.ToPromotion()
	if err != nil {
		response.Error(c, err)
		return
	}

	created, err := h.service.CreatePromotion(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewPromotionResponse(created))
}

// List 全部促销
// @Summary      促销列表
// @Tags         促销
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]dto.PromotionResponse}
// @Router       /promotions [get]
func (h *PromotionHandler) List(c *gin.Context) {
	list, err := h.service.ListPromotions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewPromotionListResponse(list))
}

// Active 当前可用的促销（已启用且在有效期内）
// @Summary      可用促销
// @Tags         促销
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]dto.PromotionResponse}
// @Router       /promotions/active [get]
func (h *PromotionHandler) Active(c *gin.Context) {
	list, err := h.service.FindActive(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewPromotionListResponse(list))
}

// Get 促销详情
// @Summary      促销详情
// @Tags         促销
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "促销ID"
// @Success      200 {object} response.Response{data=dto.PromotionResponse}
// @Router       /promotions/{id} [get]
func (h *PromotionHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	p, err := h.service.GetPromotion(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewPromotionResponse(p))
}

// Update 修改促销
// @Summary      修改促销
// @Tags         促销
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                         true "促销ID"
// @Param        request body dto.UpdatePromotionRequest true "修改字段"
// @Success      200 {object} response.Response{data=dto.PromotionResponse}
// @Router       /promotions/{id} [put]
func (h *PromotionHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpdatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	fields, err := req.ToFields()
	if err != nil {
		response.Error(c, err)
		return
	}

	updated, err := h.service.UpdatePromotion(c.Request.Context(), id, fields)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewPromotionResponse(updated))
}

// Delete 删除促销
// @Summary      删除促销
// @Tags         促销
// @Security     BearerAuth
// @Param        id path int true "促销ID"
// @Success      200 {object} response.Response
// @Router       /promotions/{id} [delete]
func (h *PromotionHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeletePromotion(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
