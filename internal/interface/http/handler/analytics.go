package handler

import (
	"github.com/gin-gonic/gin"

	appanalytics "github.com/xiebiao/posbuzz/internal/application/analytics"
	"github.com/xiebiao/posbuzz/pkg/response"
)

// AnalyticsHandler 经营统计HTTP处理器（仅管理员）
type AnalyticsHandler struct {
	query *appanalytics.QueryUseCase
}

// NewAnalyticsHandler 创建统计处理器
func NewAnalyticsHandler(query *appanalytics.QueryUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{query: query}
}

// Summary 经营概览
// @Summary      经营概览
// @Description  总营收、总毛利、总折扣、净营收、销售单数、销售件数
// @Tags         统计
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appanalytics.SummaryResponse}
// @Router       /analytics/summary [get]
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	result, err := h.query.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Trend 每日营收趋势
// @Summary      营收趋势
// @Tags         统计
// @Produce      json
// @Security     BearerAuth
// @Param        days query int false "天数(1-365)" default(7)
// @Success      200 {object} response.Response{data=[]appanalytics.TrendPointResponse}
// @Router       /analytics/trend [get]
func (h *AnalyticsHandler) Trend(c *gin.Context) {
	days, ok := queryInt(c, "days", 7)
	if !ok {
		return
	}

	result, err := h.query.Trend(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// TopProducts 畅销商品
// @Summary      畅销商品
// @Tags         统计
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "数量(1-100)" default(5)
// @Success      200 {object} response.Response{data=[]appanalytics.TopProductResponse}
// @Router       /analytics/top-products [get]
func (h *AnalyticsHandler) TopProducts(c *gin.Context) {
	limit, ok := queryInt(c, "limit", 5)
	if !ok {
		return
	}

	result, err := h.query.TopProducts(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// StaffPerformance 收银员业绩
// @Summary      收银员业绩
// @Tags         统计
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]appanalytics.StaffPerformanceResponse}
// @Router       /analytics/staff-performance [get]
func (h *AnalyticsHandler) StaffPerformance(c *gin.Context) {
	result, err := h.query.StaffPerformance(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
