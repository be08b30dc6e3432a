// Package analytics 销售统计用例(管理员)
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/xiebiao/posbuzz/internal/domain/analytics"
	apperrors "github.com/xiebiao/posbuzz/pkg/errors"
)

const (
	DefaultTrendDays = 7
	MaxTrendDays     = 365
	DefaultTopLimit  = 5
	MaxTopLimit      = 100
)

// SummaryResponse 销售汇总
type SummaryResponse struct {
	TotalRevenue  string `json:"total_revenue"`
	TotalProfit   string `json:"total_profit"`
	TotalDiscount string `json:"total_discount"`
	NetRevenue    string `json:"net_revenue"`
	TotalSales    int    `json:"total_sales"`
	ItemsSold     int    `json:"items_sold"`
}

// TrendPointResponse 每日营收
type TrendPointResponse struct {
	Date      string `json:"date"`
	Revenue   string `json:"revenue"`
	SaleCount int    `json:"sale_count"`
}

// TopProductResponse 商品销量排行
type TopProductResponse struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	ProductSKU  string `json:"product_sku"`
	Quantity    int    `json:"quantity"`
	Revenue     string `json:"revenue"`
}

// StaffPerformanceResponse 收银员业绩
type StaffPerformanceResponse struct {
	OperatorID   uint   `json:"operator_id"`
	OperatorName string `json:"operator_name"`
	SaleCount    int    `json:"sale_count"`
	Revenue      string `json:"revenue"`
}

// QueryUseCase 统计查询,每次请求都从原始销售数据重新计算
type QueryUseCase struct {
	repo analytics.Repository
	now  func() time.Time
}

// NewQueryUseCase 创建统计查询用例
func NewQueryUseCase(repo analytics.Repository) *QueryUseCase {
	return &QueryUseCase{repo: repo, now: time.Now}
}

// Summary 总营收、总毛利、单数
func (uc *QueryUseCase) Summary(ctx context.Context) (*SummaryResponse, error) {
	lines, err := uc.repo.Lines(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := uc.repo.Sales(ctx, time.Time{})
	if err != nil {
		return nil, err
	}

	s := analytics.Summarize(lines, sales)
	return &SummaryResponse{
		TotalRevenue:  s.TotalRevenue.StringFixed(2),
		TotalProfit:   s.TotalProfit.StringFixed(2),
		TotalDiscount: s.TotalDiscount.StringFixed(2),
		NetRevenue:    s.NetRevenue.StringFixed(2),
		TotalSales:    s.SaleCount,
		ItemsSold:     s.ItemsSold,
	}, nil
}

// Trend 最近days天(含今天)的每日营收,无销售的日期补0
func (uc *QueryUseCase) Trend(ctx context.Context, days int) ([]TrendPointResponse, error) {
	if days < 1 || days > MaxTrendDays {
		return nil, apperrors.Validation(fmt.Sprintf("days必须在1到%d之间", MaxTrendDays))
	}

	now := uc.now()
	sales, err := uc.repo.Sales(ctx, analytics.TrendStart(days, now))
	if err != nil {
		return nil, err
	}

	points := analytics.BuildTrend(sales, days, now)
	result := make([]TrendPointResponse, len(points))
	for i, p := range points {
		result[i] = TrendPointResponse{Date: p.Date, Revenue: p.Revenue.StringFixed(2), SaleCount: p.SaleCount}
	}
	return result, nil
}

// TopProducts 销量前limit的商品
func (uc *QueryUseCase) TopProducts(ctx context.Context, limit int) ([]TopProductResponse, error) {
	if limit < 1 || limit > MaxTopLimit {
		return nil, apperrors.Validation(fmt.Sprintf("limit必须在1到%d之间", MaxTopLimit))
	}

	lines, err := uc.repo.Lines(ctx)
	if err != nil {
		return nil, err
	}

	ranks := analytics.TopProducts(lines, limit)
	result := make([]TopProductResponse, len(ranks))
	for i, r := range ranks {
		result[i] = TopProductResponse{
			ProductID:   r.ProductID,
			ProductName: r.ProductName,
			ProductSKU:  r.ProductSKU,
			Quantity:    r.Quantity,
			Revenue:     r.Revenue.StringFixed(2),
		}
	}
	return result, nil
}

// StaffPerformance 各收银员的单数与实收
func (uc *QueryUseCase) StaffPerformance(ctx context.Context) ([]StaffPerformanceResponse, error) {
	sales, err := uc.repo.Sales(ctx, time.Time{})
	if err != nil {
		return nil, err
	}

	stats := analytics.StaffPerformance(sales)
	result := make([]StaffPerformanceResponse, len(stats))
	for i, s := range stats {
		result[i] = StaffPerformanceResponse{
			OperatorID:   s.OperatorID,
			OperatorName: s.OperatorName,
			SaleCount:    s.SaleCount,
			Revenue:      s.Revenue.StringFixed(2),
		}
	}
	return result, nil
}
