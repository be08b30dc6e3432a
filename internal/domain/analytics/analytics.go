// Package analytics 销售统计（每次请求从原始数据重新计算）
package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout 趋势数据的日期格式
const DateLayout = "2006-01-02"

// Line 一条销售明细的统计视图
type Line struct {
	ProductID   uint
	ProductName string
	ProductSKU  string
	Quantity    int
	UnitPrice   decimal.Decimal
	UnitCost    decimal.Decimal
}

// SaleFact 一张销售单的统计视图
type SaleFact struct {
	SaleID       uint
	OperatorID   uint
	OperatorName string
	Discount     decimal.Decimal
	FinalAmount  decimal.Decimal
	CreatedAt    time.Time
}

// Repository 统计数据源
type Repository interface {
	// Lines 全部销售明细
	Lines(ctx context.Context) ([]Line, error)

	// Sales 创建时间不早于since的销售单，since为零值时返回全部
	Sales(ctx context.Context, since time.Time) ([]SaleFact, error)
}

// Summary 销售汇总
type Summary struct {
	TotalRevenue  decimal.Decimal // Σ 单价×数量
	TotalProfit   decimal.Decimal // Σ (单价-成本)×数量
	TotalDiscount decimal.Decimal
	NetRevenue    decimal.Decimal // 扣除折扣后的实收
	SaleCount     int
	ItemsSold     int
}

// Summarize 汇总营收、毛利与单数
func Summarize(lines []Line, sales []SaleFact) Summary {
	s := Summary{
		TotalRevenue:  decimal.Zero,
		TotalProfit:   decimal.Zero,
		TotalDiscount: decimal.Zero,
		NetRevenue:    decimal.Zero,
		SaleCount:     len(sales),
	}

	for _, l := range lines {
		qty := decimal.NewFromInt(int64(l.Quantity))
		s.TotalRevenue = s.TotalRevenue.Add(l.UnitPrice.Mul(qty))
		s.TotalProfit = s.TotalProfit.Add(l.UnitPrice.Sub(l.UnitCost).Mul(qty))
		s.ItemsSold += l.Quantity
	}
	for _, f := range sales {
		s.TotalDiscount = s.TotalDiscount.Add(f.Discount)
		s.NetRevenue = s.NetRevenue.Add(f.FinalAmount)
	}
	return s
}

// TrendPoint 某一天的营收
type TrendPoint struct {
	Date      string
	Revenue   decimal.Decimal
	SaleCount int
}

// TrendStart 趋势窗口起点：days天前（含今天）的零点，按now所在时区
func TrendStart(days int, now time.Time) time.Time {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return today.AddDate(0, 0, -(days - 1))
}

// BuildTrend 按自然日汇总实收金额，没有销售的日期补0，按日期升序
func BuildTrend(sales []SaleFact, days int, now time.Time) []TrendPoint {
	if days <= 0 {
		return []TrendPoint{}
	}

	start := TrendStart(days, now)
	points := make([]TrendPoint, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i).Format(DateLayout)
		points[i] = TrendPoint{Date: date, Revenue: decimal.Zero}
		index[date] = i
	}

	for _, f := range sales {
		date := f.CreatedAt.In(now.Location()).Format(DateLayout)
		i, ok := index[date]
		if !ok {
			continue
		}
		points[i].Revenue = points[i].Revenue.Add(f.FinalAmount)
		points[i].SaleCount++
	}
	return points
}

// ProductRank 商品销量排行
type ProductRank struct {
	ProductID   uint
	ProductName string
	ProductSKU  string
	Quantity    int
	Revenue     decimal.Decimal
}

// TopProducts 按销量降序取前n个，销量相同按商品ID升序
func TopProducts(lines []Line, n int) []ProductRank {
	byProduct := make(map[uint]*ProductRank)
	for _, l := range lines {
		r, ok := byProduct[l.ProductID]
		if !ok {
			r = &ProductRank{ProductID: l.ProductID, ProductName: l.ProductName, ProductSKU: l.ProductSKU, Revenue: decimal.Zero}
			byProduct[l.ProductID] = r
		}
		r.Quantity += l.Quantity
		r.Revenue = r.Revenue.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}

	ranks := make([]ProductRank, 0, len(byProduct))
	for _, r := range byProduct {
		ranks = append(ranks, *r)
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Quantity != ranks[j].Quantity {
			return ranks[i].Quantity > ranks[j].Quantity
		}
		return ranks[i].ProductID < ranks[j].ProductID
	})

	if n >= 0 && len(ranks) > n {
		ranks = ranks[:n]
	}
	return ranks
}

// StaffStat 收银员业绩
type StaffStat struct {
	OperatorID   uint
	OperatorName string
	SaleCount    int
	Revenue      decimal.Decimal
}

// StaffPerformance 按收银员汇总实收金额与单数，金额降序，相同按ID升序
func StaffPerformance(sales []SaleFact) []StaffStat {
	byOperator := make(map[uint]*StaffStat)
	for _, f := range sales {
		s, ok := byOperator[f.OperatorID]
		if !ok {
			s = &StaffStat{OperatorID: f.OperatorID, OperatorName: f.OperatorName, Revenue: decimal.Zero}
			byOperator[f.OperatorID] = s
		}
		s.SaleCount++
		s.Revenue = s.Revenue.Add(f.FinalAmount)
	}

	stats := make([]StaffStat, 0, len(byOperator))
	for _, s := range byOperator {
		stats = append(stats, *s)
	}
	sort.Slice(stats, func(i, j int) bool {
		if c := stats[i].Revenue.Cmp(stats[j].Revenue); c != 0 {
			return c > 0
		}
		return stats[i].OperatorID < stats[j].OperatorID
	})
	return stats
}
