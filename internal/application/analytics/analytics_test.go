package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/posbuzz/internal/domain/analytics"
	apperrors "github.com/xiebiao/posbuzz/pkg/errors"
)

type stubRepo struct {
	lines     []analytics.Line
	sales     []analytics.SaleFact
	lastSince time.Time
}

func (r *stubRepo) Lines(context.Context) ([]analytics.Line, error) {
	return r.lines, nil
}

func (r *stubRepo) Sales(_ context.Context, since time.Time) ([]analytics.SaleFact, error) {
	r.lastSince = since
	var result []analytics.SaleFact
	for _, s := range r.sales {
		if since.IsZero() || !s.CreatedAt.Before(since) {
			result = append(result, s)
		}
	}
	return result, nil
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newStubRepo(now time.Time) *stubRepo {
	return &stubRepo{
		lines: []analytics.Line{
			{ProductID: 1, ProductName: "Cola", Quantity: 3, UnitPrice: d("10.00"), UnitCost: d("6.00")},
			{ProductID: 2, ProductName: "Chips", Quantity: 2, UnitPrice: d("3.00"), UnitCost: d("1.00")},
			{ProductID: 1, ProductName: "Cola", Quantity: 1, UnitPrice: d("10.00"), UnitCost: d("6.00")},
		},
		sales: []analytics.SaleFact{
			{SaleID: 1, OperatorID: 3, OperatorName: "Chen", Discount: d("0"), FinalAmount: d("30.00"), CreatedAt: now.AddDate(0, 0, -10)},
			{SaleID: 2, OperatorID: 4, OperatorName: "Li", Discount: d("1.00"), FinalAmount: d("5.00"), CreatedAt: now.AddDate(0, 0, -1)},
			{SaleID: 3, OperatorID: 3, OperatorName: "Chen", Discount: d("0"), FinalAmount: d("10.00"), CreatedAt: now},
		},
	}
}

func TestQueryUseCase_Summary(t *testing.T) {
	now := time.Date(2026, 10, 19, 15, 0, 0, 0, time.Local)
	uc := NewQueryUseCase(newStubRepo(now))

	s, err := uc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "46.00", s.TotalRevenue)
	assert.Equal(t, "20.00", s.TotalProfit)
	assert.Equal(t, "1.00", s.TotalDiscount)
	assert.Equal(t, "45.00", s.NetRevenue)
	assert.Equal(t, 3, s.TotalSales)
	assert.Equal(t, 6, s.ItemsSold)
}

func TestQueryUseCase_Trend(t *testing.T) {
	now := time.Date(2026, 10, 19, 15, 0, 0, 0, time.Local)
	repo := newStubRepo(now)
	uc := NewQueryUseCase(repo)
	uc.now = func() time.Time { return now }

	points, err := uc.Trend(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, points, 3)

	assert.Equal(t, "2026-10-17", points[0].Date)
	assert.Equal(t, "0.00", points[0].Revenue)
	assert.Equal(t, "2026-10-18", points[1].Date)
	assert.Equal(t, "5.00", points[1].Revenue)
	assert.Equal(t, "2026-10-19", points[2].Date)
	assert.Equal(t, "10.00", points[2].Revenue)
	assert.Equal(t, 1, points[2].SaleCount)

	assert.True(t, repo.lastSince.Equal(time.Date(2026, 10, 17, 0, 0, 0, 0, time.Local)))
}

func TestQueryUseCase_TopProducts(t *testing.T) {
	uc := NewQueryUseCase(newStubRepo(time.Now()))

	top, err := uc.TopProducts(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, uint(1), top[0].ProductID)
	assert.Equal(t, 4, top[0].Quantity)
	assert.Equal(t, "40.00", top[0].Revenue)
}

func TestQueryUseCase_StaffPerformance(t *testing.T) {
	uc := NewQueryUseCase(newStubRepo(time.Now()))

	stats, err := uc.StaffPerformance(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "Chen", stats[0].OperatorName)
	assert.Equal(t, "40.00", stats[0].Revenue)
	assert.Equal(t, 2, stats[0].SaleCount)
}

func TestQueryUseCase_RangeValidation(t *testing.T) {
	uc := NewQueryUseCase(newStubRepo(time.Now()))
	ctx := context.Background()

	for _, days := range []int{0, -1, 366} {
		_, err := uc.Trend(ctx, days)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation), "days=%d", days)
	}
	for _, limit := range []int{0, 101} {
		_, err := uc.TopProducts(ctx, limit)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation), "limit=%d", limit)
	}
}
