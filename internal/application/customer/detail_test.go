package customer

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/posbuzz/internal/domain/customer"
	"github.com/xiebiao/posbuzz/internal/domain/loyalty"
	"github.com/xiebiao/posbuzz/internal/domain/sale"
)

type stubCustomerService struct {
	customer.Service
	customers map[uint]*customer.Customer
}

func (s stubCustomerService) GetCustomer(_ context.Context, id uint) (*customer.Customer, error) {
	c, ok := s.customers[id]
	if !ok {
		return nil, customer.NotFound(id)
	}
	return c, nil
}

type stubSaleRepo struct {
	sale.Repository
	sales     []*sale.Sale
	lastLimit int
}

func (r *stubSaleRepo) ListByCustomer(_ context.Context, customerID uint, limit int) ([]*sale.Sale, error) {
	r.lastLimit = limit
	var result []*sale.Sale
	for _, s := range r.sales {
		if s.CustomerID != nil && *s.CustomerID == customerID && len(result) < limit {
			result = append(result, s)
		}
	}
	return result, nil
}

func TestDetailUseCase_Execute(t *testing.T) {
	c := customer.NewCustomer("Wang", nil, nil, loyalty.TierSilver)
	c.ID = 9
	c.LoyaltyPoints = 640

	id := uint(9)
	repo := &stubSaleRepo{}
	for i := 0; i < 7; i++ {
		item := sale.NewItem(1, 2, decimal.NewFromInt(5), decimal.NewFromInt(2))
		s, err := sale.NewSale(sale.GenerateSaleNo(), 3, []sale.Item{item}, decimal.Zero, sale.PaymentCash)
		require.NoError(t, err)
		s.ID = uint(i + 1)
		s.CustomerID = &id
		repo.sales = append(repo.sales, s)
	}

	uc := NewDetailUseCase(stubCustomerService{customers: map[uint]*customer.Customer{9: c}}, repo)
	detail, err := uc.Execute(context.Background(), 9)
	require.NoError(t, err)

	assert.Equal(t, "SILVER", detail.Tier)
	assert.Equal(t, 640, detail.LoyaltyPoints)
	assert.Len(t, detail.RecentSales, RecentSalesLimit)
	assert.Equal(t, RecentSalesLimit, repo.lastLimit)
	assert.Equal(t, "10.00", detail.RecentSales[0].FinalAmount)
	assert.Equal(t, 2, detail.RecentSales[0].ItemCount)
}

func TestDetailUseCase_NotFound(t *testing.T) {
	uc := NewDetailUseCase(stubCustomerService{customers: map[uint]*customer.Customer{}}, &stubSaleRepo{})

	_, err := uc.Execute(context.Background(), 1)
	assert.ErrorIs(t, err, customer.ErrCustomerNotFound)
}
