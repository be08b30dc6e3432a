package sale

import (
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/posbuzz/pkg/errors"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestNewSale(t *testing.T) {
	items := []Item{
		NewItem(1, 3, dec("10.00"), dec("6.00")),
		NewItem(2, 2, dec("15.00"), dec("9.50")),
	}

	s, err := NewSale("POS1", 9, items, dec("6.00"), PaymentCard)
	require.NoError(t, err)

	assert.Equal(t, "60.00", s.Subtotal.StringFixed(2))
	assert.Equal(t, "54.00", s.FinalAmount.StringFixed(2))
	assert.True(t, s.FinalAmount.Equal(s.Subtotal.Sub(s.Discount)))
	assert.Equal(t, 5, s.ItemCount())
	assert.True(t, s.IsOperatedBy(9))
	assert.False(t, s.IsOperatedBy(10))

	assert.Equal(t, "12.00", items[0].Profit().StringFixed(2))
	assert.Equal(t, "11.00", items[1].Profit().StringFixed(2))
}

func TestNewSale_Invariants(t *testing.T) {
	items := []Item{NewItem(1, 1, dec("10"), dec("5"))}

	_, err := NewSale("POS1", 1, nil, decimal.Zero, PaymentCash)
	assert.ErrorIs(t, err, ErrEmptySale)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = NewSale("POS1", 1, items, dec("10.01"), PaymentCash)
	assert.ErrorIs(t, err, ErrInvalidDiscount)

	_, err = NewSale("POS1", 1, items, dec("-1"), PaymentCash)
	assert.ErrorIs(t, err, ErrInvalidDiscount)

	s, err := NewSale("POS1", 1, items, dec("10"), PaymentCash)
	require.NoError(t, err)
	assert.True(t, s.FinalAmount.IsZero(), "全额折扣实付为0")
}

func TestParsePaymentMethod(t *testing.T) {
	tests := map[string]PaymentMethod{
		"":      PaymentCash,
		"cash":  PaymentCash,
		" CARD": PaymentCard,
		"Other": PaymentOther,
	}
	for in, want := range tests {
		got, err := ParsePaymentMethod(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParsePaymentMethod("BITCOIN")
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestGenerateSaleNo(t *testing.T) {
	no := GenerateSaleNo()
	assert.Regexp(t, regexp.MustCompile(`^POS\d{16}$`), no)
}
