package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/posbuzz/internal/domain/promotion"
	apperrors "github.com/xiebiao/posbuzz/pkg/errors"
)

func TestCreatePromotionRequest_ToPromotion(t *testing.T) {
	value := decimal.NewFromInt(10)
	req := CreatePromotionRequest{
		Name:      "Spring",
		Type:      "PERCENTAGE",
		Value:     &value,
		StartDate: "2024-03-01",
		EndDate:   "2024-03-31",
	}

	p, err := req.ToPromotion()
	require.NoError(t, err)
	assert.Equal(t, promotion.TypePercentage, p.Type)
	assert.True(t, p.Active)
	assert.Nil(t, p.MinSpend)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local), p.StartDate)
	assert.Equal(t, time.Date(2024, 3, 31, 23, 59, 59, 999999999, time.Local), p.EndDate)
}

func TestCreatePromotionRequest_EndDateCoversWholeLastDay(t *testing.T) {
	value := decimal.NewFromInt(5)
	p, err := CreatePromotionRequest{
		Name:      "Weekend",
		Type:      "FIXED_AMOUNT",
		Value:     &value,
		StartDate: "2024-03-30",
		EndDate:   "2024-03-31",
	}.ToPromotion()
	require.NoError(t, err)

	subtotal := decimal.NewFromInt(100)
	assert.True(t, p.IsApplicable(subtotal, time.Date(2024, 3, 31, 23, 59, 59, 500000000, time.Local)))
	assert.False(t, p.IsApplicable(subtotal, time.Date(2024, 4, 1, 0, 0, 0, 0, time.Local)))
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := parseDate("31/03/2024", false)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestUpdatePromotionRequest_ToFields(t *testing.T) {
	typ := "FIXED_AMOUNT"
	end := "2024-12-31T18:00:00Z"
	fields, err := UpdatePromotionRequest{Type: &typ, EndDate: &end, ClearMinSpend: true}.ToFields()
	require.NoError(t, err)

	require.NotNil(t, fields.Type)
	assert.Equal(t, promotion.TypeFixedAmount, *fields.Type)
	require.NotNil(t, fields.EndDate)
	assert.Equal(t, 18, fields.EndDate.UTC().Hour())
	assert.True(t, fields.ClearMin)
	assert.Nil(t, fields.StartDate)
}
