package inventory

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xiebiao/posbuzz/internal/domain/sale"
	"github.com/xiebiao/posbuzz/pkg/mq"
)

func newAlerter() (*LowStockAlerter, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return NewLowStockAlerter(zap.New(core)), logs
}

func TestHandle_LowStockLines(t *testing.T) {
	a, logs := newAlerter()

	body, err := json.Marshal(sale.CompletedEvent{
		SaleID: 1,
		SaleNo: "POS1700000000000001",
		Lines: []sale.CompletedLine{
			{ProductID: 1, ProductName: "Beans", Quantity: 3, StockAfter: 2, LowStockThreshold: 10},
			{ProductID: 2, ProductName: "Milk", Quantity: 1, StockAfter: 40, LowStockThreshold: 10},
			{ProductID: 3, ProductName: "Cups", Quantity: 5, StockAfter: 10, LowStockThreshold: 10},
		},
		OccurredAt: time.Now(),
	})
	require.NoError(t, err)

	require.NoError(t, a.Handle(context.Background(), sale.EventCompleted, body))

	warnings := logs.FilterMessage("商品库存不足预警").All()
	require.Len(t, warnings, 2)
	assert.EqualValues(t, 1, warnings[0].ContextMap()["product_id"])
	assert.EqualValues(t, 3, warnings[1].ContextMap()["product_id"])
}

func TestHandle_BadPayloadIsPermanent(t *testing.T) {
	a, _ := newAlerter()

	err := a.Handle(context.Background(), sale.EventCompleted, []byte("{not json"))
	require.Error(t, err)
	assert.True(t, mq.IsPermanent(err))
}

func TestHandle_IgnoresOtherRoutingKeys(t *testing.T) {
	a, logs := newAlerter()

	require.NoError(t, a.Handle(context.Background(), "sale.refunded", []byte("{not json")))
	assert.Zero(t, logs.FilterMessage("商品库存不足预警").Len())
}
