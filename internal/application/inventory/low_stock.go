// Package inventory 库存事件处理
package inventory

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/xiebiao/posbuzz/internal/domain/sale"
	"github.com/xiebiao/posbuzz/pkg/mq"
)

// LowStockAlerter 消费sale.completed事件，对扣减后库存触及阈值的商品发出预警
type LowStockAlerter struct {
	logger *zap.Logger
}

// NewLowStockAlerter 创建低库存预警处理器
func NewLowStockAlerter(logger *zap.Logger) *LowStockAlerter {
	return &LowStockAlerter{logger: logger}
}

// Handle 实现mq.Handler
// payload无法解析时返回不可重试错误，消息被丢弃而不是反复重新入队
func (a *LowStockAlerter) Handle(ctx context.Context, routingKey string, body []byte) error {
	if routingKey != sale.EventCompleted {
		a.logger.Debug("忽略未知事件", zap.String("routing_key", routingKey))
		return nil
	}

	var event sale.CompletedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return mq.Permanent(fmt.Errorf("解析%s失败: %w", routingKey, err))
	}

	a.Check(ctx, &event)
	return nil
}

// Check 返回触及阈值的明细，并逐条记录预警日志
func (a *LowStockAlerter) Check(_ context.Context, event *sale.CompletedEvent) []sale.CompletedLine {
	var low []sale.CompletedLine
	for _, line := range event.Lines {
		if !line.IsLowStock() {
			continue
		}
		low = append(low, line)
		a.logger.Warn("商品库存不足预警",
			zap.String("sale_no", event.SaleNo),
			zap.Uint("product_id", line.ProductID),
			zap.String("product_name", line.ProductName),
			zap.Int("stock", line.StockAfter),
			zap.Int("threshold", line.LowStockThreshold),
		)
	}
	return low
}
