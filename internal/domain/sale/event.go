package sale

import (
	"context"
	"time"
)

// EventCompleted 销售完成事件的路由键
const EventCompleted = "sale.completed"

// CompletedEvent 销售完成事件(事务提交后发布)
type CompletedEvent struct {
	SaleID      uint            `json:"sale_id"`
	SaleNo      string          `json:"sale_no"`
	OperatorID  uint            `json:"operator_id"`
	CustomerID  *uint           `json:"customer_id,omitempty"`
	FinalAmount string          `json:"final_amount"`
	Lines       []CompletedLine `json:"lines"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

// CompletedLine 事件中的明细,附带扣减后的库存用于低库存预警
type CompletedLine struct {
	ProductID         uint   `json:"product_id"`
	ProductName       string `json:"product_name"`
	Quantity          int    `json:"quantity"`
	StockAfter        int    `json:"stock_after"`
	LowStockThreshold int    `json:"low_stock_threshold"`
}

// IsLowStock 扣减后库存是否触及预警阈值
func (l CompletedLine) IsLowStock() bool {
	return l.StockAfter <= l.LowStockThreshold
}

// EventPublisher 销售事件发布
type EventPublisher interface {
	PublishCompleted(ctx context.Context, event *CompletedEvent) error
}
