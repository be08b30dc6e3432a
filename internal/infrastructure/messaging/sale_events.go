// Package messaging 领域事件发布(RabbitMQ)
package messaging

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/posbuzz/internal/domain/sale"
	"github.com/xiebiao/posbuzz/pkg/mq"
)

// publisher 消息发布能力(mq.Publisher实现)
type publisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// SalePublisher 把销售完成事件发布到Exchange
type SalePublisher struct {
	publisher publisher
}

// NewSalePublisher 创建销售事件发布者
func NewSalePublisher(p *mq.Publisher) *SalePublisher {
	return &SalePublisher{publisher: p}
}

// PublishCompleted 发布sale.completed事件
func (p *SalePublisher) PublishCompleted(ctx context.Context, event *sale.CompletedEvent) error {
	return p.publisher.Publish(ctx, sale.EventCompleted, event)
}

// NopPublisher 未启用消息队列时使用,只记录调试日志
type NopPublisher struct {
	logger *zap.Logger
}

// NewNopPublisher 创建空发布者
func NewNopPublisher(logger *zap.Logger) *NopPublisher {
	return &NopPublisher{logger: logger}
}

func (p *NopPublisher) PublishCompleted(_ context.Context, event *sale.CompletedEvent) error {
	p.logger.Debug("消息队列未启用,跳过销售事件", zap.String("sale_no", event.SaleNo))
	return nil
}

var (
	_ sale.EventPublisher = (*SalePublisher)(nil)
	_ sale.EventPublisher = (*NopPublisher)(nil)
)
