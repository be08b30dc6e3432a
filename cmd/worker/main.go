// Command posbuzz-worker 消费销售事件，输出低库存预警
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/xiebiao/posbuzz/internal/application/inventory"
	"github.com/xiebiao/posbuzz/internal/domain/sale"
	"github.com/xiebiao/posbuzz/internal/infrastructure/config"
	"github.com/xiebiao/posbuzz/pkg/logger"
	"github.com/xiebiao/posbuzz/pkg/metrics"
	"github.com/xiebiao/posbuzz/pkg/mq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	zlog, err := logger.New(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if !cfg.MQ.Enabled {
		zlog.Fatal("消息队列未启用（mq.enabled=false），worker无事可做")
	}

	metrics.InitMetrics()

	consumer, err := mq.NewConsumer(cfg.MQ.URL, cfg.MQ.Exchange, "topic", cfg.MQ.Queue,
		[]string{sale.EventCompleted}, zlog)
	if err != nil {
		zlog.Fatal("创建消费者失败", zap.Error(err))
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	alerter := inventory.NewLowStockAlerter(zlog)
	if err := consumer.Consume(ctx, alerter.Handle); err != nil {
		zlog.Error("消费中断", zap.Error(err))
	}
	zlog.Info("worker已退出")
}
