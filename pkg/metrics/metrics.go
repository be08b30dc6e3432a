// Package metrics 提供基于Prometheus的指标收集
//
// 指标分组：
//   - HTTP：请求总数、耗时、处理中的请求数
//   - 销售：成功/失败的销售单数、处理耗时、销售额
//   - 缓存：商品目录缓存的命中/未命中/错误次数
//   - 熔断器：状态与请求结果
//   - 消息队列：发布与消费次数
//
// 命名规范：Counter以_total结尾，Histogram以单位结尾（_seconds）。
// 标签只使用有限取值（method、status、kind），不要用user_id等高基数字段。
//
// 使用示例：
//
//	metrics.InitMetrics()
//	r.GET("/metrics", gin.WrapH(metrics.Handler()))
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	initOnce sync.Once

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数，标签：method、path、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时，标签：method、path
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// 销售业务指标

	// SalesCreatedTotal 销售单创建成功总数，标签：payment_method
	SalesCreatedTotal *prometheus.CounterVec

	// SalesFailedTotal 销售单创建失败总数，标签：kind（错误类别）
	SalesFailedTotal *prometheus.CounterVec

	// SaleProcessingDuration 销售事务处理耗时
	SaleProcessingDuration prometheus.Histogram

	// SaleAmountTotal 累计实收金额（元）
	SaleAmountTotal prometheus.Counter

	// 缓存指标

	// CacheRequestsTotal 缓存访问次数，标签：cache、result（hit/miss/error）
	CacheRequestsTotal *prometheus.CounterVec

	// CacheInvalidationsTotal 缓存失效次数，标签：cache
	CacheInvalidationsTotal *prometheus.CounterVec

	// 熔断器指标

	// CircuitBreakerState 熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求总数，标签：name、result（success/failure/rejected）
	CircuitBreakerRequests *prometheus.CounterVec

	// CircuitBreakerConsecutiveFailures 当前连续失败次数，接近熔断阈值时告警
	CircuitBreakerConsecutiveFailures *prometheus.GaugeVec

	// 消息队列指标

	// MessagesPublishedTotal 消息发布总数，标签：exchange、routing_key、result
	MessagesPublishedTotal *prometheus.CounterVec

	// MessagesConsumedTotal 消息消费总数，标签：queue、result
	MessagesConsumedTotal *prometheus.CounterVec

	// MessageProcessingDuration 消息处理耗时
	MessageProcessingDuration prometheus.Histogram
)

// InitMetrics 初始化所有Prometheus指标（注册到默认Registry，多次调用只生效一次）
func InitMetrics() {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP请求耗时（秒）",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "正在处理的HTTP请求数",
			},
		)

		SalesCreatedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pos_sales_created_total",
				Help: "销售单创建成功总数",
			},
			[]string{"payment_method"},
		)

		SalesFailedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pos_sales_failed_total",
				Help: "销售单创建失败总数",
			},
			[]string{"kind"},
		)

		// 销售事务包含行锁等待，桶上限放宽到5秒
		SaleProcessingDuration = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pos_sale_processing_duration_seconds",
				Help:    "销售事务处理耗时（秒）",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
		)

		SaleAmountTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "pos_sale_amount_total",
				Help: "累计实收金额",
			},
		)

		CacheRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_requests_total",
				Help: "缓存访问次数",
			},
			[]string{"cache", "result"},
		)

		CacheInvalidationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_invalidations_total",
				Help: "缓存失效次数",
			},
			[]string{"cache"},
		)

		CircuitBreakerState = promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "circuit_breaker_state",
				Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
			},
			[]string{"name"},
		)

		CircuitBreakerRequests = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "circuit_breaker_requests_total",
				Help: "熔断器请求总数",
			},
			[]string{"name", "result"},
		)

		CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "circuit_breaker_consecutive_failures",
				Help: "熔断器当前连续失败次数",
			},
			[]string{"name"},
		)

		MessagesPublishedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "messages_published_total",
				Help: "消息发布总数",
			},
			[]string{"exchange", "routing_key", "result"},
		)

		MessagesConsumedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "messages_consumed_total",
				Help: "消息消费总数",
			},
			[]string{"queue", "result"},
		)

		MessageProcessingDuration = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "message_processing_duration_seconds",
				Help:    "消息处理耗时（秒）",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5},
			},
		)
	})
}

// Handler /metrics端点
func Handler() http.Handler {
	return promhttp.Handler()
}

// =========================================
// 便捷函数
// 指标未初始化时（如单元测试）静默跳过
// =========================================

// IncCounter 递增Counter
func IncCounter(counter prometheus.Counter) {
	if counter == nil {
		return
	}
	counter.Inc()
}

// AddCounter Counter累加
func AddCounter(counter prometheus.Counter, v float64) {
	if counter == nil {
		return
	}
	counter.Add(v)
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	if counter == nil {
		return
	}
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Dec()
}

// SetGaugeVec 设置GaugeVec值（带标签）
func SetGaugeVec(gauge *prometheus.GaugeVec, labels map[string]string, value float64) {
	if gauge == nil {
		return
	}
	gauge.With(labels).Set(value)
}

// ObserveHistogram 记录Histogram观测值
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	if histogram == nil {
		return
	}
	histogram.Observe(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	if histogram == nil {
		return
	}
	histogram.With(labels).Observe(value)
}

// CacheResult 记录一次缓存访问结果（hit/miss/error）
func CacheResult(cache, result string) {
	IncCounterVec(CacheRequestsTotal, map[string]string{"cache": cache, "result": result})
}
