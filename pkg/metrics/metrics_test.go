package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// TestInitMetrics 测试指标初始化（重复调用不应panic）
func TestInitMetrics(t *testing.T) {
	InitMetrics()
	InitMetrics()

	if HTTPRequestsTotal == nil || SalesCreatedTotal == nil || CacheRequestsTotal == nil {
		t.Fatal("指标未初始化")
	}
}

// TestSaleCounters 测试销售指标
func TestSaleCounters(t *testing.T) {
	InitMetrics()

	IncCounterVec(SalesCreatedTotal, map[string]string{"payment_method": "CASH"})
	IncCounterVec(SalesCreatedTotal, map[string]string{"payment_method": "CASH"})
	IncCounterVec(SalesCreatedTotal, map[string]string{"payment_method": "CARD"})

	if v := getCounterVecValue(t, SalesCreatedTotal, map[string]string{"payment_method": "CASH"}); v != 2 {
		t.Errorf("CASH计数错误: expected=2, got=%f", v)
	}

	before := getCounterValue(t, SaleAmountTotal)
	AddCounter(SaleAmountTotal, 54)
	if v := getCounterValue(t, SaleAmountTotal); v-before != 54 {
		t.Errorf("销售额累计错误: got=%f", v-before)
	}
}

// TestCacheResult 测试缓存命中统计
func TestCacheResult(t *testing.T) {
	InitMetrics()

	CacheResult("catalog", "hit")
	CacheResult("catalog", "miss")
	CacheResult("catalog", "hit")

	if v := getCounterVecValue(t, CacheRequestsTotal, map[string]string{"cache": "catalog", "result": "hit"}); v != 2 {
		t.Errorf("命中次数错误: expected=2, got=%f", v)
	}
}

// TestGauge 测试Gauge递增递减
func TestGauge(t *testing.T) {
	InitMetrics()

	start := getGaugeValue(t, HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	DecGauge(HTTPRequestsInProgress)

	if v := getGaugeValue(t, HTTPRequestsInProgress); v-start != 1 {
		t.Errorf("Gauge值错误: expected=+1, got=%f", v-start)
	}
}

// TestHistogram 测试Histogram观测
func TestHistogram(t *testing.T) {
	InitMetrics()

	for _, v := range []float64{0.01, 0.05, 0.2} {
		ObserveHistogram(SaleProcessingDuration, v)
	}

	if c := getHistogramCount(t, SaleProcessingDuration); c < 3 {
		t.Errorf("Histogram观测次数错误: expected>=3, got=%d", c)
	}
}

// TestNilSafe 未初始化的指标调用便捷函数不应panic
func TestNilSafe(t *testing.T) {
	var c prometheus.Counter
	var cv *prometheus.CounterVec
	var h prometheus.Histogram

	IncCounter(c)
	IncCounterVec(cv, map[string]string{"a": "b"})
	ObserveHistogram(h, 1)
}

// TestHandler 测试/metrics端点输出
func TestHandler(t *testing.T) {
	InitMetrics()
	IncCounterVec(SalesFailedTotal, map[string]string{"kind": "insufficient_stock"})

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if !strings.Contains(w.Body.String(), "pos_sales_failed_total") {
		t.Error("/metrics输出缺少销售失败指标")
	}
}

// 辅助函数：获取Counter值
func getCounterValue(t *testing.T, counter prometheus.Counter) float64 {
	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("读取Counter值失败: %v", err)
	}
	return metric.Counter.GetValue()
}

// 辅助函数：获取CounterVec值
func getCounterVecValue(t *testing.T, counterVec *prometheus.CounterVec, labels map[string]string) float64 {
	return getCounterValue(t, counterVec.With(labels))
}

// 辅助函数：获取Gauge值
func getGaugeValue(t *testing.T, gauge prometheus.Gauge) float64 {
	var metric dto.Metric
	if err := gauge.Write(&metric); err != nil {
		t.Fatalf("读取Gauge值失败: %v", err)
	}
	return metric.Gauge.GetValue()
}

// 辅助函数：获取Histogram观测次数
func getHistogramCount(t *testing.T, histogram prometheus.Histogram) uint64 {
	var metric dto.Metric
	if err := histogram.Write(&metric); err != nil {
		t.Fatalf("读取Histogram值失败: %v", err)
	}
	return metric.Histogram.GetSampleCount()
}
