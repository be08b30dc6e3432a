package tracing

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTestProvider(t *testing.T) (*sdktrace.TracerProvider, *tracetest.InMemoryExporter) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp, err := NewProvider("posbuzz-test", exporter, 1)
	if err != nil {
		t.Fatalf("创建Provider失败: %v", err)
	}
	Install(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
	})
	return tp, exporter
}

// TestStartSpan 测试父子Span关系
func TestStartSpan(t *testing.T) {
	newTestProvider(t)

	ctx, root := StartSpan(context.Background(), "sale", "CreateSale")
	defer root.End()

	_, child := StartSpan(ctx, "sale", "LockProduct")
	defer child.End()

	if !root.SpanContext().IsValid() {
		t.Fatal("根Span无效")
	}
	if child.SpanContext().TraceID() != root.SpanContext().TraceID() {
		t.Error("子Span应继承根Span的TraceID")
	}
	if child.SpanContext().SpanID() == root.SpanContext().SpanID() {
		t.Error("子Span的SpanID不应与根Span相同")
	}
}

// TestRecordError 测试错误记录
func TestRecordError(t *testing.T) {
	tp, exporter := newTestProvider(t)

	_, span := StartSpan(context.Background(), "sale", "CreateSale")
	span.SetAttributes(attribute.Int("item_count", 2))
	RecordError(span, errors.New("库存不足"))
	span.End()

	_, noop := StartSpan(context.Background(), "sale", "Noop")
	RecordError(noop, nil)
	noop.End()

	if err := tp.ForceFlush(context.Background()); err != nil {
		t.Fatalf("刷新失败: %v", err)
	}
	spans := exporter.GetSpans()
	var found bool
	for _, s := range spans {
		if s.Name == "CreateSale" {
			found = true
			if s.Status.Code != codes.Error {
				t.Errorf("期望状态Error，实际%v", s.Status.Code)
			}
		}
		if s.Name == "Noop" && s.Status.Code == codes.Error {
			t.Error("nil错误不应标记失败")
		}
	}
	if !found {
		t.Error("未导出CreateSale Span")
	}
}

// TestExtractIDs 测试TraceID/SpanID提取
func TestExtractIDs(t *testing.T) {
	newTestProvider(t)

	if ExtractTraceID(context.Background()) != "" {
		t.Error("无Span的Context应返回空TraceID")
	}

	ctx, span := StartSpan(context.Background(), "sale", "Extract")
	defer span.End()

	if len(ExtractTraceID(ctx)) != 32 {
		t.Errorf("TraceID长度错误: %q", ExtractTraceID(ctx))
	}
	if len(ExtractSpanID(ctx)) != 16 {
		t.Errorf("SpanID长度错误: %q", ExtractSpanID(ctx))
	}
}
