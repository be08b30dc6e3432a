package circuitbreaker

import (
	"errors"
	"sync"
	"testing"
	"time"
)

var errUnavailable = errors.New("redis: connection refused")

func tripAfter(n uint32) func(Counts) bool {
	return func(c Counts) bool { return c.ConsecutiveFailures >= n }
}

// TestCircuitBreaker_ClosedState 关闭状态下请求正常通过
func TestCircuitBreaker_ClosedState(t *testing.T) {
	cb := NewCircuitBreaker("test", Config{Timeout: 30 * time.Second})

	for i := 0; i < 10; i++ {
		if err := cb.Execute(func() error { return nil }); err != nil {
			t.Fatalf("期望成功，实际失败: %v", err)
		}
	}

	if cb.State() != StateClosed {
		t.Errorf("期望状态为CLOSED，实际%s", cb.State())
	}
	if c := cb.Counts(); c.TotalSuccesses != 10 {
		t.Errorf("期望成功10次，实际%d次", c.TotalSuccesses)
	}
}

// TestCircuitBreaker_OpenState 连续失败后熔断，不再调用实际函数
func TestCircuitBreaker_OpenState(t *testing.T) {
	cb := NewCircuitBreaker("test", Config{
		Timeout:     30 * time.Second,
		ReadyToTrip: tripAfter(3),
	})

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errUnavailable })
	}

	if cb.State() != StateOpen {
		t.Fatalf("期望状态为OPEN，实际%s", cb.State())
	}

	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})
	if !errors.Is(err, ErrOpenState) {
		t.Errorf("期望返回ErrOpenState，实际%v", err)
	}
	if called {
		t.Error("熔断器打开时不应该调用实际函数")
	}
}

// TestCircuitBreaker_HalfOpenRecovery 超时后半开探测成功则关闭
func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	cb := NewCircuitBreaker("test", Config{
		MaxRequests: 1,
		Timeout:     50 * time.Millisecond,
		ReadyToTrip: tripAfter(1),
	})

	_ = cb.Execute(func() error { return errUnavailable })
	if cb.State() != StateOpen {
		t.Fatalf("期望OPEN，实际%s", cb.State())
	}

	time.Sleep(80 * time.Millisecond)
	if cb.State() != StateHalfOpen {
		t.Fatalf("期望HALF_OPEN，实际%s", cb.State())
	}

	if err := cb.Execute(func() error { return nil }); err != nil {
		t.Fatalf("半开探测失败: %v", err)
	}
	if cb.State() != StateClosed {
		t.Errorf("探测成功后期望CLOSED，实际%s", cb.State())
	}
}

// TestCircuitBreaker_HalfOpenToOpen 半开探测失败立即重新熔断
func TestCircuitBreaker_HalfOpenToOpen(t *testing.T) {
	cb := NewCircuitBreaker("test", Config{
		Timeout:     50 * time.Millisecond,
		ReadyToTrip: tripAfter(1),
	})

	_ = cb.Execute(func() error { return errUnavailable })
	time.Sleep(80 * time.Millisecond)

	_ = cb.Execute(func() error { return errUnavailable })
	if cb.State() != StateOpen {
		t.Errorf("期望OPEN，实际%s", cb.State())
	}
}

// TestCircuitBreaker_IsSuccessful 预期错误（如缓存未命中）不计入失败
func TestCircuitBreaker_IsSuccessful(t *testing.T) {
	errMiss := errors.New("redis: nil")
	cb := NewCircuitBreaker("test", Config{
		ReadyToTrip:  tripAfter(2),
		IsSuccessful: func(err error) bool { return err == nil || errors.Is(err, errMiss) },
	})

	for i := 0; i < 5; i++ {
		if err := cb.Execute(func() error { return errMiss }); !errors.Is(err, errMiss) {
			t.Fatalf("应原样返回业务错误，实际%v", err)
		}
	}
	if cb.State() != StateClosed {
		t.Errorf("未命中不应触发熔断，实际%s", cb.State())
	}
}

// TestCircuitBreaker_StateChangeCallback 状态变化回调
func TestCircuitBreaker_StateChangeCallback(t *testing.T) {
	var mu sync.Mutex
	var transitions []string

	cb := NewCircuitBreaker("catalog-cache", Config{
		Timeout:     30 * time.Second,
		ReadyToTrip: tripAfter(2),
		OnStateChange: func(name string, from, to State) {
			mu.Lock()
			defer mu.Unlock()
			transitions = append(transitions, name+":"+from.String()+"->"+to.String())
		},
	})

	_ = cb.Execute(func() error { return errUnavailable })
	_ = cb.Execute(func() error { return errUnavailable })

	mu.Lock()
	defer mu.Unlock()
	if len(transitions) != 1 || transitions[0] != "catalog-cache:CLOSED->OPEN" {
		t.Errorf("状态变化记录不符: %v", transitions)
	}
}

// TestCircuitBreaker_CountsResetOnStateChange 状态切换后计数清零
func TestCircuitBreaker_CountsResetOnStateChange(t *testing.T) {
	cb := NewCircuitBreaker("test", Config{
		Timeout:     30 * time.Second,
		ReadyToTrip: tripAfter(3),
	})

	_ = cb.Execute(func() error { return errUnavailable })
	_ = cb.Execute(func() error { return errUnavailable })
	if c := cb.Counts(); c.ConsecutiveFailures != 2 || c.Requests != 2 {
		t.Fatalf("计数不符: %+v", c)
	}

	_ = cb.Execute(func() error { return errUnavailable })
	if cb.State() != StateOpen {
		t.Fatalf("期望OPEN，实际%s", cb.State())
	}
	if c := cb.Counts(); c != (Counts{}) {
		t.Errorf("熔断后计数应清零: %+v", c)
	}
}

func BenchmarkCircuitBreaker(b *testing.B) {
	cb := NewCircuitBreaker("bench", Config{})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = cb.Execute(func() error { return nil })
	}
}
