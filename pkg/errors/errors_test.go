package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		code   int
		kind   Kind
		status int
	}{
		{ErrCodeInvalidParams, KindValidation, http.StatusBadRequest},
		{ErrCodeEmptyCart, KindValidation, http.StatusBadRequest},
		{ErrCodeWeakPassword, KindValidation, http.StatusBadRequest},
		{ErrCodeProductNotFound, KindNotFound, http.StatusNotFound},
		{ErrCodeSKUDuplicate, KindConflict, http.StatusConflict},
		{ErrCodeEmailDuplicate, KindConflict, http.StatusConflict},
		{ErrCodeInsufficientStock, KindInsufficientStock, http.StatusUnprocessableEntity},
		{ErrCodeTokenExpired, KindUnauthorized, http.StatusUnauthorized},
		{ErrCodeForbidden, KindForbidden, http.StatusForbidden},
		{ErrCodeBusinessError, KindBusiness, http.StatusUnprocessableEntity},
		{ErrCodeDatabaseError, KindInternal, http.StatusInternalServerError},
	}

	for _, c := range cases {
		e := New(c.code, "x")
		if e.Kind() != c.kind {
			t.Errorf("code=%d 期望类别%s，实际%s", c.code, c.kind, e.Kind())
		}
		if e.HTTPStatus() != c.status {
			t.Errorf("code=%d 期望状态码%d，实际%d", c.code, c.status, e.HTTPStatus())
		}
	}
}

func TestWithDetails_KeepsIdentity(t *testing.T) {
	base := New(ErrCodeInsufficientStock, "库存不足")
	detailed := base.WithDetails(map[string]interface{}{"product_id": uint(7)})

	if base.Details != nil {
		t.Fatal("WithDetails不应修改原错误")
	}
	if !errors.Is(detailed, base) {
		t.Error("附带详情的副本应能被errors.Is识别")
	}
	if detailed.Details["product_id"] != uint(7) {
		t.Errorf("详情丢失: %v", detailed.Details)
	}

	wrapped := fmt.Errorf("外层: %w", detailed)
	if !IsKind(wrapped, KindInsufficientStock) {
		t.Error("包装后的错误应保留类别")
	}
}

func TestGetAppError_WrapsPlainError(t *testing.T) {
	appErr := GetAppError(errors.New("connection refused"))
	if appErr.Kind() != KindInternal {
		t.Errorf("普通错误应归为internal，实际%s", appErr.Kind())
	}
	if appErr.Err == nil {
		t.Error("内部错误应被保留用于日志")
	}
}
