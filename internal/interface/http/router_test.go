package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	appanalytics "github.com/xiebiao/posbuzz/internal/application/analytics"
	appsale "github.com/xiebiao/posbuzz/internal/application/sale"
	"github.com/xiebiao/posbuzz/internal/domain/loyalty"
	"github.com/xiebiao/posbuzz/internal/domain/product"
	"github.com/xiebiao/posbuzz/internal/infrastructure/messaging"
	"github.com/xiebiao/posbuzz/internal/infrastructure/persistence/redis"
	api "github.com/xiebiao/posbuzz/internal/interface/http"
	"github.com/xiebiao/posbuzz/internal/interface/http/handler"
	"github.com/xiebiao/posbuzz/internal/interface/http/middleware"
	"github.com/xiebiao/posbuzz/pkg/jwt"
	"github.com/xiebiao/posbuzz/pkg/response"
)

// txFunc 把函数适配为事务管理器（不打开真实事务）
type txFunc func(ctx context.Context, fn func(ctx context.Context) error) error

func (f txFunc) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return f(ctx, fn)
}

type env struct {
	router  http.Handler
	jwt     *jwt.Manager
	txCalls int
}

func newEnv(t *testing.T, txErr error) *env {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := zaptest.NewLogger(t)
	e := &env{jwt: jwt.NewManager("test-secret", time.Hour, 24*time.Hour)}

	tx := txFunc(func(ctx context.Context, fn func(ctx context.Context) error) error {
		e.txCalls++
		return txErr
	})
	createSale := appsale.NewCreateSaleUseCase(appsale.Repositories{}, loyalty.DefaultProgram(), tx, nil,
		messaging.NewNopPublisher(logger), logger)

	handlers := api.Handlers{
		User:      handler.NewUserHandler(nil, nil, nil, nil),
		Product:   handler.NewProductHandler(nil, nil),
		Sale:      handler.NewSaleHandler(createSale, nil, nil),
		Customer:  handler.NewCustomerHandler(nil, nil),
		Supplier:  handler.NewSupplierHandler(nil),
		Promotion: handler.NewPromotionHandler(nil),
		Analytics: handler.NewAnalyticsHandler(appanalytics.NewQueryUseCase(nil)),
	}
	auth := middleware.NewAuthMiddleware(e.jwt, redis.NewSessionStore(client))
	e.router = api.NewRouter(api.RouterOptions{Mode: "test"}, logger, handlers, auth)
	return e
}

func (e *env) token(t *testing.T, userID uint, role string) string {
	pair, err := e.jwt.GenerateToken(userID, "u@pos.test", role)
	require.NoError(t, err)
	return pair.AccessToken
}

func (e *env) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var resp response.Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestPingAndMetrics(t *testing.T) {
	e := newEnv(t, nil)

	w, resp := e.do(t, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, resp.Code)

	w, _ = e.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSales_RequireLogin(t *testing.T) {
	e := newEnv(t, nil)

	w, resp := e.do(t, http.MethodPost, "/api/v1/sales", "", map[string]interface{}{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "unauthorized", resp.Kind)
}

func TestAdminRoutes_ForbiddenForCashier(t *testing.T) {
	e := newEnv(t, nil)
	cashier := e.token(t, 2, "CASHIER")

	cases := []struct{ method, path string }{
		{http.MethodPost, "/api/v1/products"},
		{http.MethodPut, "/api/v1/products/1"},
		{http.MethodDelete, "/api/v1/products/1"},
		{http.MethodPost, "/api/v1/products/1/restock"},
		{http.MethodGet, "/api/v1/products/1/inventory-logs"},
		{http.MethodDelete, "/api/v1/customers/1"},
		{http.MethodDelete, "/api/v1/suppliers/1"},
		{http.MethodPost, "/api/v1/promotions"},
		{http.MethodGet, "/api/v1/analytics/summary"},
		{http.MethodGet, "/api/v1/analytics/staff-performance"},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w, resp := e.do(t, tc.method, tc.path, cashier, map[string]interface{}{})
			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.Equal(t, "forbidden", resp.Kind)
		})
	}
}

func TestCreateSale_ValidationBeforeTransaction(t *testing.T) {
	e := newEnv(t, nil)
	cashier := e.token(t, 2, "CASHIER")

	w, resp := e.do(t, http.MethodPost, "/api/v1/sales", cashier, map[string]interface{}{"items": []interface{}{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation", resp.Kind)

	w, resp = e.do(t, http.MethodPost, "/api/v1/sales", cashier, map[string]interface{}{
		"items": []map[string]interface{}{{"product_id": 4, "quantity": 0}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.EqualValues(t, 4, resp.Details["product_id"])

	w, _ = e.do(t, http.MethodPost, "/api/v1/sales", cashier, map[string]interface{}{
		"items":          []map[string]interface{}{{"product_id": 4, "quantity": 1}},
		"payment_method": "BITCOIN",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Zero(t, e.txCalls)
}

func TestCreateSale_InsufficientStock(t *testing.T) {
	e := newEnv(t, product.InsufficientStock(1, 2, 3))
	cashier := e.token(t, 2, "CASHIER")

	w, resp := e.do(t, http.MethodPost, "/api/v1/sales", cashier, map[string]interface{}{
		"items": []map[string]interface{}{{"product_id": 1, "quantity": 3}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "insufficient_stock", resp.Kind)
	assert.EqualValues(t, 1, resp.Details["product_id"])
	assert.EqualValues(t, 2, resp.Details["available"])
	assert.EqualValues(t, 3, resp.Details["requested"])
	assert.Equal(t, 1, e.txCalls)
}

func TestAnalytics_ParamValidation(t *testing.T) {
	e := newEnv(t, nil)
	admin := e.token(t, 1, "ADMIN")

	w, _ := e.do(t, http.MethodGet, "/api/v1/analytics/trend?days=0", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = e.do(t, http.MethodGet, "/api/v1/analytics/trend?days=abc", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = e.do(t, http.MethodGet, "/api/v1/analytics/top-products?limit=101", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvalidPathID(t *testing.T) {
	e := newEnv(t, nil)

	w, resp := e.do(t, http.MethodGet, "/api/v1/products/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation", resp.Kind)
}
