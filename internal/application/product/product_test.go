package product

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/xiebiao/posbuzz/internal/domain/inventory"
	"github.com/xiebiao/posbuzz/internal/domain/product"
	"github.com/xiebiao/posbuzz/internal/infrastructure/persistence/redis"
)

// countingRepo 内存商品仓储,记录查库次数
type countingRepo struct {
	mu       sync.Mutex
	products map[uint]*product.Product
	nextID   uint
	reads    int
}

func newCountingRepo() *countingRepo {
	return &countingRepo{products: map[uint]*product.Product{}}
}

func (r *countingRepo) readCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reads
}

func (r *countingRepo) Create(_ context.Context, p *product.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	p.ID = r.nextID
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *countingRepo) FindByID(_ context.Context, id uint) (*product.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads++
	p, ok := r.products[id]
	if !ok {
		return nil, product.NotFound(id)
	}
	cp := *p
	return &cp, nil
}

func (r *countingRepo) FindBySKU(_ context.Context, sku string) (*product.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, product.ErrProductNotFound
}

func (r *countingRepo) Update(_ context.Context, p *product.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *countingRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

func (r *countingRepo) List(_ context.Context, params product.ListParams) ([]*product.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads++
	var result []*product.Product
	for id := uint(1); id <= r.nextID; id++ {
		p, ok := r.products[id]
		if !ok {
			continue
		}
		if params.Search != "" && !strings.Contains(p.Name, params.Search) && !strings.Contains(p.SKU, params.Search) {
			continue
		}
		cp := *p
		result = append(result, &cp)
	}
	return result, int64(len(result)), nil
}

func (r *countingRepo) LockByID(ctx context.Context, id uint) (*product.Product, error) {
	return r.FindByID(ctx, id)
}

func (r *countingRepo) UpdateStock(_ context.Context, id uint, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return product.NotFound(id)
	}
	if p.StockQuantity+delta < 0 {
		return product.InsufficientStock(id, p.StockQuantity, -delta)
	}
	p.StockQuantity += delta
	return nil
}

type memLogs struct {
	mu   sync.Mutex
	logs []*inventory.Log
}

func (m *memLogs) Create(_ context.Context, l *inventory.Log) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l.ID = uint(len(m.logs) + 1)
	m.logs = append(m.logs, l)
	return nil
}

func (m *memLogs) ListByProductID(_ context.Context, productID uint, _, _ int) ([]*inventory.Log, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*inventory.Log
	for i := len(m.logs) - 1; i >= 0; i-- {
		if m.logs[i].ProductID == productID {
			result = append(result, m.logs[i])
		}
	}
	return result, int64(len(result)), nil
}

type passthroughTx struct{}

func (passthroughTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type catalogFixture struct {
	repo   *countingRepo
	logs   *memLogs
	mr     *miniredis.Miniredis
	query  *CatalogQuery
	manage *ManageUseCase
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	t.Helper()
	logger := zaptest.NewLogger(t)

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1, DialTimeout: 200 * time.Millisecond})
	t.Cleanup(func() { client.Close() })
	cache := redis.NewCatalogCache(client, redis.CatalogCacheOptions{TTL: 300 * time.Second, BreakerTimeout: time.Minute}, logger)

	repo := newCountingRepo()
	logs := &memLogs{}
	service := product.NewService(repo)

	return &catalogFixture{
		repo:   repo,
		logs:   logs,
		mr:     mr,
		query:  NewCatalogQuery(service, cache, logger),
		manage: NewManageUseCase(service, repo, logs, passthroughTx{}, cache, logger),
	}
}

func (f *catalogFixture) create(t *testing.T, name, sku string, stock int) *ProductResponse {
	t.Helper()
	resp, err := f.manage.Create(context.Background(), 1, product.CreateParams{
		Name:          name,
		SKU:           sku,
		Price:         decimal.RequireFromString("2.50"),
		CostPrice:     decimal.RequireFromString("1.10"),
		StockQuantity: stock,
	})
	require.NoError(t, err)
	return resp
}

func TestCatalogQuery_ListReadThrough(t *testing.T) {
	f := newCatalogFixture(t)
	f.create(t, "Cola", "BEV-001", 20)
	ctx := context.Background()

	first, err := f.query.List(ctx, ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, f.repo.readCount())
	assert.True(t, f.mr.Exists("products:page:1:limit:10:search:none"))
	assert.Equal(t, 300*time.Second, f.mr.TTL("products:page:1:limit:10:search:none"))

	second, err := f.query.List(ctx, ListRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, f.repo.readCount(), "命中缓存不应查库")
	assert.Equal(t, string(first), string(second))

	var list ProductListResponse
	require.NoError(t, json.Unmarshal(second, &list))
	assert.Equal(t, int64(1), list.Total)
	assert.Equal(t, "2.50", list.Items[0].Price)
}

func TestCatalogQuery_HitReturnsStoredBytes(t *testing.T) {
	f := newCatalogFixture(t)
	stored := `{"id":5,"name":"cached"}`
	require.NoError(t, f.mr.Set("product:5", stored))

	got, err := f.query.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, stored, string(got))
	assert.Equal(t, 0, f.repo.readCount())
}

func TestCatalogQuery_NormalizesListKey(t *testing.T) {
	f := newCatalogFixture(t)

	_, err := f.query.List(context.Background(), ListRequest{Page: -1, Limit: 1000, Search: "cola"})
	require.NoError(t, err)
	assert.True(t, f.mr.Exists("products:page:1:limit:100:search:cola"))
}

func TestCatalogQuery_NotFoundIsNotCached(t *testing.T) {
	f := newCatalogFixture(t)

	_, err := f.query.Get(context.Background(), 42)
	assert.ErrorIs(t, err, product.ErrProductNotFound)
	assert.False(t, f.mr.Exists("product:42"))
}

func TestCatalogQuery_DegradesWhenCacheDown(t *testing.T) {
	f := newCatalogFixture(t)
	created := f.create(t, "Cola", "BEV-001", 20)
	f.mr.Close()

	for i := 0; i < 3; i++ {
		data, err := f.query.Get(context.Background(), created.ID)
		require.NoError(t, err)

		var p ProductResponse
		require.NoError(t, json.Unmarshal(data, &p))
		assert.Equal(t, "Cola", p.Name)
	}
	assert.Equal(t, 3, f.repo.readCount())
}

func TestManage_WritesInvalidateCache(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	created := f.create(t, "Cola", "BEV-001", 20)

	warm := func() {
		_, err := f.query.Get(ctx, created.ID)
		require.NoError(t, err)
		_, err = f.query.List(ctx, ListRequest{Page: 2, Limit: 5, Search: "Co"})
		require.NoError(t, err)
		require.True(t, f.mr.Exists("product:1"))
		require.True(t, f.mr.Exists("products:page:2:limit:5:search:Co"))
	}
	assertCold := func(op string) {
		assert.False(t, f.mr.Exists("product:1"), op)
		assert.False(t, f.mr.Exists("products:page:2:limit:5:search:Co"), op)
	}

	warm()
	name := "Cola Zero"
	_, err := f.manage.Update(ctx, 1, created.ID, product.UpdateFields{Name: &name})
	require.NoError(t, err)
	assertCold("update")

	warm()
	_, err = f.manage.Restock(ctx, 1, created.ID, 5, "weekly delivery")
	require.NoError(t, err)
	assertCold("restock")

	warm()
	require.NoError(t, f.manage.Delete(ctx, created.ID))
	assertCold("delete")
}

func TestManage_InventoryLedger(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	created := f.create(t, "Cola", "BEV-001", 20)

	restocked, err := f.manage.Restock(ctx, 1, created.ID, 5, "")
	require.NoError(t, err)
	assert.Equal(t, 25, restocked.StockQuantity)

	stock := 18
	_, err = f.manage.Update(ctx, 1, created.ID, product.UpdateFields{StockQuantity: &stock})
	require.NoError(t, err)

	logs, total, err := f.manage.InventoryLogs(ctx, created.ID, 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(3), total)

	assert.Equal(t, "ADJUSTMENT", logs[0].Reason)
	assert.Equal(t, -7, logs[0].Delta)
	assert.Equal(t, 25, logs[0].StockBefore)
	assert.Equal(t, 18, logs[0].StockAfter)

	assert.Equal(t, "RESTOCK", logs[1].Reason)
	assert.Equal(t, 5, logs[1].Delta)

	assert.Equal(t, "RESTOCK", logs[2].Reason)
	assert.Equal(t, "Initial stock", logs[2].Note)
	assert.Equal(t, 20, logs[2].StockAfter)
}

func TestManage_RestockRejectsNonPositive(t *testing.T) {
	f := newCatalogFixture(t)
	created := f.create(t, "Cola", "BEV-001", 20)

	_, err := f.manage.Restock(context.Background(), 1, created.ID, 0, "")
	assert.ErrorIs(t, err, product.ErrInvalidQuantity)
}
