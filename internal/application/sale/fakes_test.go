package sale

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/xiebiao/posbuzz/internal/domain/customer"
	"github.com/xiebiao/posbuzz/internal/domain/inventory"
	"github.com/xiebiao/posbuzz/internal/domain/loyalty"
	"github.com/xiebiao/posbuzz/internal/domain/product"
	"github.com/xiebiao/posbuzz/internal/domain/promotion"
	"github.com/xiebiao/posbuzz/internal/domain/sale"
)

// memStore 内存数据源,配合fakeTx模拟事务回滚
type memStore struct {
	products   map[uint]product.Product
	customers  map[uint]customer.Customer
	promotions map[uint]*promotion.Promotion
	sales      map[uint]sale.Sale
	logs       []inventory.Log
	operators  map[uint]string
	nextSaleID uint

	failSaleCreate error
}

func newMemStore() *memStore {
	return &memStore{
		products:   map[uint]product.Product{},
		customers:  map[uint]customer.Customer{},
		promotions: map[uint]*promotion.Promotion{},
		sales:      map[uint]sale.Sale{},
		operators:  map[uint]string{},
	}
}

func (s *memStore) snapshot() *memStore {
	cp := *s
	cp.products = make(map[uint]product.Product, len(s.products))
	for k, v := range s.products {
		cp.products[k] = v
	}
	cp.customers = make(map[uint]customer.Customer, len(s.customers))
	for k, v := range s.customers {
		cp.customers[k] = v
	}
	cp.sales = make(map[uint]sale.Sale, len(s.sales))
	for k, v := range s.sales {
		cp.sales[k] = v
	}
	cp.logs = append([]inventory.Log(nil), s.logs...)
	return &cp
}

// fakeTx 串行执行事务,fn返回错误时恢复快照
type fakeTx struct {
	mu    sync.Mutex
	store *memStore
	calls int
}

func (tx *fakeTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	tx.calls++

	snap := tx.store.snapshot()
	if err := fn(ctx); err != nil {
		*tx.store = *snap
		return err
	}
	return nil
}

func (tx *fakeTx) callCount() int {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	return tx.calls
}

// ---- product.Repository ----

type memProductRepo struct{ s *memStore }

func (r memProductRepo) Create(_ context.Context, p *product.Product) error {
	p.ID = uint(len(r.s.products) + 1)
	r.s.products[p.ID] = *p
	return nil
}

func (r memProductRepo) FindByID(_ context.Context, id uint) (*product.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, product.NotFound(id)
	}
	return &p, nil
}

func (r memProductRepo) FindBySKU(_ context.Context, sku string) (*product.Product, error) {
	for _, p := range r.s.products {
		if p.SKU == sku {
			cp := p
			return &cp, nil
		}
	}
	return nil, product.ErrProductNotFound
}

func (r memProductRepo) Update(_ context.Context, p *product.Product) error {
	r.s.products[p.ID] = *p
	return nil
}

func (r memProductRepo) Delete(_ context.Context, id uint) error {
	delete(r.s.products, id)
	return nil
}

func (r memProductRepo) List(_ context.Context, _ product.ListParams) ([]*product.Product, int64, error) {
	return nil, 0, errors.New("not used")
}

func (r memProductRepo) LockByID(ctx context.Context, id uint) (*product.Product, error) {
	return r.FindByID(ctx, id)
}

func (r memProductRepo) UpdateStock(_ context.Context, id uint, delta int) error {
	p, ok := r.s.products[id]
	if !ok {
		return product.NotFound(id)
	}
	if p.StockQuantity+delta < 0 {
		return product.InsufficientStock(id, p.StockQuantity, -delta)
	}
	p.StockQuantity += delta
	r.s.products[id] = p
	return nil
}

// ---- inventory.Repository ----

type memInventoryRepo struct{ s *memStore }

func (r memInventoryRepo) Create(_ context.Context, l *inventory.Log) error {
	l.ID = uint(len(r.s.logs) + 1)
	r.s.logs = append(r.s.logs, *l)
	return nil
}

func (r memInventoryRepo) ListByProductID(_ context.Context, productID uint, _, _ int) ([]*inventory.Log, int64, error) {
	var result []*inventory.Log
	for i := range r.s.logs {
		if r.s.logs[i].ProductID == productID {
			l := r.s.logs[i]
			result = append(result, &l)
		}
	}
	return result, int64(len(result)), nil
}

// ---- customer.Repository ----

type memCustomerRepo struct{ s *memStore }

func (r memCustomerRepo) Create(_ context.Context, c *customer.Customer) error {
	c.ID = uint(len(r.s.customers) + 1)
	r.s.customers[c.ID] = *c
	return nil
}

func (r memCustomerRepo) FindByID(_ context.Context, id uint) (*customer.Customer, error) {
	c, ok := r.s.customers[id]
	if !ok {
		return nil, customer.NotFound(id)
	}
	return &c, nil
}

func (r memCustomerRepo) FindByEmail(_ context.Context, _ string) (*customer.Customer, error) {
	return nil, customer.ErrCustomerNotFound
}

func (r memCustomerRepo) Update(_ context.Context, c *customer.Customer) error {
	r.s.customers[c.ID] = *c
	return nil
}

func (r memCustomerRepo) Delete(_ context.Context, id uint) error {
	delete(r.s.customers, id)
	return nil
}

func (r memCustomerRepo) List(_ context.Context, _, _ int, _ string) ([]*customer.Customer, int64, error) {
	return nil, 0, errors.New("not used")
}

func (r memCustomerRepo) LockByID(ctx context.Context, id uint) (*customer.Customer, error) {
	return r.FindByID(ctx, id)
}

func (r memCustomerRepo) UpdateLoyalty(_ context.Context, id uint, points int, tier loyalty.Tier) error {
	c, ok := r.s.customers[id]
	if !ok {
		return customer.NotFound(id)
	}
	c.LoyaltyPoints = points
	c.Tier = tier
	r.s.customers[id] = c
	return nil
}

// ---- promotion.Repository ----

type memPromotionRepo struct{ s *memStore }

func (r memPromotionRepo) Create(_ context.Context, p *promotion.Promotion) error {
	p.ID = uint(len(r.s.promotions) + 1)
	r.s.promotions[p.ID] = p
	return nil
}

func (r memPromotionRepo) FindByID(_ context.Context, id uint) (*promotion.Promotion, error) {
	p, ok := r.s.promotions[id]
	if !ok {
		return nil, promotion.NotFound(id)
	}
	return p, nil
}

func (r memPromotionRepo) Update(_ context.Context, p *promotion.Promotion) error {
	r.s.promotions[p.ID] = p
	return nil
}

func (r memPromotionRepo) Delete(_ context.Context, id uint) error {
	delete(r.s.promotions, id)
	return nil
}

func (r memPromotionRepo) List(_ context.Context) ([]*promotion.Promotion, error) {
	return nil, errors.New("not used")
}

func (r memPromotionRepo) ListActive(_ context.Context, _ time.Time) ([]*promotion.Promotion, error) {
	return nil, errors.New("not used")
}

// ---- sale.Repository ----

type memSaleRepo struct{ s *memStore }

func (r memSaleRepo) Create(_ context.Context, s *sale.Sale) error {
	if r.s.failSaleCreate != nil {
		return r.s.failSaleCreate
	}
	r.s.nextSaleID++
	s.ID = r.s.nextSaleID
	s.CreatedAt = time.Now()
	cp := *s
	cp.Items = append([]sale.Item(nil), s.Items...)
	r.s.sales[s.ID] = cp
	return nil
}

// FindByID 模拟预加载:补充商品名称与收银员姓名
func (r memSaleRepo) FindByID(_ context.Context, id uint) (*sale.Sale, error) {
	s, ok := r.s.sales[id]
	if !ok {
		return nil, sale.NotFound(id)
	}
	return r.hydrate(s), nil
}

func (r memSaleRepo) List(_ context.Context, params sale.ListParams) ([]*sale.Sale, int64, error) {
	var result []*sale.Sale
	for _, s := range r.s.sales {
		if params.OperatorID != nil && s.OperatorID != *params.OperatorID {
			continue
		}
		if params.CustomerID != nil && (s.CustomerID == nil || *s.CustomerID != *params.CustomerID) {
			continue
		}
		result = append(result, r.hydrate(s))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, int64(len(result)), nil
}

func (r memSaleRepo) ListByCustomer(ctx context.Context, customerID uint, limit int) ([]*sale.Sale, error) {
	result, _, err := r.List(ctx, sale.ListParams{CustomerID: &customerID})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, err
}

func (r memSaleRepo) hydrate(s sale.Sale) *sale.Sale {
	s.Items = append([]sale.Item(nil), s.Items...)
	for i := range s.Items {
		if p, ok := r.s.products[s.Items[i].ProductID]; ok {
			s.Items[i].ProductName = p.Name
			s.Items[i].ProductSKU = p.SKU
		}
	}
	s.OperatorName = r.s.operators[s.OperatorID]
	return &s
}

// ---- product.Cache / sale.EventPublisher ----

type recordingCache struct {
	mu          sync.Mutex
	invalidated []uint
	err         error
}

func (c *recordingCache) Get(context.Context, string) ([]byte, error) { return nil, product.ErrCacheMiss }
func (c *recordingCache) Set(context.Context, string, []byte) error   { return nil }

func (c *recordingCache) Invalidate(_ context.Context, ids ...uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, ids...)
	return c.err
}

type recordingEvents struct {
	mu     sync.Mutex
	events []*sale.CompletedEvent
	err    error
}

func (e *recordingEvents) PublishCompleted(_ context.Context, event *sale.CompletedEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
	return e.err
}
