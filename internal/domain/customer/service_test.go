package customer

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/posbuzz/internal/domain/loyalty"
	apperrors "github.com/xiebiao/posbuzz/pkg/errors"
)

type memRepo struct {
	nextID uint
	items  map[uint]*Customer
}

func newMemRepo() *memRepo { return &memRepo{items: make(map[uint]*Customer)} }

func (r *memRepo) Create(_ context.Context, c *Customer) error {
	r.nextID++
	c.ID = r.nextID
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *memRepo) FindByID(_ context.Context, id uint) (*Customer, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, NotFound(id)
	}
	cp := *c
	return &cp, nil
}

func (r *memRepo) FindByEmail(_ context.Context, email string) (*Customer, error) {
	for _, c := range r.items {
		if c.Email != nil && *c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, ErrCustomerNotFound
}

func (r *memRepo) Update(_ context.Context, c *Customer) error {
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *memRepo) Delete(_ context.Context, id uint) error {
	delete(r.items, id)
	return nil
}

func (r *memRepo) List(_ context.Context, _, _ int, _ string) ([]*Customer, int64, error) {
	var list []*Customer
	for _, c := range r.items {
		list = append(list, c)
	}
	return list, int64(len(list)), nil
}

func (r *memRepo) LockByID(ctx context.Context, id uint) (*Customer, error) {
	return r.FindByID(ctx, id)
}

func (r *memRepo) UpdateLoyalty(_ context.Context, id uint, points int, tier loyalty.Tier) error {
	c, ok := r.items[id]
	if !ok {
		return NotFound(id)
	}
	c.LoyaltyPoints = points
	c.Tier = tier
	return nil
}

func strPtr(s string) *string { return &s }

func TestService_CreateCustomer(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemRepo(), loyalty.DefaultProgram())

	c, err := svc.CreateCustomer(ctx, "  Alice ", strPtr("alice@example.com"), strPtr(""))
	require.NoError(t, err)
	assert.Equal(t, "Alice", c.Name)
	assert.Equal(t, loyalty.TierBronze, c.Tier)
	assert.Zero(t, c.LoyaltyPoints)
	assert.Nil(t, c.Phone, "空电话视为未填写")

	_, err = svc.CreateCustomer(ctx, "Alice 2", strPtr("alice@example.com"), nil)
	assert.ErrorIs(t, err, ErrEmailDuplicate)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

	_, err = svc.CreateCustomer(ctx, "Bob", strPtr("not-an-email"), nil)
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = svc.CreateCustomer(ctx, "  ", nil, nil)
	assert.ErrorIs(t, err, ErrInvalidName)

	walkIn, err := svc.CreateCustomer(ctx, "Walk-in", nil, strPtr("13800000000"))
	require.NoError(t, err)
	assert.Nil(t, walkIn.Email)
}

func TestService_UpdateCustomer(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemRepo(), loyalty.DefaultProgram())

	alice, err := svc.CreateCustomer(ctx, "Alice", strPtr("alice@example.com"), nil)
	require.NoError(t, err)
	bob, err := svc.CreateCustomer(ctx, "Bob", strPtr("bob@example.com"), nil)
	require.NoError(t, err)

	_, err = svc.UpdateCustomer(ctx, bob.ID, UpdateFields{Email: strPtr("alice@example.com")})
	assert.ErrorIs(t, err, ErrEmailDuplicate)

	updated, err := svc.UpdateCustomer(ctx, alice.ID, UpdateFields{Email: strPtr("alice@example.com"), Phone: strPtr("555-0100")})
	require.NoError(t, err)
	assert.Equal(t, "555-0100", *updated.Phone)

	cleared, err := svc.UpdateCustomer(ctx, alice.ID, UpdateFields{Email: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, cleared.Email)

	_, err = svc.UpdateCustomer(ctx, 404, UpdateFields{})
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestCustomer_ApplyAccrual(t *testing.T) {
	program := loyalty.DefaultProgram()
	c := NewCustomer("Alice", nil, nil, program.BaseTier())
	c.LoyaltyPoints = 495

	c.ApplyAccrual(program.Accrue(c.LoyaltyPoints, c.Tier, decimal.NewFromInt(54)))

	assert.Equal(t, 500, c.LoyaltyPoints)
	assert.Equal(t, loyalty.TierSilver, c.Tier)
}
