package cart

import (
	"context"
	"testing"

	"payquick/internal/logging"
	"payquick/internal/models"
	"payquick/internal/repositories/securestore"
	"payquick/internal/security"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPersister struct {
	mock.Mock
}

func (m *MockPersister) Save(ctx context.Context, key string, v any) bool {
	return m.Called(ctx, key, v).Bool(0)
}

var (
	mug   = models.Product{ID: "p1", Name: "Mug", Price: 9.99}
	shirt = models.Product{ID: "p2", Name: "Shirt", Price: 19.5}
)

func TestCart_Add(t *testing.T) {
	c := New(nil, logging.Discard())
	ctx := context.Background()

	snap, err := c.Add(ctx, mug)
	require.NoError(t, err)
	assert.Len(t, snap.Items, 1)
	assert.Equal(t, 1, snap.Items[0].Quantity)

	snap, err = c.Add(ctx, mug)
	require.NoError(t, err)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, 2, snap.Items[0].Quantity)
	assert.Equal(t, 19.98, snap.Total)

	snap, err = c.Add(ctx, shirt)
	require.NoError(t, err)
	assert.Len(t, snap.Items, 2)
	assert.Equal(t, 39.48, snap.Total)
}

func TestCart_AddInvalid(t *testing.T) {
	c := New(nil, logging.Discard())
	_, err := c.Add(context.Background(), models.Product{Name: "no id"})
	assert.ErrorIs(t, err, ErrInvalidProduct)
	_, err = c.Add(context.Background(), models.Product{ID: "x", Price: -1})
	assert.ErrorIs(t, err, ErrInvalidProduct)
	assert.True(t, c.IsEmpty())
}

func TestCart_UpdateQuantity(t *testing.T) {
	c := New(nil, logging.Discard())
	ctx := context.Background()
	_, _ = c.Add(ctx, mug)
	_, _ = c.Add(ctx, shirt)

	snap, err := c.UpdateQuantity(ctx, "p1", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Items[0].Quantity)

	snap, err = c.UpdateQuantity(ctx, "p1", 0)
	require.NoError(t, err)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "p2", snap.Items[0].ID)

	_, err = c.UpdateQuantity(ctx, "missing", 2)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestCart_RemoveAndClear(t *testing.T) {
	c := New(nil, logging.Discard())
	ctx := context.Background()
	_, _ = c.Add(ctx, mug)
	_, _ = c.Add(ctx, shirt)

	snap, err := c.Remove(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, snap.Items, 1)
	assert.Equal(t, 19.5, snap.Total)

	_, err = c.Remove(ctx, "p1")
	assert.ErrorIs(t, err, ErrItemNotFound)

	snap = c.Clear(ctx)
	assert.Empty(t, snap.Items)
	assert.Zero(t, snap.Total)
	assert.True(t, c.IsEmpty())
}

func TestCart_PersistsEveryMutation(t *testing.T) {
	store := new(MockPersister)
	store.On("Save", mock.Anything, securestore.KeyCart, mock.AnythingOfType("models.Cart")).Return(true)

	c := New(store, logging.Discard())
	ctx := context.Background()
	_, _ = c.Add(ctx, mug)
	_, _ = c.UpdateQuantity(ctx, "p1", 2)
	_, _ = c.Remove(ctx, "p1")
	c.Clear(ctx)

	store.AssertNumberOfCalls(t, "Save", 4)
}

func TestCart_PersistFailureKeepsChange(t *testing.T) {
	store := new(MockPersister)
	store.On("Save", mock.Anything, mock.Anything, mock.Anything).Return(false)

	c := New(store, logging.Discard())
	snap, err := c.Add(context.Background(), mug)
	require.NoError(t, err)
	assert.Len(t, snap.Items, 1)
	assert.False(t, c.IsEmpty())
}

func TestCart_LoadRoundTrip(t *testing.T) {
	cipher, err := security.NewCipher("secret")
	require.NoError(t, err)
	store := securestore.New(securestore.NewMemoryBackend(), cipher, securestore.DefaultPrefix, logging.Discard())
	ctx := context.Background()

	c := New(store, logging.Discard())
	_, _ = c.Add(ctx, mug)
	_, _ = c.Add(ctx, shirt)

	var saved models.Cart
	require.True(t, store.Retrieve(ctx, securestore.KeyCart, &saved))

	restored := New(store, logging.Discard())
	restored.Load(saved)
	assert.Equal(t, c.Snapshot(), restored.Snapshot())
}

func TestCart_PaymentItems(t *testing.T) {
	c := New(nil, logging.Discard())
	_, _ = c.Add(context.Background(), mug)
	assert.Equal(t, []models.PaymentItem{{ID: "p1", Name: "Mug", Price: 9.99, Quantity: 1}}, c.PaymentItems())
}

func TestComputeTotals(t *testing.T) {
	items := []models.CartItem{
		{ID: "p1", Product: models.Product{Price: 10}, Quantity: 1},
	}
	assert.Equal(t, Totals{Subtotal: 10, Tax: 0.8, Total: 10.8}, ComputeTotals(items, DefaultTaxRate))

	items = []models.CartItem{
		{ID: "p1", Product: models.Product{Price: 0.1}, Quantity: 3},
		{ID: "p2", Product: models.Product{Price: 19.99}, Quantity: 1},
	}
	assert.Equal(t, Totals{Subtotal: 20.29, Tax: 1.62, Total: 21.91}, ComputeTotals(items, DefaultTaxRate))

	assert.Equal(t, Totals{}, ComputeTotals(nil, DefaultTaxRate))
}

func TestParseTaxRate(t *testing.T) {
	assert.True(t, ParseTaxRate("0.2").Equal(decimal.RequireFromString("0.2")))
	assert.True(t, ParseTaxRate("abc").Equal(DefaultTaxRate))
	assert.True(t, ParseTaxRate("-1").Equal(DefaultTaxRate))
}
