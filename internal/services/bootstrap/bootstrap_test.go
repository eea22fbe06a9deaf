package bootstrap

import (
	"context"
	"testing"
	"time"

	"payquick/internal/logging"
	"payquick/internal/models"
	"payquick/internal/repositories/securestore"
	"payquick/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, backend securestore.Backend, secret string) *securestore.Store {
	t.Helper()
	c, err := security.NewCipher(secret)
	require.NoError(t, err)
	return securestore.New(backend, c, securestore.DefaultPrefix, logging.Discard())
}

func sampleTransaction() models.SecuredTransaction {
	return models.SecuredTransaction{
		ID:        "TXN_ABCDEFGHI",
		Status:    models.TransactionStatusSuccess,
		Amount:    10.8,
		Currency:  "USD",
		CardInfo:  models.SecuredCardInfo{Number: security.SecureCardNumber("4111111111111111")},
		CardLast4: "1111",
		Timestamp: time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestLoad_Empty(t *testing.T) {
	snap := Load(context.Background(), newStore(t, securestore.NewMemoryBackend(), "s"), logging.Discard())
	assert.Nil(t, snap.Cart)
	assert.Nil(t, snap.LastTransaction)
}

func TestLoad_RestoresBoth(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, securestore.NewMemoryBackend(), "s")
	cart := models.Cart{Items: []models.CartItem{{ID: "p1", Product: models.Product{ID: "p1", Price: 10}, Quantity: 1}}, Total: 10}
	tx := sampleTransaction()
	require.True(t, store.Save(ctx, securestore.KeyCart, cart))
	require.True(t, store.Save(ctx, securestore.KeyLastTransaction, tx))

	snap := Load(ctx, store, logging.Discard())
	require.NotNil(t, snap.Cart)
	assert.Equal(t, cart, *snap.Cart)
	require.NotNil(t, snap.LastTransaction)
	assert.Equal(t, tx, *snap.LastTransaction)
}

func TestLoad_ClearedTransaction(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, securestore.NewMemoryBackend(), "s")
	require.True(t, store.Save(ctx, securestore.KeyLastTransaction, nil))

	assert.Nil(t, Load(ctx, store, logging.Discard()).LastTransaction)
}

func TestLoad_IncompleteTransaction(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, securestore.NewMemoryBackend(), "s")
	require.True(t, store.Save(ctx, securestore.KeyLastTransaction, map[string]string{"status": "success"}))

	assert.Nil(t, Load(ctx, store, logging.Discard()).LastTransaction)
}

func TestLoad_ForeignKeyLooksAbsent(t *testing.T) {
	ctx := context.Background()
	backend := securestore.NewMemoryBackend()
	old := newStore(t, backend, "old-secret")
	require.True(t, old.Save(ctx, securestore.KeyCart, models.Cart{Total: 1}))
	require.True(t, old.Save(ctx, securestore.KeyLastTransaction, sampleTransaction()))

	snap := Load(ctx, newStore(t, backend, "new-secret"), logging.Discard())
	assert.Nil(t, snap.Cart)
	assert.Nil(t, snap.LastTransaction)
}
