package checkout

import (
	"context"
	"testing"
	"time"

	"payquick/internal/logging"
	"payquick/internal/models"
	"payquick/internal/repositories/securestore"
	creditcard "payquick/internal/services/credit-card"
	"payquick/internal/services/payment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestManager_CreateAndGet(t *testing.T) {
	f := setup(t)
	s := f.manager.Create(context.Background())

	_, err := uuid.Parse(s.ID())
	require.NoError(t, err)

	got, err := f.manager.Get(s.ID())
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, 1, f.manager.Len())

	_, err = f.manager.Get("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManager_Defaults(t *testing.T) {
	f := setup(t)
	m := NewManager(f.store, Dependencies{Gateway: f.gateway}, 0)
	assert.NotNil(t, m.deps.Validator)
	assert.NotNil(t, m.deps.Log)
	assert.Equal(t, "0.08", m.deps.TaxRate.String())
	assert.Equal(t, "USD", m.deps.Currency)
}

func TestManager_SessionsAreIsolated(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	a := f.manager.Create(ctx)
	b := f.manager.Create(ctx)

	_, err := a.AddItem(ctx, models.Product{ID: "p1", Price: 1})
	require.NoError(t, err)
	_, err = a.UpdateCardInfo(validPatch())
	require.NoError(t, err)

	assert.Empty(t, b.State().Cart.Items)
	assert.Empty(t, b.State().Card.Number)
	assert.ElementsMatch(t, []string{f.store.Scoped(a.ID()).Key(securestore.KeyCart)}, f.backend.Keys())
}

func TestManager_ResumeRestoresFromStorage(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	s := readySession(t, f)
	_, err := s.Continue()
	require.NoError(t, err)
	f.gateway.On("ProcessPayment", mock.Anything, mock.Anything).Return(successTx(models.PaymentRequest{Total: 10.8}), nil).Once()
	secured, err := s.Submit(ctx)
	require.NoError(t, err)
	_, err = s.AddItem(ctx, models.Product{ID: "p2", Name: "Shirt", Price: 20})
	require.NoError(t, err)

	// A fresh manager over the same storage stands in for a restart.
	restarted := NewManager(f.store, Dependencies{Gateway: f.gateway, Log: logging.Discard()}, 0)
	_, err = restarted.Get(s.ID())
	require.ErrorIs(t, err, ErrSessionNotFound)

	resumed, err := restarted.Resume(ctx, s.ID())
	require.NoError(t, err)
	st := resumed.State()
	assert.Equal(t, StepCard, st.Step)
	require.Len(t, st.Cart.Items, 1)
	assert.Equal(t, "p2", st.Cart.Items[0].ID)
	require.NotNil(t, st.LastTransaction)
	assert.Equal(t, secured.ID, st.LastTransaction.ID)

	again, err := restarted.Resume(ctx, s.ID())
	require.NoError(t, err)
	assert.Same(t, resumed, again)
}

func TestManager_ResumeRejectsMalformedID(t *testing.T) {
	f := setup(t)
	_, err := f.manager.Resume(context.Background(), "../../etc")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Zero(t, f.manager.Len())
}

func TestManager_Expire(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	m := NewManager(f.store, Dependencies{Gateway: f.gateway, Log: logging.Discard()}, time.Hour)
	m.now = func() time.Time { return now }

	idle := m.Create(ctx)
	now = now.Add(50 * time.Minute)
	active := m.Create(ctx)
	now = now.Add(20 * time.Minute)

	assert.Equal(t, 1, m.Expire(ctx))
	_, err := m.Get(idle.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = m.Get(active.ID())
	assert.NoError(t, err)

	forever := NewManager(f.store, Dependencies{Gateway: f.gateway}, 0)
	forever.Create(ctx)
	assert.Zero(t, forever.Expire(ctx))
}

func TestManager_ExpireKeepsPaymentsInFlight(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	m := NewManager(f.store, Dependencies{
		Validator: &creditcard.Validator{Now: fixedNow},
		Gateway:   f.gateway,
		Log:       logging.Discard(),
	}, time.Hour)
	m.now = func() time.Time { return now }

	s := m.Create(ctx)
	_, err := s.AddItem(ctx, models.Product{ID: "p1", Name: "Mug", Price: 10})
	require.NoError(t, err)
	_, err = s.UpdateCardInfo(validPatch())
	require.NoError(t, err)
	_, err = s.Continue()
	require.NoError(t, err)

	started := make(chan struct{})
	release := make(chan struct{})
	f.gateway.On("ProcessPayment", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(nil, payment.ErrNetwork).Once()

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(ctx)
		done <- err
	}()
	<-started

	now = now.Add(2 * time.Hour)
	assert.Zero(t, m.Expire(ctx))
	got, err := m.Get(s.ID())
	require.NoError(t, err)
	assert.Same(t, s, got)

	close(release)
	assert.ErrorIs(t, <-done, payment.ErrNetwork)

	now = now.Add(2 * time.Hour)
	assert.Equal(t, 1, m.Expire(ctx))
}

func TestManager_RunJanitorStops(t *testing.T) {
	f := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		f.manager.RunJanitor(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}
