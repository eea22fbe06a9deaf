package checkout

import (
	"context"
	"sync"
	"time"

	"payquick/internal/logging"
	"payquick/internal/repositories/securestore"
	"payquick/internal/services/bootstrap"
	"payquick/internal/services/cart"
	creditcard "payquick/internal/services/credit-card"

	"github.com/google/uuid"
)

// Manager keeps the live sessions. Each session persists under its own
// key scope of the root store.
type Manager struct {
	store *securestore.Store
	deps  Dependencies
	ttl   time.Duration
	now   func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager fills in defaults for a nil validator or logger, a zero tax
// rate and an empty currency. A ttl of zero keeps sessions forever.
func NewManager(store *securestore.Store, deps Dependencies, ttl time.Duration) *Manager {
	if deps.Validator == nil {
		deps.Validator = creditcard.NewValidator(false)
	}
	if deps.Log == nil {
		deps.Log = logging.Discard()
	}
	if deps.TaxRate.IsZero() {
		deps.TaxRate = cart.DefaultTaxRate
	}
	if deps.Currency == "" {
		deps.Currency = "USD"
	}
	return &Manager{
		store:    store,
		deps:     deps,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Create opens a new session with a random ID.
func (m *Manager) Create(ctx context.Context) *Session {
	id := uuid.New().String()
	s := m.newSession(id)

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	m.deps.Log.Info(ctx, "checkout session created", "session_id", id)
	return s
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Resume returns the live session id or, when the process no longer has
// it, rebuilds it from storage. The ID must be a UUID.
func (m *Manager) Resume(ctx context.Context, id string) (*Session, error) {
	if s, err := m.Get(id); err == nil {
		return s, nil
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSessionNotFound
	}

	s := m.newSession(id)
	s.Restore(bootstrap.Load(ctx, m.store.Scoped(id), m.deps.Log.With("session_id", id)))

	m.mu.Lock()
	defer m.mu.Unlock()
	// Lost a race with another request resuming the same session.
	if existing, ok := m.sessions[id]; ok {
		return existing, nil
	}
	m.sessions[id] = s
	m.deps.Log.Info(ctx, "checkout session resumed", "session_id", id)
	return s, nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Expire drops sessions idle for longer than the ttl. Sessions with a
// payment in flight are kept. Stored data is kept so that Resume can bring
// them back.
func (m *Manager) Expire(ctx context.Context) int {
	if m.ttl <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, s := range m.sessions {
		if !s.Processing() && s.LastActivity().Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		m.deps.Log.Debug(ctx, "expired idle checkout sessions", "count", removed)
	}
	return removed
}

// RunJanitor calls Expire every interval until ctx is done.
func (m *Manager) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Expire(ctx)
		}
	}
}

func (m *Manager) newSession(id string) *Session {
	s := NewSession(id, m.store.Scoped(id), m.deps)
	s.now = m.now
	s.updatedAt = m.now()
	return s
}
