// Package session owns the client's authentication state: the current user
// identity, its persistence across runs, and the coordinator that exchanges
// expired credentials for new ones exactly once at a time.
package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/studyhub/studyhub-cli/internal/client/models"
	"github.com/studyhub/studyhub-cli/internal/logging"
)

// userKey is the storage key holding the serialized identity.
const userKey = "user"

// cacheKeyUser is the query-cache key seeded on login.
const cacheKeyUser = "user"

// AuthAPI is the slice of the backend client the manager needs: one call
// that extends the current session using the ambient credential.
type AuthAPI interface {
	Refresh(ctx context.Context) error
}

// Storage persists the identity between runs. A missing key reads as
// (nil, nil).
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// QueryCache is the session-scoped result cache. Logout flushes it
// entirely: any entry may hold data private to the terminated session.
type QueryCache interface {
	Set(key string, value any)
	Clear()
}

// attempt is one logical refresh shared by every caller that asks while it
// is in flight. err is written before done is closed, so waiters always
// observe the settled outcome.
type attempt struct {
	done chan struct{}
	err  error
}

// Manager is the single source of truth for session state.
//
// Authentication is always derived from the presence of a user; it is never
// stored separately, so it cannot diverge.
type Manager struct {
	mu          sync.Mutex
	user        *models.User
	initialized bool
	refreshing  bool
	inflight    *attempt

	api   AuthAPI
	store Storage
	cache QueryCache
	bus   *Bus
	log   logging.Logger
}

// NewManager wires the manager to its collaborators and subscribes it to
// the logout broadcast for the lifetime of the process.
func NewManager(api AuthAPI, store Storage, cache QueryCache, bus *Bus, log logging.Logger) *Manager {
	m := &Manager{
		api:   api,
		store: store,
		cache: cache,
		bus:   bus,
		log:   log,
	}
	bus.Subscribe(func() { m.Logout(context.Background()) })
	return m
}

// Initialize loads the persisted identity once at startup. Corrupt or
// unreadable data is discarded with a log line, never surfaced: the client
// simply starts anonymous. Whatever happens, the manager ends initialized,
// so consumers are never stuck behind the loading gate.
func (m *Manager) Initialize(ctx context.Context) {
	defer func() {
		m.mu.Lock()
		m.initialized = true
		m.mu.Unlock()
	}()

	data, err := m.store.Get(ctx, userKey)
	if err != nil {
		m.log.Warn(ctx, "reading persisted session failed", "error", err)
		return
	}
	if len(data) == 0 {
		m.log.Debug(ctx, "no persisted session found")
		return
	}

	var u models.User
	if err := json.Unmarshal(data, &u); err != nil {
		m.log.Warn(ctx, "discarding corrupt persisted session", "error", err)
		if derr := m.store.Delete(ctx, userKey); derr != nil {
			m.log.Warn(ctx, "removing corrupt persisted session failed", "error", derr)
		}
		return
	}

	m.mu.Lock()
	m.user = &u
	m.mu.Unlock()
	m.log.Info(ctx, "session restored", "user", u.Email)
}

// Login installs the authenticated identity, seeds the query cache, and
// persists it. The in-memory state is authoritative immediately; a failed
// persistence write is logged and otherwise ignored.
func (m *Manager) Login(ctx context.Context, user *models.User) {
	m.mu.Lock()
	m.user = user
	m.mu.Unlock()

	m.cache.Set(cacheKeyUser, user)

	data, err := json.Marshal(user)
	if err != nil {
		m.log.Warn(ctx, "serializing session failed", "error", err)
		return
	}
	if err := m.store.Set(ctx, userKey, data); err != nil {
		m.log.Warn(ctx, "persisting session failed", "error", err)
	}
}

// Logout resets the session to the empty state: user and refreshing flag
// cleared, persisted identity removed, and the entire query cache flushed.
// Calling it on an anonymous session is a no-op.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	m.user = nil
	m.refreshing = false
	m.mu.Unlock()

	if err := m.store.Delete(ctx, userKey); err != nil {
		m.log.Warn(ctx, "removing persisted session failed", "error", err)
	}
	m.cache.Clear()
}

// Refresh obtains a fresh session credential, guaranteeing at most one
// network round-trip regardless of concurrent demand. Every caller that
// joins a pending attempt observes its single outcome. A terminal failure
// ends the session via the logout broadcast before propagating.
//
// Refreshing with no known user resolves immediately as a no-op: refresh
// never authenticates a previously-anonymous session.
func (m *Manager) Refresh(ctx context.Context) error {
	m.mu.Lock()
	if att := m.inflight; att != nil {
		m.mu.Unlock()
		<-att.done
		return att.err
	}
	if m.user == nil {
		m.mu.Unlock()
		return nil
	}
	att := &attempt{done: make(chan struct{})}
	m.inflight = att
	m.refreshing = true
	m.mu.Unlock()

	// Clear the pending marker and the flag in the same critical section
	// that settles the attempt, so no later caller can observe a stale
	// in-flight handle. Deferred, so even a panicking API call cannot leave
	// the attempt pending forever.
	defer func() {
		m.mu.Lock()
		m.inflight = nil
		m.refreshing = false
		close(att.done)
		m.mu.Unlock()
	}()

	att.err = m.api.Refresh(ctx)

	if att.err != nil {
		m.log.Warn(ctx, "session refresh failed, signing out", "error", att.err)
		m.bus.AnnounceLogout()
		return att.err
	}
	m.log.Debug(ctx, "session refreshed")
	return nil
}

// User returns the current identity, or nil when anonymous.
func (m *Manager) User() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// IsAuthenticated reports whether a user is present. It is derived, never
// stored.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user != nil
}

// IsInitialized reports whether the startup load has completed.
func (m *Manager) IsInitialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

// IsRefreshing reports whether a refresh attempt is in flight.
func (m *Manager) IsRefreshing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refreshing
}
