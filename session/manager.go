// File: travelgo/session/manager.go
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt"
	"go.uber.org/zap"

	"travelgo/models"
	"travelgo/utils"
)

// AuthAPI is the slice of the REST client the session manager needs.
type AuthAPI interface {
	Token(ctx context.Context, username, password string) (string, error)
	CurrentUser(ctx context.Context, token string) (*models.User, error)
}

// Event is broadcast to every subscriber on each identity transition.
// User is nil after logout or a failed restore.
type Event struct {
	User *models.User
}

// Manager owns the process-wide identity state. It is the only mutable
// state shared across components: one writer per transition, observers
// notified over channels, readers never poll storage.
type Manager struct {
	api   AuthAPI
	store *CredentialStore

	mu    sync.RWMutex
	user  *models.User
	token string
	subs  []chan Event
}

// NewManager builds an empty (logged-out) session.
func NewManager(api AuthAPI, store *CredentialStore) *Manager {
	return &Manager{api: api, store: store}
}

// Restore re-establishes identity from the persisted credential. Called
// exactly once at process start, before any routing decision. Every
// failure path is a soft fail: the user simply stays logged out and the
// credential stays on disk, so a transient network error at launch does
// not destroy a valid session.
func (m *Manager) Restore(ctx context.Context) {
	logger := utils.GetLogger()

	token, err := m.store.Read()
	if err != nil {
		logger.Warn("session: could not read persisted credential", zap.Error(err))
		return
	}
	if token == "" {
		return
	}
	if tokenExpired(token) {
		logger.Debug("session: persisted credential already expired, skipping verification")
		return
	}

	user, err := m.api.CurrentUser(ctx, token)
	if err != nil {
		logger.Warn("session: credential verification failed", zap.Error(err))
		return
	}

	m.mu.Lock()
	m.user = user
	m.token = token
	m.mu.Unlock()
	m.broadcast()
}

// Login exchanges credentials for a bearer token, persists it, and
// fetches the identity behind it. On any failure the session state is
// left untouched.
func (m *Manager) Login(ctx context.Context, username, password string) (*models.User, error) {
	token, err := m.api.Token(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if err := m.store.Write(token); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	user, err := m.api.CurrentUser(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	m.mu.Lock()
	m.user = user
	m.token = token
	m.mu.Unlock()
	m.broadcast()
	return user, nil
}

// Logout clears the persisted credential and the in-process identity,
// and notifies every dependent component synchronously via broadcast.
func (m *Manager) Logout() error {
	if err := m.store.Remove(); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	m.mu.Lock()
	m.user = nil
	m.token = ""
	m.mu.Unlock()
	m.broadcast()
	return nil
}

// SetUser replaces the identity record after a profile update and
// re-broadcasts so dependent views refresh.
func (m *Manager) SetUser(user *models.User) {
	m.mu.Lock()
	m.user = user
	m.mu.Unlock()
	m.broadcast()
}

// CurrentUser returns the identity, or nil when logged out.
func (m *Manager) CurrentUser() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// Token returns the bearer credential for outgoing requests, or ""
// when logged out. After Logout this is guaranteed empty, so no stale
// credential can be attached to a request.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// IsProvider reports which navigation tree the current identity selects.
func (m *Manager) IsProvider() bool {
	return m.CurrentUser().IsProvider()
}

// Subscribe registers an observer for identity transitions.
func (m *Manager) Subscribe() <-chan Event {
	ch := make(chan Event, 16)
	m.mu.Lock()
	m.subs = append(m.subs, ch)
	m.mu.Unlock()
	return ch
}

func (m *Manager) broadcast() {
	m.mu.RLock()
	user := m.user
	subs := m.subs
	m.mu.RUnlock()

	for _, ch := range subs {
		select {
		case ch <- Event{User: user}:
		default:
			utils.GetLogger().Warn("session: dropping identity event for slow subscriber")
		}
	}
}

// tokenExpired is a best-effort local check. The API's bearer tokens
// are opaque, but when a deployment hands out JWTs the exp claim lets
// us skip a verification round-trip that is guaranteed to fail. An
// unparseable token is simply not decidable locally.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	parser := &jwt.Parser{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return false
	}
	return time.Now().After(time.Unix(int64(exp), 0))
}
