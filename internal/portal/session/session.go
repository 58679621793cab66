// Package session implements the portal's client-side session layer: a
// login client against the API, a persisted session store and a manager
// that reconciles navigation against the authenticated state.
package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/lexfirma/case-management/internal/core/domain"
)

// Session is the authenticated state persisted between portal visits.
type Session struct {
	Token   string          `json:"token"`
	Usuario *domain.Usuario `json:"usuario"`
}

// Rol returns the session's role name, or "" when unknown.
func (s *Session) Rol() string {
	if s == nil || s.Usuario == nil || s.Usuario.Rol == nil {
		return ""
	}
	return s.Usuario.Rol.Nombre
}

func (s *Session) EsAdministrador() bool { return s.Rol() == domain.RolAdministrador }
func (s *Session) EsEmpleado() bool      { return s.Rol() == domain.RolEmpleado }
func (s *Session) EsCliente() bool       { return s.Rol() == domain.RolCliente }

// LoginClient performs the credential exchange against the API.
type LoginClient interface {
	Login(ctx context.Context, username, email, password string) (*Session, error)
}

// Manager owns the session lifecycle. All methods are safe for concurrent
// use; navigation reconciliation and login/logout may race freely.
type Manager struct {
	client LoginClient
	store  Store
	routes *RouteTable
	logger zerolog.Logger

	mu       sync.RWMutex
	current  *Session
	restored bool
	lastErr  error
}

func NewManager(client LoginClient, store Store, routes *RouteTable, logger zerolog.Logger) *Manager {
	if routes == nil {
		routes = DefaultRouteTable()
	}
	return &Manager{
		client: client,
		store:  store,
		routes: routes,
		logger: logger,
	}
}

// Restore loads the persisted session, if any. A corrupt or unreadable blob
// clears the store and leaves the manager logged out; the portal then just
// asks for credentials again. Restore always marks the manager as restored,
// unblocking route reconciliation.
func (m *Manager) Restore(ctx context.Context) {
	s, err := m.store.Load(ctx)
	if err != nil {
		m.logger.Warn().Err(err).Msg("discarding unreadable persisted session")
		_ = m.store.Clear(ctx)
		s = nil
	}

	m.mu.Lock()
	m.current = s
	m.restored = true
	m.mu.Unlock()
}

// Login exchanges credentials for a session and persists it. The previous
// session, if any, is replaced only on success.
func (m *Manager) Login(ctx context.Context, username, email, password string) (*Session, error) {
	s, err := m.client.Login(ctx, username, email, password)
	if err != nil {
		m.mu.Lock()
		m.lastErr = err
		m.mu.Unlock()
		return nil, err
	}

	if err := m.store.Save(ctx, s); err != nil {
		// The session is valid even if persistence failed; it just will not
		// survive a restart.
		m.logger.Warn().Err(err).Msg("persist session")
	}

	m.mu.Lock()
	m.current = s
	m.lastErr = nil
	m.mu.Unlock()
	return s, nil
}

// Logout drops the session locally and from the store. Calling it while
// already logged out is a no-op.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		m.logger.Warn().Err(err).Msg("clear persisted session")
	}

	m.mu.Lock()
	m.current = nil
	m.lastErr = nil
	m.mu.Unlock()
}

// Current returns the active session, or nil when logged out.
func (m *Manager) Current() *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Restored reports whether the initial store load has completed.
func (m *Manager) Restored() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.restored
}

// LastError returns the most recent login failure, cleared on success or
// logout.
func (m *Manager) LastError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastErr
}

func (m *Manager) IsAdministrador() bool { return m.Current().EsAdministrador() }
func (m *Manager) IsEmpleado() bool      { return m.Current().EsEmpleado() }
func (m *Manager) IsCliente() bool       { return m.Current().EsCliente() }

// Reconcile returns the path the portal should navigate to for the given
// location, or "" when no redirect is needed.
func (m *Manager) Reconcile(path string) string {
	m.mu.RLock()
	restored, current := m.restored, m.current
	m.mu.RUnlock()
	return m.routes.Reconcile(restored, current, path)
}
