package session

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/lexfirma/case-management/internal/core/domain"
)

type stubLoginClient struct {
	session *Session
	err     error
	calls   int
}

func (s *stubLoginClient) Login(ctx context.Context, username, email, password string) (*Session, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.session, nil
}

func newTestManager(client LoginClient, store Store) *Manager {
	return NewManager(client, store, DefaultRouteTable(), zerolog.Nop())
}

func TestManager_RestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	original := sessionWithRol(domain.RolCliente)
	original.Usuario.ClienteID = "c1"
	if err := store.Save(ctx, original); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	m := newTestManager(&stubLoginClient{}, store)
	if m.Restored() {
		t.Fatalf("restored before Restore()")
	}
	m.Restore(ctx)

	if !m.Restored() {
		t.Fatalf("not marked restored")
	}
	got := m.Current()
	if got == nil || got.Token != original.Token {
		t.Fatalf("session not restored: %+v", got)
	}
	if got.Usuario.ClienteID != "c1" {
		t.Fatalf("client link lost in round trip: %+v", got.Usuario)
	}
	if !m.IsCliente() {
		t.Fatalf("restored session lost its role")
	}
}

func TestManager_RestoreCorruptBlobClearsStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.Seed([]byte("{not json"))

	m := newTestManager(&stubLoginClient{}, store)
	m.Restore(ctx)

	if !m.Restored() {
		t.Fatalf("corrupt blob must still complete the restore")
	}
	if m.Current() != nil {
		t.Fatalf("corrupt blob must leave the manager logged out")
	}
	if s, err := store.Load(ctx); err != nil || s != nil {
		t.Fatalf("store not cleared: %v %v", s, err)
	}
}

func TestManager_LoginPersistsSession(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	client := &stubLoginClient{session: sessionWithRol(domain.RolEmpleado)}

	m := newTestManager(client, store)
	m.Restore(ctx)

	s, err := m.Login(ctx, "mgarcia", "", "secreta")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if s == nil || m.Current() != s {
		t.Fatalf("session not set")
	}
	if m.LastError() != nil {
		t.Fatalf("last error not cleared: %v", m.LastError())
	}

	persisted, err := store.Load(ctx)
	if err != nil || persisted == nil {
		t.Fatalf("session not persisted: %v %v", persisted, err)
	}
}

func TestManager_LoginFailureKeepsLoggedOut(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	client := &stubLoginClient{err: domain.ErrCuentaBloqueada}

	m := newTestManager(client, store)
	m.Restore(ctx)

	if _, err := m.Login(ctx, "jdoe", "", "mala"); !errors.Is(err, domain.ErrCuentaBloqueada) {
		t.Fatalf("expected lockout error, got %v", err)
	}
	if m.Current() != nil {
		t.Fatalf("failed login must not create a session")
	}
	if !errors.Is(m.LastError(), domain.ErrCuentaBloqueada) {
		t.Fatalf("last error not recorded: %v", m.LastError())
	}
}

func TestManager_LogoutIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	client := &stubLoginClient{session: sessionWithRol(domain.RolAdministrador)}

	m := newTestManager(client, store)
	m.Restore(ctx)
	if _, err := m.Login(ctx, "admin", "", "secreta"); err != nil {
		t.Fatalf("login: %v", err)
	}

	m.Logout(ctx)
	if m.Current() != nil {
		t.Fatalf("session survived logout")
	}
	if s, _ := store.Load(ctx); s != nil {
		t.Fatalf("persisted session survived logout")
	}

	// Second logout with nothing to do.
	m.Logout(ctx)
	if m.Current() != nil {
		t.Fatalf("second logout changed state")
	}
}

func TestManager_ReconcileUsesLiveState(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	client := &stubLoginClient{session: sessionWithRol(domain.RolCliente)}
	client.session.Usuario.ClienteID = "c1"

	m := newTestManager(client, store)

	// Before restore: never redirect.
	if got := m.Reconcile("/casos"); got != "" {
		t.Fatalf("redirect before restore: %q", got)
	}

	m.Restore(ctx)
	if got := m.Reconcile("/casos"); got != RutaLogin {
		t.Fatalf("anonymous on system: got %q, want %q", got, RutaLogin)
	}

	if _, err := m.Login(ctx, "", "cliente@lexfirma.ec", "0912345678"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if got := m.Reconcile("/casos"); got != RutaPortal {
		t.Fatalf("cliente on system: got %q, want %q", got, RutaPortal)
	}
	if got := m.Reconcile("/portal"); got != "" {
		t.Fatalf("cliente on portal: got %q, want no redirect", got)
	}

	m.Logout(ctx)
	if got := m.Reconcile("/portal"); got != RutaLogin {
		t.Fatalf("after logout: got %q, want %q", got, RutaLogin)
	}
}
