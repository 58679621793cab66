package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/lexfirma/case-management/internal/core/domain"
	"github.com/lexfirma/case-management/internal/core/ports"
)

type failureRecord struct {
	intentos       int
	bloqueadoHasta *time.Time
}

type stubUsuarioRepo struct {
	usuarios map[string]*domain.Usuario // by username
	lookups  int
	failures []failureRecord
	resets   []time.Time
}

func newStubUsuarioRepo(users ...*domain.Usuario) *stubUsuarioRepo {
	r := &stubUsuarioRepo{usuarios: make(map[string]*domain.Usuario)}
	for _, u := range users {
		r.usuarios[u.Username] = u
	}
	return r
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id string) (*domain.Usuario, error) {
	for _, u := range r.usuarios {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUsuarioNoEncontrado
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*domain.Usuario, error) {
	r.lookups++
	u, ok := r.usuarios[username]
	if !ok {
		return nil, domain.ErrUsuarioNoEncontrado
	}
	clone := *u
	return &clone, nil
}

func (r *stubUsuarioRepo) FindByEmail(_ context.Context, email string) (*domain.Usuario, error) {
	r.lookups++
	for _, u := range r.usuarios {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUsuarioNoEncontrado
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]*domain.Usuario, error) {
	out := make([]*domain.Usuario, 0, len(r.usuarios))
	for _, u := range r.usuarios {
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *domain.Usuario) (*domain.Usuario, error) {
	r.usuarios[u.Username] = u
	return u, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *domain.Usuario) error {
	r.usuarios[u.Username] = u
	return nil
}
func (r *stubUsuarioRepo) Delete(_ context.Context, id string) error         { return nil }

func (r *stubUsuarioRepo) RegistrarIntentoFallido(_ context.Context, id string, intentos int, bloqueadoHasta *time.Time) error {
	r.failures = append(r.failures, failureRecord{intentos: intentos, bloqueadoHasta: bloqueadoHasta})
	for _, u := range r.usuarios {
		if u.ID == id {
			u.IntentosFallidos = intentos
			u.BloqueadoHasta = bloqueadoHasta
		}
	}
	return nil
}

func (r *stubUsuarioRepo) RegistrarAccesoExitoso(_ context.Context, id string, ahora time.Time) error {
	r.resets = append(r.resets, ahora)
	for _, u := range r.usuarios {
		if u.ID == id {
			u.IntentosFallidos = 0
			u.BloqueadoHasta = nil
			u.UltimoAcceso = &ahora
		}
	}
	return nil
}

// stubHasher accepts a single password and counts Verify calls so tests can
// assert that locked/disabled branches never reach verification.
type stubHasher struct {
	password    string
	verifyCalls int
	err         error
}

func (h *stubHasher) Hash(_ context.Context, plaintext string) (string, error) {
	return "hashed:" + plaintext, nil
}

func (h *stubHasher) Verify(_ context.Context, plaintext, _ string) (bool, error) {
	h.verifyCalls++
	if h.err != nil {
		return false, h.err
	}
	return plaintext == h.password, nil
}

var fixedNow = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func newTestAuthService(repo *stubUsuarioRepo, hasher *stubHasher) *AuthService {
	svc := NewAuthService(repo, hasher, "secret", time.Hour, zerolog.Nop())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func testUsuario() *domain.Usuario {
	return &domain.Usuario{
		ID:           "u1",
		Username:     "jdoe",
		Email:        "jdoe@example.com",
		PasswordHash: "hashed:s3cret",
		Activo:       true,
		Rol:          &domain.Rol{ID: "r1", Nombre: domain.RolAdministrador},
	}
}

func TestAuthenticate_MissingCredentials(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc := newTestAuthService(repo, &stubHasher{})

	// The identifier and the password each carry their own message.
	cases := []struct {
		cred ports.Credenciales
		want error
	}{
		{ports.Credenciales{Password: "pass"}, domain.ErrIdentificadorFaltante},
		{ports.Credenciales{}, domain.ErrIdentificadorFaltante},
		{ports.Credenciales{Username: "jdoe"}, domain.ErrContrasenaFaltante},
		{ports.Credenciales{Email: "jdoe@example.com"}, domain.ErrContrasenaFaltante},
	}
	for _, tc := range cases {
		if _, _, err := svc.Authenticate(context.Background(), tc.cred); err != tc.want {
			t.Fatalf("credenciales %+v: got %v, want %v", tc.cred, err, tc.want)
		}
	}
	if repo.lookups != 0 {
		t.Fatalf("expected no store lookups on validation failure, got %d", repo.lookups)
	}
}

func TestAuthenticate_UnknownUser(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc := newTestAuthService(repo, &stubHasher{password: "s3cret"})

	_, _, err := svc.Authenticate(context.Background(), ports.Credenciales{Username: "ghost", Password: "s3cret"})
	if err != domain.ErrCredencialesInvalidas {
		t.Fatalf("expected ErrCredencialesInvalidas, got %v", err)
	}
}

func TestAuthenticate_WrongPassword_IncrementsCounter(t *testing.T) {
	u := testUsuario()
	u.IntentosFallidos = 3
	repo := newStubUsuarioRepo(u)
	svc := newTestAuthService(repo, &stubHasher{password: "s3cret"})

	_, _, err := svc.Authenticate(context.Background(), ports.Credenciales{Username: "jdoe", Password: "wrong"})
	if err != domain.ErrCredencialesInvalidas {
		t.Fatalf("expected ErrCredencialesInvalidas, got %v", err)
	}
	if len(repo.failures) != 1 {
		t.Fatalf("expected one failure update, got %d", len(repo.failures))
	}
	if repo.failures[0].intentos != 4 {
		t.Fatalf("expected intentos=4, got %d", repo.failures[0].intentos)
	}
	if repo.failures[0].bloqueadoHasta != nil {
		t.Fatalf("expected no lockout below the threshold")
	}
}

func TestAuthenticate_FifthFailureLocksAccount(t *testing.T) {
	u := testUsuario()
	u.IntentosFallidos = 4
	repo := newStubUsuarioRepo(u)
	svc := newTestAuthService(repo, &stubHasher{password: "s3cret"})

	_, _, err := svc.Authenticate(context.Background(), ports.Credenciales{Username: "jdoe", Password: "wrong"})
	if err != domain.ErrCredencialesInvalidas {
		t.Fatalf("expected ErrCredencialesInvalidas, got %v", err)
	}
	if len(repo.failures) != 1 || repo.failures[0].intentos != 5 {
		t.Fatalf("expected intentos=5, got %+v", repo.failures)
	}
	hasta := repo.failures[0].bloqueadoHasta
	if hasta == nil {
		t.Fatalf("expected lockout to be set on the 5th failure")
	}
	if want := fixedNow.Add(15 * time.Minute); !hasta.Equal(want) {
		t.Fatalf("expected lockout until %v, got %v", want, hasta)
	}

	// The very next attempt, even with the right password, is rejected
	// without touching the hasher.
	hasher := &stubHasher{password: "s3cret"}
	svc2 := newTestAuthService(repo, hasher)
	if _, _, err := svc2.Authenticate(context.Background(), ports.Credenciales{Username: "jdoe", Password: "s3cret"}); err != domain.ErrCuentaBloqueada {
		t.Fatalf("expected ErrCuentaBloqueada, got %v", err)
	}
	if hasher.verifyCalls != 0 {
		t.Fatalf("expected zero Verify calls while locked, got %d", hasher.verifyCalls)
	}
}

func TestAuthenticate_LockedAccount_SkipsVerification(t *testing.T) {
	u := testUsuario()
	hasta := fixedNow.Add(10 * time.Minute)
	u.BloqueadoHasta = &hasta
	repo := newStubUsuarioRepo(u)
	hasher := &stubHasher{password: "s3cret"}
	svc := newTestAuthService(repo, hasher)

	_, _, err := svc.Authenticate(context.Background(), ports.Credenciales{Username: "jdoe", Password: "s3cret"})
	if err != domain.ErrCuentaBloqueada {
		t.Fatalf("expected ErrCuentaBloqueada, got %v", err)
	}
	if hasher.verifyCalls != 0 {
		t.Fatalf("expected zero Verify calls, got %d", hasher.verifyCalls)
	}
	if len(repo.failures) != 0 {
		t.Fatalf("a rejected locked attempt must not touch the counter")
	}
}

func TestAuthenticate_ExpiredLockout_Succeeds(t *testing.T) {
	u := testUsuario()
	hasta := fixedNow.Add(-time.Minute)
	u.BloqueadoHasta = &hasta
	u.IntentosFallidos = 5
	repo := newStubUsuarioRepo(u)
	svc := newTestAuthService(repo, &stubHasher{password: "s3cret"})

	_, usuario, err := svc.Authenticate(context.Background(), ports.Credenciales{Username: "jdoe", Password: "s3cret"})
	if err != nil {
		t.Fatalf("expected success after lockout expiry, got %v", err)
	}
	if usuario == nil || usuario.Username != "jdoe" {
		t.Fatalf("unexpected user: %+v", usuario)
	}
	if len(repo.resets) != 1 || !repo.resets[0].Equal(fixedNow) {
		t.Fatalf("expected counters reset at %v, got %+v", fixedNow, repo.resets)
	}
	stored := repo.usuarios["jdoe"]
	if stored.IntentosFallidos != 0 || stored.BloqueadoHasta != nil {
		t.Fatalf("expected cleared lockout state, got intentos=%d hasta=%v", stored.IntentosFallidos, stored.BloqueadoHasta)
	}
}

func TestAuthenticate_DisabledAccount(t *testing.T) {
	u := testUsuario()
	u.Activo = false
	repo := newStubUsuarioRepo(u)
	hasher := &stubHasher{password: "s3cret"}
	svc := newTestAuthService(repo, hasher)

	_, _, err := svc.Authenticate(context.Background(), ports.Credenciales{Username: "jdoe", Password: "s3cret"})
	if err != domain.ErrCuentaDesactivada {
		t.Fatalf("expected ErrCuentaDesactivada, got %v", err)
	}
	if hasher.verifyCalls != 0 {
		t.Fatalf("expected zero Verify calls for a disabled account, got %d", hasher.verifyCalls)
	}
}

func TestAuthenticate_VerifierError_IsNotCredentialsError(t *testing.T) {
	repo := newStubUsuarioRepo(testUsuario())
	svc := newTestAuthService(repo, &stubHasher{err: errors.New("rpc unavailable")})

	_, _, err := svc.Authenticate(context.Background(), ports.Credenciales{Username: "jdoe", Password: "s3cret"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if errors.Is(err, domain.ErrCredencialesInvalidas) {
		t.Fatalf("verifier failure must not be reported as invalid credentials")
	}
	if len(repo.failures) != 0 {
		t.Fatalf("verifier failure must not count as a failed attempt")
	}
}

func TestAuthenticate_Success_ByEmail(t *testing.T) {
	repo := newStubUsuarioRepo(testUsuario())
	svc := newTestAuthService(repo, &stubHasher{password: "s3cret"})

	token, usuario, err := svc.Authenticate(context.Background(), ports.Credenciales{Email: "jdoe@example.com", Password: "s3cret"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if usuario.PasswordHash != "" {
		t.Fatalf("password hash leaked in response")
	}
	if usuario.Rol == nil || usuario.Rol.Nombre != domain.RolAdministrador {
		t.Fatalf("expected nested rol, got %+v", usuario.Rol)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}, jwt.WithTimeFunc(func() time.Time { return fixedNow }))
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["rol"] != domain.RolAdministrador {
		t.Fatalf("expected rol claim %q, got %v", domain.RolAdministrador, claims["rol"])
	}
	if claims["username"] != "jdoe" {
		t.Fatalf("expected username claim, got %v", claims["username"])
	}
}

func TestAuthenticate_Scenario_JdoeLockoutProgression(t *testing.T) {
	u := testUsuario()
	u.IntentosFallidos = 3
	repo := newStubUsuarioRepo(u)
	svc := newTestAuthService(repo, &stubHasher{password: "right"})

	// Attempt 4: still unlocked.
	if _, _, err := svc.Authenticate(context.Background(), ports.Credenciales{Username: "jdoe", Password: "wrong"}); err != domain.ErrCredencialesInvalidas {
		t.Fatalf("expected ErrCredencialesInvalidas, got %v", err)
	}
	if got := repo.usuarios["jdoe"].IntentosFallidos; got != 4 {
		t.Fatalf("expected stored intentos=4, got %d", got)
	}
	if repo.usuarios["jdoe"].BloqueadoHasta != nil {
		t.Fatalf("expected no lockout yet")
	}

	// Attempt 5: locked for 15 minutes.
	if _, _, err := svc.Authenticate(context.Background(), ports.Credenciales{Username: "jdoe", Password: "wrong"}); err != domain.ErrCredencialesInvalidas {
		t.Fatalf("expected ErrCredencialesInvalidas, got %v", err)
	}
	stored := repo.usuarios["jdoe"]
	if stored.IntentosFallidos != 5 {
		t.Fatalf("expected stored intentos=5, got %d", stored.IntentosFallidos)
	}
	if stored.BloqueadoHasta == nil || !stored.BloqueadoHasta.Equal(fixedNow.Add(15*time.Minute)) {
		t.Fatalf("expected lockout 15m ahead, got %v", stored.BloqueadoHasta)
	}
}
