package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/lexfirma/case-management/internal/metrics"
	"github.com/lexfirma/case-management/internal/core/domain"
	"github.com/lexfirma/case-management/internal/core/ports"
)

// AuthService implements login with brute-force lockout.
type AuthService struct {
	usuarios        ports.UsuarioRepository
	hasher          ports.PasswordHasher
	jwtSecret       string
	tokenTTL        time.Duration
	maxIntentos     int
	bloqueoDuracion time.Duration
	now             func() time.Time
	logger          zerolog.Logger
}

func NewAuthService(usuarios ports.UsuarioRepository, hasher ports.PasswordHasher, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		usuarios:        usuarios,
		hasher:          hasher,
		jwtSecret:       jwtSecret,
		tokenTTL:        tokenTTL,
		maxIntentos:     domain.DefaultMaxIntentosFallidos,
		bloqueoDuracion: domain.DefaultBloqueoDuracion,
		now:             time.Now,
		logger:          logger,
	}
}

// Authenticate resolves the account by username or email, enforces the
// lockout and active checks, delegates password verification to the hasher
// port and updates the attempt bookkeeping.
//
// Lookup misses and wrong passwords are indistinguishable to the caller:
// both return ErrCredencialesInvalidas with the same generic message.
func (s *AuthService) Authenticate(ctx context.Context, cred ports.Credenciales) (string, *domain.Usuario, error) {
	if cred.Username == "" && cred.Email == "" {
		return "", nil, domain.ErrIdentificadorFaltante
	}
	if cred.Password == "" {
		return "", nil, domain.ErrContrasenaFaltante
	}

	var (
		usuario *domain.Usuario
		err     error
	)
	if cred.Username != "" {
		usuario, err = s.usuarios.FindByUsername(ctx, cred.Username)
	} else {
		usuario, err = s.usuarios.FindByEmail(ctx, cred.Email)
	}
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		return "", nil, domain.ErrCredencialesInvalidas
	}

	ahora := s.now()

	// Locked accounts are rejected before the password is even checked.
	if usuario.Bloqueado(ahora) {
		metrics.LoginsTotal.WithLabelValues("locked").Inc()
		return "", nil, domain.ErrCuentaBloqueada
	}

	if !usuario.Activo {
		metrics.LoginsTotal.WithLabelValues("disabled").Inc()
		return "", nil, domain.ErrCuentaDesactivada
	}

	valida, err := s.hasher.Verify(ctx, cred.Password, usuario.PasswordHash)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		s.logger.Error().Err(err).Str("usuario_id", usuario.ID).Msg("password verification failed")
		return "", nil, fmt.Errorf("verificar contraseña: %w", err)
	}

	if !valida {
		intentos := usuario.IntentosFallidos + 1
		var bloqueadoHasta *time.Time
		if intentos >= s.maxIntentos {
			hasta := ahora.Add(s.bloqueoDuracion)
			bloqueadoHasta = &hasta
			metrics.LockoutsTotal.Inc()
			s.logger.Warn().Str("usuario_id", usuario.ID).Time("bloqueado_hasta", hasta).Msg("account locked after repeated failures")
		}
		if uerr := s.usuarios.RegistrarIntentoFallido(ctx, usuario.ID, intentos, bloqueadoHasta); uerr != nil {
			// The attempt is rejected either way; losing the counter update
			// only weakens the deterrent, it never grants access.
			s.logger.Error().Err(uerr).Str("usuario_id", usuario.ID).Msg("failed to record login attempt")
		}
		metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		return "", nil, domain.ErrCredencialesInvalidas
	}

	if uerr := s.usuarios.RegistrarAccesoExitoso(ctx, usuario.ID, ahora); uerr != nil {
		s.logger.Error().Err(uerr).Str("usuario_id", usuario.ID).Msg("failed to reset login counters")
	}

	token, err := s.generateToken(usuario)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", nil, fmt.Errorf("firmar token: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return token, usuario.Sanitizado(), nil
}

func (s *AuthService) generateToken(usuario *domain.Usuario) (string, error) {
	var rol string
	if usuario.Rol != nil {
		rol = usuario.Rol.Nombre
	}
	claims := jwt.MapClaims{
		"sub":         usuario.ID,
		"username":    usuario.Username,
		"rol":         rol,
		"cliente_id":  usuario.ClienteID,
		"empleado_id": usuario.EmpleadoID,
		"exp":         s.now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
