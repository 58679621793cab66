package ports

import (
	"context"
	"time"

	"github.com/lexfirma/case-management/internal/core/domain"
)

// UsuarioRepository defines persistence for the Usuarios collection.
type UsuarioRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Usuario, error)
	// FindByUsername and FindByEmail must resolve exactly one record;
	// zero or multiple matches surface as domain.ErrUsuarioNoEncontrado.
	FindByUsername(ctx context.Context, username string) (*domain.Usuario, error)
	FindByEmail(ctx context.Context, email string) (*domain.Usuario, error)
	List(ctx context.Context) ([]*domain.Usuario, error)
	Create(ctx context.Context, u *domain.Usuario) (*domain.Usuario, error)
	Update(ctx context.Context, u *domain.Usuario) error
	Delete(ctx context.Context, id string) error

	// RegistrarIntentoFallido persists the new attempt counter and, when
	// non-nil, the lockout deadline in a single update. The counter value is
	// computed by the caller; concurrent failures may lose an update, which
	// the lockout design tolerates.
	RegistrarIntentoFallido(ctx context.Context, id string, intentos int, bloqueadoHasta *time.Time) error

	// RegistrarAccesoExitoso resets the counter, clears the lockout and
	// stamps the last access time.
	RegistrarAccesoExitoso(ctx context.Context, id string, ahora time.Time) error
}

// RolRepository defines read access to the Roles reference collection.
type RolRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Rol, error)
	FindByNombre(ctx context.Context, nombre string) (*domain.Rol, error)
	ListActivos(ctx context.Context) ([]*domain.Rol, error)
}
