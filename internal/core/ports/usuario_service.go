package ports

import (
	"context"

	"github.com/lexfirma/case-management/internal/core/domain"
)

// CreateUsuarioInput is the payload for user creation. Password arrives in
// plaintext and is hashed through the PasswordHasher port before persistence.
type CreateUsuarioInput struct {
	Username       string
	Email          string
	Password       string
	RolID          string
	NombreCompleto string
	Telefono       string
	AvatarURL      string
	Activo         *bool
	ClienteID      string
	EmpleadoID     string
}

// UpdateUsuarioInput carries the mutable fields of a user. Nil pointers mean
// "leave unchanged"; a non-empty Password triggers a re-hash.
type UpdateUsuarioInput struct {
	Email          *string
	Password       string
	RolID          *string
	NombreCompleto *string
	Telefono       *string
	AvatarURL      *string
	Activo         *bool
	Verificado     *bool
	ClienteID      *string
	EmpleadoID     *string
}

// UsuarioService implements user administration. All returned users are
// sanitized (no password hash).
type UsuarioService interface {
	List(ctx context.Context) ([]*domain.Usuario, error)
	Get(ctx context.Context, id string) (*domain.Usuario, error)
	Create(ctx context.Context, input CreateUsuarioInput) (*domain.Usuario, error)
	Update(ctx context.Context, id string, input UpdateUsuarioInput) (*domain.Usuario, error)
	Delete(ctx context.Context, id string) error
}
