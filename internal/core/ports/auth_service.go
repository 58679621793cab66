package ports

import (
	"context"

	"github.com/lexfirma/case-management/internal/core/domain"
)

// Credenciales carries one login attempt. Exactly one of Username/Email is
// expected; the handler passes through whichever field the caller supplied.
type Credenciales struct {
	Username string
	Email    string
	Password string
}

// AuthService validates a login attempt and enforces the lockout policy.
// On success it returns a signed API token and the sanitized user with its
// nested role.
type AuthService interface {
	Authenticate(ctx context.Context, cred Credenciales) (string, *domain.Usuario, error)
}

// PasswordHasher is the opaque hashing capability. The concrete algorithm is
// an implementation detail behind this port; the lockout logic never sees it.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	Verify(ctx context.Context, plaintext, hash string) (bool, error)
}
