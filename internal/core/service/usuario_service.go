package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lexfirma/case-management/internal/core/domain"
	"github.com/lexfirma/case-management/internal/core/ports"
)

// UsuarioService implements user administration. Hashing is delegated to the
// same PasswordHasher port the login flow verifies against.
type UsuarioService struct {
	usuarios ports.UsuarioRepository
	roles    ports.RolRepository
	hasher   ports.PasswordHasher
	logger   zerolog.Logger
}

func NewUsuarioService(usuarios ports.UsuarioRepository, roles ports.RolRepository, hasher ports.PasswordHasher, logger zerolog.Logger) *UsuarioService {
	return &UsuarioService{usuarios: usuarios, roles: roles, hasher: hasher, logger: logger}
}

func (s *UsuarioService) List(ctx context.Context) ([]*domain.Usuario, error) {
	usuarios, err := s.usuarios.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Usuario, 0, len(usuarios))
	for _, u := range usuarios {
		out = append(out, u.Sanitizado())
	}
	return out, nil
}

func (s *UsuarioService) Get(ctx context.Context, id string) (*domain.Usuario, error) {
	u, err := s.usuarios.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.Sanitizado(), nil
}

func (s *UsuarioService) Create(ctx context.Context, input ports.CreateUsuarioInput) (*domain.Usuario, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" || input.RolID == "" {
		return nil, domain.ErrCredencialesFaltantes
	}

	if _, err := s.usuarios.FindByUsername(ctx, input.Username); err == nil {
		return nil, domain.ErrUsuarioExiste
	}
	if _, err := s.usuarios.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrUsuarioExiste
	}

	rol, err := s.roles.FindByID(ctx, input.RolID)
	if err != nil {
		return nil, domain.ErrRolNoEncontrado
	}

	hash, err := s.hasher.Hash(ctx, input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashear contraseña: %w", err)
	}

	activo := true
	if input.Activo != nil {
		activo = *input.Activo
	}

	now := time.Now().UTC()
	u := &domain.Usuario{
		Username:       input.Username,
		Email:          input.Email,
		PasswordHash:   hash,
		NombreCompleto: input.NombreCompleto,
		Telefono:       input.Telefono,
		AvatarURL:      input.AvatarURL,
		Activo:         activo,
		Verificado:     false,
		RolID:          rol.ID,
		Rol:            rol,
		ClienteID:      input.ClienteID,
		EmpleadoID:     input.EmpleadoID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.usuarios.Create(ctx, u)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("usuario_id", created.ID).Str("username", created.Username).Msg("usuario created")
	return created.Sanitizado(), nil
}

func (s *UsuarioService) Update(ctx context.Context, id string, input ports.UpdateUsuarioInput) (*domain.Usuario, error) {
	u, err := s.usuarios.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		u.Email = *input.Email
	}
	if input.RolID != nil {
		rol, rerr := s.roles.FindByID(ctx, *input.RolID)
		if rerr != nil {
			return nil, domain.ErrRolNoEncontrado
		}
		u.RolID = rol.ID
		u.Rol = rol
	}
	if input.NombreCompleto != nil {
		u.NombreCompleto = *input.NombreCompleto
	}
	if input.Telefono != nil {
		u.Telefono = *input.Telefono
	}
	if input.AvatarURL != nil {
		u.AvatarURL = *input.AvatarURL
	}
	if input.Activo != nil {
		u.Activo = *input.Activo
	}
	if input.Verificado != nil {
		u.Verificado = *input.Verificado
	}
	if input.ClienteID != nil {
		u.ClienteID = *input.ClienteID
	}
	if input.EmpleadoID != nil {
		u.EmpleadoID = *input.EmpleadoID
	}
	if input.Password != "" {
		hash, herr := s.hasher.Hash(ctx, input.Password)
		if herr != nil {
			return nil, fmt.Errorf("hashear contraseña: %w", herr)
		}
		u.PasswordHash = hash
	}
	u.UpdatedAt = time.Now().UTC()

	if err := s.usuarios.Update(ctx, u); err != nil {
		return nil, err
	}
	return u.Sanitizado(), nil
}

func (s *UsuarioService) Delete(ctx context.Context, id string) error {
	if _, err := s.usuarios.FindByID(ctx, id); err != nil {
		return err
	}
	return s.usuarios.Delete(ctx, id)
}
