package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/lexfirma/case-management/internal/core/domain"
	"github.com/lexfirma/case-management/internal/core/ports"
)

var errClienteDatosFaltantes = errors.New("el nombre, el correo electrónico y la cédula son obligatorios")

// ClienteService implements client management. Creating a client also
// provisions a portal login for them: username is the client's email and the
// initial password is their cedula.
type ClienteService struct {
	clientes ports.ClienteRepository
	usuarios ports.UsuarioRepository
	roles    ports.RolRepository
	hasher   ports.PasswordHasher
	logger   zerolog.Logger
}

func NewClienteService(clientes ports.ClienteRepository, usuarios ports.UsuarioRepository, roles ports.RolRepository, hasher ports.PasswordHasher, logger zerolog.Logger) *ClienteService {
	return &ClienteService{clientes: clientes, usuarios: usuarios, roles: roles, hasher: hasher, logger: logger}
}

func (s *ClienteService) List(ctx context.Context, emailFilter string) ([]*domain.Cliente, error) {
	return s.clientes.List(ctx, emailFilter)
}

func (s *ClienteService) Get(ctx context.Context, id string) (*domain.Cliente, error) {
	return s.clientes.FindByID(ctx, id)
}

func (s *ClienteService) Create(ctx context.Context, input ports.CreateClienteInput) (*domain.Cliente, *ports.ProvisionResult, error) {
	if input.Nombre == "" || input.Email == "" || input.Cedula == "" {
		return nil, nil, errClienteDatosFaltantes
	}

	now := time.Now().UTC()
	cliente := &domain.Cliente{
		Nombre:          input.Nombre,
		TipoCliente:     defaultString(input.TipoCliente, "empresa"),
		Cedula:          input.Cedula,
		Email:           input.Email,
		Telefono:        input.Telefono,
		Direccion:       input.Direccion,
		Ciudad:          input.Ciudad,
		Estado:          input.Estado,
		CodigoPostal:    input.CodigoPostal,
		Pais:            defaultString(input.Pais, "Ecuador"),
		PersonaContacto: input.PersonaContacto,
		CargoContacto:   input.CargoContacto,
		Notas:           input.Notas,
		Activo:          input.Activo == nil || *input.Activo,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.clientes.Create(ctx, cliente)
	if err != nil {
		return nil, nil, err
	}
	s.logger.Info().Str("cliente_id", created.ID).Str("nombre", created.Nombre).Msg("cliente created")

	return created, s.provisionUsuario(ctx, created), nil
}

// provisionUsuario creates or links the portal login for a freshly created
// client. The client row already exists at this point, so every failure here
// degrades to an informational result instead of an error.
func (s *ClienteService) provisionUsuario(ctx context.Context, cliente *domain.Cliente) *ports.ProvisionResult {
	existente, err := s.usuarios.FindByEmail(ctx, cliente.Email)
	if err == nil {
		existente.ClienteID = cliente.ID
		existente.UpdatedAt = time.Now().UTC()
		if uerr := s.usuarios.Update(ctx, existente); uerr != nil {
			s.logger.Error().Err(uerr).Str("cliente_id", cliente.ID).Msg("failed to link existing usuario to cliente")
		}
		return &ports.ProvisionResult{
			Creado:  false,
			Mensaje: "Ya existía un usuario con este email, se vinculó al cliente",
		}
	}

	rol, err := s.roles.FindByNombre(ctx, domain.RolCliente)
	if err != nil {
		s.logger.Error().Err(err).Msg("rol cliente not found, portal usuario not provisioned")
		return &ports.ProvisionResult{Creado: false, Mensaje: "No se pudo crear el usuario"}
	}

	hash, err := s.hasher.Hash(ctx, cliente.Cedula)
	if err != nil {
		s.logger.Error().Err(err).Str("cliente_id", cliente.ID).Msg("failed to hash portal password")
		return &ports.ProvisionResult{Creado: false, Mensaje: "No se pudo crear el usuario"}
	}

	now := time.Now().UTC()
	usuario := &domain.Usuario{
		Username:       cliente.Email,
		Email:          cliente.Email,
		PasswordHash:   hash,
		NombreCompleto: cliente.Nombre,
		Telefono:       cliente.Telefono,
		Activo:         true,
		Verificado:     false,
		RolID:          rol.ID,
		Rol:            rol,
		ClienteID:      cliente.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	creado, err := s.usuarios.Create(ctx, usuario)
	if err != nil {
		s.logger.Error().Err(err).Str("cliente_id", cliente.ID).Msg("failed to create portal usuario")
		return &ports.ProvisionResult{Creado: false, Mensaje: "Error al crear usuario"}
	}

	s.logger.Info().Str("cliente_id", cliente.ID).Str("usuario_id", creado.ID).Msg("portal usuario provisioned")
	return &ports.ProvisionResult{
		Creado:   true,
		Username: creado.Username,
		Mensaje:  "Usuario creado. Contraseña: la cédula del cliente",
	}
}

func (s *ClienteService) Update(ctx context.Context, id string, input ports.CreateClienteInput) (*domain.Cliente, error) {
	cliente, err := s.clientes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Nombre != "" {
		cliente.Nombre = input.Nombre
	}
	if input.TipoCliente != "" {
		cliente.TipoCliente = input.TipoCliente
	}
	if input.Cedula != "" {
		cliente.Cedula = input.Cedula
	}
	if input.Email != "" {
		cliente.Email = input.Email
	}
	cliente.Telefono = input.Telefono
	cliente.Direccion = input.Direccion
	cliente.Ciudad = input.Ciudad
	cliente.Estado = input.Estado
	cliente.CodigoPostal = input.CodigoPostal
	if input.Pais != "" {
		cliente.Pais = input.Pais
	}
	cliente.PersonaContacto = input.PersonaContacto
	cliente.CargoContacto = input.CargoContacto
	cliente.Notas = input.Notas
	if input.Activo != nil {
		cliente.Activo = *input.Activo
	}
	cliente.UpdatedAt = time.Now().UTC()

	if err := s.clientes.Update(ctx, cliente); err != nil {
		return nil, err
	}
	return cliente, nil
}

func (s *ClienteService) Delete(ctx context.Context, id string) error {
	if _, err := s.clientes.FindByID(ctx, id); err != nil {
		return err
	}
	return s.clientes.Delete(ctx, id)
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
