package ports

import (
	"context"

	"github.com/lexfirma/case-management/internal/core/domain"
)

// ClienteRepository defines persistence for the Clientes collection.
type ClienteRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Cliente, error)
	List(ctx context.Context, emailFilter string) ([]*domain.Cliente, error)
	Create(ctx context.Context, c *domain.Cliente) (*domain.Cliente, error)
	Update(ctx context.Context, c *domain.Cliente) error
	Delete(ctx context.Context, id string) error
}

// CreateClienteInput is the payload for client creation.
type CreateClienteInput struct {
	Nombre          string
	TipoCliente     string
	Cedula          string
	Email           string
	Telefono        string
	Direccion       string
	Ciudad          string
	Estado          string
	CodigoPostal    string
	Pais            string
	PersonaContacto string
	CargoContacto   string
	Notas           string
	Activo          *bool
}

// ProvisionResult reports what happened to the portal user that client
// creation tries to provision alongside the client row.
type ProvisionResult struct {
	Creado   bool   `json:"creado"`
	Username string `json:"username,omitempty"`
	Mensaje  string `json:"mensaje"`
}

// ClienteService implements client management, including the automatic
// provisioning of a portal login on creation.
type ClienteService interface {
	List(ctx context.Context, emailFilter string) ([]*domain.Cliente, error)
	Get(ctx context.Context, id string) (*domain.Cliente, error)
	Create(ctx context.Context, input CreateClienteInput) (*domain.Cliente, *ProvisionResult, error)
	Update(ctx context.Context, id string, input CreateClienteInput) (*domain.Cliente, error)
	Delete(ctx context.Context, id string) error
}
