package ports

import (
	"context"
	"time"

	"github.com/lexfirma/case-management/internal/core/domain"
)

// EmpleadoRepository defines persistence for the Empleados collection.
type EmpleadoRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Empleado, error)
	List(ctx context.Context) ([]*domain.Empleado, error)
	Create(ctx context.Context, e *domain.Empleado) (*domain.Empleado, error)
	Update(ctx context.Context, e *domain.Empleado) error
	Delete(ctx context.Context, id string) error
}

// CreateEmpleadoInput is the payload for employee creation and update.
type CreateEmpleadoInput struct {
	Nombre         string
	Email          string
	Telefono       string
	Rol            string
	Especialidad   string
	AvatarURL      string
	Direccion      string
	FechaIngreso   *time.Time
	Salario        float64
	NumeroEmpleado string
	Activo         *bool
	Notas          string
}

// EmpleadoService implements staff management.
type EmpleadoService interface {
	List(ctx context.Context) ([]*domain.Empleado, error)
	Get(ctx context.Context, id string) (*domain.Empleado, error)
	Create(ctx context.Context, input CreateEmpleadoInput) (*domain.Empleado, error)
	Update(ctx context.Context, id string, input CreateEmpleadoInput) (*domain.Empleado, error)
	Delete(ctx context.Context, id string) error
}
