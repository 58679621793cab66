package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/lexfirma/case-management/internal/core/domain"
	"github.com/lexfirma/case-management/internal/core/ports"
)

var errEmpleadoSinNombre = errors.New("el nombre del empleado es obligatorio")

// EmpleadoService implements staff management.
type EmpleadoService struct {
	empleados ports.EmpleadoRepository
	logger    zerolog.Logger
}

func NewEmpleadoService(empleados ports.EmpleadoRepository, logger zerolog.Logger) *EmpleadoService {
	return &EmpleadoService{empleados: empleados, logger: logger}
}

func (s *EmpleadoService) List(ctx context.Context) ([]*domain.Empleado, error) {
	return s.empleados.List(ctx)
}

func (s *EmpleadoService) Get(ctx context.Context, id string) (*domain.Empleado, error) {
	return s.empleados.FindByID(ctx, id)
}

func (s *EmpleadoService) Create(ctx context.Context, input ports.CreateEmpleadoInput) (*domain.Empleado, error) {
	if input.Nombre == "" {
		return nil, errEmpleadoSinNombre
	}

	now := time.Now().UTC()
	ingreso := input.FechaIngreso
	if ingreso == nil {
		hoy := now.Truncate(24 * time.Hour)
		ingreso = &hoy
	}

	empleado := &domain.Empleado{
		Nombre:         input.Nombre,
		Email:          input.Email,
		Telefono:       input.Telefono,
		Rol:            defaultString(input.Rol, "Abogado"),
		Especialidad:   input.Especialidad,
		AvatarURL:      input.AvatarURL,
		Direccion:      input.Direccion,
		FechaIngreso:   ingreso,
		Salario:        input.Salario,
		NumeroEmpleado: input.NumeroEmpleado,
		Activo:         input.Activo == nil || *input.Activo,
		Notas:          input.Notas,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.empleados.Create(ctx, empleado)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("empleado_id", created.ID).Str("nombre", created.Nombre).Msg("empleado created")
	return created, nil
}

func (s *EmpleadoService) Update(ctx context.Context, id string, input ports.CreateEmpleadoInput) (*domain.Empleado, error) {
	empleado, err := s.empleados.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Nombre != "" {
		empleado.Nombre = input.Nombre
	}
	empleado.Email = input.Email
	empleado.Telefono = input.Telefono
	if input.Rol != "" {
		empleado.Rol = input.Rol
	}
	empleado.Especialidad = input.Especialidad
	empleado.AvatarURL = input.AvatarURL
	empleado.Direccion = input.Direccion
	if input.FechaIngreso != nil {
		empleado.FechaIngreso = input.FechaIngreso
	}
	if input.Salario != 0 {
		empleado.Salario = input.Salario
	}
	if input.NumeroEmpleado != "" {
		empleado.NumeroEmpleado = input.NumeroEmpleado
	}
	if input.Activo != nil {
		empleado.Activo = *input.Activo
	}
	empleado.Notas = input.Notas
	empleado.UpdatedAt = time.Now().UTC()

	if err := s.empleados.Update(ctx, empleado); err != nil {
		return nil, err
	}
	return empleado, nil
}

func (s *EmpleadoService) Delete(ctx context.Context, id string) error {
	if _, err := s.empleados.FindByID(ctx, id); err != nil {
		return err
	}
	return s.empleados.Delete(ctx, id)
}
