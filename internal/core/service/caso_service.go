package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/lexfirma/case-management/internal/core/domain"
	"github.com/lexfirma/case-management/internal/core/ports"
)

var errCasoDatosFaltantes = errors.New("el título y nombre del cliente son obligatorios")
var errAsignacionSinEmpleado = errors.New("el ID del empleado es obligatorio")

// CasoService implements case management and the case-team assignments.
type CasoService struct {
	casos     ports.CasoRepository
	empleados ports.EmpleadoRepository
	logger    zerolog.Logger
}

func NewCasoService(casos ports.CasoRepository, empleados ports.EmpleadoRepository, logger zerolog.Logger) *CasoService {
	return &CasoService{casos: casos, empleados: empleados, logger: logger}
}

func (s *CasoService) List(ctx context.Context) ([]*domain.Caso, error) {
	return s.casos.List(ctx)
}

func (s *CasoService) Get(ctx context.Context, id string) (*domain.Caso, error) {
	return s.casos.FindByID(ctx, id)
}

func (s *CasoService) Create(ctx context.Context, input ports.CreateCasoInput) (*domain.Caso, error) {
	if input.Title == "" || input.ClientName == "" {
		return nil, errCasoDatosFaltantes
	}

	now := time.Now().UTC()
	caso := casoFromInput(input)
	if caso.Status == "" {
		caso.Status = domain.CasoActivo
	}
	caso.CreatedAt = now
	caso.UpdatedAt = now

	created, err := s.casos.Create(ctx, caso)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create caso")
		return nil, err
	}

	s.logger.Info().Str("caso_id", created.ID).Str("title", created.Title).Msg("caso created")
	return created, nil
}

func (s *CasoService) Update(ctx context.Context, id string, input ports.CreateCasoInput) (*domain.Caso, error) {
	existing, err := s.casos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	caso := casoFromInput(input)
	caso.ID = existing.ID
	if caso.Title == "" {
		caso.Title = existing.Title
	}
	if caso.ClientName == "" {
		caso.ClientName = existing.ClientName
	}
	if caso.Status == "" {
		caso.Status = existing.Status
	}
	caso.CreatedBy = existing.CreatedBy
	caso.CreatedAt = existing.CreatedAt
	caso.UpdatedAt = time.Now().UTC()

	if err := s.casos.Update(ctx, caso); err != nil {
		return nil, err
	}
	return caso, nil
}

func (s *CasoService) Delete(ctx context.Context, id string) error {
	if _, err := s.casos.FindByID(ctx, id); err != nil {
		return err
	}
	return s.casos.Delete(ctx, id)
}

// ListForCliente is the portal data scope: only cases linked to the caller's
// client record.
func (s *CasoService) ListForCliente(ctx context.Context, clienteID string) ([]*domain.Caso, error) {
	if clienteID == "" {
		return nil, domain.ErrAccesoDenegado
	}
	return s.casos.ListByCliente(ctx, clienteID)
}

func (s *CasoService) ListEquipo(ctx context.Context, casoID string) ([]*domain.Asignacion, error) {
	if _, err := s.casos.FindByID(ctx, casoID); err != nil {
		return nil, err
	}
	return s.casos.ListAsignaciones(ctx, casoID)
}

func (s *CasoService) AsignarEmpleado(ctx context.Context, casoID string, input ports.AsignarEmpleadoInput) (*domain.Asignacion, error) {
	if input.EmpleadoID == "" {
		return nil, errAsignacionSinEmpleado
	}
	if _, err := s.casos.FindByID(ctx, casoID); err != nil {
		return nil, err
	}
	empleado, err := s.empleados.FindByID(ctx, input.EmpleadoID)
	if err != nil {
		return nil, err
	}

	asignacion := &domain.Asignacion{
		CasoID:          casoID,
		EmpleadoID:      empleado.ID,
		RolEnCaso:       defaultString(input.RolEnCaso, "Asignado"),
		Notas:           input.Notas,
		FechaAsignacion: time.Now().UTC(),
		Empleado:        empleado,
	}

	created, err := s.casos.CreateAsignacion(ctx, asignacion)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("caso_id", casoID).Str("empleado_id", empleado.ID).Str("rol_en_caso", created.RolEnCaso).Msg("empleado assigned to caso")
	return created, nil
}

func (s *CasoService) DesasignarEmpleado(ctx context.Context, casoID, empleadoID string) error {
	if _, err := s.casos.FindByID(ctx, casoID); err != nil {
		return err
	}
	return s.casos.DeleteAsignacion(ctx, casoID, empleadoID)
}

func casoFromInput(input ports.CreateCasoInput) *domain.Caso {
	return &domain.Caso{
		Title:             input.Title,
		Description:       input.Description,
		ClientName:        input.ClientName,
		ClienteID:         input.ClienteID,
		ContactPerson:     input.ContactPerson,
		ClientEmail:       input.ClientEmail,
		ClientPhone:       input.ClientPhone,
		PracticeArea:      input.PracticeArea,
		CaseType:          input.CaseType,
		Opponent:          input.Opponent,
		OpponentLawyer:    input.OpponentLawyer,
		FileNumber:        input.FileNumber,
		Court:             input.Court,
		Jurisdiction:      input.Jurisdiction,
		Judge:             input.Judge,
		Status:            domain.CasoStatus(input.Status),
		NextHearing:       input.NextHearing,
		Amount:            input.Amount,
		Fees:              input.Fees,
		ResponsibleLawyer: input.ResponsibleLawyer,
		Assistants:        input.Assistants,
		Strategy:          input.Strategy,
		Risks:             input.Risks,
		Observaciones:     input.Observaciones,
		StartDate:         input.StartDate,
		EndDate:           input.EndDate,
		CreatedBy:         input.CreatedBy,
	}
}
