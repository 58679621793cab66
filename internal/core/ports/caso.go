package ports

import (
	"context"
	"time"

	"github.com/lexfirma/case-management/internal/core/domain"
)

// CasoRepository defines persistence for the Casos collection and the
// case-employee assignment link table.
type CasoRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Caso, error)
	List(ctx context.Context) ([]*domain.Caso, error)
	ListByCliente(ctx context.Context, clienteID string) ([]*domain.Caso, error)
	Create(ctx context.Context, c *domain.Caso) (*domain.Caso, error)
	Update(ctx context.Context, c *domain.Caso) error
	Delete(ctx context.Context, id string) error

	ListAsignaciones(ctx context.Context, casoID string) ([]*domain.Asignacion, error)
	CreateAsignacion(ctx context.Context, a *domain.Asignacion) (*domain.Asignacion, error)
	DeleteAsignacion(ctx context.Context, casoID, empleadoID string) error
}

// CreateCasoInput is the payload for case creation and update.
type CreateCasoInput struct {
	Title             string
	Description       string
	ClientName        string
	ClienteID         string
	ContactPerson     string
	ClientEmail       string
	ClientPhone       string
	PracticeArea      string
	CaseType          string
	Opponent          string
	OpponentLawyer    string
	FileNumber        string
	Court             string
	Jurisdiction      string
	Judge             string
	Status            string
	NextHearing       *time.Time
	Amount            float64
	Fees              string
	ResponsibleLawyer string
	Assistants        string
	Strategy          string
	Risks             string
	Observaciones     string
	StartDate         *time.Time
	EndDate           *time.Time
	CreatedBy         string
}

// AsignarEmpleadoInput assigns an employee to a case.
type AsignarEmpleadoInput struct {
	EmpleadoID string
	RolEnCaso  string
	Notas      string
}

// CasoService implements case management plus the portal's scoped view.
type CasoService interface {
	List(ctx context.Context) ([]*domain.Caso, error)
	Get(ctx context.Context, id string) (*domain.Caso, error)
	Create(ctx context.Context, input CreateCasoInput) (*domain.Caso, error)
	Update(ctx context.Context, id string, input CreateCasoInput) (*domain.Caso, error)
	Delete(ctx context.Context, id string) error

	// ListForCliente returns only the cases linked to the given client; it is
	// the portal's data scope.
	ListForCliente(ctx context.Context, clienteID string) ([]*domain.Caso, error)

	ListEquipo(ctx context.Context, casoID string) ([]*domain.Asignacion, error)
	AsignarEmpleado(ctx context.Context, casoID string, input AsignarEmpleadoInput) (*domain.Asignacion, error)
	DesasignarEmpleado(ctx context.Context, casoID, empleadoID string) error
}
