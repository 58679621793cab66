package domain

import (
	"errors"
	"time"
)

// CasoStatus represents the lifecycle state of a legal case.
type CasoStatus string

const (
	CasoActivo    CasoStatus = "activo"
	CasoEnEspera  CasoStatus = "en_espera"
	CasoCerrado   CasoStatus = "cerrado"
	CasoArchivado CasoStatus = "archivado"
)

var ErrCasoNoEncontrado = errors.New("caso no encontrado")
var ErrEmpleadoYaAsignado = errors.New("este empleado ya está asignado a este caso")
var ErrAccesoDenegado = errors.New("acceso denegado")

// Caso is the core aggregate of the practice: one legal matter with its
// parties, court data and economics.
type Caso struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description,omitempty"`
	ClientName        string     `json:"client_name"`
	ClienteID         string     `json:"cliente_id,omitempty"`
	ContactPerson     string     `json:"contact_person,omitempty"`
	ClientEmail       string     `json:"client_email,omitempty"`
	ClientPhone       string     `json:"client_phone,omitempty"`
	PracticeArea      string     `json:"practice_area,omitempty"`
	CaseType          string     `json:"case_type,omitempty"`
	Opponent          string     `json:"opponent,omitempty"`
	OpponentLawyer    string     `json:"opponent_lawyer,omitempty"`
	FileNumber        string     `json:"file_number,omitempty"`
	Court             string     `json:"court,omitempty"`
	Jurisdiction      string     `json:"jurisdiction,omitempty"`
	Judge             string     `json:"judge,omitempty"`
	Status            CasoStatus `json:"status"`
	NextHearing       *time.Time `json:"next_hearing,omitempty"`
	Amount            float64    `json:"amount,omitempty"`
	Fees              string     `json:"fees,omitempty"`
	ResponsibleLawyer string     `json:"responsible_lawyer,omitempty"`
	Assistants        string     `json:"assistants,omitempty"`
	Strategy          string     `json:"strategy,omitempty"`
	Risks             string     `json:"risks,omitempty"`
	Observaciones     string     `json:"observaciones,omitempty"`
	StartDate         *time.Time `json:"start_date,omitempty"`
	EndDate           *time.Time `json:"end_date,omitempty"`
	CreatedBy         string     `json:"created_by,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// Asignacion links an Empleado to a Caso with a role inside that case.
type Asignacion struct {
	ID               string    `json:"id"`
	CasoID           string    `json:"caso_id"`
	EmpleadoID       string    `json:"empleado_id"`
	RolEnCaso        string    `json:"rol_en_caso"`
	Notas            string    `json:"notas,omitempty"`
	FechaAsignacion  time.Time `json:"fecha_asignacion"`
	Empleado         *Empleado `json:"empleado,omitempty"`
}
