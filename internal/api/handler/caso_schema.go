package handler

import (
	"time"

	"github.com/lexfirma/case-management/internal/core/ports"
)

// casoRequest is the create/update payload for a case. Field names mirror the
// persisted document so the web client can round-trip records untouched.
type casoRequest struct {
	Title             string     `json:"title" validate:"required"`
	Description       string     `json:"description"`
	ClientName        string     `json:"client_name" validate:"required"`
	ClienteID         string     `json:"cliente_id"`
	ContactPerson     string     `json:"contact_person"`
	ClientEmail       string     `json:"client_email"`
	ClientPhone       string     `json:"client_phone"`
	PracticeArea      string     `json:"practice_area"`
	CaseType          string     `json:"case_type"`
	Opponent          string     `json:"opponent"`
	OpponentLawyer    string     `json:"opponent_lawyer"`
	FileNumber        string     `json:"file_number"`
	Court             string     `json:"court"`
	Jurisdiction      string     `json:"jurisdiction"`
	Judge             string     `json:"judge"`
	Status            string     `json:"status"`
	NextHearing       *time.Time `json:"next_hearing"`
	Amount            float64    `json:"amount"`
	Fees              string     `json:"fees"`
	ResponsibleLawyer string     `json:"responsible_lawyer"`
	Assistants        string     `json:"assistants"`
	Strategy          string     `json:"strategy"`
	Risks             string     `json:"risks"`
	Observaciones     string     `json:"observaciones"`
	StartDate         *time.Time `json:"start_date"`
	EndDate           *time.Time `json:"end_date"`
}

func (r casoRequest) toInput(createdBy string) ports.CreateCasoInput {
	return ports.CreateCasoInput{
		Title:             r.Title,
		Description:       r.Description,
		ClientName:        r.ClientName,
		ClienteID:         r.ClienteID,
		ContactPerson:     r.ContactPerson,
		ClientEmail:       r.ClientEmail,
		ClientPhone:       r.ClientPhone,
		PracticeArea:      r.PracticeArea,
		CaseType:          r.CaseType,
		Opponent:          r.Opponent,
		OpponentLawyer:    r.OpponentLawyer,
		FileNumber:        r.FileNumber,
		Court:             r.Court,
		Jurisdiction:      r.Jurisdiction,
		Judge:             r.Judge,
		Status:            r.Status,
		NextHearing:       r.NextHearing,
		Amount:            r.Amount,
		Fees:              r.Fees,
		ResponsibleLawyer: r.ResponsibleLawyer,
		Assistants:        r.Assistants,
		Strategy:          r.Strategy,
		Risks:             r.Risks,
		Observaciones:     r.Observaciones,
		StartDate:         r.StartDate,
		EndDate:           r.EndDate,
		CreatedBy:         createdBy,
	}
}

// asignacionRequest assigns one employee to a case.
type asignacionRequest struct {
	EmpleadoID string `json:"empleado_id" validate:"required"`
	RolEnCaso  string `json:"rol_en_caso"`
	Notas      string `json:"notas"`
}
