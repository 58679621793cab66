package domain

import (
	"errors"
	"time"
)

var ErrEmpleadoNoEncontrado = errors.New("empleado no encontrado")

// Empleado is a member of the firm's staff (lawyer, assistant, admin).
type Empleado struct {
	ID             string     `json:"id"`
	Nombre         string     `json:"nombre"`
	Email          string     `json:"email,omitempty"`
	Telefono       string     `json:"telefono,omitempty"`
	Rol            string     `json:"rol"`
	Especialidad   string     `json:"especialidad,omitempty"`
	AvatarURL      string     `json:"avatar_url,omitempty"`
	Direccion      string     `json:"direccion,omitempty"`
	FechaIngreso   *time.Time `json:"fecha_ingreso,omitempty"`
	Salario        float64    `json:"salario,omitempty"`
	NumeroEmpleado string     `json:"numero_empleado,omitempty"`
	Activo         bool       `json:"activo"`
	Notas          string     `json:"notas,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
