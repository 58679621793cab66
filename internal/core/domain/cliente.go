package domain

import (
	"errors"
	"time"
)

var ErrClienteNoEncontrado = errors.New("cliente no encontrado")

// Cliente is a firm client: a person or company with one or more cases.
type Cliente struct {
	ID              string    `json:"id"`
	Nombre          string    `json:"nombre"`
	TipoCliente     string    `json:"tipo_cliente"`
	Cedula          string    `json:"cedula"`
	Email           string    `json:"email"`
	Telefono        string    `json:"telefono,omitempty"`
	Direccion       string    `json:"direccion,omitempty"`
	Ciudad          string    `json:"ciudad,omitempty"`
	Estado          string    `json:"estado,omitempty"`
	CodigoPostal    string    `json:"codigo_postal,omitempty"`
	Pais            string    `json:"pais,omitempty"`
	PersonaContacto string    `json:"persona_contacto,omitempty"`
	CargoContacto   string    `json:"cargo_contacto,omitempty"`
	Notas           string    `json:"notas,omitempty"`
	Activo          bool      `json:"activo"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
