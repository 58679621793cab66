package domain

import (
	"errors"
	"time"
)

// Role names as stored in the Roles collection.
const (
	RolAdministrador = "administrador"
	RolEmpleado      = "empleado"
	RolCliente       = "cliente"
)

// Lockout policy defaults: 5 wrong passwords lock the account for 15 minutes.
const (
	DefaultMaxIntentosFallidos = 5
	DefaultBloqueoDuracion     = 15 * time.Minute
)

var (
	ErrCredencialesInvalidas = errors.New("credenciales inválidas")
	ErrCuentaBloqueada       = errors.New("cuenta bloqueada temporalmente, intente más tarde")
	ErrCuentaDesactivada     = errors.New("esta cuenta está desactivada")
	ErrIdentificadorFaltante = errors.New("se requiere el nombre de usuario o el correo electrónico")
	ErrContrasenaFaltante    = errors.New("la contraseña es obligatoria")
	ErrCredencialesFaltantes = errors.New("se requiere el nombre de usuario o el correo electrónico y la contraseña")
	ErrUsuarioNoEncontrado   = errors.New("usuario no encontrado")
	ErrUsuarioExiste         = errors.New("el nombre de usuario o el correo electrónico ya está en uso")
	ErrRolNoEncontrado       = errors.New("rol no encontrado")
)

// Rol is a named permission bucket attached to a Usuario.
type Rol struct {
	ID          string          `json:"id"`
	Nombre      string          `json:"nombre"`
	Descripcion string          `json:"descripcion,omitempty"`
	Permisos    map[string]bool `json:"permisos,omitempty"`
	Activo      bool            `json:"activo"`
}

// Usuario models a system login identity, distinct from the Cliente/Empleado
// business entities it may link to.
type Usuario struct {
	ID               string     `json:"id"`
	Username         string     `json:"username"`
	Email            string     `json:"email"`
	PasswordHash     string     `json:"-"`
	NombreCompleto   string     `json:"nombre_completo,omitempty"`
	Telefono         string     `json:"telefono,omitempty"`
	AvatarURL        string     `json:"avatar_url,omitempty"`
	Activo           bool       `json:"activo"`
	Verificado       bool       `json:"verificado"`
	IntentosFallidos int        `json:"intentos_fallidos"`
	BloqueadoHasta   *time.Time `json:"bloqueado_hasta,omitempty"`
	UltimoAcceso     *time.Time `json:"ultimo_acceso,omitempty"`
	RolID            string     `json:"rol_id"`
	Rol              *Rol       `json:"rol,omitempty"`
	ClienteID        string     `json:"cliente_id,omitempty"`
	EmpleadoID       string     `json:"empleado_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// Bloqueado reports whether the account is locked out at instant now.
func (u *Usuario) Bloqueado(now time.Time) bool {
	return u.BloqueadoHasta != nil && u.BloqueadoHasta.After(now)
}

// Sanitizado returns a copy safe to hand to callers: the password hash never
// leaves the service.
func (u *Usuario) Sanitizado() *Usuario {
	copia := *u
	copia.PasswordHash = ""
	return &copia
}
