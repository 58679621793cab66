package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lexfirma/case-management/internal/core/ports"
)

// UsuarioHandler handles HTTP requests for user administration.
type UsuarioHandler struct {
	service ports.UsuarioService
}

func NewUsuarioHandler(service ports.UsuarioService) *UsuarioHandler {
	return &UsuarioHandler{service: service}
}

type createUsuarioRequest struct {
	Username       string `json:"username" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	RolID          string `json:"rol_id" validate:"required"`
	NombreCompleto string `json:"nombre_completo"`
	Telefono       string `json:"telefono"`
	AvatarURL      string `json:"avatar_url"`
	Activo         *bool  `json:"activo"`
	ClienteID      string `json:"cliente_id"`
	EmpleadoID     string `json:"empleado_id"`
}

type updateUsuarioRequest struct {
	Email          *string `json:"email"`
	Password       string  `json:"password"`
	RolID          *string `json:"rol_id"`
	NombreCompleto *string `json:"nombre_completo"`
	Telefono       *string `json:"telefono"`
	AvatarURL      *string `json:"avatar_url"`
	Activo         *bool   `json:"activo"`
	Verificado     *bool   `json:"verificado"`
	ClienteID      *string `json:"cliente_id"`
	EmpleadoID     *string `json:"empleado_id"`
}

// List handles GET /api/usuarios.
//
// @Summary      Listar usuarios
// @Tags         usuarios
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Usuario
// @Failure      403  {object}  map[string]string
// @Router       /api/usuarios [get]
func (h *UsuarioHandler) List(c echo.Context) error {
	usuarios, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, usuarios)
}

// Get handles GET /api/usuarios/:id.
//
// @Summary      Obtener un usuario
// @Tags         usuarios
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "ID del usuario"
// @Success      200  {object}  domain.Usuario
// @Failure      404  {object}  map[string]string
// @Router       /api/usuarios/{id} [get]
func (h *UsuarioHandler) Get(c echo.Context) error {
	usuario, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, usuario)
}

// Create handles POST /api/usuarios.
//
// @Summary      Crear un usuario
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUsuarioRequest  true  "Datos del usuario"
// @Success      201   {object}  domain.Usuario
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/usuarios [post]
func (h *UsuarioHandler) Create(c echo.Context) error {
	var req createUsuarioRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cuerpo de la solicitud inválido")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	usuario, err := h.service.Create(c.Request().Context(), ports.CreateUsuarioInput{
		Username:       req.Username,
		Email:          req.Email,
		Password:       req.Password,
		RolID:          req.RolID,
		NombreCompleto: req.NombreCompleto,
		Telefono:       req.Telefono,
		AvatarURL:      req.AvatarURL,
		Activo:         req.Activo,
		ClienteID:      req.ClienteID,
		EmpleadoID:     req.EmpleadoID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, usuario)
}

// Update handles PUT /api/usuarios/:id.
//
// @Summary      Actualizar un usuario
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "ID del usuario"
// @Param        body  body      updateUsuarioRequest  true  "Campos a actualizar"
// @Success      200   {object}  domain.Usuario
// @Failure      404   {object}  map[string]string
// @Router       /api/usuarios/{id} [put]
func (h *UsuarioHandler) Update(c echo.Context) error {
	var req updateUsuarioRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cuerpo de la solicitud inválido")
	}

	usuario, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateUsuarioInput{
		Email:          req.Email,
		Password:       req.Password,
		RolID:          req.RolID,
		NombreCompleto: req.NombreCompleto,
		Telefono:       req.Telefono,
		AvatarURL:      req.AvatarURL,
		Activo:         req.Activo,
		Verificado:     req.Verificado,
		ClienteID:      req.ClienteID,
		EmpleadoID:     req.EmpleadoID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, usuario)
}

// Delete handles DELETE /api/usuarios/:id.
//
// @Summary      Eliminar un usuario
// @Tags         usuarios
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del usuario"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/usuarios/{id} [delete]
func (h *UsuarioHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
