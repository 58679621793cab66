package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lexfirma/case-management/internal/core/ports"
)

// EmpleadoHandler handles HTTP requests for staff management.
type EmpleadoHandler struct {
	service ports.EmpleadoService
}

func NewEmpleadoHandler(service ports.EmpleadoService) *EmpleadoHandler {
	return &EmpleadoHandler{service: service}
}

type empleadoRequest struct {
	Nombre         string     `json:"nombre" validate:"required"`
	Email          string     `json:"email"`
	Telefono       string     `json:"telefono"`
	Rol            string     `json:"rol"`
	Especialidad   string     `json:"especialidad"`
	AvatarURL      string     `json:"avatar_url"`
	Direccion      string     `json:"direccion"`
	FechaIngreso   *time.Time `json:"fecha_ingreso"`
	Salario        float64    `json:"salario"`
	NumeroEmpleado string     `json:"numero_empleado"`
	Activo         *bool      `json:"activo"`
	Notas          string     `json:"notas"`
}

func (r empleadoRequest) toInput() ports.CreateEmpleadoInput {
	return ports.CreateEmpleadoInput{
		Nombre:         r.Nombre,
		Email:          r.Email,
		Telefono:       r.Telefono,
		Rol:            r.Rol,
		Especialidad:   r.Especialidad,
		AvatarURL:      r.AvatarURL,
		Direccion:      r.Direccion,
		FechaIngreso:   r.FechaIngreso,
		Salario:        r.Salario,
		NumeroEmpleado: r.NumeroEmpleado,
		Activo:         r.Activo,
		Notas:          r.Notas,
	}
}

// List handles GET /api/empleados.
//
// @Summary      Listar empleados
// @Tags         empleados
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Empleado
// @Failure      403  {object}  map[string]string
// @Router       /api/empleados [get]
func (h *EmpleadoHandler) List(c echo.Context) error {
	empleados, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, empleados)
}

// Get handles GET /api/empleados/:id.
//
// @Summary      Obtener un empleado
// @Tags         empleados
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "ID del empleado"
// @Success      200  {object}  domain.Empleado
// @Failure      404  {object}  map[string]string
// @Router       /api/empleados/{id} [get]
func (h *EmpleadoHandler) Get(c echo.Context) error {
	empleado, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, empleado)
}

// Create handles POST /api/empleados.
//
// @Summary      Crear un empleado
// @Tags         empleados
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      empleadoRequest  true  "Datos del empleado"
// @Success      201   {object}  domain.Empleado
// @Failure      400   {object}  map[string]string
// @Router       /api/empleados [post]
func (h *EmpleadoHandler) Create(c echo.Context) error {
	var req empleadoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cuerpo de la solicitud inválido")
	}

	empleado, err := h.service.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, empleado)
}

// Update handles PUT /api/empleados/:id.
//
// @Summary      Actualizar un empleado
// @Tags         empleados
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "ID del empleado"
// @Param        body  body      empleadoRequest  true  "Campos a actualizar"
// @Success      200   {object}  domain.Empleado
// @Failure      404   {object}  map[string]string
// @Router       /api/empleados/{id} [put]
func (h *EmpleadoHandler) Update(c echo.Context) error {
	var req empleadoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cuerpo de la solicitud inválido")
	}

	empleado, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, empleado)
}

// Delete handles DELETE /api/empleados/:id.
//
// @Summary      Eliminar un empleado
// @Tags         empleados
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del empleado"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/empleados/{id} [delete]
func (h *EmpleadoHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
