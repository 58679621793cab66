package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lexfirma/case-management/internal/api/middleware"
	"github.com/lexfirma/case-management/internal/core/ports"
)

// CasoHandler handles HTTP requests for case management, the per-case team
// and the client portal's scoped case view.
type CasoHandler struct {
	service ports.CasoService
}

func NewCasoHandler(service ports.CasoService) *CasoHandler {
	return &CasoHandler{service: service}
}

// List handles GET /api/casos.
//
// @Summary      Listar casos
// @Tags         casos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Caso
// @Failure      403  {object}  map[string]string
// @Router       /api/casos [get]
func (h *CasoHandler) List(c echo.Context) error {
	casos, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, casos)
}

// ListPortal handles GET /api/portal/casos: the authenticated client sees
// only the cases linked to its cliente_id claim.
//
// @Summary      Listar los casos del cliente autenticado
// @Tags         portal
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Caso
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/portal/casos [get]
func (h *CasoHandler) ListPortal(c echo.Context) error {
	_, clienteID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	casos, err := h.service.ListForCliente(c.Request().Context(), clienteID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, casos)
}

// Get handles GET /api/casos/:id.
//
// @Summary      Obtener un caso
// @Tags         casos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "ID del caso"
// @Success      200  {object}  domain.Caso
// @Failure      404  {object}  map[string]string
// @Router       /api/casos/{id} [get]
func (h *CasoHandler) Get(c echo.Context) error {
	caso, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, caso)
}

// Create handles POST /api/casos.
//
// @Summary      Crear un caso
// @Tags         casos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      casoRequest  true  "Datos del caso"
// @Success      201   {object}  domain.Caso
// @Failure      400   {object}  map[string]string
// @Router       /api/casos [post]
func (h *CasoHandler) Create(c echo.Context) error {
	var req casoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cuerpo de la solicitud inválido")
	}

	createdBy, _ := c.Get(middleware.CtxUserID).(string)
	caso, err := h.service.Create(c.Request().Context(), req.toInput(createdBy))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, caso)
}

// Update handles PUT /api/casos/:id.
//
// @Summary      Actualizar un caso
// @Tags         casos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "ID del caso"
// @Param        body  body      casoRequest  true  "Campos a actualizar"
// @Success      200   {object}  domain.Caso
// @Failure      404   {object}  map[string]string
// @Router       /api/casos/{id} [put]
func (h *CasoHandler) Update(c echo.Context) error {
	var req casoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cuerpo de la solicitud inválido")
	}

	caso, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toInput(""))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, caso)
}

// Delete handles DELETE /api/casos/:id.
//
// @Summary      Eliminar un caso
// @Tags         casos
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del caso"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/casos/{id} [delete]
func (h *CasoHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListEquipo handles GET /api/casos/:id/equipo.
//
// @Summary      Listar el equipo asignado a un caso
// @Tags         casos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "ID del caso"
// @Success      200  {array}   domain.Asignacion
// @Failure      404  {object}  map[string]string
// @Router       /api/casos/{id}/equipo [get]
func (h *CasoHandler) ListEquipo(c echo.Context) error {
	equipo, err := h.service.ListEquipo(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, equipo)
}

// AsignarEmpleado handles POST /api/casos/:id/equipo.
//
// @Summary      Asignar un empleado a un caso
// @Tags         casos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "ID del caso"
// @Param        body  body      asignacionRequest  true  "Empleado y rol en el caso"
// @Success      201   {object}  domain.Asignacion
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/casos/{id}/equipo [post]
func (h *CasoHandler) AsignarEmpleado(c echo.Context) error {
	var req asignacionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cuerpo de la solicitud inválido")
	}

	asignacion, err := h.service.AsignarEmpleado(c.Request().Context(), c.Param("id"), ports.AsignarEmpleadoInput{
		EmpleadoID: req.EmpleadoID,
		RolEnCaso:  req.RolEnCaso,
		Notas:      req.Notas,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, asignacion)
}

// DesasignarEmpleado handles DELETE /api/casos/:id/equipo/:empleadoID.
//
// @Summary      Quitar un empleado de un caso
// @Tags         casos
// @Security     BearerAuth
// @Param        id          path  string  true  "ID del caso"
// @Param        empleadoID  path  string  true  "ID del empleado"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/casos/{id}/equipo/{empleadoID} [delete]
func (h *CasoHandler) DesasignarEmpleado(c echo.Context) error {
	if err := h.service.DesasignarEmpleado(c.Request().Context(), c.Param("id"), c.Param("empleadoID")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
