package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lexfirma/case-management/internal/core/ports"
)

// RolHandler exposes the read-only Roles reference data.
type RolHandler struct {
	roles ports.RolRepository
}

func NewRolHandler(roles ports.RolRepository) *RolHandler {
	return &RolHandler{roles: roles}
}

// List handles GET /api/roles.
//
// @Summary      Listar roles activos
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Rol
// @Failure      401  {object}  map[string]string
// @Router       /api/roles [get]
func (h *RolHandler) List(c echo.Context) error {
	roles, err := h.roles.ListActivos(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roles)
}

// Get handles GET /api/roles/:id.
//
// @Summary      Obtener un rol
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "ID del rol"
// @Success      200  {object}  domain.Rol
// @Failure      404  {object}  map[string]string
// @Router       /api/roles/{id} [get]
func (h *RolHandler) Get(c echo.Context) error {
	rol, err := h.roles.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rol)
}
