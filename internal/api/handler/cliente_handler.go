package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lexfirma/case-management/internal/core/domain"
	"github.com/lexfirma/case-management/internal/core/ports"
)

// ClienteHandler handles HTTP requests for client management.
type ClienteHandler struct {
	service ports.ClienteService
}

func NewClienteHandler(service ports.ClienteService) *ClienteHandler {
	return &ClienteHandler{service: service}
}

type clienteRequest struct {
	Nombre          string `json:"nombre"`
	TipoCliente     string `json:"tipo_cliente"`
	Cedula          string `json:"cedula"`
	Email           string `json:"email"`
	Telefono        string `json:"telefono"`
	Direccion       string `json:"direccion"`
	Ciudad          string `json:"ciudad"`
	Estado          string `json:"estado"`
	CodigoPostal    string `json:"codigo_postal"`
	Pais            string `json:"pais"`
	PersonaContacto string `json:"persona_contacto"`
	CargoContacto   string `json:"cargo_contacto"`
	Notas           string `json:"notas"`
	Activo          *bool  `json:"activo"`
}

func (r clienteRequest) toInput() ports.CreateClienteInput {
	return ports.CreateClienteInput{
		Nombre:          r.Nombre,
		TipoCliente:     r.TipoCliente,
		Cedula:          r.Cedula,
		Email:           r.Email,
		Telefono:        r.Telefono,
		Direccion:       r.Direccion,
		Ciudad:          r.Ciudad,
		Estado:          r.Estado,
		CodigoPostal:    r.CodigoPostal,
		Pais:            r.Pais,
		PersonaContacto: r.PersonaContacto,
		CargoContacto:   r.CargoContacto,
		Notas:           r.Notas,
		Activo:          r.Activo,
	}
}

type createClienteResponse struct {
	Cliente *domain.Cliente        `json:"cliente"`
	Portal  *ports.ProvisionResult `json:"portal,omitempty"`
}

// List handles GET /api/clientes. An optional ?email= filter narrows by
// exact email.
//
// @Summary      Listar clientes
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Param        email  query     string  false  "Filtrar por email exacto"
// @Success      200    {array}   domain.Cliente
// @Failure      403    {object}  map[string]string
// @Router       /api/clientes [get]
func (h *ClienteHandler) List(c echo.Context) error {
	clientes, err := h.service.List(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clientes)
}

// Get handles GET /api/clientes/:id.
//
// @Summary      Obtener un cliente
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "ID del cliente"
// @Success      200  {object}  domain.Cliente
// @Failure      404  {object}  map[string]string
// @Router       /api/clientes/{id} [get]
func (h *ClienteHandler) Get(c echo.Context) error {
	cliente, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cliente)
}

// Create handles POST /api/clientes. Besides the client row it provisions a
// portal login (username = email, initial password = cédula) and reports the
// outcome in the portal field.
//
// @Summary      Crear un cliente
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      clienteRequest  true  "Datos del cliente"
// @Success      201   {object}  createClienteResponse
// @Failure      400   {object}  map[string]string
// @Router       /api/clientes [post]
func (h *ClienteHandler) Create(c echo.Context) error {
	var req clienteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cuerpo de la solicitud inválido")
	}

	cliente, portal, err := h.service.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createClienteResponse{Cliente: cliente, Portal: portal})
}

// Update handles PUT /api/clientes/:id.
//
// @Summary      Actualizar un cliente
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "ID del cliente"
// @Param        body  body      clienteRequest  true  "Campos a actualizar"
// @Success      200   {object}  domain.Cliente
// @Failure      404   {object}  map[string]string
// @Router       /api/clientes/{id} [put]
func (h *ClienteHandler) Update(c echo.Context) error {
	var req clienteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cuerpo de la solicitud inválido")
	}

	cliente, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cliente)
}

// Delete handles DELETE /api/clientes/:id.
//
// @Summary      Eliminar un cliente
// @Tags         clientes
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del cliente"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/clientes/{id} [delete]
func (h *ClienteHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
