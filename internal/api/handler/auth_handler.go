package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lexfirma/case-management/internal/core/domain"
	"github.com/lexfirma/case-management/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string          `json:"message"`
	Token   string          `json:"token"`
	Data    *domain.Usuario `json:"data"`
}

// Login authenticates a user and returns a signed JWT plus the sanitized
// user profile with its nested role.
//
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credenciales (username o email, más password)"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "cuerpo de la solicitud inválido"})
	}

	token, usuario, err := h.authService.Authenticate(c.Request().Context(), ports.Credenciales{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		status := http.StatusInternalServerError
		msg := "error interno del servidor"
		switch {
		case errors.Is(err, domain.ErrIdentificadorFaltante), errors.Is(err, domain.ErrContrasenaFaltante):
			status, msg = http.StatusBadRequest, err.Error()
		case errors.Is(err, domain.ErrCredencialesInvalidas):
			status, msg = http.StatusUnauthorized, err.Error()
		case errors.Is(err, domain.ErrCuentaBloqueada), errors.Is(err, domain.ErrCuentaDesactivada):
			status, msg = http.StatusForbidden, err.Error()
		}
		return c.JSON(status, map[string]string{"error": msg})
	}

	return c.JSON(http.StatusOK, loginResponse{
		Message: "inicio de sesión exitoso",
		Token:   token,
		Data:    usuario,
	})
}
