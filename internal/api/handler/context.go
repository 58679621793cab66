package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lexfirma/case-management/internal/api/middleware"
	"github.com/lexfirma/case-management/internal/core/domain"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call:
//   - rol must be non-empty (presence proves the middleware ran).
//   - the cliente role requires a non-empty cliente_id; without it the JWT is
//     structurally valid but operationally unusable — reject with 401.
func ctxClaims(c echo.Context) (rol, clienteID string, err error) {
	rol, _ = c.Get(middleware.CtxRol).(string)
	if rol == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "faltan las credenciales de autenticación")
	}

	clienteID, _ = c.Get(middleware.CtxClienteID).(string)
	if rol == domain.RolCliente && clienteID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "el token no identifica al cliente")
	}

	return rol, clienteID, nil
}
