package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RBAC restricts a route group to the given roles. It runs after Auth, which
// leaves the token's rol claim in the context.
func RBAC(rolesPermitidos ...string) echo.MiddlewareFunc {
	permitidos := make(map[string]struct{}, len(rolesPermitidos))
	for _, r := range rolesPermitidos {
		permitidos[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rol, _ := c.Get(CtxRol).(string)
			if _, ok := permitidos[rol]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "acceso denegado"})
			}
			return next(c)
		}
	}
}
