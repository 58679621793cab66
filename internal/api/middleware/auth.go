package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Context keys populated by Auth for downstream handlers.
const (
	CtxUserID     = "user_id"
	CtxUsername   = "username"
	CtxRol        = "rol"
	CtxClienteID  = "cliente_id"
	CtxEmpleadoID = "empleado_id"
)

// Auth validates the bearer JWT and injects its claims into the echo context.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "falta el encabezado de autorización")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "encabezado de autorización inválido")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "token inválido")
			}

			c.Set(CtxUserID, claims["sub"])
			c.Set(CtxUsername, claims["username"])
			c.Set(CtxRol, claims["rol"])
			c.Set(CtxClienteID, claims["cliente_id"])
			c.Set(CtxEmpleadoID, claims["empleado_id"])

			return next(c)
		}
	}
}
