package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lexfirma/case-management/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrCredencialesFaltantes),
		errors.Is(err, domain.ErrIdentificadorFaltante),
		errors.Is(err, domain.ErrContrasenaFaltante):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrCredencialesInvalidas):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrCuentaBloqueada),
		errors.Is(err, domain.ErrCuentaDesactivada),
		errors.Is(err, domain.ErrAccesoDenegado):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, domain.ErrUsuarioNoEncontrado),
		errors.Is(err, domain.ErrRolNoEncontrado),
		errors.Is(err, domain.ErrClienteNoEncontrado),
		errors.Is(err, domain.ErrCasoNoEncontrado),
		errors.Is(err, domain.ErrEmpleadoNoEncontrado),
		errors.Is(err, domain.ErrDocumentoNoEncontrado):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrUsuarioExiste),
		errors.Is(err, domain.ErrEmpleadoYaAsignado):
		return http.StatusConflict, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "error interno del servidor"
}
