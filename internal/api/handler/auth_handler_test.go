package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/lexfirma/case-management/internal/core/domain"
	"github.com/lexfirma/case-management/internal/core/ports"
)

type stubAuthService struct {
	authenticateFn func(ctx context.Context, cred ports.Credenciales) (string, *domain.Usuario, error)
}

func (s *stubAuthService) Authenticate(ctx context.Context, cred ports.Credenciales) (string, *domain.Usuario, error) {
	return s.authenticateFn(ctx, cred)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		authenticateFn: func(ctx context.Context, cred ports.Credenciales) (string, *domain.Usuario, error) {
			if cred.Username != "mgarcia" || cred.Password != "secreta" {
				t.Fatalf("unexpected credentials: %+v", cred)
			}
			return "token123", &domain.Usuario{
				ID:       "u1",
				Username: "mgarcia",
				Email:    "mgarcia@lexfirma.ec",
				Rol:      &domain.Rol{ID: "r2", Nombre: domain.RolEmpleado},
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	body := strings.NewReader(`{"username":"mgarcia","password":"secreta"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}

	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	data, ok := resp["data"].(map[string]any)
	if !ok || data["username"] != "mgarcia" {
		t.Fatalf("unexpected data payload: %+v", data)
	}
	rol, ok := data["rol"].(map[string]any)
	if !ok || rol["nombre"] != "empleado" {
		t.Fatalf("expected nested rol, got %+v", data["rol"])
	}
	if _, leaked := data["password_hash"]; leaked {
		t.Fatalf("password hash leaked in response")
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	e := echo.New()

	// Each missing field keeps its own 400 message.
	cases := []struct {
		name    string
		body    string
		authErr error
	}{
		{"sin identificador", `{"password":"x"}`, domain.ErrIdentificadorFaltante},
		{"sin contraseña", `{"username":"mgarcia"}`, domain.ErrContrasenaFaltante},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubAuthService{
				authenticateFn: func(ctx context.Context, cred ports.Credenciales) (string, *domain.Usuario, error) {
					return "", nil, tc.authErr
				},
			}
			handler := NewAuthHandler(stub)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(tc.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			_ = handler.Login(c)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			var resp map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp["error"] != tc.authErr.Error() {
				t.Fatalf("expected %q, got %q", tc.authErr.Error(), resp["error"])
			}
		})
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		authenticateFn: func(ctx context.Context, cred ports.Credenciales) (string, *domain.Usuario, error) {
			return "", nil, domain.ErrCredencialesInvalidas
		},
	}
	handler := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"mgarcia","password":"mala"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Login(c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_LockedAccount(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		authenticateFn: func(ctx context.Context, cred ports.Credenciales) (string, *domain.Usuario, error) {
			return "", nil, domain.ErrCuentaBloqueada
		},
	}
	handler := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"jdoe","password":"loquesea"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Login(c)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["error"] != domain.ErrCuentaBloqueada.Error() {
		t.Fatalf("expected lockout message, got %q", resp["error"])
	}
}

func TestAuthHandler_Login_DisabledAccount(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		authenticateFn: func(ctx context.Context, cred ports.Credenciales) (string, *domain.Usuario, error) {
			return "", nil, domain.ErrCuentaDesactivada
		},
	}
	handler := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"ex@lexfirma.ec","password":"x"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Login(c)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["error"] != domain.ErrCuentaDesactivada.Error() {
		t.Fatalf("expected disabled message, got %q", resp["error"])
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		authenticateFn: func(ctx context.Context, cred ports.Credenciales) (string, *domain.Usuario, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Login(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
