package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lexfirma/case-management/internal/core/domain"
)

// HTTPClient is the LoginClient talking to the API over HTTP.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPClient{baseURL: baseURL, http: httpClient}
}

type loginPayload struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

type loginResult struct {
	Message string          `json:"message"`
	Token   string          `json:"token"`
	Data    *domain.Usuario `json:"data"`
	Error   string          `json:"error"`
}

// Login posts the credentials and maps API error messages back onto the
// domain sentinels so the portal can branch on them.
func (c *HTTPClient) Login(ctx context.Context, username, email, password string) (*Session, error) {
	body, err := json.Marshal(loginPayload{Username: username, Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("encode login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("login request: %w", err)
	}
	defer res.Body.Close()

	var result loginResult
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return nil, mapLoginError(res.StatusCode, result.Error)
	}

	return &Session{Token: result.Token, Usuario: result.Data}, nil
}

// mapLoginError recovers the domain sentinel from the wire message, falling
// back to a generic error that preserves the server's text.
func mapLoginError(status int, msg string) error {
	for _, sentinel := range []error{
		domain.ErrIdentificadorFaltante,
		domain.ErrContrasenaFaltante,
		domain.ErrCredencialesInvalidas,
		domain.ErrCuentaBloqueada,
		domain.ErrCuentaDesactivada,
	} {
		if msg == sentinel.Error() {
			return sentinel
		}
	}
	if msg == "" {
		return fmt.Errorf("login falló con estado %d", status)
	}
	return fmt.Errorf("login falló (%d): %s", status, msg)
}
