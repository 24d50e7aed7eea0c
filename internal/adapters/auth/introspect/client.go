package introspect

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/svr1m/PawCare-App/internal/platform/httpclient"
	"github.com/svr1m/PawCare-App/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("introspect: not configured")
	ErrUpstream      = errors.New("introspect: upstream error")
)

// Config del endpoint de introspección de tokens del proveedor de identidad.
type Config struct {
	URL    string
	APIKey string

	// Header donde va la API key. Default "X-Api-Key".
	APIKeyHeader string

	Timeout time.Duration
}

// Verifier implementa auth.AuthVerifier delegando en un endpoint remoto:
// POST {token} => {active, sub|user_id, email}.
type Verifier struct {
	http         *httpclient.Client
	url          string
	apiKey       string
	apiKeyHeader string
}

func NewVerifier(cfg Config) (*Verifier, error) {
	u := strings.TrimSpace(cfg.URL)
	if u == "" {
		return nil, ErrNotConfigured
	}
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Verifier{
		http:         httpclient.New(timeout),
		url:          u,
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
	}, nil
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active *bool  `json:"active"`
	Sub    string `json:"sub"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, auth.ErrInvalidToken
	}

	headers := map[string]string{
		"Authorization": "Bearer " + token,
	}
	if v.apiKey != "" {
		headers[v.apiKeyHeader] = v.apiKey
	}

	var out introspectResponse
	err := v.http.DoJSON(ctx, http.MethodPost, v.url, headers, introspectRequest{Token: token}, &out)
	if err != nil {
		var herr *httpclient.HTTPError
		if errors.As(err, &herr) && (herr.StatusCode == http.StatusUnauthorized || herr.StatusCode == http.StatusForbidden) {
			return auth.Claims{}, auth.ErrInvalidToken
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	// active ausente se toma como true (proveedores que responden 401 para inválidos).
	if out.Active != nil && !*out.Active {
		return auth.Claims{}, auth.ErrInvalidToken
	}

	userID := strings.TrimSpace(out.Sub)
	if userID == "" {
		userID = strings.TrimSpace(out.UserID)
	}
	if userID == "" {
		return auth.Claims{}, fmt.Errorf("%w: response missing subject", ErrUpstream)
	}

	return auth.Claims{
		UserID: userID,
		Email:  strings.TrimSpace(out.Email),
	}, nil
}
