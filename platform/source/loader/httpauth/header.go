package httpauth

import (
	"context"
	"maps"
	"net/http"
)

// HeaderAuth sets arbitrary headers, such as a bearer token.
type HeaderAuth struct {
	headers map[string]string
}

// NewHeaderAuth creates a HeaderAuth authenticator. The map is copied.
func NewHeaderAuth(headers map[string]string) *HeaderAuth {
	return &HeaderAuth{headers: maps.Clone(headers)}
}

// NewBearerAuth creates a HeaderAuth that sends an Authorization bearer token.
func NewBearerAuth(token string) *HeaderAuth {
	return NewHeaderAuth(map[string]string{"Authorization": "Bearer " + token})
}

func (h *HeaderAuth) Authenticate(req *http.Request) error {
	for key, value := range h.headers {
		req.Header.Set(key, value)
	}
	return nil
}

func (h *HeaderAuth) AuthenticateWithContext(ctx context.Context, req *http.Request) error {
	return applyAuthWithContext(ctx, req, h.Authenticate)
}

func (h *HeaderAuth) Name() string {
	return "Header"
}
