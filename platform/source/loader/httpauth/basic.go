package httpauth

import (
	"context"
	"net/http"
)

// BasicAuth sets HTTP basic credentials. An empty username sends no header.
type BasicAuth struct {
	username string
	password string
}

// NewBasicAuth creates a BasicAuth authenticator.
func NewBasicAuth(username, password string) *BasicAuth {
	return &BasicAuth{username: username, password: password}
}

func (b *BasicAuth) Authenticate(req *http.Request) error {
	if b.username == "" {
		return nil
	}
	req.SetBasicAuth(b.username, b.password)
	return nil
}

func (b *BasicAuth) AuthenticateWithContext(ctx context.Context, req *http.Request) error {
	return applyAuthWithContext(ctx, req, b.Authenticate)
}

func (b *BasicAuth) Name() string {
	return "Basic"
}
