// Package httpauth provides authentication strategies for fetching template
// documents over HTTP.
package httpauth

import (
	"context"
	"net/http"
)

// Authenticator applies credentials to an outgoing request.
type Authenticator interface {
	// Authenticate modifies req in place.
	Authenticate(req *http.Request) error

	// AuthenticateWithContext is Authenticate that fails fast on a done context.
	AuthenticateWithContext(ctx context.Context, req *http.Request) error

	// Name returns a descriptive name of the authentication method.
	Name() string
}

// funcAuth is an Authenticator backed by a plain function. A nil apply
// leaves requests untouched.
type funcAuth struct {
	name  string
	apply func(*http.Request) error
}

// NewNoAuth returns an Authenticator that sends no credentials.
func NewNoAuth() Authenticator {
	return funcAuth{name: "None"}
}

// FromFunc wraps apply as an Authenticator reported under name, for
// credentials that none of the built-in strategies cover, such as signed
// template URLs.
func FromFunc(name string, apply func(*http.Request) error) Authenticator {
	return funcAuth{name: name, apply: apply}
}

func (f funcAuth) Authenticate(req *http.Request) error {
	if f.apply == nil {
		return nil
	}
	return f.apply(req)
}

func (f funcAuth) AuthenticateWithContext(ctx context.Context, req *http.Request) error {
	return applyAuthWithContext(ctx, req, f.Authenticate)
}

func (f funcAuth) Name() string {
	return f.name
}

func applyAuthWithContext(
	ctx context.Context,
	req *http.Request,
	authFn func(*http.Request) error,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return authFn(req)
}
