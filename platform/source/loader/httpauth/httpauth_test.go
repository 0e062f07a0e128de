package httpauth

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequest(t *testing.T) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, "https://example.com/templates.yaml", nil)
	require.NoError(t, err)
	return req
}

func TestAuthenticators(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		auth     Authenticator
		wantName string
		verify   func(t *testing.T, req *http.Request)
	}{
		{
			name:     "no auth",
			auth:     NewNoAuth(),
			wantName: "None",
			verify: func(t *testing.T, req *http.Request) {
				assert.Empty(t, req.Header)
			},
		},
		{
			name:     "basic",
			auth:     NewBasicAuth("user", "pass"),
			wantName: "Basic",
			verify: func(t *testing.T, req *http.Request) {
				username, password, ok := req.BasicAuth()
				require.True(t, ok)
				assert.Equal(t, "user", username)
				assert.Equal(t, "pass", password)
			},
		},
		{
			name:     "basic without username",
			auth:     NewBasicAuth("", "pass"),
			wantName: "Basic",
			verify: func(t *testing.T, req *http.Request) {
				assert.Empty(t, req.Header.Get("Authorization"))
			},
		},
		{
			name:     "headers",
			auth:     NewHeaderAuth(map[string]string{"X-API-Key": "secret"}),
			wantName: "Header",
			verify: func(t *testing.T, req *http.Request) {
				assert.Equal(t, "secret", req.Header.Get("X-API-Key"))
			},
		},
		{
			name:     "nil headers",
			auth:     NewHeaderAuth(nil),
			wantName: "Header",
			verify: func(t *testing.T, req *http.Request) {
				assert.Empty(t, req.Header)
			},
		},
		{
			name: "func",
			auth: FromFunc("Signed", func(req *http.Request) error {
				q := req.URL.Query()
				q.Set("sig", "abc")
				req.URL.RawQuery = q.Encode()
				return nil
			}),
			wantName: "Signed",
			verify: func(t *testing.T, req *http.Request) {
				assert.Equal(t, "abc", req.URL.Query().Get("sig"))
				assert.Empty(t, req.Header)
			},
		},
		{
			name:     "nil func",
			auth:     FromFunc("Custom", nil),
			wantName: "Custom",
			verify: func(t *testing.T, req *http.Request) {
				assert.Empty(t, req.Header)
			},
		},
		{
			name:     "bearer",
			auth:     NewBearerAuth("token123"),
			wantName: "Header",
			verify: func(t *testing.T, req *http.Request) {
				assert.Equal(t, "Bearer token123", req.Header.Get("Authorization"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantName, tt.auth.Name())

			req := newRequest(t)
			require.NoError(t, tt.auth.Authenticate(req))
			tt.verify(t, req)

			req = newRequest(t)
			require.NoError(t, tt.auth.AuthenticateWithContext(context.Background(), req))
			tt.verify(t, req)
		})
	}
}

func TestAuthenticateCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, auth := range []Authenticator{NewNoAuth(), NewBasicAuth("u", "p"), NewBearerAuth("t")} {
		req := newRequest(t)
		err := auth.AuthenticateWithContext(ctx, req)
		require.ErrorIs(t, err, context.Canceled, auth.Name())
		assert.Empty(t, req.Header.Get("Authorization"))
	}
}

func TestFromFuncError(t *testing.T) {
	t.Parallel()
	boom := errors.New("no signing key")
	auth := FromFunc("Signed", func(*http.Request) error { return boom })
	require.ErrorIs(t, auth.Authenticate(newRequest(t)), boom)
	require.ErrorIs(t, auth.AuthenticateWithContext(context.Background(), newRequest(t)), boom)
}

func TestHeaderAuthCopiesMap(t *testing.T) {
	t.Parallel()
	headers := map[string]string{"X-Token": "a"}
	auth := NewHeaderAuth(headers)
	headers["X-Token"] = "b"

	req := newRequest(t)
	require.NoError(t, auth.Authenticate(req))
	assert.Equal(t, "a", req.Header.Get("X-Token"))
}
