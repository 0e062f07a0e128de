package loader

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/robbyt/go-polytemplate/platform/source/loader/httpauth"
)

const userAgent = "go-polytemplate/http-loader"

// HTTPOptions configures the HTTP loader. Start from DefaultHTTPOptions.
type HTTPOptions struct {
	// Timeout for each request
	Timeout time.Duration

	// TLSConfig overrides the transport TLS configuration
	TLSConfig *tls.Config

	// InsecureSkipVerify disables certificate verification, for tests only
	InsecureSkipVerify bool

	// Authenticator applies credentials to each request
	Authenticator httpauth.Authenticator

	// Headers are added to every request after authentication
	Headers map[string]string
}

// DefaultHTTPOptions returns a 30 second timeout with no authentication.
func DefaultHTTPOptions() *HTTPOptions {
	return &HTTPOptions{
		Timeout:       30 * time.Second,
		Authenticator: httpauth.NewNoAuth(),
		Headers:       make(map[string]string),
	}
}

// WithBasicAuth returns a copy of the options using basic authentication.
func (o *HTTPOptions) WithBasicAuth(username, password string) *HTTPOptions {
	c := *o
	c.Authenticator = httpauth.NewBasicAuth(username, password)
	return &c
}

// WithHeaderAuth returns a copy of the options authenticating with headers.
func (o *HTTPOptions) WithHeaderAuth(headers map[string]string) *HTTPOptions {
	c := *o
	c.Authenticator = httpauth.NewHeaderAuth(headers)
	return &c
}

// FromHTTP fetches a document from an http or https URL on every GetReader call.
type FromHTTP struct {
	sourceURL *url.URL
	options   *HTTPOptions
	client    *http.Client
}

func NewFromHTTP(rawURL string) (*FromHTTP, error) {
	return NewFromHTTPWithOptions(rawURL, DefaultHTTPOptions())
}

func NewFromHTTPWithOptions(rawURL string, options *HTTPOptions) (*FromHTTP, error) {
	sourceURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("unable to parse URL: %w", err)
	}
	if sourceURL.Scheme != "http" && sourceURL.Scheme != "https" {
		return nil, fmt.Errorf("%w: %s", ErrSchemeUnsupported, rawURL)
	}

	if options == nil {
		options = DefaultHTTPOptions()
	}
	if options.Authenticator == nil {
		options.Authenticator = httpauth.NewNoAuth()
	}

	client := &http.Client{Timeout: options.Timeout}
	if options.InsecureSkipVerify || options.TLSConfig != nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if options.TLSConfig != nil {
			transport.TLSClientConfig = options.TLSConfig
		} else {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
		}
		client.Transport = transport
	}

	return &FromHTTP{
		sourceURL: sourceURL,
		options:   options,
		client:    client,
	}, nil
}

func (l *FromHTTP) GetReader() (io.ReadCloser, error) {
	return l.GetReaderWithContext(context.Background())
}

// GetReaderWithContext issues the GET request under ctx. Non-2xx
// responses fail with ErrSourceNotAvailable.
func (l *FromHTTP) GetReaderWithContext(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.sourceURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if err := l.options.Authenticator.AuthenticateWithContext(ctx, req); err != nil {
		return nil, fmt.Errorf("%s authentication failed: %w", l.options.Authenticator.Name(), err)
	}
	for key, value := range l.options.Headers {
		req.Header.Set(key, value)
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute HTTP request: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: HTTP %d - %s", ErrSourceNotAvailable, resp.StatusCode, resp.Status)
	}
	return resp.Body, nil
}

func (l *FromHTTP) GetSourceURL() *url.URL {
	return l.sourceURL
}

func (l *FromHTTP) String() string {
	return fmt.Sprintf("loader.FromHTTP{URL: %s, Auth: %s}", l.sourceURL, l.options.Authenticator.Name())
}
