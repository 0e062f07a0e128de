// Package loader reads template documents from strings, bytes, readers,
// local files and HTTP servers.
package loader

import (
	"io"
	"net/url"
)

// Loader opens a template document. Each GetReader call returns a fresh
// reader that the caller must close.
type Loader interface {
	GetReader() (io.ReadCloser, error)
	GetSourceURL() *url.URL
}
