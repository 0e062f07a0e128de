package loader

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/url"
	"strings"
)

// digestLen is how many hex characters of a document digest appear in
// source URLs and descriptions.
const digestLen = 8

// memory is a template document held in memory. Its source URL is content
// addressed: the path is the document digest, so loaders over identical
// text report the same URL.
type memory struct {
	content   []byte
	sourceURL *url.URL
}

func newMemory(scheme, host string, content []byte) (memory, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return memory{}, fmt.Errorf("%w: content is empty or contains only whitespace", ErrSourceNotAvailable)
	}
	return memory{
		content:   content,
		sourceURL: &url.URL{Scheme: scheme, Host: host, Path: "/" + digest(content)},
	}, nil
}

func (m memory) GetReader() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(m.content)), nil
}

func (m memory) GetSourceURL() *url.URL {
	return m.sourceURL
}

// Len returns the document size in bytes.
func (m memory) Len() int {
	return len(m.content)
}

// FromString serves an inline document.
type FromString struct {
	memory
}

func NewFromString(content string) (*FromString, error) {
	m, err := newMemory("string", "inline", []byte(content))
	if err != nil {
		return nil, err
	}
	return &FromString{m}, nil
}

func (l *FromString) String() string {
	return fmt.Sprintf("loader.FromString{Bytes: %d, Digest: %s}", l.Len(), strings.TrimPrefix(l.sourceURL.Path, "/"))
}

// FromBytes serves a document held in memory. The content is copied.
type FromBytes struct {
	memory
}

func NewFromBytes(content []byte) (*FromBytes, error) {
	m, err := newMemory("bytes", "inline", bytes.Clone(content))
	if err != nil {
		return nil, err
	}
	return &FromBytes{m}, nil
}

func (l *FromBytes) String() string {
	return fmt.Sprintf("loader.FromBytes{Bytes: %d, Digest: %s}", l.Len(), strings.TrimPrefix(l.sourceURL.Path, "/"))
}

// FromIoReader buffers a whole reader so the document can be read more than
// once. sourceName becomes the host of its reader:// URL.
type FromIoReader struct {
	memory
}

func NewFromIoReader(reader io.Reader, sourceName string) (*FromIoReader, error) {
	if reader == nil {
		return nil, fmt.Errorf("%w: reader is nil", ErrSourceNotAvailable)
	}
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read from reader: %w", err)
	}
	if sourceName == "" {
		sourceName = "unnamed"
	}

	m, err := newMemory("reader", sourceName, content)
	if err != nil {
		return nil, err
	}
	return &FromIoReader{m}, nil
}

func (l *FromIoReader) String() string {
	return fmt.Sprintf("loader.FromIoReader{Bytes: %d, Source: %s}", l.Len(), l.sourceURL)
}

// digest returns the short SHA-256 of a document.
func digest(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])[:digestLen]
}

// readDigest hashes r to the end and returns the short digest.
func readDigest(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil))[:digestLen], nil
}
