package loader

import (
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"
)

// InferLoader picks a loader for input:
//   - string with http or https scheme: FromHTTP
//   - string with file scheme, or that looks like a path: FromDisk
//   - any other string: FromString
//   - []byte: FromBytes
//   - io.Reader: FromIoReader
//   - Loader: returned as is
func InferLoader(input any) (Loader, error) {
	switch v := input.(type) {
	case Loader:
		return v, nil
	case string:
		return inferFromString(v)
	case []byte:
		return NewFromBytes(v)
	case io.Reader:
		return NewFromIoReader(v, "inferred")
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedInput, input)
	}
}

func inferFromString(input string) (Loader, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty string input", ErrSourceNotAvailable)
	}

	if parsed, err := url.Parse(trimmed); err == nil {
		switch parsed.Scheme {
		case "http", "https":
			return NewFromHTTP(trimmed)
		case "file":
			return diskFromPath(parsed.Path)
		}
	}

	if !strings.ContainsAny(trimmed, "\n=:{") &&
		(filepath.IsAbs(trimmed) || strings.HasPrefix(trimmed, "./") || strings.HasPrefix(trimmed, "../")) {
		return diskFromPath(trimmed)
	}
	return NewFromString(input)
}

func diskFromPath(path string) (Loader, error) {
	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve relative path %q: %w", path, err)
		}
		path = abs
	}
	return NewFromDisk(path)
}
