package main

import (
	"fmt"
	"io"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/robbyt/go-polytemplate/platform/source/loader"
)

// loadContext reads a YAML or JSON mapping from path and overlays the
// --set pairs on top of it.
func loadContext(path string, sets map[string]string) (map[string]any, error) {
	ctx := make(map[string]any)
	if path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve context path: %w", err)
		}
		l, err := loader.NewFromDisk(abs)
		if err != nil {
			return nil, err
		}
		r, err := l.GetReader()
		if err != nil {
			return nil, err
		}
		defer func() { _ = r.Close() }()

		content, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read context: %w", err)
		}
		if err := yaml.Unmarshal(content, &ctx); err != nil {
			return nil, fmt.Errorf("invalid context %s: %w", path, err)
		}
		if ctx == nil {
			ctx = make(map[string]any)
		}
	}

	for key, value := range sets {
		ctx[key] = value
	}
	return ctx, nil
}
