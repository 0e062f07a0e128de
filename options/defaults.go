package options

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/robbyt/go-polytemplate/engines"
	"github.com/robbyt/go-polytemplate/engines/types"
	"github.com/robbyt/go-polytemplate/platform/metrics"
	"github.com/robbyt/go-polytemplate/platform/property"
)

// DefaultConfig initializes a Config with sensible defaults
func DefaultConfig(engineType types.Type) *Config {
	cfg := &Config{}
	cfg.SetEngineType(engineType)
	cfg.SetHandler(DefaultHandler())
	return cfg
}

// DefaultHandler returns the default logging handler
func DefaultHandler() slog.Handler {
	return slog.NewTextHandler(os.Stderr, nil)
}

// WithDefaults applies default values to any config properties that are nil,
// and builds the engine named by the engine type when none was supplied.
func WithDefaults() Option {
	return func(c *Config) error {
		if c.handler == nil {
			c.handler = DefaultHandler()
		}
		if c.introspector == nil {
			c.introspector = property.New(c.handler)
		}
		if c.recorder == nil {
			c.recorder = metrics.NewRecorder()
		}
		if c.engine == nil && c.engineType != "" {
			engine, err := engines.New(c.engineType, c.handler)
			if err != nil {
				return fmt.Errorf("failed to create engine: %w", err)
			}
			c.engine = engine
		}
		return nil
	}
}
