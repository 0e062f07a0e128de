package options

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/robbyt/go-polytemplate/engines/types"
	"github.com/robbyt/go-polytemplate/platform/expression"
	"github.com/robbyt/go-polytemplate/platform/metrics"
	"github.com/robbyt/go-polytemplate/platform/property"
)

// Config holds all configuration for creating a template resolver
type Config struct {
	// Logger for the resolver and its engine
	handler slog.Handler
	// Type of expression engine to create when no engine is supplied
	engineType types.Type
	// Expression engine, overrides engineType
	engine expression.Engine
	// Accessor registry for structured objects
	introspector *property.Introspector
	// Text substituted for present-but-nil placeholder values, nil when unset
	nullText *string
	// Metrics recorder
	recorder metrics.Recorder
}

// Option is a function that modifies Config
type Option func(*Config) error

// WithLogHandler sets the log handler for the resolver
func WithLogHandler(handler slog.Handler) Option {
	return func(c *Config) error {
		if handler == nil {
			return errors.New("log handler cannot be nil")
		}
		c.handler = handler
		return nil
	}
}

// WithSlog sets the log handler from an slog.Logger
func WithSlog(logger *slog.Logger) Option {
	return func(c *Config) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		c.handler = logger.Handler()
		return nil
	}
}

// WithEngineType selects the expression engine by name. An empty name
// selects types.Default.
func WithEngineType(engineType types.Type) Option {
	return func(c *Config) error {
		parsed, err := types.Parse(string(engineType))
		if err != nil {
			return err
		}
		c.engineType = parsed
		return nil
	}
}

// WithEngine supplies an expression engine directly
func WithEngine(engine expression.Engine) Option {
	return func(c *Config) error {
		if engine == nil {
			return errors.New("engine cannot be nil")
		}
		c.engine = engine
		return nil
	}
}

// WithIntrospector sets the accessor registry used for structured objects
func WithIntrospector(in *property.Introspector) Option {
	return func(c *Config) error {
		if in == nil {
			return errors.New("introspector cannot be nil")
		}
		c.introspector = in
		return nil
	}
}

// WithNullText substitutes text for placeholders whose value is present but nil
func WithNullText(text string) Option {
	return func(c *Config) error {
		c.nullText = &text
		return nil
	}
}

// WithMetrics sets the metrics recorder
func WithMetrics(recorder metrics.Recorder) Option {
	return func(c *Config) error {
		if recorder == nil {
			return errors.New("metrics recorder cannot be nil")
		}
		c.recorder = recorder
		return nil
	}
}

// Validate performs basic validation on the configuration
func (c *Config) Validate() error {
	var errz []error
	if c.handler == nil {
		errz = append(errz, errors.New("no log handler specified"))
	}
	if c.engine == nil {
		if c.engineType == "" {
			errz = append(errz, errors.New("no engine specified"))
		} else if _, err := types.Parse(string(c.engineType)); err != nil {
			errz = append(errz, err)
		}
	}
	if c.introspector == nil {
		errz = append(errz, errors.New("no introspector specified"))
	}
	if c.recorder == nil {
		errz = append(errz, errors.New("no metrics recorder specified"))
	}
	if len(errz) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errz...))
	}
	return nil
}

// GetHandler returns the configured log handler
func (c *Config) GetHandler() slog.Handler {
	return c.handler
}

// SetHandler sets the log handler
func (c *Config) SetHandler(handler slog.Handler) {
	c.handler = handler
}

// GetEngineType returns the configured engine type
func (c *Config) GetEngineType() types.Type {
	return c.engineType
}

// SetEngineType sets the engine type
func (c *Config) SetEngineType(engineType types.Type) {
	c.engineType = engineType
}

// GetEngine returns the configured engine, nil until WithDefaults builds one
func (c *Config) GetEngine() expression.Engine {
	return c.engine
}

// GetIntrospector returns the configured accessor registry
func (c *Config) GetIntrospector() *property.Introspector {
	return c.introspector
}

// GetNullText returns the configured null text and whether it is set
func (c *Config) GetNullText() (string, bool) {
	if c.nullText == nil {
		return "", false
	}
	return *c.nullText, true
}

// GetRecorder returns the configured metrics recorder
func (c *Config) GetRecorder() metrics.Recorder {
	return c.recorder
}
