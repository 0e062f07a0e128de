package polytemplate

import (
	"errors"
	"fmt"

	"github.com/robbyt/go-polytemplate/engines/types"
	"github.com/robbyt/go-polytemplate/options"
	"github.com/robbyt/go-polytemplate/platform"
	"github.com/robbyt/go-polytemplate/platform/binder"
	"github.com/robbyt/go-polytemplate/platform/expression"
	"github.com/robbyt/go-polytemplate/platform/placeholder"
	"github.com/robbyt/go-polytemplate/platform/source"
)

// New creates a template resolver. Without WithEngine or WithEngineType the
// types.Default engine is used.
func New(opts ...options.Option) (*platform.TemplateResolver, error) {
	return newResolver(types.Default, opts...)
}

// NewStarlarkResolver creates a resolver whose #{...} expressions are Starlark
func NewStarlarkResolver(opts ...options.Option) (*platform.TemplateResolver, error) {
	return newResolver(types.Starlark, opts...)
}

// NewExprResolver creates a resolver whose #{...} expressions use expr-lang
func NewExprResolver(opts ...options.Option) (*platform.TemplateResolver, error) {
	return newResolver(types.Expr, opts...)
}

// NewBuilder creates an object binder over src, resolving with a resolver
// configured by opts.
func NewBuilder(src source.Source, opts ...options.Option) (*binder.Builder, error) {
	if src == nil {
		return nil, errors.New("template source cannot be nil")
	}
	cfg, err := newConfig(types.Default, opts...)
	if err != nil {
		return nil, err
	}
	return binder.New(cfg.GetHandler(), createResolver(cfg), src), nil
}

func newResolver(engineType types.Type, opts ...options.Option) (*platform.TemplateResolver, error) {
	cfg, err := newConfig(engineType, opts...)
	if err != nil {
		return nil, err
	}
	return createResolver(cfg), nil
}

func newConfig(engineType types.Type, opts ...options.Option) (*options.Config, error) {
	cfg := options.DefaultConfig(engineType)

	// Apply all options
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("error applying option: %w", err)
		}
	}

	// Apply defaults option as final step to fill in any missing values
	if err := options.WithDefaults()(cfg); err != nil {
		return nil, fmt.Errorf("error applying defaults: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func createResolver(cfg *options.Config) *platform.TemplateResolver {
	var phOpts []placeholder.Option
	if text, ok := cfg.GetNullText(); ok {
		phOpts = append(phOpts, placeholder.WithNullText(text))
	}

	return platform.NewTemplateResolver(
		cfg.GetHandler(),
		placeholder.New(cfg.GetHandler(), phOpts...),
		expression.New(cfg.GetHandler(), cfg.GetEngine(), cfg.GetRecorder()),
		cfg.GetIntrospector(),
		cfg.GetRecorder(),
	)
}
