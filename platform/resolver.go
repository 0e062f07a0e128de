package platform

import (
	"context"
	"log/slog"
	"time"

	"github.com/robbyt/go-polytemplate/internal/helpers"
	"github.com/robbyt/go-polytemplate/platform/data"
	"github.com/robbyt/go-polytemplate/platform/expression"
	"github.com/robbyt/go-polytemplate/platform/metrics"
	"github.com/robbyt/go-polytemplate/platform/placeholder"
	"github.com/robbyt/go-polytemplate/platform/property"
)

// Resolver is the template resolution capability consumed by the binder
// and the CLI.
type Resolver interface {
	// Resolve resolves template against scope. A null result becomes "".
	Resolve(template string, scope any, strict bool) (string, error)

	// ResolveNullable is Resolve that reports a null result with ok == false.
	ResolveNullable(template string, scope any, strict bool) (string, bool, error)
}

// TemplateResolver substitutes placeholders and then evaluates expressions.
// It is safe for concurrent use; each call builds its own navigation frame.
type TemplateResolver struct {
	placeholders *placeholder.Resolver
	expressions  *expression.Evaluator
	props        *property.Introspector
	metrics      metrics.Recorder
	logger       *slog.Logger
}

// NewTemplateResolver wires the two resolution phases together.
func NewTemplateResolver(
	handler slog.Handler,
	placeholders *placeholder.Resolver,
	expressions *expression.Evaluator,
	props *property.Introspector,
	recorder metrics.Recorder,
) *TemplateResolver {
	_, logger := helpers.SetupLogger(handler, "resolver", "TemplateResolver")
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &TemplateResolver{
		placeholders: placeholders,
		expressions:  expressions,
		props:        props,
		metrics:      recorder,
		logger:       logger,
	}
}

func (r *TemplateResolver) String() string {
	return "platform.TemplateResolver{" + r.expressions.String() + "}"
}

// Properties returns the Introspector used for structured objects, so
// callers can register accessor tables.
func (r *TemplateResolver) Properties() *property.Introspector {
	return r.props
}

// Resolve resolves template against scope. A null result becomes "".
func (r *TemplateResolver) Resolve(template string, scope any, strict bool) (string, error) {
	out, _, err := r.ResolveNullable(template, scope, strict)
	return out, err
}

// ResolveNullable substitutes every placeholder (including the single
// re-scan pass) and then evaluates every expression of the result. ok is
// false when the template is exactly one expression that yields nil.
func (r *TemplateResolver) ResolveNullable(
	template string,
	scope any,
	strict bool,
) (out string, ok bool, err error) {
	logger := r.logger.WithGroup("Resolve")
	start := time.Now()
	defer func() {
		r.metrics.RecordResolve(context.Background(), strict, time.Since(start), err)
	}()

	if m, isMulti := scope.(*data.MultiContext); isMulti {
		scope = m.Values()
	}
	frame := data.NewFrame(scope, r.props)

	substituted, err := r.placeholders.Replace(template, frame, strict)
	if err != nil {
		logger.Debug("placeholder phase failed", "template", template, "error", err)
		return "", false, err
	}

	out, ok, err = r.expressions.Evaluate(substituted, frame)
	if err != nil {
		logger.Debug("expression phase failed", "template", template, "error", err)
		return "", false, err
	}

	logger.Debug("resolved template", "template", template, "result", out, "null", !ok)
	return out, ok, nil
}
