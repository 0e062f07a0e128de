package expression

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/robbyt/go-polytemplate/internal/helpers"
	"github.com/robbyt/go-polytemplate/platform/data"
	"github.com/robbyt/go-polytemplate/platform/metrics"
)

const cacheName = "expression"

// Evaluator evaluates the #{...} tokens of a template with an Engine.
// Compiled expressions are cached by their exact text for the lifetime of
// the Evaluator. It is safe for concurrent use.
type Evaluator struct {
	engine  Engine
	cache   sync.Map // string -> Compiled
	metrics metrics.Recorder
	logger  *slog.Logger
}

// New creates an Evaluator. A nil recorder disables metrics.
func New(handler slog.Handler, engine Engine, recorder metrics.Recorder) *Evaluator {
	_, logger := helpers.SetupLogger(handler, "expression", "Evaluator")
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Evaluator{
		engine:  engine,
		metrics: recorder,
		logger:  logger,
	}
}

func (e *Evaluator) String() string {
	return fmt.Sprintf("expression.Evaluator{Engine: %s}", e.engine)
}

// Evaluate resolves every expression token in template. A template that is
// exactly one token yields that expression's value, and ok is false when the
// value is nil. Otherwise literal text and stringified values are concatenated
// and nil values contribute nothing.
func (e *Evaluator) Evaluate(template string, scope data.Scope) (string, bool, error) {
	if template == "" {
		return template, true, nil
	}

	segments, err := scan(template)
	if err != nil {
		return "", false, err
	}

	if len(segments) == 1 && segments[0].expr {
		v, err := e.evaluate(template, segments[0], scope)
		if err != nil {
			return "", false, err
		}
		if v == nil {
			return "", false, nil
		}
		return data.Stringify(v), true, nil
	}

	var b strings.Builder
	for _, seg := range segments {
		if !seg.expr {
			b.WriteString(seg.text)
			continue
		}
		v, err := e.evaluate(template, seg, scope)
		if err != nil {
			return "", false, err
		}
		b.WriteString(data.Stringify(v))
	}
	return b.String(), true, nil
}

func (e *Evaluator) evaluate(template string, seg segment, scope data.Scope) (any, error) {
	compiled, err := e.compile(template, seg)
	if err != nil {
		return nil, err
	}

	v, err := compiled.Evaluate(scope)
	if err != nil {
		if errors.Is(err, data.ErrNavigationAbsence) {
			return nil, fmt.Errorf("expression %q: %w", seg.text, err)
		}
		return nil, &EvaluationError{Expression: seg.text, Err: err}
	}
	return data.ResolveValue(v)
}

// Compile returns the cached handle for text, parsing it on a miss.
func (e *Evaluator) Compile(text string) (Compiled, error) {
	return e.compile(text, segment{text: text, expr: true})
}

func (e *Evaluator) compile(template string, seg segment) (Compiled, error) {
	ctx := context.Background()
	if cached, ok := e.cache.Load(seg.text); ok {
		e.metrics.RecordCacheLookup(ctx, cacheName, true)
		return cached.(Compiled), nil
	}
	e.metrics.RecordCacheLookup(ctx, cacheName, false)

	if e.engine == nil {
		return nil, &data.SyntaxError{Template: template, Offset: seg.offset, Msg: "no expression engine configured"}
	}

	compiled, err := e.engine.Parse(seg.text)
	if err != nil {
		return nil, &data.SyntaxError{
			Template: template,
			Offset:   seg.offset,
			Msg:      fmt.Sprintf("invalid expression %q", seg.text),
			Err:      err,
		}
	}

	actual, loaded := e.cache.LoadOrStore(seg.text, compiled)
	if !loaded {
		e.logger.Debug("compiled expression", "expression", seg.text, "engine", e.engine.String())
	}
	return actual.(Compiled), nil
}

// Cached reports whether text has a compiled handle in the cache.
func (e *Evaluator) Cached(text string) bool {
	_, ok := e.cache.Load(text)
	return ok
}
