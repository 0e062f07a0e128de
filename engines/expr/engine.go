package expr

import (
	"fmt"
	"log/slog"

	exprLib "github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/robbyt/go-polytemplate/internal/helpers"
	"github.com/robbyt/go-polytemplate/platform/data"
	"github.com/robbyt/go-polytemplate/platform/expression"
)

// Engine parses #{...} bodies with expr-lang.
type Engine struct {
	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates an expr-lang expression engine.
func New(handler slog.Handler) *Engine {
	handler, logger := helpers.SetupLogger(handler, "expr", "Engine")
	return &Engine{
		logHandler: handler,
		logger:     logger,
	}
}

func (e *Engine) String() string {
	return "expr.Engine"
}

// Parse compiles text. Every free identifier and member access is routed
// through the scope, so providers stay lazy and missing names fail with
// data.ErrNavigationAbsence.
func (e *Engine) Parse(text string) (expression.Compiled, error) {
	logger := e.logger.WithGroup("Parse")

	decls := newDeclarations()
	nav := &navigation{decls: decls}
	program, err := exprLib.Compile(text,
		exprLib.Patch(decls),
		exprLib.Patch(nav),
		exprLib.Function(rootFunc, root),
		exprLib.Function(memberFunc, member),
	)
	if err != nil {
		logger.Debug("expression rejected", "expression", text, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrCompileFailed, err)
	}

	logger.Debug("expression compiled", "expression", text, "names", nav.names)
	return &compiled{source: text, program: program}, nil
}

type compiled struct {
	source  string
	program *vm.Program
}

func (c *compiled) Source() string {
	return c.source
}

func (c *compiled) Evaluate(scope data.Scope) (any, error) {
	run := &evaluation{scope: scope}
	out, err := exprLib.Run(c.program, map[string]any{scopeVar: run})
	if err != nil {
		if run.err != nil {
			return nil, run.err
		}
		return nil, err
	}
	return out, nil
}
