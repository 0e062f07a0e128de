package starlark

import (
	"fmt"
	"log/slog"

	starlarkLib "go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/robbyt/go-polytemplate/internal/helpers"
	"github.com/robbyt/go-polytemplate/platform/expression"
)

// resultName is the global the wrapped expression is assigned to.
const resultName = "_"

// Engine parses #{...} bodies as Starlark expressions.
type Engine struct {
	opts       *syntax.FileOptions
	modules    starlarkLib.StringDict
	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates a Starlark expression engine.
func New(handler slog.Handler) *Engine {
	handler, logger := helpers.SetupLogger(handler, "starlark", "Engine")
	return &Engine{
		opts:       &syntax.FileOptions{},
		modules:    standardModules(),
		logHandler: handler,
		logger:     logger,
	}
}

func (e *Engine) String() string {
	return "starlark.Engine"
}

// Parse validates text as a single expression and compiles it as the file
// `_ = (text)`. Free names are rewritten into calls of a lookup builtin, so
// evaluation asks the scope for a name only when it reaches that name.
func (e *Engine) Parse(text string) (expression.Compiled, error) {
	logger := e.logger.WithGroup("Parse")

	if _, err := e.opts.ParseExpr("expression", text, 0); err != nil {
		logger.Debug("expression rejected", "expression", text, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrCompileFailed, err)
	}

	src := resultName + " = (" + text + "\n)\n"
	resolved, err := e.opts.Parse("expression", src, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompileFailed, err)
	}
	free, names, err := freeNames(resolved)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompileFailed, err)
	}

	f, err := e.opts.Parse("expression", src, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompileFailed, err)
	}
	rw := rewriter{free: free}
	for _, stmt := range f.Stmts {
		if assign, ok := stmt.(*syntax.AssignStmt); ok {
			assign.RHS = rw.expr(assign.RHS)
		}
	}

	prog, err := starlarkLib.FileProgram(f, func(name string) bool {
		return name == rootFunc
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompileFailed, err)
	}

	logger.Debug("expression compiled", "expression", text, "names", names)
	return &compiled{
		source:  text,
		program: prog,
		modules: e.modules,
		logger:  e.logger.WithGroup("Evaluate"),
	}, nil
}
