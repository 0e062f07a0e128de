package starlark

import (
	"log/slog"

	starlarkLib "go.starlark.net/starlark"

	"github.com/robbyt/go-polytemplate/platform/data"
)

type compiled struct {
	source  string
	program *starlarkLib.Program
	modules starlarkLib.StringDict
	logger  *slog.Logger
}

func (c *compiled) Source() string {
	return c.source
}

// Evaluate runs the program with the lookup builtin bound to scope.
func (c *compiled) Evaluate(scope data.Scope) (any, error) {
	thread := &starlarkLib.Thread{
		Name: c.source,
		Print: func(_ *starlarkLib.Thread, msg string) {
			c.logger.Info(msg, "expression", c.source)
		},
	}
	predeclared := starlarkLib.StringDict{
		rootFunc: starlarkLib.NewBuiltin(rootFunc, c.lookup(scope)),
	}

	globals, err := c.program.Init(thread, predeclared)
	if err != nil {
		return nil, err
	}
	return fromStarlark(globals[resultName])
}

// lookup resolves a free name through scope, falling back to the standard
// modules when the context has no such name.
func (c *compiled) lookup(scope data.Scope) func(*starlarkLib.Thread, *starlarkLib.Builtin, starlarkLib.Tuple, []starlarkLib.Tuple) (starlarkLib.Value, error) {
	return func(_ *starlarkLib.Thread, _ *starlarkLib.Builtin, args starlarkLib.Tuple, _ []starlarkLib.Tuple) (starlarkLib.Value, error) {
		name, _ := starlarkLib.AsString(args[0])
		v, presence, err := scope.Root(name)
		if err != nil {
			return nil, err
		}
		if presence == data.Absent {
			if mod, ok := c.modules[name]; ok {
				return mod, nil
			}
			return nil, data.NotFound(name)
		}
		return toStarlark(scope, v)
	}
}
