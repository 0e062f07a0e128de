package expression

import "github.com/robbyt/go-polytemplate/platform/data"

// Engine parses expression text into reusable compiled handles.
type Engine interface {
	// Parse compiles one expression. The text is the body of a #{...} token.
	Parse(text string) (Compiled, error)

	String() string
}

// Compiled is a parsed expression. It must be safe to evaluate from multiple
// goroutines, each with its own Scope.
type Compiled interface {
	// Evaluate runs the expression. Names are resolved through scope.
	Evaluate(scope data.Scope) (any, error)

	// Source returns the expression text the handle was parsed from.
	Source() string
}
