package expression

import (
	"errors"
	"fmt"
)

// ErrEvaluation is matched by every engine evaluation failure.
var ErrEvaluation = errors.New("expression evaluation failed")

// EvaluationError wraps a runtime failure of a compiled expression.
type EvaluationError struct {
	Expression string
	Err        error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluate expression %q: %v", e.Expression, e.Err)
}

func (e *EvaluationError) Unwrap() []error {
	return []error{ErrEvaluation, e.Err}
}
