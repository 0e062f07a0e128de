package data

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax is matched by every malformed-token error.
	ErrSyntax = errors.New("template syntax error")

	// ErrNavigationAbsence is returned when an expression names a key or
	// property that does not exist.
	ErrNavigationAbsence = errors.New("no value for key")

	// ErrNotIndexable is returned when an index is applied to a non-sequence.
	ErrNotIndexable = errors.New("value is not indexable")
)

// SyntaxError reports a malformed token: an unterminated placeholder or
// expression, an empty expression, or an expression the engine rejected.
type SyntaxError struct {
	Template string
	Offset   int
	Msg      string
	Err      error
}

func (e *SyntaxError) Error() string {
	msg := fmt.Sprintf("%s at offset %d in %q", e.Msg, e.Offset, e.Template)
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// NotFound returns an ErrNavigationAbsence error naming the missing key.
func NotFound(name string) error {
	return fmt.Errorf("%w: %q", ErrNavigationAbsence, name)
}
