package placeholder

import (
	"errors"
	"fmt"
)

// ErrUnresolvedKey is matched by every strict-mode resolution failure.
var ErrUnresolvedKey = errors.New("unresolved placeholder")

// UnresolvedKeyError reports a placeholder with no value and no default in strict mode.
type UnresolvedKeyError struct {
	Key      string
	Fragment string
	Template string
}

func (e *UnresolvedKeyError) Error() string {
	return fmt.Sprintf("could not resolve placeholder %q in value %q", e.Key, e.Template)
}

func (e *UnresolvedKeyError) Is(target error) bool {
	return target == ErrUnresolvedKey
}
