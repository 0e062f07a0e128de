package binder

import (
	"errors"
	"fmt"
)

var (
	ErrBuild     = errors.New("build failed")
	ErrNilTarget = errors.New("build target must be a non-nil pointer")
)

// BuildError reports a failed build of a definition into a target type.
type BuildError struct {
	Type       string
	Definition string
	Err        error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build %s from %q: %v", e.Type, e.Definition, e.Err)
}

func (e *BuildError) Unwrap() []error {
	return []error{ErrBuild, e.Err}
}
