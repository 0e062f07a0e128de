package property

import (
	"errors"
	"fmt"
)

var (
	// ErrPropertyRead is matched by every error raised while reading a registered property.
	ErrPropertyRead = errors.New("property read failed")

	// ErrTypeMismatch is returned when an accessor receives an instance of the wrong type.
	ErrTypeMismatch = errors.New("instance type does not match accessor")
)

// ReadError describes a failed or panicking accessor.
type ReadError struct {
	Type     string
	Property string
	Err      error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read property %q of %s: %v", e.Property, e.Type, e.Err)
}

func (e *ReadError) Unwrap() []error {
	return []error{ErrPropertyRead, e.Err}
}
