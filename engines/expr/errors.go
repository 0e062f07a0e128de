package expr

import "errors"

var (
	ErrCompileFailed = errors.New("failed to compile expr expression")
	ErrBadCall       = errors.New("invalid navigation call")
)
