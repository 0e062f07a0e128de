package starlark

import "errors"

var (
	ErrCompileFailed   = errors.New("failed to compile starlark expression")
	ErrUnsupportedType = errors.New("unsupported type")
)
