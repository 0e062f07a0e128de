package source

import "errors"

var (
	ErrUnknownFormat = errors.New("unknown template document format")
	ErrDecode        = errors.New("failed to decode template document")
)
