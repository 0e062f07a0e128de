package loader

import "errors"

var (
	ErrSchemeUnsupported  = errors.New("unsupported scheme")
	ErrSourceNotAvailable = errors.New("template source not available")
	ErrUnsupportedInput   = errors.New("unsupported loader input")
)
