package builder

import "errors"

var (
	ErrInvalidFormat  = errors.New("invalid JPEG format: missing SOI marker")
	ErrEmbedFailure   = errors.New("embed image")
	ErrInvalidColor   = errors.New("invalid color")
	ErrInvalidScript  = errors.New("invalid script")
	ErrInvalidOptions = errors.New("invalid options")
	ErrNoAction       = errors.New("no javascript action bound to event")
)
