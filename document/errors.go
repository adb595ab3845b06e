package document

import "errors"

var (
	// ErrInvalidDimensions is returned for page sizes that are not finite and positive.
	ErrInvalidDimensions = errors.New("invalid page dimensions")
	// ErrNoPages is returned when an operation needs a page and the document has none.
	ErrNoPages = errors.New("document has no pages")
	// ErrDanglingReference reports a reference to an object missing from the context.
	ErrDanglingReference = errors.New("dangling object reference")
)
