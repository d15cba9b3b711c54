package capture

import "errors"

// Errors returned by capture operations.
var (
	// ErrNoInputFile indicates the current editing context has no backing
	// file to render.
	ErrNoInputFile = errors.New("no input file to capture")
)
