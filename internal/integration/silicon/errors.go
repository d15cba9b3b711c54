package silicon

import "errors"

// Error types for renderer operations.
var (
	// ErrExecutableNotFound indicates the renderer executable could not be
	// located on the system.
	ErrExecutableNotFound = errors.New("renderer executable not found")
)
