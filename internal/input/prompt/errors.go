package prompt

import "errors"

// Error types for prompting.
var (
	// ErrAborted indicates the user aborted the prompt (Escape, Ctrl+C, or
	// end of input). The surrounding operation is cancelled entirely.
	ErrAborted = errors.New("prompt aborted")
)
