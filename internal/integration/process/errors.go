package process

import "errors"

// Error types for run dispatch.
var (
	// ErrRunnerClosed indicates the runner has been shut down.
	ErrRunnerClosed = errors.New("runner closed")

	// ErrEmptyCommand indicates an empty command was dispatched.
	ErrEmptyCommand = errors.New("empty command")

	// ErrNotRunning indicates a signal was sent to a run that is not running.
	ErrNotRunning = errors.New("run not running")
)
