package process

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
)

// State represents the state of a run.
type State int

const (
	// StateRunning indicates the run is in progress.
	StateRunning State = iota
	// StateSucceeded indicates the run exited with code zero.
	StateSucceeded
	// StateFailed indicates the run exited nonzero or could not be waited on.
	StateFailed
	// StateKilled indicates the run was ended by a signal.
	StateKilled
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	case StateKilled:
		return "killed"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// Run is a single dispatched renderer command.
//
// A Run tracks the lifecycle of its shell process and buffers the process
// output. It is safe for concurrent use.
type Run struct {
	// ID is the unique identifier for this run.
	ID string

	// Command is the shell command being executed.
	Command string

	// Started is the time the run started.
	Started time.Time

	cmd    *exec.Cmd
	output *Buffer

	// done is closed when the run exits.
	done chan struct{}

	// state tracks the current run state.
	state atomic.Int32

	// exitCode stores the exit code after the run exits, -1 before.
	exitCode atomic.Int32

	// exitErr stores any error from Wait on the underlying command.
	exitErr error

	// mu protects exitErr.
	mu sync.RWMutex

	// consumers tracks the output goroutines; the monitor drains them
	// before waiting on the command.
	consumers sync.WaitGroup
}

func newRun(id, command string, cmd *exec.Cmd, bufferCapacity int) *Run {
	r := &Run{
		ID:      id,
		Command: command,
		cmd:     cmd,
		output:  NewBuffer(bufferCapacity),
		done:    make(chan struct{}),
	}
	r.state.Store(int32(StateRunning))
	r.exitCode.Store(-1)
	return r
}

// State returns the current run state.
func (r *Run) State() State {
	return State(r.state.Load())
}

// ExitCode returns the exit code, or -1 if the run has not exited.
func (r *Run) ExitCode() int {
	return int(r.exitCode.Load())
}

// Succeeded reports whether the run exited with code zero.
func (r *Run) Succeeded() bool {
	return r.State() == StateSucceeded
}

// Done returns a channel that is closed when the run exits.
func (r *Run) Done() <-chan struct{} {
	return r.done
}

// Output returns the run's output buffer.
func (r *Run) Output() *Buffer {
	return r.output
}

// Runtime returns how long the run has been going, or its total runtime
// after exit.
func (r *Run) Runtime() time.Duration {
	if r.Started.IsZero() {
		return 0
	}
	return time.Since(r.Started)
}

// Wait blocks until the run exits or the context is done. It returns the
// run's exit error: nil for a zero exit code, the underlying wait error
// otherwise.
func (r *Run) Wait(ctx context.Context) error {
	select {
	case <-r.done:
		return r.ExitError()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ExitError returns the error from waiting on the process, nil if the run
// succeeded or has not exited.
func (r *Run) ExitError() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.exitErr
}

// Signal sends a signal to the run's process.
func (r *Run) Signal(sig os.Signal) error {
	if r.State() != StateRunning {
		return ErrNotRunning
	}
	if r.cmd.Process == nil {
		return ErrNotRunning
	}
	return r.cmd.Process.Signal(sig)
}

// Kill sends SIGKILL to the run's process.
func (r *Run) Kill() error {
	return r.Signal(syscall.SIGKILL)
}

// Terminate sends SIGTERM to the run's process.
func (r *Run) Terminate() error {
	return r.Signal(syscall.SIGTERM)
}

// consume reads one output stream line by line into the buffer.
func (r *Run) consume(reader io.Reader, stream Stream, maxLine int) {
	defer r.consumers.Done()

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, maxLine), maxLine)
	for scanner.Scan() {
		r.output.Add(scanner.Text(), stream)
	}
}

// finish records the exit result and releases waiters.
func (r *Run) finish(err error) {
	r.mu.Lock()
	r.exitErr = err
	r.mu.Unlock()

	exitCode := 0
	state := StateSucceeded

	if err != nil {
		state = StateFailed
		exitCode = -1

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
			if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
				state = StateKilled
			}
		}
	}

	r.exitCode.Store(int32(exitCode))
	r.state.Store(int32(state))
	close(r.done)
}
