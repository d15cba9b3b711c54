package process

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

const defaultMaxLine = 64 * 1024

// Runner dispatches shell commands as tracked runs.
//
// Runner is safe for concurrent use.
type Runner struct {
	mu   sync.RWMutex
	runs map[string]*Run

	shell     string
	shellArgs []string

	// bufferCapacity is the per-run output line capacity.
	bufferCapacity int

	// closed indicates the runner has been shut down.
	closed atomic.Bool

	// onExit is called when a run exits.
	onExit func(*Run)
}

// RunnerOption configures a Runner instance.
type RunnerOption func(*Runner)

// WithShell sets the shell used to execute commands. The default is $SHELL,
// falling back to /bin/sh.
func WithShell(shell string, args ...string) RunnerOption {
	return func(r *Runner) {
		r.shell = shell
		if len(args) > 0 {
			r.shellArgs = args
		}
	}
}

// WithExitCallback sets a callback invoked when a run exits.
func WithExitCallback(fn func(*Run)) RunnerOption {
	return func(r *Runner) {
		r.onExit = fn
	}
}

// WithBufferCapacity sets the per-run output line capacity.
func WithBufferCapacity(capacity int) RunnerOption {
	return func(r *Runner) {
		r.bufferCapacity = capacity
	}
}

// NewRunner creates a runner.
func NewRunner(opts ...RunnerOption) *Runner {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}

	r := &Runner{
		runs:      make(map[string]*Run),
		shell:     shell,
		shellArgs: []string{"-c"},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Dispatch starts the command through the shell and returns its run without
// waiting. The run's output is captured as it arrives; its exit is observed
// by the runner, which invokes the exit callback and drops the run from
// tracking.
func (r *Runner) Dispatch(ctx context.Context, command string) (*Run, error) {
	if strings.TrimSpace(command) == "" {
		return nil, ErrEmptyCommand
	}

	if r.closed.Load() {
		return nil, ErrRunnerClosed
	}

	cmd := exec.CommandContext(ctx, r.shell, append(append([]string{}, r.shellArgs...), command)...)

	run := newRun(uuid.New().String(), command, cmd, r.bufferCapacity)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("create stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("create stderr pipe: %w", err)
	}

	r.mu.Lock()
	// Re-check under the lock so Shutdown cannot race a starting run.
	if r.closed.Load() {
		r.mu.Unlock()
		stdout.Close()
		stderr.Close()
		return nil, ErrRunnerClosed
	}

	if err := cmd.Start(); err != nil {
		r.mu.Unlock()
		stdout.Close()
		stderr.Close()
		return nil, fmt.Errorf("start %s: %w", r.shell, err)
	}
	run.Started = time.Now()
	r.runs[run.ID] = run
	r.mu.Unlock()

	run.consumers.Add(2)
	go run.consume(stdout, StreamStdout, defaultMaxLine)
	go run.consume(stderr, StreamStderr, defaultMaxLine)

	go r.monitor(run)

	return run, nil
}

// monitor drains output, waits for exit, and cleans up.
func (r *Runner) monitor(run *Run) {
	// Output pipes must be drained before Wait closes them.
	run.consumers.Wait()
	err := run.cmd.Wait()
	run.finish(err)

	if r.onExit != nil {
		func() {
			defer func() {
				// A panicking callback must not take the monitor down.
				_ = recover()
			}()
			r.onExit(run)
		}()
	}

	r.mu.Lock()
	delete(r.runs, run.ID)
	r.mu.Unlock()
}

// Get returns a live run by ID, nil if it is unknown or already finished.
func (r *Runner) Get(id string) *Run {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.runs[id]
}

// Count returns the number of live runs.
func (r *Runner) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.runs)
}

// Shutdown stops accepting new runs, sends SIGTERM to live runs, waits up
// to timeout for them to exit, and SIGKILLs the rest. It blocks until all
// runs have been cleaned up.
func (r *Runner) Shutdown(timeout time.Duration) {
	if r.closed.Swap(true) {
		return
	}

	r.mu.RLock()
	runs := make([]*Run, 0, len(r.runs))
	for _, run := range r.runs {
		runs = append(runs, run)
	}
	r.mu.RUnlock()

	if len(runs) == 0 {
		return
	}

	for _, run := range runs {
		_ = run.Terminate()
	}

	done := make(chan struct{})
	go func() {
		for _, run := range runs {
			<-run.Done()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		for _, run := range runs {
			_ = run.Kill()
		}
		<-done
	}

	// Wait for monitors to drop the runs from tracking.
	for {
		if r.Count() == 0 {
			return
		}
		time.Sleep(time.Millisecond)
	}
}
