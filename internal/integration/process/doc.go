// Package process dispatches renderer commands asynchronously and captures
// their output.
//
// The capture flow hands a fully assembled shell command to a Runner and
// returns without waiting; the host that owns the user interface decides
// whether to watch the Run. Each Run executes through the user's shell,
// collects interleaved stdout and stderr lines in a bounded Buffer, and
// tracks its lifecycle:
//
//	Running → Succeeded
//	        → Failed
//	        → Killed
//
// # Usage
//
//	runner := process.NewRunner()
//	defer runner.Shutdown(5 * time.Second)
//
//	run, err := runner.Dispatch(ctx, "silicon --background '#fff' --output 'out.png' main.go")
//	if err != nil {
//		return err
//	}
//
//	// Elsewhere, when the host wants the result:
//	if err := run.Wait(ctx); err != nil {
//		fmt.Println(run.Output().Content())
//	}
//
// Runs are identified by UUID so an exit callback can correlate events
// published for dispatch and completion.
//
// # Graceful Shutdown
//
// Shutdown sends SIGTERM to live runs, waits up to the timeout, then
// SIGKILLs whatever remains:
//
//	runner.Shutdown(5 * time.Second)
//
// Runner and Run are safe for concurrent use.
package process
