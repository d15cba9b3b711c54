// Package capture turns a source file plus rendering options into a
// dispatched silicon invocation.
//
// The Controller owns the three capture modes. Plain mode renders with
// the process-wide defaults. Prompt mode collects the common options
// interactively, each prompt defaulting to the current configuration.
// Edit mode hands the assembled flag string to the user for free editing
// and asks for an explicit output path; the edited string reaches silicon
// verbatim, with no validation on top.
//
// The interactive capabilities are small consumer-defined interfaces
// (Selector, LineReader, Confirmer) so the terminal UI, the stdin
// fallback, and test doubles all plug in the same way.
//
// Dispatch is fire-and-forget: the controller hands the command to the
// process layer and returns the run without waiting for, inspecting, or
// reacting to the renderer's exit.
package capture
