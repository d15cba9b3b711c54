// Package prompt implements the interactive prompting used when capturing
// with options: a filtered selection list, a single-line editor with history
// recall, and yes/no confirmation.
//
// Two implementations are provided. Terminal runs a tcell screen and is used
// when stdin is a TTY; Reader works over plain buffered IO for everything
// else. Both report a user abort (Escape, Ctrl+C, or EOF) as ErrAborted so
// callers can cancel the surrounding operation with no partial effect.
//
// The package also provides the supporting pieces the prompters share:
// Filter for fuzzy candidate matching and History for session-lifetime
// prompt histories.
package prompt
