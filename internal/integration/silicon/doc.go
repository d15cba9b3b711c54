// Package silicon wraps the silicon command-line renderer, which rasterizes
// a source file into a syntax-highlighted image.
//
// The package owns three concerns: locating the renderer executable,
// translating an Options record into silicon's command-line flags, and
// assembling the final shell command. It deliberately performs no validation
// of option values. Colors, theme names, and highlight ranges are passed
// through untouched; silicon itself is the sole arbiter of whether they are
// well formed.
//
// # Usage
//
//	client := silicon.New("silicon")
//	exe, err := client.Executable()
//	if err != nil {
//		// renderer not installed
//	}
//
//	opts := silicon.Resolve(silicon.DefaultOptions(), silicon.Overrides{
//		Theme: "Dracula",
//	})
//	cmd := silicon.CommandLine(exe, opts.FlagString(), "out.png", "main.go")
//
// The resulting command string is meant for a shell. Flag values are
// single-quoted during translation, so a caller may splice user-edited flag
// text into the same position without re-tokenizing it.
//
// Theme discovery runs the renderer once with --list-themes and splits its
// stdout into a list:
//
//	themes, err := client.ListThemes(ctx)
package silicon
