// Package main is the entry point for the codeshot CLI.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/codeshot/internal/app"
	"github.com/dshills/codeshot/internal/capture"
	"github.com/dshills/codeshot/internal/input/prompt"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

// cliOptions holds the parsed command line.
type cliOptions struct {
	configDir  string
	logLevel   string
	preset     string
	promptMode countFlag
	listThemes bool
	setTheme   bool
	input      string
}

// countFlag counts repetitions of a boolean flag, so -p selects prompt
// mode and -p -p selects edit mode.
type countFlag int

func (c *countFlag) String() string { return strconv.Itoa(int(*c)) }

func (c *countFlag) Set(string) error {
	*c++
	return nil
}

func (c *countFlag) IsBoolFlag() bool { return true }

func run() int {
	opts := parseFlags()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The tcell prompter owns the screen, so it is only created for the
	// operations that actually prompt; everything else gets the plain
	// reader, which stays silent unless used.
	interactive := opts.setTheme || capture.ModeFromRepeat(int(opts.promptMode)) != capture.ModePlain

	var prompter capture.Prompter
	var closePrompter func()
	if interactive && term.IsTerminal(int(os.Stdin.Fd())) {
		terminal, err := prompt.NewTerminal()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to open terminal: %v\n", err)
			return 1
		}
		prompter = terminal
		var once sync.Once
		closePrompter = func() { once.Do(terminal.Close) }
		defer closePrompter()
	} else {
		prompter = prompt.NewReader(os.Stdin, os.Stderr)
		closePrompter = func() {}
	}

	application, err := app.New(ctx, app.Options{
		ConfigDir: opts.configDir,
		LogLevel:  opts.logLevel,
		Prompter:  prompter,
	})
	if err != nil {
		closePrompter()
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	switch {
	case opts.listThemes:
		closePrompter()
		return listThemes(application)
	case opts.setTheme:
		return setTheme(application, closePrompter)
	default:
		return captureFile(ctx, application, opts, closePrompter)
	}
}

// listThemes prints the renderer's theme list.
func listThemes(application *app.App) int {
	themes := application.Themes()
	if len(themes) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no themes available (is silicon installed?)")
		return 1
	}
	for _, theme := range themes {
		fmt.Println(theme)
	}
	return 0
}

// setTheme prompts for a default theme and persists it.
func setTheme(application *app.App, closePrompter func()) int {
	theme, err := application.ChooseDefaultTheme()
	closePrompter()
	if err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			return 1
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Printf("Default theme set to %s\n", theme)
	return 0
}

// captureFile dispatches a render for the input file, then waits for it
// and shows its output. Waiting happens here, not in the capture layer:
// the CLI is the host that owns the output display.
func captureFile(ctx context.Context, application *app.App, opts cliOptions, closePrompter func()) int {
	run, err := application.Capture(ctx, capture.Request{
		Input:  opts.input,
		Mode:   capture.ModeFromRepeat(int(opts.promptMode)),
		Preset: opts.preset,
	})
	closePrompter()
	if err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			return 1
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	waitErr := run.Wait(ctx)

	for _, line := range run.Output().Lines() {
		fmt.Fprintln(os.Stderr, line.Content)
	}

	if waitErr != nil {
		if code := run.ExitCode(); code > 0 {
			return code
		}
		return 1
	}
	return 0
}

func parseFlags() cliOptions {
	var opts cliOptions
	var showVersion bool
	var showHelp bool

	flag.Var(&opts.promptMode, "p", "Prompt for options; repeat (-p -p) to edit the raw flag string")
	flag.StringVar(&opts.preset, "preset", "", "Apply a named preset from presets.yaml")
	flag.BoolVar(&opts.listThemes, "list-themes", false, "Print the renderer's theme list and exit")
	flag.BoolVar(&opts.setTheme, "set-theme", false, "Interactively choose and persist the default theme")
	flag.StringVar(&opts.configDir, "config", "", "Configuration directory")
	flag.StringVar(&opts.configDir, "c", "", "Configuration directory (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Codeshot - render source files to images with silicon\n\n")
		fmt.Fprintf(os.Stderr, "Usage: codeshot [options] <file>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  codeshot main.go            Render with the configured defaults\n")
		fmt.Fprintf(os.Stderr, "  codeshot -p main.go         Prompt for theme, colors, and toggles\n")
		fmt.Fprintf(os.Stderr, "  codeshot -p -p main.go      Edit the raw flag string and output path\n")
		fmt.Fprintf(os.Stderr, "  codeshot -preset talk main.go\n")
		fmt.Fprintf(os.Stderr, "  codeshot -set-theme         Choose and persist the default theme\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Codeshot %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.logLevel != "" {
		switch opts.logLevel {
		case "debug", "info", "warn", "error":
		default:
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
			os.Exit(1)
		}
	}

	if !opts.listThemes && !opts.setTheme {
		if flag.NArg() != 1 {
			flag.Usage()
			os.Exit(2)
		}
		opts.input = flag.Arg(0)
	}

	return opts
}
