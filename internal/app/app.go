// Package app wires the codeshot components together and exposes the
// operations the CLI runs: capturing a file, listing themes, and choosing
// the default theme.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/dshills/codeshot/internal/capture"
	"github.com/dshills/codeshot/internal/config"
	"github.com/dshills/codeshot/internal/input/prompt"
	"github.com/dshills/codeshot/internal/integration/process"
	"github.com/dshills/codeshot/internal/integration/silicon"
	"github.com/dshills/codeshot/internal/script"
)

// initScript is the name of the user's Lua init script inside the config
// directory.
const initScript = "init.lua"

// presetsFile is the name of the preset definitions file inside the config
// directory.
const presetsFile = "presets.yaml"

// shutdownTimeout bounds how long Close waits for live renders before
// killing them.
const shutdownTimeout = 5 * time.Second

// Options configures application startup.
type Options struct {
	// ConfigDir overrides the user configuration directory.
	ConfigDir string

	// LogLevel overrides the configured log level when non-empty.
	LogLevel string

	// LogOutput is where log lines are written. Defaults to os.Stderr.
	LogOutput io.Writer

	// Prompter supplies the interactive capabilities. Defaults to a plain
	// reader over stdin/stderr.
	Prompter capture.Prompter
}

// App owns the wired components for one codeshot process.
type App struct {
	cfg        *config.Config
	logger     *Logger
	engine     *script.Engine
	client     *silicon.Client
	runner     *process.Runner
	controller *capture.Controller

	defaults silicon.Options
	closed   atomic.Bool
}

// New builds the application: configuration, logging, the user init
// script, the renderer client, the run dispatcher, and the capture
// controller, in that order. Component failures are reported with the
// component named.
func New(ctx context.Context, opts Options) (*App, error) {
	cfg := configFromOptions(opts)
	if err := cfg.Load(ctx); err != nil {
		return nil, NewComponentError("config", "load", err)
	}

	app := &App{cfg: cfg}
	app.logger = newAppLogger(cfg, opts)

	app.engine = script.New()
	initPath := filepath.Join(cfg.UserConfigDir(), initScript)
	if err := app.engine.LoadInit(initPath); err != nil {
		app.engine.Close()
		return nil, NewComponentError("script", "init", err)
	}

	defaults, err := renderOptions(cfg)
	if err != nil {
		app.engine.Close()
		return nil, NewComponentError("config", "options", err)
	}
	app.defaults = app.engine.Defaults(defaults)

	executable, err := cfg.GetString("silicon.executable")
	if err != nil {
		app.engine.Close()
		return nil, NewComponentError("config", "options", err)
	}
	if exe, ok := app.engine.Executable(); ok {
		executable = exe
	}
	app.client = silicon.New(executable)

	app.runner = process.NewRunner(process.WithExitCallback(app.onRunExit))

	presets, err := capture.LoadPresets(filepath.Join(cfg.UserConfigDir(), presetsFile))
	if err != nil {
		app.engine.Close()
		return nil, NewComponentError("presets", "load", err)
	}

	prompter := opts.Prompter
	if prompter == nil {
		prompter = prompt.NewReader(os.Stdin, os.Stderr)
	}

	historyMax, err := cfg.GetInt("history.max")
	if err != nil {
		historyMax = 0
	}

	var transform capture.Transform
	if app.engine.HasCaptureHooks() {
		transform = app.runCaptureHooks
	}

	app.controller = capture.New(ctx, capture.Config{
		Renderer:     app.client,
		Prompter:     prompter,
		Dispatcher:   app.runner,
		EventBus:     app,
		Defaults:     app.defaults,
		Transform:    transform,
		PersistTheme: app.persistTheme,
		Presets:      presets,
		HistoryMax:   historyMax,
	})

	app.logger.Debug("initialized (config dir %s)", cfg.UserConfigDir())
	return app, nil
}

// configFromOptions builds the configuration instance for startup options.
func configFromOptions(opts Options) *config.Config {
	var cfgOpts []config.Option
	if opts.ConfigDir != "" {
		cfgOpts = append(cfgOpts, config.WithUserConfigDir(opts.ConfigDir))
	}
	return config.New(cfgOpts...)
}

// newAppLogger creates the application logger. An explicit option level
// wins over the configured one.
func newAppLogger(cfg *config.Config, opts Options) *Logger {
	lcfg := DefaultLoggerConfig()
	if level, err := cfg.GetString("logging.level"); err == nil {
		lcfg.Level = ParseLogLevel(level)
	}
	if opts.LogLevel != "" {
		lcfg.Level = ParseLogLevel(opts.LogLevel)
	}
	if opts.LogOutput != nil {
		lcfg.Output = opts.LogOutput
	}
	return NewLogger(lcfg)
}

// Capture renders the requested file. On top of the controller's own
// preconditions it verifies the input names an existing regular file,
// since the CLI is the layer that knows the file system context.
func (app *App) Capture(ctx context.Context, req capture.Request) (*process.Run, error) {
	if app.closed.Load() {
		return nil, ErrClosed
	}

	if req.Input == "" {
		return nil, capture.ErrNoInputFile
	}
	info, err := os.Stat(req.Input)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("%s: %w", req.Input, capture.ErrNoInputFile)
	}

	return app.controller.Capture(ctx, req)
}

// ChooseDefaultTheme prompts for a theme and persists it as the default.
func (app *App) ChooseDefaultTheme() (string, error) {
	if app.closed.Load() {
		return "", ErrClosed
	}
	return app.controller.ChooseDefaultTheme()
}

// Themes returns the renderer's theme list.
func (app *App) Themes() []string {
	return app.controller.Themes()
}

// RenderDefaults returns the resolved process-wide rendering options:
// configuration layered under the init script's assignments.
func (app *App) RenderDefaults() silicon.Options {
	return app.defaults
}

// Logger returns the application logger.
func (app *App) Logger() *Logger {
	return app.logger
}

// Close shuts down live renders and releases the script engine. It is safe
// to call more than once.
func (app *App) Close() {
	if app.closed.Swap(true) {
		return
	}
	app.runner.Shutdown(shutdownTimeout)
	_ = app.engine.Close()
}

// Publish logs capture events. The App is the event sink: a CLI process
// has no event bus to forward to, so events become debug log lines.
func (app *App) Publish(eventType string, data map[string]any) {
	app.logger.WithFields(data).Debug("event %s", eventType)
}

// persistTheme stores a newly chosen default theme in the user settings
// file.
func (app *App) persistTheme(theme string) error {
	if err := app.cfg.Set("silicon.theme", theme); err != nil {
		return err
	}
	return app.cfg.Save()
}

// runCaptureHooks bridges the controller's transform hook to the script
// engine.
func (app *App) runCaptureHooks(input, output string, mode capture.Mode, opts silicon.Options) (silicon.Options, error) {
	return app.engine.RunCaptureHooks(script.Capture{
		Input:   input,
		Output:  output,
		Mode:    mode.String(),
		Options: opts,
	})
}

// onRunExit observes finished renders for logging.
func (app *App) onRunExit(run *process.Run) {
	fields := map[string]any{
		"run_id": run.ID,
		"state":  run.State().String(),
		"code":   run.ExitCode(),
	}
	if run.Succeeded() {
		app.logger.WithFields(fields).Debug("event capture.exited")
		return
	}
	app.logger.WithFields(fields).Warn("render failed")
}
