package capture

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dshills/codeshot/internal/input/prompt"
	"github.com/dshills/codeshot/internal/integration/process"
	"github.com/dshills/codeshot/internal/integration/silicon"
)

// Selector is the pluggable interactive-selection capability: present a
// message and a candidate list, return the user's choice. Alternative UIs
// substitute here without touching the option translation.
type Selector interface {
	Select(message string, candidates []string, def string) (string, error)
}

// LineReader reads a single line of free text with an editable initial
// value and optional input history.
type LineReader interface {
	ReadLine(message, initial string, history []string) (string, error)
}

// Confirmer asks a yes/no question.
type Confirmer interface {
	Confirm(message string, def bool) (bool, error)
}

// Prompter bundles the interaction capabilities prompt and edit modes use.
type Prompter interface {
	Selector
	LineReader
	Confirmer
}

// Renderer resolves the external renderer and lists its themes.
// *silicon.Client satisfies it.
type Renderer interface {
	Executable() (string, error)
	ListThemes(ctx context.Context) ([]string, error)
}

// Dispatcher hands a fully assembled shell command to the process layer.
// *process.Runner satisfies it.
type Dispatcher interface {
	Dispatch(ctx context.Context, command string) (*process.Run, error)
}

// EventPublisher publishes capture events.
type EventPublisher interface {
	Publish(eventType string, data map[string]any)
}

// Transform rewrites the baseline options for one capture before any
// interaction happens. Capture hooks from the scripting layer plug in
// here. The output argument is the derived path; edit mode may still
// override it afterwards.
type Transform func(input, output string, mode Mode, opts silicon.Options) (silicon.Options, error)

// Request describes one capture invocation.
type Request struct {
	// Input is the backing file to render. Empty means the editing
	// context has no file.
	Input string

	// Mode selects how options are obtained.
	Mode Mode

	// Preset optionally names a stored override set applied on top of
	// the defaults.
	Preset string
}

// Controller drives captures: it resolves options per mode, assembles
// the shell command, and dispatches it without waiting for the result.
type Controller struct {
	mu       sync.Mutex
	defaults silicon.Options

	renderer   Renderer
	prompter   Prompter
	dispatcher Dispatcher
	eventBus   EventPublisher
	transform  Transform
	persist    func(theme string) error
	presets    map[string]silicon.Overrides

	themes []string

	flagHistory   *prompt.History
	outputHistory *prompt.History
}

// Config configures a Controller.
type Config struct {
	// Renderer resolves the silicon executable and lists themes.
	Renderer Renderer

	// Prompter supplies the interactive capabilities.
	Prompter Prompter

	// Dispatcher runs the assembled command.
	Dispatcher Dispatcher

	// EventBus for publishing capture events. Optional.
	EventBus EventPublisher

	// Defaults are the process-wide rendering options.
	Defaults silicon.Options

	// Transform optionally rewrites options per capture. Optional.
	Transform Transform

	// PersistTheme stores a newly chosen default theme. Optional.
	PersistTheme func(theme string) error

	// Presets are named override sets addressable from requests.
	Presets map[string]silicon.Overrides

	// HistoryMax caps the prompt histories. Defaults to 100.
	HistoryMax int
}

// New creates a controller. The theme list is fetched once, here. A
// listing failure leaves the list empty and is reported on the event bus
// rather than failing construction.
func New(ctx context.Context, cfg Config) *Controller {
	c := &Controller{
		defaults:      cfg.Defaults,
		renderer:      cfg.Renderer,
		prompter:      cfg.Prompter,
		dispatcher:    cfg.Dispatcher,
		eventBus:      cfg.EventBus,
		transform:     cfg.Transform,
		persist:       cfg.PersistTheme,
		presets:       cfg.Presets,
		flagHistory:   prompt.NewHistory(cfg.HistoryMax),
		outputHistory: prompt.NewHistory(cfg.HistoryMax),
	}

	themes, err := c.renderer.ListThemes(ctx)
	if err != nil {
		c.publishEvent("capture.themes_failed", map[string]any{
			"error": err.Error(),
		})
	} else {
		c.themes = themes
	}

	return c
}

// Themes returns the renderer's theme list captured at construction.
func (c *Controller) Themes() []string {
	out := make([]string, len(c.themes))
	copy(out, c.themes)
	return out
}

// Capture resolves options for the request, assembles the silicon
// command, and dispatches it. The returned run is already executing; the
// caller decides whether to wait on it. Nothing is dispatched when a
// precondition or a prompt fails.
func (c *Controller) Capture(ctx context.Context, req Request) (*process.Run, error) {
	exe, err := c.renderer.Executable()
	if err != nil {
		return nil, err
	}
	if req.Input == "" {
		return nil, ErrNoInputFile
	}

	opts, err := c.baseline(req)
	if err != nil {
		return nil, err
	}

	derived := silicon.OutputPath(req.Input)

	if c.transform != nil {
		opts, err = c.transform(req.Input, derived, req.Mode, opts)
		if err != nil {
			return nil, fmt.Errorf("transforming options: %w", err)
		}
	}

	var flagStr, output string
	switch req.Mode {
	case ModePrompt:
		opts, err = c.promptOptions(opts)
		if err != nil {
			return nil, err
		}
		flagStr = opts.FlagString()
		output = derived
	case ModeEdit:
		flagStr, output, err = c.editCommand(opts, derived)
		if err != nil {
			return nil, err
		}
	default:
		flagStr = opts.FlagString()
		output = derived
	}

	command := silicon.CommandLine(exe, flagStr, output, req.Input)

	run, err := c.dispatcher.Dispatch(ctx, command)
	if err != nil {
		return nil, fmt.Errorf("dispatching render: %w", err)
	}

	c.publishEvent("capture.dispatched", map[string]any{
		"run_id":  run.ID,
		"command": command,
		"input":   req.Input,
		"output":  output,
		"mode":    req.Mode.String(),
	})

	return run, nil
}

// ChooseDefaultTheme prompts for a theme from the renderer's list and
// makes it the process-wide default. The choice is persisted first; a
// persistence failure leaves the in-memory default unchanged.
func (c *Controller) ChooseDefaultTheme() (string, error) {
	c.mu.Lock()
	cur := c.defaults.Theme
	c.mu.Unlock()

	theme, err := c.prompter.Select("Default theme", c.Themes(), cur)
	if err != nil {
		return "", err
	}

	if c.persist != nil {
		if err := c.persist(theme); err != nil {
			return "", fmt.Errorf("saving default theme: %w", err)
		}
	}

	c.mu.Lock()
	c.defaults.Theme = theme
	c.mu.Unlock()

	c.publishEvent("capture.theme_changed", map[string]any{
		"theme": theme,
	})
	return theme, nil
}

// baseline assembles the starting options: the process-wide defaults
// plus the requested preset.
func (c *Controller) baseline(req Request) (silicon.Options, error) {
	c.mu.Lock()
	opts := c.defaults
	c.mu.Unlock()

	if req.Preset == "" {
		return opts, nil
	}

	ov, ok := c.presets[req.Preset]
	if !ok {
		if len(c.presets) == 0 {
			return silicon.Options{}, fmt.Errorf("unknown preset %q (none defined)", req.Preset)
		}
		return silicon.Options{}, fmt.Errorf("unknown preset %q (available: %s)", req.Preset, presetNames(c.presets))
	}
	return silicon.Resolve(opts, ov), nil
}

// promptOptions collects the common options interactively, each prompt
// defaulting to the current value. An abort propagates unchanged so the
// whole capture stops.
func (c *Controller) promptOptions(cur silicon.Options) (silicon.Options, error) {
	theme, err := c.prompter.Select("Theme", c.Themes(), cur.Theme)
	if err != nil {
		return silicon.Options{}, err
	}
	background, err := c.prompter.ReadLine("Background color", cur.Background, nil)
	if err != nil {
		return silicon.Options{}, err
	}
	highlight, err := c.prompter.ReadLine("Highlight lines", cur.HighlightLines, nil)
	if err != nil {
		return silicon.Options{}, err
	}
	lineNumbers, err := c.prompter.Confirm("Line numbers", cur.LineNumbers)
	if err != nil {
		return silicon.Options{}, err
	}
	windowControls, err := c.prompter.Confirm("Window controls", cur.WindowControls)
	if err != nil {
		return silicon.Options{}, err
	}
	rounded, err := c.prompter.Confirm("Rounded corners", cur.RoundedCorners)
	if err != nil {
		return silicon.Options{}, err
	}

	return silicon.Options{
		LineNumbers:    lineNumbers,
		WindowControls: windowControls,
		RoundedCorners: rounded,
		Background:     background,
		Theme:          theme,
		HighlightLines: highlight,
		// The shadow is never prompted; it rides along from the defaults.
		Shadow: cur.Shadow,
	}, nil
}

// editCommand presents the assembled flag string for free editing and
// asks for an explicit output path. The edited string is used verbatim:
// whatever the user typed is what silicon gets. Each answer enters its
// history as soon as it is given.
func (c *Controller) editCommand(opts silicon.Options, derived string) (flagStr, output string, err error) {
	c.mu.Lock()
	flagHist := c.flagHistory.Values()
	outHist := c.outputHistory.Values()
	c.mu.Unlock()

	flagStr, err = c.prompter.ReadLine("Flags", opts.FlagString(), flagHist)
	if err != nil {
		return "", "", err
	}
	c.mu.Lock()
	c.flagHistory.Add(flagStr)
	c.mu.Unlock()

	output, err = c.prompter.ReadLine("Output file", derived, outHist)
	if err != nil {
		return "", "", err
	}
	c.mu.Lock()
	c.outputHistory.Add(output)
	c.mu.Unlock()

	return flagStr, output, nil
}

// publishEvent publishes an event if an event bus is configured.
func (c *Controller) publishEvent(eventType string, data map[string]any) {
	if c.eventBus != nil {
		if data == nil {
			data = make(map[string]any)
		}
		data["timestamp"] = time.Now().UnixMilli()
		c.eventBus.Publish(eventType, data)
	}
}
