package script

import (
	"fmt"
	"os"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/codeshot/internal/integration/silicon"
)

// Engine embeds a Lua interpreter for user configuration scripts.
//
// IMPORTANT: gopher-lua's LState is not goroutine-safe. The mutex in this
// struct serializes all access; Lua code itself runs single-threaded.
type Engine struct {
	mu     sync.Mutex
	L      *lua.LState
	closed bool

	set   scriptDefaults
	hooks []*lua.LFunction
}

// scriptDefaults holds the option values assigned by codeshot.set.
// Nil pointers mean the script never touched the option.
type scriptDefaults struct {
	executable *string

	lineNumbers      *bool
	windowControls   *bool
	roundedCorners   *bool
	background       *string
	theme            *string
	highlightLines   *string
	shadowBlurRadius *int
	shadowColor      *string
	shadowOffsetX    *int
	shadowOffsetY    *int
}

// Capture describes one pending render for capture hooks. The paths and
// mode are informational; the options are what hooks may rewrite.
type Capture struct {
	Input   string
	Output  string
	Mode    string
	Options silicon.Options
}

// New creates an engine with the codeshot module installed.
func New() *Engine {
	L := lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})
	openSafeLibraries(L)

	e := &Engine{L: L}

	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"set":        e.luaSet,
		"on_capture": e.luaOnCapture,
	})
	L.SetGlobal("codeshot", mod)

	return e
}

// openSafeLibraries opens only safe Lua standard libraries.
// io, os, debug and package stay closed; configuration scripts have no
// business touching the file system or loading modules.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// LoadInit executes the init script at path. A missing file is not an
// error; the engine simply keeps its zero state.
func (e *Engine) LoadInit(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEngineClosed
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	if err := e.doWithRecovery(func() error {
		return e.L.DoFile(path)
	}); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Defaults applies the script's codeshot.set assignments on top of base.
// Untouched options keep their base values.
func (e *Engine) Defaults(base silicon.Options) silicon.Options {
	e.mu.Lock()
	defer e.mu.Unlock()

	opts := base
	d := e.set
	if d.lineNumbers != nil {
		opts.LineNumbers = *d.lineNumbers
	}
	if d.windowControls != nil {
		opts.WindowControls = *d.windowControls
	}
	if d.roundedCorners != nil {
		opts.RoundedCorners = *d.roundedCorners
	}
	if d.background != nil {
		opts.Background = *d.background
	}
	if d.theme != nil {
		opts.Theme = *d.theme
	}
	if d.highlightLines != nil {
		opts.HighlightLines = *d.highlightLines
	}
	if d.shadowBlurRadius != nil {
		v := *d.shadowBlurRadius
		opts.Shadow.BlurRadius = &v
	}
	if d.shadowColor != nil {
		opts.Shadow.Color = *d.shadowColor
	}
	if d.shadowOffsetX != nil {
		v := *d.shadowOffsetX
		opts.Shadow.OffsetX = &v
	}
	if d.shadowOffsetY != nil {
		v := *d.shadowOffsetY
		opts.Shadow.OffsetY = &v
	}
	return opts
}

// Executable returns the renderer path assigned by the script, if any.
func (e *Engine) Executable() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.set.executable == nil {
		return "", false
	}
	return *e.set.executable, true
}

// HasCaptureHooks reports whether any capture hooks are registered.
func (e *Engine) HasCaptureHooks() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.hooks) > 0
}

// RunCaptureHooks invokes the registered capture hooks in registration
// order. Each hook receives a table describing the capture and may return
// an option table; returned fields override the options seen by later
// hooks and by the renderer. A hook error aborts the capture.
func (e *Engine) RunCaptureHooks(c Capture) (silicon.Options, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return silicon.Options{}, ErrEngineClosed
	}

	opts := c.Options
	for _, hook := range e.hooks {
		arg := e.L.NewTable()
		arg.RawSetString("input", lua.LString(c.Input))
		arg.RawSetString("output", lua.LString(c.Output))
		arg.RawSetString("mode", lua.LString(c.Mode))
		arg.RawSetString("options", optionsToTable(e.L, opts))

		var ret lua.LValue
		err := e.doWithRecovery(func() error {
			e.L.Push(hook)
			e.L.Push(arg)
			if err := e.L.PCall(1, 1, nil); err != nil {
				return err
			}
			ret = e.L.Get(-1)
			e.L.Pop(1)
			return nil
		})
		if err != nil {
			return silicon.Options{}, fmt.Errorf("on_capture hook: %w", err)
		}

		switch v := ret.(type) {
		case *lua.LNilType:
		case *lua.LTable:
			opts, err = optionsFromTable(v, opts)
			if err != nil {
				return silicon.Options{}, fmt.Errorf("on_capture hook: %w", err)
			}
		default:
			return silicon.Options{}, fmt.Errorf("on_capture hook: expected table or nil, got %s", ret.Type())
		}
	}

	return opts, nil
}

// Close releases the Lua state. After Close, LoadInit and RunCaptureHooks
// return ErrEngineClosed.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}

	e.L.Close()
	e.closed = true
	return nil
}

// doWithRecovery executes a function with panic recovery.
func (e *Engine) doWithRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// luaSet implements codeshot.set. It runs during LoadInit while the
// engine lock is already held, so it writes fields directly.
func (e *Engine) luaSet(L *lua.LState) int {
	key := L.CheckString(1)
	switch key {
	case "executable":
		v := L.CheckString(2)
		e.set.executable = &v
	case "line_numbers":
		v := L.CheckBool(2)
		e.set.lineNumbers = &v
	case "window_controls":
		v := L.CheckBool(2)
		e.set.windowControls = &v
	case "rounded_corners":
		v := L.CheckBool(2)
		e.set.roundedCorners = &v
	case "background":
		v := L.CheckString(2)
		e.set.background = &v
	case "theme":
		v := L.CheckString(2)
		e.set.theme = &v
	case "highlight_lines":
		v := L.CheckString(2)
		e.set.highlightLines = &v
	case "shadow_blur_radius":
		v := L.CheckInt(2)
		e.set.shadowBlurRadius = &v
	case "shadow_color":
		v := L.CheckString(2)
		e.set.shadowColor = &v
	case "shadow_offset_x":
		v := L.CheckInt(2)
		e.set.shadowOffsetX = &v
	case "shadow_offset_y":
		v := L.CheckInt(2)
		e.set.shadowOffsetY = &v
	default:
		L.ArgError(1, fmt.Sprintf("unknown option %q", key))
	}
	return 0
}

// luaOnCapture implements codeshot.on_capture.
func (e *Engine) luaOnCapture(L *lua.LState) int {
	fn := L.CheckFunction(1)
	e.hooks = append(e.hooks, fn)
	return 0
}
