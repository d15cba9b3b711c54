package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/codeshot/internal/integration/silicon"
)

// optionsToTable converts options into the table capture hooks receive.
// The keys mirror codeshot.set: one flat vocabulary for the whole API.
// Unset shadow geometry is omitted rather than encoded as zero.
func optionsToTable(L *lua.LState, opts silicon.Options) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("line_numbers", lua.LBool(opts.LineNumbers))
	t.RawSetString("window_controls", lua.LBool(opts.WindowControls))
	t.RawSetString("rounded_corners", lua.LBool(opts.RoundedCorners))
	t.RawSetString("background", lua.LString(opts.Background))
	t.RawSetString("theme", lua.LString(opts.Theme))
	t.RawSetString("highlight_lines", lua.LString(opts.HighlightLines))

	if opts.Shadow.BlurRadius != nil {
		t.RawSetString("shadow_blur_radius", lua.LNumber(*opts.Shadow.BlurRadius))
	}
	t.RawSetString("shadow_color", lua.LString(opts.Shadow.Color))
	if opts.Shadow.OffsetX != nil {
		t.RawSetString("shadow_offset_x", lua.LNumber(*opts.Shadow.OffsetX))
	}
	if opts.Shadow.OffsetY != nil {
		t.RawSetString("shadow_offset_y", lua.LNumber(*opts.Shadow.OffsetY))
	}
	return t
}

// optionsFromTable merges table fields over base. Absent keys inherit the
// base value; present keys must carry the right type, and unknown keys
// are rejected so typos fail loudly instead of silently doing nothing.
func optionsFromTable(t *lua.LTable, base silicon.Options) (silicon.Options, error) {
	opts := base
	var convErr error

	t.ForEach(func(k, v lua.LValue) {
		if convErr != nil {
			return
		}

		ks, ok := k.(lua.LString)
		if !ok {
			convErr = fmt.Errorf("option keys must be strings, got %s", k.Type())
			return
		}
		key := string(ks)

		switch key {
		case "line_numbers":
			opts.LineNumbers, convErr = toBool(key, v)
		case "window_controls":
			opts.WindowControls, convErr = toBool(key, v)
		case "rounded_corners":
			opts.RoundedCorners, convErr = toBool(key, v)
		case "background":
			opts.Background, convErr = toString(key, v)
		case "theme":
			opts.Theme, convErr = toString(key, v)
		case "highlight_lines":
			opts.HighlightLines, convErr = toString(key, v)
		case "shadow_blur_radius":
			var n int
			if n, convErr = toInt(key, v); convErr == nil {
				opts.Shadow.BlurRadius = &n
			}
		case "shadow_color":
			opts.Shadow.Color, convErr = toString(key, v)
		case "shadow_offset_x":
			var n int
			if n, convErr = toInt(key, v); convErr == nil {
				opts.Shadow.OffsetX = &n
			}
		case "shadow_offset_y":
			var n int
			if n, convErr = toInt(key, v); convErr == nil {
				opts.Shadow.OffsetY = &n
			}
		default:
			convErr = fmt.Errorf("unknown option %q", key)
		}
	})

	if convErr != nil {
		return silicon.Options{}, convErr
	}
	return opts, nil
}

func toBool(key string, v lua.LValue) (bool, error) {
	b, ok := v.(lua.LBool)
	if !ok {
		return false, fmt.Errorf("option %s: expected boolean, got %s", key, v.Type())
	}
	return bool(b), nil
}

func toString(key string, v lua.LValue) (string, error) {
	s, ok := v.(lua.LString)
	if !ok {
		return "", fmt.Errorf("option %s: expected string, got %s", key, v.Type())
	}
	return string(s), nil
}

func toInt(key string, v lua.LValue) (int, error) {
	n, ok := v.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("option %s: expected number, got %s", key, v.Type())
	}
	return int(n), nil
}
