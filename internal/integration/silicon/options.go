package silicon

import (
	"strconv"
	"strings"
)

// Renderer defaults.
const (
	// DefaultExecutable is the renderer binary name resolved against PATH
	// when no explicit path is configured.
	DefaultExecutable = "silicon"

	// DefaultBackground is the fully transparent background color used when
	// no background is configured.
	DefaultBackground = "#00000000"
)

// Shadow describes the drop shadow drawn behind the rendered window.
// Each field is optional and emitted independently; nil pointers and empty
// strings emit nothing.
type Shadow struct {
	BlurRadius *int
	Color      string
	OffsetX    *int
	OffsetY    *int
}

// Options is the full set of rendering options for a single invocation.
// A value is constructed fresh per capture, either from the process-wide
// defaults or from interactively supplied answers, and is never mutated
// afterwards.
type Options struct {
	// LineNumbers draws line numbers in the left gutter.
	LineNumbers bool

	// WindowControls draws the macOS-style traffic-light buttons.
	WindowControls bool

	// RoundedCorners rounds the window corners.
	RoundedCorners bool

	// Background is the image background color. Always emitted; silicon
	// decides whether the value parses.
	Background string

	// Theme is the syntax highlighting theme. Empty means silicon's own
	// default.
	Theme string

	// HighlightLines is an opaque range expression such as "3-5", forwarded
	// to silicon without interpretation.
	HighlightLines string

	// Shadow configures the drop shadow.
	Shadow Shadow
}

// DefaultOptions returns the built-in option defaults: rounded corners on,
// everything else off, transparent background.
func DefaultOptions() Options {
	return Options{
		RoundedCorners: true,
		Background:     DefaultBackground,
	}
}

// Overrides carries per-invocation option overrides. Nil pointers and empty
// strings inherit the corresponding base value; a non-nil Shadow replaces
// the base shadow wholesale.
type Overrides struct {
	LineNumbers    *bool
	WindowControls *bool
	RoundedCorners *bool
	Background     string
	Theme          string
	HighlightLines string
	Shadow         *Shadow
}

// IsZero reports whether no override is set.
func (ov Overrides) IsZero() bool {
	return ov.LineNumbers == nil &&
		ov.WindowControls == nil &&
		ov.RoundedCorners == nil &&
		ov.Background == "" &&
		ov.Theme == "" &&
		ov.HighlightLines == "" &&
		ov.Shadow == nil
}

// Resolve applies overrides to a base options value. Resolving an empty
// Overrides returns the base unchanged, so defaulting is idempotent.
func Resolve(base Options, ov Overrides) Options {
	opts := base
	if ov.LineNumbers != nil {
		opts.LineNumbers = *ov.LineNumbers
	}
	if ov.WindowControls != nil {
		opts.WindowControls = *ov.WindowControls
	}
	if ov.RoundedCorners != nil {
		opts.RoundedCorners = *ov.RoundedCorners
	}
	if ov.Background != "" {
		opts.Background = ov.Background
	}
	if ov.Theme != "" {
		opts.Theme = ov.Theme
	}
	if ov.HighlightLines != "" {
		opts.HighlightLines = ov.HighlightLines
	}
	if ov.Shadow != nil {
		opts.Shadow = *ov.Shadow
	}
	return opts
}

// Flags translates the options into silicon's command-line flags. Each
// element is one token: a bare disable flag, or a flag followed by its
// value. String values are single-quoted for the shell, integer values are
// bare. The background flag is always present; every other flag appears only
// when its option is set.
func (o Options) Flags() []string {
	var flags []string

	if !o.LineNumbers {
		flags = append(flags, "--no-line-number")
	}
	if !o.WindowControls {
		flags = append(flags, "--no-window-controls")
	}
	if !o.RoundedCorners {
		flags = append(flags, "--no-round-corner")
	}

	flags = append(flags, "--background "+quote(o.Background))

	if o.Theme != "" {
		flags = append(flags, "--theme "+quote(o.Theme))
	}
	if o.HighlightLines != "" {
		flags = append(flags, "--highlight-lines "+quote(o.HighlightLines))
	}

	if o.Shadow.BlurRadius != nil {
		flags = append(flags, "--shadow-blur-radius "+strconv.Itoa(*o.Shadow.BlurRadius))
	}
	if o.Shadow.Color != "" {
		flags = append(flags, "--shadow-color "+quote(o.Shadow.Color))
	}
	if o.Shadow.OffsetX != nil {
		flags = append(flags, "--shadow-offset-x "+strconv.Itoa(*o.Shadow.OffsetX))
	}
	if o.Shadow.OffsetY != nil {
		flags = append(flags, "--shadow-offset-y "+strconv.Itoa(*o.Shadow.OffsetY))
	}

	return flags
}

// FlagString joins the translated flags into the single string embedded in
// the shell command. Edit mode presents this string for free editing.
func (o Options) FlagString() string {
	return strings.Join(o.Flags(), " ")
}

// quote wraps s in single quotes for the shell, escaping embedded single
// quotes as '\''. Values are always quoted, matching the command strings
// silicon documents.
func quote(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}

	var result strings.Builder
	result.WriteByte('\'')
	for _, c := range s {
		if c == '\'' {
			result.WriteString("'\\''")
		} else {
			result.WriteRune(c)
		}
	}
	result.WriteByte('\'')
	return result.String()
}
