package silicon

import (
	"reflect"
	"strings"
	"testing"
)

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.LineNumbers {
		t.Error("LineNumbers = true, want false")
	}
	if opts.WindowControls {
		t.Error("WindowControls = true, want false")
	}
	if !opts.RoundedCorners {
		t.Error("RoundedCorners = false, want true")
	}
	if opts.Background != DefaultBackground {
		t.Errorf("Background = %q, want %q", opts.Background, DefaultBackground)
	}
	if opts.Theme != "" {
		t.Errorf("Theme = %q, want empty", opts.Theme)
	}
}

func TestOptions_FlagString(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{
			name: "disabled line numbers with background",
			opts: Options{
				LineNumbers:    false,
				WindowControls: true,
				RoundedCorners: true,
				Background:     "#fff",
			},
			want: "--no-line-number --background '#fff'",
		},
		{
			name: "theme highlight and shadow",
			opts: Options{
				LineNumbers:    true,
				WindowControls: true,
				RoundedCorners: true,
				Background:     DefaultBackground,
				Theme:          "dracula",
				HighlightLines: "3-5",
				Shadow: Shadow{
					Color:      "#000",
					BlurRadius: intPtr(2),
				},
			},
			want: "--background '#00000000' --theme 'dracula' --highlight-lines '3-5' --shadow-blur-radius 2 --shadow-color '#000'",
		},
		{
			name: "everything disabled",
			opts: Options{
				Background: "#abc",
			},
			want: "--no-line-number --no-window-controls --no-round-corner --background '#abc'",
		},
		{
			name: "full shadow",
			opts: Options{
				LineNumbers:    true,
				WindowControls: true,
				RoundedCorners: true,
				Background:     "#fff",
				Shadow: Shadow{
					BlurRadius: intPtr(10),
					Color:      "#555",
					OffsetX:    intPtr(4),
					OffsetY:    intPtr(-4),
				},
			},
			want: "--background '#fff' --shadow-blur-radius 10 --shadow-color '#555' --shadow-offset-x 4 --shadow-offset-y -4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.opts.FlagString()
			if got != tt.want {
				t.Errorf("FlagString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOptions_Flags_BooleanFields(t *testing.T) {
	tests := []struct {
		name string
		set  func(*Options, bool)
		flag string
	}{
		{"line numbers", func(o *Options, v bool) { o.LineNumbers = v }, "--no-line-number"},
		{"window controls", func(o *Options, v bool) { o.WindowControls = v }, "--no-window-controls"},
		{"rounded corners", func(o *Options, v bool) { o.RoundedCorners = v }, "--no-round-corner"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Options{LineNumbers: true, WindowControls: true, RoundedCorners: true, Background: "#fff"}

			tt.set(&opts, true)
			if containsFlag(opts.Flags(), tt.flag) {
				t.Errorf("%s flag present with field enabled", tt.flag)
			}

			tt.set(&opts, false)
			if !containsFlag(opts.Flags(), tt.flag) {
				t.Errorf("%s flag missing with field disabled", tt.flag)
			}
		})
	}
}

func TestOptions_Flags_OptionalFields(t *testing.T) {
	base := Options{LineNumbers: true, WindowControls: true, RoundedCorners: true, Background: "#fff"}

	flags := base.Flags()
	if len(flags) != 1 {
		t.Fatalf("Flags() = %v, want only the background flag", flags)
	}

	withAll := base
	withAll.Theme = "Nord"
	withAll.HighlightLines = "1-2"
	withAll.Shadow = Shadow{BlurRadius: intPtr(0), Color: "#123", OffsetX: intPtr(0), OffsetY: intPtr(7)}

	want := []string{
		"--background '#fff'",
		"--theme 'Nord'",
		"--highlight-lines '1-2'",
		"--shadow-blur-radius 0",
		"--shadow-color '#123'",
		"--shadow-offset-x 0",
		"--shadow-offset-y 7",
	}
	if got := withAll.Flags(); !reflect.DeepEqual(got, want) {
		t.Errorf("Flags() = %v, want %v", got, want)
	}
}

func TestOptions_Flags_BackgroundAlwaysPresent(t *testing.T) {
	tests := []Options{
		{},
		DefaultOptions(),
		{LineNumbers: true, WindowControls: true, RoundedCorners: true, Background: "#fff", Theme: "gruvbox"},
	}

	for _, opts := range tests {
		count := 0
		for _, f := range opts.Flags() {
			if strings.HasPrefix(f, "--background ") {
				count++
			}
		}
		if count != 1 {
			t.Errorf("background flag appears %d times in %v, want exactly 1", count, opts.Flags())
		}
	}
}

func TestOptions_Flags_NoValidation(t *testing.T) {
	// Malformed values pass through untouched; silicon decides.
	opts := Options{
		LineNumbers:    true,
		WindowControls: true,
		RoundedCorners: true,
		Background:     "not-a-color",
		HighlightLines: "banana",
	}

	want := "--background 'not-a-color' --highlight-lines 'banana'"
	if got := opts.FlagString(); got != want {
		t.Errorf("FlagString() = %q, want %q", got, want)
	}
}

func TestResolve(t *testing.T) {
	base := DefaultOptions()

	t.Run("empty overrides are idempotent", func(t *testing.T) {
		got := Resolve(base, Overrides{})
		if !reflect.DeepEqual(got, base) {
			t.Errorf("Resolve(base, empty) = %+v, want %+v", got, base)
		}
	})

	t.Run("booleans override independently", func(t *testing.T) {
		got := Resolve(base, Overrides{
			LineNumbers:    boolPtr(true),
			RoundedCorners: boolPtr(false),
		})
		if !got.LineNumbers {
			t.Error("LineNumbers not overridden")
		}
		if got.RoundedCorners {
			t.Error("RoundedCorners not overridden")
		}
		if got.WindowControls {
			t.Error("WindowControls changed without an override")
		}
	})

	t.Run("strings override when non-empty", func(t *testing.T) {
		got := Resolve(base, Overrides{
			Background:     "#112233",
			Theme:          "Nord",
			HighlightLines: "10-20",
		})
		if got.Background != "#112233" {
			t.Errorf("Background = %q, want %q", got.Background, "#112233")
		}
		if got.Theme != "Nord" {
			t.Errorf("Theme = %q, want %q", got.Theme, "Nord")
		}
		if got.HighlightLines != "10-20" {
			t.Errorf("HighlightLines = %q, want %q", got.HighlightLines, "10-20")
		}
	})

	t.Run("shadow replaces wholesale", func(t *testing.T) {
		withShadow := base
		withShadow.Shadow = Shadow{BlurRadius: intPtr(5), Color: "#000"}

		got := Resolve(withShadow, Overrides{Shadow: &Shadow{OffsetX: intPtr(2)}})
		if got.Shadow.BlurRadius != nil {
			t.Error("BlurRadius survived a wholesale shadow override")
		}
		if got.Shadow.OffsetX == nil || *got.Shadow.OffsetX != 2 {
			t.Errorf("OffsetX = %v, want 2", got.Shadow.OffsetX)
		}
	})
}

func TestOverrides_IsZero(t *testing.T) {
	if !(Overrides{}).IsZero() {
		t.Error("empty Overrides not zero")
	}
	if (Overrides{Theme: "Nord"}).IsZero() {
		t.Error("Overrides with theme reported zero")
	}
	if (Overrides{Shadow: &Shadow{}}).IsZero() {
		t.Error("Overrides with shadow reported zero")
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"#fff", "'#fff'"},
		{"", "''"},
		{"two words", "'two words'"},
		{"d'oh", `'d'\''oh'`},
	}

	for _, tt := range tests {
		if got := quote(tt.in); got != tt.want {
			t.Errorf("quote(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func containsFlag(flags []string, flag string) bool {
	for _, f := range flags {
		if f == flag {
			return true
		}
	}
	return false
}
