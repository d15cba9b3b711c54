package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func newTestReader(input string) (*Reader, *bytes.Buffer) {
	var out bytes.Buffer
	return NewReader(strings.NewReader(input), &out), &out
}

func TestReader_Select_ByNumber(t *testing.T) {
	p, _ := newTestReader("2\n")

	got, err := p.Select("Theme", []string{"Dracula", "Nord", "GitHub"}, "Dracula")
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if got != "Nord" {
		t.Errorf("Select() = %q, want %q", got, "Nord")
	}
}

func TestReader_Select_ByName(t *testing.T) {
	p, _ := newTestReader("GitHub\n")

	got, err := p.Select("Theme", []string{"Dracula", "Nord", "GitHub"}, "")
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if got != "GitHub" {
		t.Errorf("Select() = %q, want %q", got, "GitHub")
	}
}

func TestReader_Select_EmptyUsesDefault(t *testing.T) {
	p, _ := newTestReader("\n")

	got, err := p.Select("Theme", []string{"Dracula", "Nord"}, "Nord")
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if got != "Nord" {
		t.Errorf("Select() = %q, want default %q", got, "Nord")
	}
}

func TestReader_Select_FreeText(t *testing.T) {
	p, _ := newTestReader("my-custom-theme\n")

	got, err := p.Select("Theme", []string{"Dracula"}, "Dracula")
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if got != "my-custom-theme" {
		t.Errorf("Select() = %q, want free text preserved", got)
	}
}

func TestReader_Select_ListsCandidates(t *testing.T) {
	p, out := newTestReader("1\n")

	if _, err := p.Select("Theme", []string{"Dracula", "Nord"}, ""); err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	printed := out.String()
	for _, want := range []string{"Dracula", "Nord", "1)"} {
		if !strings.Contains(printed, want) {
			t.Errorf("prompt output %q missing %q", printed, want)
		}
	}
}

func TestReader_Select_EOFAborts(t *testing.T) {
	p, _ := newTestReader("")

	_, err := p.Select("Theme", []string{"Dracula"}, "")
	if !errors.Is(err, ErrAborted) {
		t.Errorf("Select() error = %v, want ErrAborted", err)
	}
}

func TestReader_ReadLine(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		initial string
		want    string
	}{
		{"answer replaces initial", "#123456\n", "#00000000", "#123456"},
		{"empty accepts initial", "\n", "#00000000", "#00000000"},
		{"whitespace clears initial", " \n", "#00000000", ""},
		{"answer trimmed", "  3-5  \n", "", "3-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestReader(tt.input)

			got, err := p.ReadLine("Background", tt.initial, nil)
			if err != nil {
				t.Fatalf("ReadLine() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ReadLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReader_ReadLine_EOFAborts(t *testing.T) {
	p, _ := newTestReader("")

	_, err := p.ReadLine("Background", "", nil)
	if !errors.Is(err, ErrAborted) {
		t.Errorf("ReadLine() error = %v, want ErrAborted", err)
	}
}

func TestReader_Confirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		def   bool
		want  bool
	}{
		{"yes", "y\n", false, true},
		{"YES word", "Yes\n", false, true},
		{"no", "n\n", true, false},
		{"empty takes default true", "\n", true, true},
		{"empty takes default false", "\n", false, false},
		{"garbage reprompts", "maybe\nn\n", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestReader(tt.input)

			got, err := p.Confirm("Line numbers", tt.def)
			if err != nil {
				t.Fatalf("Confirm() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Confirm() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReader_Confirm_ShowsDefaultHint(t *testing.T) {
	p, out := newTestReader("\n")

	if _, err := p.Confirm("Rounded corners", true); err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	if !strings.Contains(out.String(), "Y/n") {
		t.Errorf("prompt output %q missing Y/n hint", out.String())
	}
}

func TestReader_Confirm_EOFAborts(t *testing.T) {
	p, _ := newTestReader("")

	_, err := p.Confirm("Line numbers", false)
	if !errors.Is(err, ErrAborted) {
		t.Errorf("Confirm() error = %v, want ErrAborted", err)
	}
}
