package prompt

import (
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

// newSimTerminal builds a Terminal over a tcell simulation screen.
func newSimTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("initializing simulation screen: %v", err)
	}
	sim.SetSize(80, 24)

	term := &Terminal{screen: sim, filter: NewFilter()}
	t.Cleanup(term.Close)
	return term, sim
}

type promptResult struct {
	s   string
	b   bool
	err error
}

// await reads a prompt result with a timeout so a wedged prompt fails the
// test instead of hanging it.
func await(t *testing.T, ch <-chan promptResult) promptResult {
	t.Helper()
	select {
	case res := <-ch:
		return res
	case <-time.After(5 * time.Second):
		t.Fatal("prompt did not return")
		return promptResult{}
	}
}

func injectKeys(sim tcell.SimulationScreen, keys ...tcell.Key) {
	for _, key := range keys {
		sim.InjectKey(key, 0, tcell.ModNone)
	}
}

func injectRunes(sim tcell.SimulationScreen, text string) {
	for _, r := range text {
		sim.InjectKey(tcell.KeyRune, r, tcell.ModNone)
	}
}

func TestTerminal_Confirm(t *testing.T) {
	tests := []struct {
		name  string
		def   bool
		drive func(tcell.SimulationScreen)
		want  bool
		abort bool
	}{
		{"yes key", false, func(s tcell.SimulationScreen) { injectRunes(s, "y") }, true, false},
		{"no key", true, func(s tcell.SimulationScreen) { injectRunes(s, "n") }, false, false},
		{"enter accepts default", true, func(s tcell.SimulationScreen) { injectKeys(s, tcell.KeyEnter) }, true, false},
		{"escape aborts", true, func(s tcell.SimulationScreen) { injectKeys(s, tcell.KeyEscape) }, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, sim := newSimTerminal(t)

			ch := make(chan promptResult, 1)
			go func() {
				got, err := term.Confirm("Line numbers", tt.def)
				ch <- promptResult{b: got, err: err}
			}()
			tt.drive(sim)

			res := await(t, ch)
			if tt.abort {
				if !errors.Is(res.err, ErrAborted) {
					t.Errorf("Confirm() error = %v, want ErrAborted", res.err)
				}
				return
			}
			if res.err != nil {
				t.Fatalf("Confirm() error = %v", res.err)
			}
			if res.b != tt.want {
				t.Errorf("Confirm() = %v, want %v", res.b, tt.want)
			}
		})
	}
}

func TestTerminal_ReadLine_AcceptInitial(t *testing.T) {
	term, sim := newSimTerminal(t)

	ch := make(chan promptResult, 1)
	go func() {
		got, err := term.ReadLine("Background color", "#00000000", nil)
		ch <- promptResult{s: got, err: err}
	}()
	injectKeys(sim, tcell.KeyEnter)

	res := await(t, ch)
	if res.err != nil {
		t.Fatalf("ReadLine() error = %v", res.err)
	}
	if res.s != "#00000000" {
		t.Errorf("ReadLine() = %q, want the initial text", res.s)
	}
}

func TestTerminal_ReadLine_EditInitial(t *testing.T) {
	term, sim := newSimTerminal(t)

	ch := make(chan promptResult, 1)
	go func() {
		got, err := term.ReadLine("Flags", "abc", nil)
		ch <- promptResult{s: got, err: err}
	}()
	// Backspace the c, append de: abc -> ab -> abde.
	injectKeys(sim, tcell.KeyBackspace2)
	injectRunes(sim, "de")
	injectKeys(sim, tcell.KeyEnter)

	res := await(t, ch)
	if res.err != nil {
		t.Fatalf("ReadLine() error = %v", res.err)
	}
	if res.s != "abde" {
		t.Errorf("ReadLine() = %q, want %q", res.s, "abde")
	}
}

func TestTerminal_ReadLine_HistoryRecall(t *testing.T) {
	term, sim := newSimTerminal(t)

	ch := make(chan promptResult, 1)
	go func() {
		got, err := term.ReadLine("Flags", "draft", []string{"oldest", "newest"})
		ch <- promptResult{s: got, err: err}
	}()
	// Up recalls newest, up again oldest, down returns to newest.
	injectKeys(sim, tcell.KeyUp, tcell.KeyUp, tcell.KeyDown, tcell.KeyEnter)

	res := await(t, ch)
	if res.err != nil {
		t.Fatalf("ReadLine() error = %v", res.err)
	}
	if res.s != "newest" {
		t.Errorf("ReadLine() = %q, want recalled entry %q", res.s, "newest")
	}
}

func TestTerminal_ReadLine_HistoryRestoresDraft(t *testing.T) {
	term, sim := newSimTerminal(t)

	ch := make(chan promptResult, 1)
	go func() {
		got, err := term.ReadLine("Flags", "draft", []string{"older"})
		ch <- promptResult{s: got, err: err}
	}()
	injectKeys(sim, tcell.KeyUp, tcell.KeyDown, tcell.KeyEnter)

	res := await(t, ch)
	if res.err != nil {
		t.Fatalf("ReadLine() error = %v", res.err)
	}
	if res.s != "draft" {
		t.Errorf("ReadLine() = %q, want the draft restored", res.s)
	}
}

func TestTerminal_ReadLine_Abort(t *testing.T) {
	term, sim := newSimTerminal(t)

	ch := make(chan promptResult, 1)
	go func() {
		got, err := term.ReadLine("Flags", "", nil)
		ch <- promptResult{s: got, err: err}
	}()
	injectRunes(sim, "half an answ")
	injectKeys(sim, tcell.KeyEscape)

	res := await(t, ch)
	if !errors.Is(res.err, ErrAborted) {
		t.Errorf("ReadLine() error = %v, want ErrAborted", res.err)
	}
}

func TestTerminal_Select_Default(t *testing.T) {
	term, sim := newSimTerminal(t)

	ch := make(chan promptResult, 1)
	go func() {
		got, err := term.Select("Theme", []string{"Dracula", "Nord", "GitHub"}, "Nord")
		ch <- promptResult{s: got, err: err}
	}()
	injectKeys(sim, tcell.KeyEnter)

	res := await(t, ch)
	if res.err != nil {
		t.Fatalf("Select() error = %v", res.err)
	}
	if res.s != "Nord" {
		t.Errorf("Select() = %q, want the default pre-selected", res.s)
	}
}

func TestTerminal_Select_FilterNarrows(t *testing.T) {
	term, sim := newSimTerminal(t)

	ch := make(chan promptResult, 1)
	go func() {
		got, err := term.Select("Theme", []string{"Dracula", "Nord", "GitHub"}, "")
		ch <- promptResult{s: got, err: err}
	}()
	injectRunes(sim, "git")
	injectKeys(sim, tcell.KeyEnter)

	res := await(t, ch)
	if res.err != nil {
		t.Fatalf("Select() error = %v", res.err)
	}
	if res.s != "GitHub" {
		t.Errorf("Select() = %q, want the filtered candidate", res.s)
	}
}

func TestTerminal_Select_ArrowMoves(t *testing.T) {
	term, sim := newSimTerminal(t)

	ch := make(chan promptResult, 1)
	go func() {
		got, err := term.Select("Theme", []string{"Dracula", "Nord", "GitHub"}, "")
		ch <- promptResult{s: got, err: err}
	}()
	injectKeys(sim, tcell.KeyDown, tcell.KeyEnter)

	res := await(t, ch)
	if res.err != nil {
		t.Fatalf("Select() error = %v", res.err)
	}
	if res.s != "Nord" {
		t.Errorf("Select() = %q, want the second candidate", res.s)
	}
}

func TestTerminal_Select_NoMatchReturnsQuery(t *testing.T) {
	term, sim := newSimTerminal(t)

	ch := make(chan promptResult, 1)
	go func() {
		got, err := term.Select("Theme", []string{"Dracula"}, "Dracula")
		ch <- promptResult{s: got, err: err}
	}()
	injectRunes(sim, "zzz")
	injectKeys(sim, tcell.KeyEnter)

	res := await(t, ch)
	if res.err != nil {
		t.Fatalf("Select() error = %v", res.err)
	}
	if res.s != "zzz" {
		t.Errorf("Select() = %q, want the raw query when nothing matches", res.s)
	}
}

func TestTerminal_Select_Abort(t *testing.T) {
	term, sim := newSimTerminal(t)

	ch := make(chan promptResult, 1)
	go func() {
		_, err := term.Select("Theme", []string{"Dracula"}, "")
		ch <- promptResult{err: err}
	}()
	injectKeys(sim, tcell.KeyEscape)

	if res := await(t, ch); !errors.Is(res.err, ErrAborted) {
		t.Errorf("Select() error = %v, want ErrAborted", res.err)
	}
}
