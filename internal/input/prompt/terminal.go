package prompt

import (
	"github.com/gdamore/tcell/v2"
)

// Terminal prompts on a tcell screen: a filtered selection list for Select,
// a line editor with history recall for ReadLine, and a single-key Confirm.
// Escape and Ctrl+C abort any prompt with ErrAborted.
type Terminal struct {
	screen tcell.Screen
	filter *Filter
}

// NewTerminal creates a terminal prompter and takes over the screen. Callers
// must Close it to restore the terminal, including on the abort path.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.SetStyle(tcell.StyleDefault)

	return &Terminal{
		screen: screen,
		filter: NewFilter(),
	}, nil
}

// Close restores the terminal.
func (t *Terminal) Close() {
	t.screen.Fini()
}

// Select prompts for one of candidates. Typing narrows the list with fuzzy
// matching, arrows move the selection, Enter accepts it. When nothing
// matches, Enter returns the typed text itself so values outside the list
// remain possible; with no input at all it returns def.
func (t *Terminal) Select(message string, candidates []string, def string) (string, error) {
	var query []rune
	sel := 0
	for i, c := range candidates {
		if c == def {
			sel = i
			break
		}
	}

	for {
		matches := t.filter.Search(candidates, string(query), 0)
		if sel > len(matches)-1 {
			sel = len(matches) - 1
		}
		if sel < 0 {
			sel = 0
		}
		t.drawSelect(message, string(query), matches, sel)

		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventResize:
			t.screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return "", ErrAborted
			case tcell.KeyEnter:
				if len(matches) > 0 {
					return matches[sel].Value, nil
				}
				if len(query) > 0 {
					return string(query), nil
				}
				return def, nil
			case tcell.KeyUp, tcell.KeyCtrlP:
				if sel > 0 {
					sel--
				}
			case tcell.KeyDown, tcell.KeyCtrlN:
				if sel < len(matches)-1 {
					sel++
				}
			case tcell.KeyBackspace, tcell.KeyBackspace2:
				if len(query) > 0 {
					query = query[:len(query)-1]
					sel = 0
				}
			case tcell.KeyCtrlU:
				query = query[:0]
				sel = 0
			default:
				if r := ev.Rune(); r != 0 {
					query = append(query, r)
					sel = 0
				}
			}
		}
	}
}

// ReadLine prompts for a line of text with initial pre-filled and editable.
// Up and Down recall history entries, newest first; the in-progress line is
// kept as a draft and restored when walking past the newest entry.
func (t *Terminal) ReadLine(message, initial string, history []string) (string, error) {
	input := []rune(initial)
	cursor := len(input)
	histIdx := len(history)
	draft := ""

	for {
		t.drawLine(message, input, cursor)

		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventResize:
			t.screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEnter:
				return string(input), nil
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return "", ErrAborted
			case tcell.KeyBackspace, tcell.KeyBackspace2:
				if cursor > 0 {
					input = append(input[:cursor-1], input[cursor:]...)
					cursor--
				}
			case tcell.KeyDelete:
				if cursor < len(input) {
					input = append(input[:cursor], input[cursor+1:]...)
				}
			case tcell.KeyLeft:
				if cursor > 0 {
					cursor--
				}
			case tcell.KeyRight:
				if cursor < len(input) {
					cursor++
				}
			case tcell.KeyHome, tcell.KeyCtrlA:
				cursor = 0
			case tcell.KeyEnd, tcell.KeyCtrlE:
				cursor = len(input)
			case tcell.KeyCtrlU:
				input = input[:0]
				cursor = 0
			case tcell.KeyUp:
				if histIdx > 0 {
					if histIdx == len(history) {
						draft = string(input)
					}
					histIdx--
					input = []rune(history[histIdx])
					cursor = len(input)
				}
			case tcell.KeyDown:
				if histIdx < len(history) {
					histIdx++
					if histIdx == len(history) {
						input = []rune(draft)
					} else {
						input = []rune(history[histIdx])
					}
					cursor = len(input)
				}
			default:
				if r := ev.Rune(); r != 0 {
					input = append(input[:cursor], append([]rune{r}, input[cursor:]...)...)
					cursor++
				}
			}
		}
	}
}

// Confirm prompts for a yes/no answer; Enter accepts def.
func (t *Terminal) Confirm(message string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}

	for {
		t.drawLine(message+" "+hint, nil, 0)

		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventResize:
			t.screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEnter:
				return def, nil
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return false, ErrAborted
			default:
				switch ev.Rune() {
				case 'y', 'Y':
					return true, nil
				case 'n', 'N':
					return false, nil
				}
			}
		}
	}
}

func (t *Terminal) drawSelect(message, query string, matches []Match, sel int) {
	t.screen.Clear()
	_, height := t.screen.Size()

	promptStyle := tcell.StyleDefault.Bold(true)
	line := message + ": " + query
	t.drawText(0, 0, line, promptStyle)
	t.screen.ShowCursor(len([]rune(line)), 0)

	maxRows := height - 1
	start := 0
	if sel >= maxRows {
		start = sel - maxRows + 1
	}
	for i := start; i < len(matches) && i-start < maxRows; i++ {
		style := tcell.StyleDefault
		if i == sel {
			style = style.Reverse(true)
		}
		t.drawText(2, 1+i-start, matches[i].Value, style)
	}

	t.screen.Show()
}

func (t *Terminal) drawLine(message string, input []rune, cursor int) {
	t.screen.Clear()

	promptStyle := tcell.StyleDefault.Bold(true)
	x := t.drawText(0, 0, message+": ", promptStyle)
	t.drawText(x, 0, string(input), tcell.StyleDefault)
	t.screen.ShowCursor(x+cursor, 0)

	t.screen.Show()
}

// drawText draws text at (x, y), clipped to the screen width, and returns
// the column after the last cell written.
func (t *Terminal) drawText(x, y int, text string, style tcell.Style) int {
	width, _ := t.screen.Size()
	for _, r := range text {
		if x >= width {
			break
		}
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}
