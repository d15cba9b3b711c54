package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Reader prompts over plain line-based IO. It is the fallback when stdin is
// not a terminal.
//
// Because plain IO cannot pre-fill an editable line, an empty answer accepts
// the offered default; an answer of only whitespace clears it.
type Reader struct {
	scanner *bufio.Scanner
	w       io.Writer
}

// NewReader creates a prompter reading answers from r and writing prompts to w.
func NewReader(r io.Reader, w io.Writer) *Reader {
	return &Reader{
		scanner: bufio.NewScanner(r),
		w:       w,
	}
}

// Select prompts for one of candidates. Candidates are listed numbered; the
// answer may be a number, a candidate name, or free text. An empty answer
// selects def. End of input aborts.
func (p *Reader) Select(message string, candidates []string, def string) (string, error) {
	if len(candidates) > 0 {
		fmt.Fprintf(p.w, "%s:\n", message)
		for i, c := range candidates {
			fmt.Fprintf(p.w, "%4d) %s\n", i+1, c)
		}
	}
	answer, err := p.ask(message, def)
	if err != nil {
		return "", err
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return def, nil
	}
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(candidates) {
		return candidates[n-1], nil
	}
	return answer, nil
}

// ReadLine prompts for a line of text. The initial text is offered as the
// default; history is unused here since plain IO has no recall keys.
func (p *Reader) ReadLine(message, initial string, history []string) (string, error) {
	answer, err := p.ask(message, initial)
	if err != nil {
		return "", err
	}

	if answer == "" {
		return initial, nil
	}
	return strings.TrimSpace(answer), nil
}

// Confirm prompts for a yes/no answer. An empty answer selects def;
// unrecognized answers re-prompt.
func (p *Reader) Confirm(message string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}

	for {
		answer, err := p.ask(fmt.Sprintf("%s (%s)", message, hint), "")
		if err != nil {
			return false, err
		}

		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
}

// ask writes a prompt line and reads one answer. End of input reports
// ErrAborted.
func (p *Reader) ask(message, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.w, "%s [%s]: ", message, def)
	} else {
		fmt.Fprintf(p.w, "%s: ", message)
	}

	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", ErrAborted
	}
	return p.scanner.Text(), nil
}
