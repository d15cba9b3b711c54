package silicon

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
)

// Client locates and invokes the silicon renderer.
type Client struct {
	executable string

	mu       sync.Mutex
	resolved string
}

// New creates a client for the given executable setting. The value is either
// a bare command name resolved against PATH or an explicit path; empty means
// DefaultExecutable.
func New(executable string) *Client {
	if executable == "" {
		executable = DefaultExecutable
	}
	return &Client{executable: executable}
}

// Executable resolves the configured renderer to a usable path. The result
// is cached; a renderer installed after the first failed lookup is picked up
// on the next call because failures are not cached.
func (c *Client) Executable() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.resolved != "" {
		return c.resolved, nil
	}

	path, err := locate(c.executable)
	if err != nil {
		return "", err
	}
	c.resolved = path
	return path, nil
}

// locate turns an executable setting into a path. Explicit paths are checked
// directly, bare names go through PATH.
func locate(executable string) (string, error) {
	if strings.ContainsRune(executable, os.PathSeparator) {
		if fileExists(executable) {
			return executable, nil
		}
		return "", fmt.Errorf("%s: %w", executable, ErrExecutableNotFound)
	}

	path, err := exec.LookPath(executable)
	if err != nil {
		return "", fmt.Errorf("%s: %w", executable, ErrExecutableNotFound)
	}
	return path, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ListThemes invokes the renderer with --list-themes and returns its themes,
// one per line of stdout, trimmed, with empty lines discarded. Callers that
// only need the list to seed a prompt may treat an error as an empty list.
func (c *Client) ListThemes(ctx context.Context) ([]string, error) {
	exe, err := c.Executable()
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, exe, "--list-themes")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("silicon --list-themes: %s", strings.TrimSpace(stderr.String()))
	}

	return themeLines(stdout.String())
}

// themeLines splits renderer output into trimmed, non-empty lines.
func themeLines(output string) ([]string, error) {
	if output == "" {
		return nil, nil
	}

	var themes []string
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		themes = append(themes, line)
	}
	return themes, scanner.Err()
}

// CommandLine assembles the shell command that renders input to output:
//
//	<exe> <flags> --output '<output>' <input>
//
// The flags segment is embedded verbatim, which is what allows edit mode to
// splice in user-edited flag text without re-tokenizing it. The output path
// is quoted here; the input path follows silicon's documented invocation
// shape.
func CommandLine(exe, flags, output, input string) string {
	return fmt.Sprintf("%s %s --output %s %s", exe, flags, quote(output), input)
}

// OutputPath derives the default image path for an input file by replacing
// the file extension with .png. A file without an extension gets .png
// appended.
func OutputPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + ".png"
}
