package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// settingsFile is the name of the user settings file inside the config directory.
const settingsFile = "settings.toml"

// Config provides unified access to the codeshot configuration system.
// Settings are merged from three layers with higher layers overriding lower:
// built-in defaults, the user settings file, and environment variables.
type Config struct {
	mu sync.RWMutex

	// Configuration sources
	userConfigDir string
	envPrefix     string

	// Layers in merge order
	defaults map[string]any
	user     map[string]any
	env      map[string]any

	// Merged view, rebuilt on Load and Set
	merged map[string]any
}

// Option configures a Config instance.
type Option func(*Config)

// WithUserConfigDir sets the user configuration directory.
func WithUserConfigDir(dir string) Option {
	return func(c *Config) {
		c.userConfigDir = dir
	}
}

// WithEnvPrefix sets the environment variable prefix, including the
// trailing underscore.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// New creates a new Config instance with the given options.
func New(opts ...Option) *Config {
	c := &Config{
		envPrefix: "CODESHOT_",
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.userConfigDir == "" {
		c.userConfigDir = defaultUserConfigDir()
	}

	return c
}

// Load loads configuration from all sources.
func (c *Config) Load(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.defaults = defaultConfig()

	user, err := loadTOMLFile(filepath.Join(c.userConfigDir, settingsFile))
	if err != nil {
		return err
	}
	if user == nil {
		user = make(map[string]any)
	}
	c.user = user

	c.env = loadEnv(c.envPrefix)

	c.remerge()
	return nil
}

// Get returns the value at the given path from the merged configuration.
func (c *Config) Get(path string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return getPath(c.merged, path)
}

// GetString returns a string value at the given path.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", ErrSettingNotFound
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

// GetInt returns an integer value at the given path.
func (c *Config) GetInt(path string) (int, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		return int(val), nil
	default:
		return 0, &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
	}
}

// GetBool returns a boolean value at the given path.
func (c *Config) GetBool(path string) (bool, error) {
	v, ok := c.Get(path)
	if !ok {
		return false, ErrSettingNotFound
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
	}
	return b, nil
}

// Set sets a value at the given path in the user settings layer.
func (c *Config) Set(path string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.user == nil {
		c.user = make(map[string]any)
	}
	if err := setPath(c.user, path, value); err != nil {
		return err
	}

	c.remerge()
	return nil
}

// Save writes the user settings layer to the settings file.
func (c *Config) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := toml.Marshal(c.user)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	if err := os.MkdirAll(c.userConfigDir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", c.userConfigDir, err)
	}

	path := filepath.Join(c.userConfigDir, settingsFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Merged returns a copy of the fully merged configuration.
func (c *Config) Merged() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]any, len(c.merged))
	deepMerge(out, c.merged)
	return out
}

// UserConfigDir returns the directory holding the user's configuration files.
func (c *Config) UserConfigDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userConfigDir
}

// remerge rebuilds the merged view. Callers must hold the write lock.
func (c *Config) remerge() {
	merged := make(map[string]any)
	deepMerge(merged, c.defaults)
	deepMerge(merged, c.user)
	deepMerge(merged, c.env)
	c.merged = merged
}

// defaultUserConfigDir returns the default user configuration directory.
func defaultUserConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "codeshot")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "codeshot")
}

// defaultConfig returns the default configuration values.
// Shadow geometry has no defaults; absent values mean the renderer
// keeps its own behavior.
func defaultConfig() map[string]any {
	return map[string]any{
		"silicon": map[string]any{
			"executable":     "silicon",
			"background":     "#00000000",
			"theme":          "",
			"lineNumbers":    false,
			"windowControls": false,
			"roundedCorners": true,
			"shadow":         map[string]any{},
		},
		"history": map[string]any{
			"max": 100,
		},
		"logging": map[string]any{
			"level":  "info",
			"format": "text",
		},
	}
}

// getPath retrieves a value from a nested map using a dot-separated path.
func getPath(m map[string]any, path string) (any, bool) {
	parts := splitPath(path)
	if len(parts) == 0 {
		return nil, false
	}

	current := any(m)
	for _, part := range parts {
		cm, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = cm[part]
		if !ok {
			return nil, false
		}
	}

	return current, true
}

// setPath sets a value in a nested map using a dot-separated path.
func setPath(m map[string]any, path string, value any) error {
	parts := splitPath(path)
	if len(parts) == 0 {
		return ErrInvalidPath
	}

	current := m
	for i := 0; i < len(parts)-1; i++ {
		part := parts[i]
		next, ok := current[part]
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		nextMap, ok := next.(map[string]any)
		if !ok {
			return ErrInvalidPath
		}
		current = nextMap
	}

	current[parts[len(parts)-1]] = value
	return nil
}

// splitPath splits a dot-separated path into parts.
func splitPath(path string) []string {
	if path == "" {
		return nil
	}

	var parts []string
	for _, part := range strings.Split(path, ".") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// typeName returns the type name for error messages.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	switch v.(type) {
	case string:
		return "string"
	case int, int64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case []any:
		return "[]any"
	case map[string]any:
		return "map"
	default:
		return "unknown"
	}
}
