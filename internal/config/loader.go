package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// loadTOMLFile reads a TOML file into a nested map.
// A missing file is not an error; it returns (nil, nil).
func loadTOMLFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, &ParseError{
			Path:    path,
			Message: err.Error(),
			Err:     err,
		}
	}
	return m, nil
}

// defaultEnvMapping returns environment variables whose setting paths
// cannot be derived mechanically from the variable name.
func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "LOG_LEVEL":          "logging.level",
		prefix + "THEME":              "silicon.theme",
		prefix + "SHADOW_BLUR_RADIUS": "silicon.shadow.blurRadius",
		prefix + "SHADOW_COLOR":       "silicon.shadow.color",
		prefix + "SHADOW_OFFSET_X":    "silicon.shadow.offsetX",
		prefix + "SHADOW_OFFSET_Y":    "silicon.shadow.offsetY",
	}
}

// loadEnv reads prefixed environment variables into a configuration map.
// Explicitly mapped variables are applied first; any other variable with
// the prefix is converted to a dot path, so CODESHOT_SILICON_LINE_NUMBERS
// becomes silicon.lineNumbers.
// Note: Empty string values are treated as valid values, not as unset.
func loadEnv(prefix string) map[string]any {
	config := make(map[string]any)
	mapping := defaultEnvMapping(prefix)

	for env, path := range mapping {
		if val, ok := os.LookupEnv(env); ok {
			_ = setPath(config, path, parseEnvValue(val))
		}
	}

	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, prefix) {
			continue
		}

		parts := strings.SplitN(env, "=", 2)
		if len(parts) != 2 {
			continue
		}

		name := parts[0]
		value := parts[1]

		if _, ok := mapping[name]; ok {
			continue
		}

		path := envToPath(prefix, name)
		if path == "" {
			continue
		}
		_ = setPath(config, path, parseEnvValue(value))
	}

	return config
}

// envToPath converts CODESHOT_SILICON_LINE_NUMBERS to silicon.lineNumbers.
// The first underscore-separated part becomes the section; the remaining
// parts form the setting name in camelCase.
func envToPath(prefix, env string) string {
	name := strings.TrimPrefix(env, prefix)
	parts := strings.Split(name, "_")
	if len(parts) == 0 || parts[0] == "" {
		return ""
	}

	result := make([]string, 0, 2)
	result = append(result, strings.ToLower(parts[0]))

	if len(parts) > 1 {
		settingParts := parts[1:]
		settingName := strings.ToLower(settingParts[0])
		for i := 1; i < len(settingParts); i++ {
			part := settingParts[i]
			if len(part) > 0 {
				settingName += strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
			}
		}
		result = append(result, settingName)
	}

	return strings.Join(result, ".")
}

// parseEnvValue converts a string value to the most specific type.
// Integers are tried before booleans so numeric settings keep "1" and "0".
func parseEnvValue(s string) any {
	if s == "" {
		return s
	}

	if i, err := strconv.Atoi(s); err == nil {
		return i
	}

	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}

	return s
}

// deepMerge merges src into dst. Nested maps are merged recursively;
// any other value in src replaces the value in dst.
func deepMerge(dst, src map[string]any) {
	for key, srcVal := range src {
		if srcMap, ok := srcVal.(map[string]any); ok {
			if dstMap, ok := dst[key].(map[string]any); ok {
				deepMerge(dstMap, srcMap)
				continue
			}
			merged := make(map[string]any, len(srcMap))
			deepMerge(merged, srcMap)
			dst[key] = merged
			continue
		}
		dst[key] = srcVal
	}
}
