package capture

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/codeshot/internal/integration/silicon"
)

// presetFile is the on-disk shape of presets.yaml.
type presetFile struct {
	Presets map[string]presetSpec `yaml:"presets"`
}

// presetSpec mirrors the override fields; absent keys inherit the
// process-wide defaults.
type presetSpec struct {
	LineNumbers    *bool       `yaml:"lineNumbers"`
	WindowControls *bool       `yaml:"windowControls"`
	RoundedCorners *bool       `yaml:"roundedCorners"`
	Background     string      `yaml:"background"`
	Theme          string      `yaml:"theme"`
	HighlightLines string      `yaml:"highlightLines"`
	Shadow         *shadowSpec `yaml:"shadow"`
}

type shadowSpec struct {
	BlurRadius *int   `yaml:"blurRadius"`
	Color      string `yaml:"color"`
	OffsetX    *int   `yaml:"offsetX"`
	OffsetY    *int   `yaml:"offsetY"`
}

// LoadPresets reads named option overrides from a YAML file. A missing
// file is not an error; it yields an empty set.
func LoadPresets(path string) (map[string]silicon.Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]silicon.Overrides{}, nil
		}
		return nil, fmt.Errorf("reading presets file %s: %w", path, err)
	}

	var file presetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing presets file %s: %w", path, err)
	}

	presets := make(map[string]silicon.Overrides, len(file.Presets))
	for name, spec := range file.Presets {
		presets[name] = spec.overrides()
	}
	return presets, nil
}

func (p presetSpec) overrides() silicon.Overrides {
	ov := silicon.Overrides{
		LineNumbers:    p.LineNumbers,
		WindowControls: p.WindowControls,
		RoundedCorners: p.RoundedCorners,
		Background:     p.Background,
		Theme:          p.Theme,
		HighlightLines: p.HighlightLines,
	}
	if p.Shadow != nil {
		ov.Shadow = &silicon.Shadow{
			BlurRadius: p.Shadow.BlurRadius,
			Color:      p.Shadow.Color,
			OffsetX:    p.Shadow.OffsetX,
			OffsetY:    p.Shadow.OffsetY,
		}
	}
	return ov
}

// presetNames returns the sorted preset names for error messages.
func presetNames(presets map[string]silicon.Overrides) string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
