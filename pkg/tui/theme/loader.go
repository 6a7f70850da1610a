// ABOUTME: Theme resolution: a built-in name or a YAML theme file, with palette overrides
// ABOUTME: Unset palette fields inherit from DefaultPalette to ensure completeness

package theme

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML theme file and returns a Theme.
// Missing palette fields fall back to DefaultPalette values.
func LoadFile(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}

	var th Theme
	if err := yaml.Unmarshal(data, &th); err != nil {
		return nil, fmt.Errorf("parsing theme file: %w", err)
	}
	th.Palette = DefaultPalette().Merge(th.Palette)
	return &th, nil
}

// Resolve returns the theme named by ref: a built-in name, or a path to
// a YAML file when ref ends in .yaml or .yml. An empty ref selects
// "default". overrides are laid over the resolved palette.
func Resolve(ref string, overrides Palette) (*Theme, error) {
	var th *Theme
	switch {
	case ref == "":
		th = Builtin("default")
	case strings.HasSuffix(ref, ".yaml") || strings.HasSuffix(ref, ".yml"):
		loaded, err := LoadFile(ref)
		if err != nil {
			return nil, err
		}
		th = loaded
	default:
		th = Builtin(ref)
		if th == nil {
			return nil, fmt.Errorf("unknown theme %q (built-in: %s)", ref, strings.Join(BuiltinNames(), ", "))
		}
	}
	return &Theme{Name: th.Name, Palette: th.Palette.Merge(overrides)}, nil
}
