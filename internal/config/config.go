// ABOUTME: Settings loading with global + project config merge and CLI overrides
// ABOUTME: YAML configuration via gopkg.in/yaml.v3; a missing file means defaults

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mauromedda/rawsh/pkg/tui/theme"
)

// Defaults applied to fields no file or flag sets.
const (
	DefaultMaxLine     = 1024
	DefaultHistorySize = 30
	DefaultPrompt      = "$"
)

// Settings holds the merged configuration. Pointer fields distinguish
// "unset" from an explicit false so a project file can turn them off.
type Settings struct {
	MaxLine     int           `yaml:"max_line,omitempty"`
	HistorySize int           `yaml:"history_size,omitempty"`
	Prompt      string        `yaml:"prompt,omitempty"`
	ShowCwd     *bool         `yaml:"show_cwd,omitempty"`
	Color       *bool         `yaml:"color,omitempty"`
	Theme       string        `yaml:"theme,omitempty"`
	Palette     theme.Palette `yaml:"palette,omitempty"`
	Verbose     bool          `yaml:"verbose,omitempty"`
}

// Defaults returns the built-in settings.
func Defaults() *Settings {
	return &Settings{
		MaxLine:     DefaultMaxLine,
		HistorySize: DefaultHistorySize,
		Prompt:      DefaultPrompt,
		ShowCwd:     boolPtr(true),
		Color:       boolPtr(true),
	}
}

// Load reads and merges the global and project-local settings on top of
// the defaults. globalPath overrides GlobalConfigFile when non-empty, and
// must then exist. Project settings override global settings.
func Load(globalPath, projectRoot string) (*Settings, error) {
	explicit := globalPath != ""
	if !explicit {
		globalPath = GlobalConfigFile()
	}

	global, err := loadFile(globalPath)
	if err != nil && (explicit || !errors.Is(err, os.ErrNotExist)) {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	var project *Settings
	if projectRoot != "" {
		project, err = loadFile(ProjectConfigFile(projectRoot))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading project config: %w", err)
		}
	}

	merged := merge(merge(Defaults(), global), project)
	ResolveEnvVars(merged)
	return merged, nil
}

// loadFile reads Settings from a YAML file. Returns zero Settings if the
// file does not exist. An empty file is not an error.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	var s Settings
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// merge lays the set fields of over onto base and returns the result.
// Non-zero values override.
func merge(base, over *Settings) *Settings {
	if base == nil {
		base = &Settings{}
	}
	if over == nil {
		return base
	}

	result := *base

	if over.MaxLine != 0 {
		result.MaxLine = over.MaxLine
	}
	if over.HistorySize != 0 {
		result.HistorySize = over.HistorySize
	}
	if over.Prompt != "" {
		result.Prompt = over.Prompt
	}
	if over.ShowCwd != nil {
		result.ShowCwd = boolPtr(*over.ShowCwd)
	}
	if over.Color != nil {
		result.Color = boolPtr(*over.Color)
	}
	if over.Theme != "" {
		result.Theme = over.Theme
	}
	result.Palette = result.Palette.Merge(over.Palette)
	if over.Verbose {
		result.Verbose = true
	}

	return &result
}

// Overrides carries values given on the command line. Zero values mean
// the flag was not given.
type Overrides struct {
	MaxLine     int
	HistorySize int
	NoColor     bool
	Verbose     bool
}

// Apply merges o onto s in place.
func (o Overrides) Apply(s *Settings) {
	over := &Settings{
		MaxLine:     o.MaxLine,
		HistorySize: o.HistorySize,
		Verbose:     o.Verbose,
	}
	if o.NoColor {
		over.Color = boolPtr(false)
	}
	*s = *merge(s, over)
}

// Validate rejects settings the shell cannot run with.
func (s *Settings) Validate() error {
	if s.MaxLine <= 0 {
		return fmt.Errorf("max_line must be positive, got %d", s.MaxLine)
	}
	if s.HistorySize <= 0 {
		return fmt.Errorf("history_size must be positive, got %d", s.HistorySize)
	}
	return nil
}

// ShowCwdEnabled reports whether the prompt includes the working directory.
func (s *Settings) ShowCwdEnabled() bool {
	return s.ShowCwd == nil || *s.ShowCwd
}

// ColorEnabled reports whether output is styled. NO_COLOR in the
// environment turns it off regardless of the file.
func (s *Settings) ColorEnabled() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return s.Color == nil || *s.Color
}

func boolPtr(b bool) *bool { return &b }
