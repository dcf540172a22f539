// Package pipeline describes filter trees declaratively and builds them.
package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var ErrUnknownFormat = errors.New("unknown config format")

// Node is one filter in a tree. Parameters that a filter type does not use
// are ignored; zero values select the filter's default.
type Node struct {
	Type      string  `yaml:"type" toml:"type"`
	Threshold float32 `yaml:"threshold,omitempty" toml:"threshold,omitempty"`
	LineSize  float32 `yaml:"line_size,omitempty" toml:"line_size,omitempty"`
	Radius    int     `yaml:"radius,omitempty" toml:"radius,omitempty"`
	Window    string  `yaml:"window,omitempty" toml:"window,omitempty"`
	Filters   []Node  `yaml:"filters,omitempty" toml:"filters,omitempty"`
}

// Config is the top level of a pipeline file. Filters become the children of
// the root group.
type Config struct {
	Filters []Node `yaml:"filters" toml:"filters"`
}

// FormatOf maps a file extension to a format name for Parse.
func FormatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml", nil
	case ".toml":
		return "toml", nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// Load reads a YAML or TOML pipeline, chosen by extension.
func Load(path string) (*Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pipeline %s: %w", path, err)
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pipeline %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data in the named format ("yaml" or "toml").
func Parse(data []byte, format string) (*Config, error) {
	cfg := &Config{}
	var err error
	switch format {
	case "yaml":
		err = yaml.Unmarshal(data, cfg)
	case "toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
