package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gnana997/tokengen/pkg/flatten"
	"github.com/gnana997/tokengen/pkg/generator"
	"github.com/gnana997/tokengen/pkg/watch"
)

// Project config locations, relative to the project root. The YAML file
// wins when both exist.
const (
	yamlConfigPath = ".tokengen/config.yaml"
	tomlConfigPath = "tokengen.toml"
)

// ProjectConfig holds the contents of .tokengen/config.yaml or tokengen.toml.
type ProjectConfig struct {
	Input      string `yaml:"input" toml:"input"`
	Stylesheet string `yaml:"stylesheet" toml:"stylesheet"`
	Preset     string `yaml:"preset" toml:"preset"`
	LogLevel   string `yaml:"log_level" toml:"log_level"`

	// SpecialCases is "any" (default) or "top".
	SpecialCases string `yaml:"special_cases" toml:"special_cases"`

	Watch WatchConfig `yaml:"watch" toml:"watch"`
}

// WatchConfig configures `tokengen watch`.
type WatchConfig struct {
	DebounceMs int      `yaml:"debounce_ms" toml:"debounce_ms"`
	Patterns   []string `yaml:"patterns" toml:"patterns"`
	Ignore     []string `yaml:"ignore" toml:"ignore"`
}

// loadProjectConfig reads the project config under root.
// Returns nil (no error) if neither file exists.
func loadProjectConfig(root string) (*ProjectConfig, error) {
	path := filepath.Join(root, yamlConfigPath)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		path = filepath.Join(root, tomlConfigPath)
		data, err = os.ReadFile(path)
		if os.IsNotExist(err) {
			return nil, nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg ProjectConfig
	if strings.HasSuffix(path, ".toml") {
		err = toml.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if _, err := parseSpecialCases(cfg.SpecialCases); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// apply copies the non-empty settings of pc onto cfg.
func (pc *ProjectConfig) apply(cfg *generator.Config) {
	if pc == nil {
		return
	}
	if pc.Input != "" {
		cfg.Input = pc.Input
	}
	if pc.Stylesheet != "" {
		cfg.StylesheetOut = pc.Stylesheet
	}
	if pc.Preset != "" {
		cfg.PresetOut = pc.Preset
	}
	if d, err := parseSpecialCases(pc.SpecialCases); err == nil {
		cfg.Flatten.SpecialCases = d
	}
}

// watchOptions returns the watch settings, or zero options for defaults.
func (pc *ProjectConfig) watchOptions() watch.Options {
	if pc == nil {
		return watch.Options{}
	}
	return watch.Options{
		DebounceMs: pc.Watch.DebounceMs,
		Patterns:   pc.Watch.Patterns,
		Ignore:     pc.Watch.Ignore,
	}
}

func parseSpecialCases(s string) (flatten.Depth, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return flatten.AnyDepth, nil
	case "top":
		return flatten.TopLevelOnly, nil
	default:
		return flatten.AnyDepth, fmt.Errorf("special_cases must be \"any\" or \"top\", got %q", s)
	}
}
