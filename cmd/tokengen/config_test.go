package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/tokengen/pkg/flatten"
	"github.com/gnana997/tokengen/pkg/generator"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadProjectConfig_Missing(t *testing.T) {
	cfg, err := loadProjectConfig(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestLoadProjectConfig_YAML(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, yamlConfigPath), `
input: tokens/design.json
stylesheet: app/tokens.css
log_level: debug
special_cases: top
watch:
  debounce_ms: 50
  patterns: ["tokens/*.json"]
`)

	cfg, err := loadProjectConfig(root)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "tokens/design.json", cfg.Input)
	assert.Equal(t, "app/tokens.css", cfg.Stylesheet)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 50, cfg.Watch.DebounceMs)
	assert.Equal(t, []string{"tokens/*.json"}, cfg.Watch.Patterns)

	gc := generator.DefaultConfig(root)
	cfg.apply(&gc)
	assert.Equal(t, "tokens/design.json", gc.Input)
	assert.Equal(t, "app/tokens.css", gc.StylesheetOut)
	assert.Equal(t, generator.DefaultPresetOut, gc.PresetOut)
	assert.Equal(t, flatten.TopLevelOnly, gc.Flatten.SpecialCases)

	opts := cfg.watchOptions()
	assert.Equal(t, 50, opts.DebounceMs)
}

func TestLoadProjectConfig_TOML(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, tomlConfigPath), `
preset = "tailwind/preset.js"

[watch]
debounce_ms = 100
ignore = ["**/*.bak"]
`)

	cfg, err := loadProjectConfig(root)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "tailwind/preset.js", cfg.Preset)
	assert.Equal(t, 100, cfg.Watch.DebounceMs)
	assert.Equal(t, []string{"**/*.bak"}, cfg.Watch.Ignore)
}

func TestLoadProjectConfig_YAMLWins(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, yamlConfigPath), "input: from-yaml.json\n")
	writeFile(t, filepath.Join(root, tomlConfigPath), "input = \"from-toml.json\"\n")

	cfg, err := loadProjectConfig(root)
	require.NoError(t, err)
	assert.Equal(t, "from-yaml.json", cfg.Input)
}

func TestLoadProjectConfig_Errors(t *testing.T) {
	t.Run("bad yaml", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, yamlConfigPath), "input: [unclosed\n")
		_, err := loadProjectConfig(root)
		assert.ErrorContains(t, err, "failed to parse")
	})
	t.Run("bad toml", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, tomlConfigPath), "input = \n")
		_, err := loadProjectConfig(root)
		assert.ErrorContains(t, err, "failed to parse")
	})
	t.Run("bad special_cases", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, yamlConfigPath), "special_cases: sometimes\n")
		_, err := loadProjectConfig(root)
		assert.ErrorContains(t, err, "special_cases")
	})
}

func TestNilProjectConfig(t *testing.T) {
	var pc *ProjectConfig
	gc := generator.DefaultConfig("/p")
	pc.apply(&gc)
	assert.Equal(t, generator.DefaultConfig("/p"), gc)
	assert.Zero(t, pc.watchOptions().DebounceMs)
}
