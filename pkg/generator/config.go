package generator

import (
	"os"
	"path/filepath"

	"github.com/gnana997/tokengen/pkg/flatten"
)

// Default paths, relative to the project root.
const (
	DefaultInput         = "design.json"
	DefaultStylesheetOut = "src/styles/design-tokens.css"
	DefaultPresetOut     = "src/styles/tailwind-preset.js"
)

// Config locates the design document and the generated artifacts.
// Relative paths are resolved against Root.
type Config struct {
	Root          string
	Input         string
	StylesheetOut string
	PresetOut     string

	// Flatten controls color token naming.
	Flatten flatten.Options

	// CacheSize is the number of compiled documents kept in memory.
	// Zero means DefaultCacheSize.
	CacheSize int
}

// DefaultCacheSize is used when Config.CacheSize is zero.
const DefaultCacheSize = 8

// DefaultConfig returns the conventional layout rooted at root.
func DefaultConfig(root string) Config {
	return Config{
		Root:          root,
		Input:         DefaultInput,
		StylesheetOut: DefaultStylesheetOut,
		PresetOut:     DefaultPresetOut,
	}
}

// InputPath returns the absolute-or-root-relative input path.
func (c Config) InputPath() string { return c.resolve(c.Input) }

// StylesheetPath returns the resolved stylesheet output path.
func (c Config) StylesheetPath() string { return c.resolve(c.StylesheetOut) }

// PresetPath returns the resolved preset output path.
func (c Config) PresetPath() string { return c.resolve(c.PresetOut) }

func (c Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}

// rel reports p relative to Root when possible.
func (c Config) rel(p string) string {
	root, err := filepath.Abs(c.Root)
	if err != nil {
		return p
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	r, err := filepath.Rel(root, abs)
	if err != nil {
		return p
	}
	return r
}

// FindRoot walks up from dir looking for a directory that contains marker
// (normally design.json). Falls back to dir itself if none is found.
func FindRoot(dir, marker string) string {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}

	orig := dir
	for {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return orig
}
