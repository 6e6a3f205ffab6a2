// Package generator runs the design.json build: it reads the document once,
// compiles the stylesheet and the Tailwind preset, and writes them out.
//
// Every run reads and compiles completely before the first write, and each
// write replaces its file atomically, so a failed or interrupted run leaves
// the previous outputs untouched.
package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gnana997/tokengen/pkg/design"
	"github.com/gnana997/tokengen/pkg/preset"
	"github.com/gnana997/tokengen/pkg/stylesheet"
	"github.com/gnana997/tokengen/pkg/util"
)

// ErrWrite is returned when an output file cannot be written.
var ErrWrite = errors.New("generator: write failed")

// Artifacts is the compiled form of one version of the design document.
type Artifacts struct {
	// Digest is the hex SHA-256 of the input bytes.
	Digest   string
	Document *design.Document

	Stylesheet []byte
	// StylesheetErr is set when the document has no usable color modes.
	// The preset does not depend on colors and is still available.
	StylesheetErr error

	Preset []byte
	// PresetErr is set when the document has no typography group.
	PresetErr error
}

// Result describes one written file.
type Result struct {
	Path    string
	RelPath string
	Bytes   int
}

// Generator compiles and writes the token artifacts for one Config.
// It is safe for concurrent use.
type Generator struct {
	cfg    Config
	cache  *lru.Cache[string, *Artifacts]
	logger *slog.Logger

	// writeMu serializes output writes between watch rebuilds and direct calls.
	writeMu sync.Mutex
}

// New creates a Generator. A nil logger uses slog.Default().
func New(cfg Config, logger *slog.Logger) (*Generator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	size := cfg.CacheSize
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, *Artifacts](size)
	if err != nil {
		return nil, fmt.Errorf("generator: create cache: %w", err)
	}
	return &Generator{cfg: cfg, cache: cache, logger: logger}, nil
}

// Config returns the generator's configuration.
func (g *Generator) Config() Config { return g.cfg }

// Compile reads the input document and returns its compiled artifacts.
// Unchanged input is served from the cache.
func (g *Generator) Compile(ctx context.Context) (*Artifacts, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := g.cfg.InputPath()
	data, err := util.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", design.ErrRead, path, err)
	}

	sum := sha256.Sum256(data)
	digest := hex.EncodeToString(sum[:])
	if a, ok := g.cache.Get(digest); ok {
		g.logger.Debug("compile cache hit", "input", path, "digest", digest[:12])
		return a, nil
	}

	start := time.Now()
	doc, err := design.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	a := &Artifacts{Digest: digest, Document: doc}
	a.Stylesheet, a.StylesheetErr = stylesheet.Build(doc, g.cfg.Flatten)
	a.Preset, a.PresetErr = preset.Build(doc)

	g.cache.Add(digest, a)
	g.logger.Debug("compiled design document",
		"input", path,
		"digest", digest[:12],
		"ms", time.Since(start).Milliseconds())
	return a, nil
}

// GenerateStylesheet compiles the document and writes the stylesheet.
func (g *Generator) GenerateStylesheet(ctx context.Context) (Result, error) {
	a, err := g.Compile(ctx)
	if err != nil {
		return Result{}, err
	}
	if a.StylesheetErr != nil {
		return Result{}, a.StylesheetErr
	}
	return g.write(ctx, g.cfg.StylesheetPath(), a.Stylesheet)
}

// GeneratePreset compiles the document and writes the preset module.
func (g *Generator) GeneratePreset(ctx context.Context) (Result, error) {
	a, err := g.Compile(ctx)
	if err != nil {
		return Result{}, err
	}
	if a.PresetErr != nil {
		return Result{}, a.PresetErr
	}
	return g.write(ctx, g.cfg.PresetPath(), a.Preset)
}

// GenerateAll writes both artifacts. Nothing is written unless both
// compile; the error then reports every artifact that failed.
func (g *Generator) GenerateAll(ctx context.Context) ([]Result, error) {
	a, err := g.Compile(ctx)
	if err != nil {
		return nil, err
	}
	if err := errors.Join(a.StylesheetErr, a.PresetErr); err != nil {
		return nil, err
	}

	results := make([]Result, 0, 2)
	for _, out := range []struct {
		path string
		data []byte
	}{
		{g.cfg.StylesheetPath(), a.Stylesheet},
		{g.cfg.PresetPath(), a.Preset},
	} {
		r, err := g.write(ctx, out.path, out.data)
		if err != nil {
			return results, err
		}
		results = append(results, r)
	}
	return results, nil
}

func (g *Generator) write(ctx context.Context, path string, data []byte) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	g.writeMu.Lock()
	defer g.writeMu.Unlock()

	if err := util.WriteFileAtomic(path, data, 0644); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	r := Result{Path: path, RelPath: g.cfg.rel(path), Bytes: len(data)}
	g.logger.Info("generated", "path", r.RelPath, "bytes", r.Bytes)
	return r, nil
}
