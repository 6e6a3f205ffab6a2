// Package watch regenerates the token artifacts whenever the design
// document changes on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/gnana997/tokengen/pkg/generator"
)

// Rebuilder regenerates all outputs. *generator.Generator implements it.
type Rebuilder interface {
	GenerateAll(ctx context.Context) ([]generator.Result, error)
}

// Options configures a Watcher.
type Options struct {
	// DebounceMs groups bursts of events (editor save = write + chmod +
	// rename) into one rebuild. Defaults to 200.
	DebounceMs int

	// Patterns are doublestar globs, relative to the watched directory,
	// selecting which files trigger a rebuild.
	Patterns []string

	// Ignore are doublestar globs that never trigger a rebuild, checked
	// before Patterns.
	Ignore []string

	// OnRebuild, if set, is called after every rebuild attempt.
	OnRebuild func(results []generator.Result, err error)
}

// DefaultIgnore skips editor swap and backup files.
var DefaultIgnore = []string{"**/*.swp", "**/*~", "**/.#*"}

// Watcher watches the design document's directory and rebuilds on change.
//
// **Usage:**
//
//	w, err := watch.New(gen, watch.Options{}, logger)
//	if err != nil {
//	    return err
//	}
//	if err := w.Start(ctx); err != nil {
//	    return err
//	}
//	defer w.Stop()
type Watcher struct {
	watcher *fsnotify.Watcher
	rebuild Rebuilder
	dir     string
	options Options
	logger  *slog.Logger

	// Debouncing
	timer   *time.Timer
	timerMu sync.Mutex

	// Lifecycle
	ctx      context.Context
	stopChan chan struct{}
	done     chan struct{}
	started  bool
	stopped  bool
	mu       sync.Mutex
}

// New creates a Watcher for the input of gen's configuration.
func New(gen *generator.Generator, options Options, logger *slog.Logger) (*Watcher, error) {
	input := gen.Config().InputPath()
	if len(options.Patterns) == 0 {
		options.Patterns = []string{filepath.Base(input)}
	}
	return NewWithRebuilder(filepath.Dir(input), gen, options, logger)
}

// NewWithRebuilder watches dir and calls r on matching changes.
func NewWithRebuilder(dir string, r Rebuilder, options Options, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if options.DebounceMs <= 0 {
		options.DebounceMs = 200
	}
	if options.Ignore == nil {
		options.Ignore = DefaultIgnore
	}
	for _, pattern := range append(append([]string{}, options.Patterns...), options.Ignore...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("watch: invalid pattern %q", pattern)
		}
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create watcher: %w", err)
	}

	return &Watcher{
		watcher:  fw,
		rebuild:  r,
		dir:      dir,
		options:  options,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching. Rebuilds run with ctx; cancelling ctx stops the
// watcher like Stop does.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return fmt.Errorf("watch: watcher already stopped")
	}
	if w.started {
		return fmt.Errorf("watch: watcher already started")
	}

	if err := w.watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch: failed to watch %s: %w", w.dir, err)
	}
	w.ctx = ctx
	w.started = true

	w.logger.Info("watching design tokens", "dir", w.dir, "patterns", w.options.Patterns)
	go w.eventLoop()
	return nil
}

// Stop stops the watcher and cancels any pending rebuild.
// Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	started := w.started
	close(w.stopChan)
	w.mu.Unlock()

	w.timerMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.timerMu.Unlock()

	err := w.watcher.Close()
	if started {
		<-w.done
	}
	w.logger.Info("watcher stopped")
	return err
}

func (w *Watcher) eventLoop() {
	defer close(w.done)
	for {
		select {
		case <-w.stopChan:
			return
		case <-w.ctx.Done():
			go w.Stop()
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !w.matches(event.Name) {
		return
	}
	w.logger.Debug("file event", "op", event.Op.String(), "file", event.Name)

	switch {
	case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
		w.scheduleRebuild()
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		// Atomic saves rename a temp file over the document; the Create
		// that follows schedules the rebuild.
		w.logger.Debug("design document moved or removed", "file", event.Name)
	}
}

// matches reports whether path should trigger a rebuild.
func (w *Watcher) matches(path string) bool {
	rel, err := filepath.Rel(w.dir, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range w.options.Ignore {
		if m, _ := doublestar.Match(pattern, rel); m {
			return false
		}
	}
	for _, pattern := range w.options.Patterns {
		if m, _ := doublestar.Match(pattern, rel); m {
			return true
		}
	}
	return false
}

// scheduleRebuild restarts the debounce timer; only the last event in a
// burst triggers a rebuild.
func (w *Watcher) scheduleRebuild() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(time.Duration(w.options.DebounceMs)*time.Millisecond, func() {
		w.timerMu.Lock()
		if w.timer == t {
			w.timer = nil
		}
		w.timerMu.Unlock()
		w.runRebuild()
	})
	w.timer = t
}

func (w *Watcher) runRebuild() {
	w.mu.Lock()
	stopped := w.stopped
	w.mu.Unlock()
	if stopped {
		return
	}

	start := time.Now()
	results, err := w.rebuild.GenerateAll(w.ctx)
	if err != nil {
		w.logger.Error("rebuild failed", "error", err)
	} else {
		w.logger.Info("rebuilt design tokens", "files", len(results), "ms", time.Since(start).Milliseconds())
	}
	if w.options.OnRebuild != nil {
		w.options.OnRebuild(results, err)
	}
}

// Stats reports watcher state.
func (w *Watcher) Stats() Stats {
	w.timerMu.Lock()
	pending := w.timer != nil
	w.timerMu.Unlock()

	w.mu.Lock()
	defer w.mu.Unlock()
	return Stats{PendingRebuild: pending, IsRunning: w.started && !w.stopped}
}

// Stats contains watcher state.
type Stats struct {
	PendingRebuild bool
	IsRunning      bool
}
