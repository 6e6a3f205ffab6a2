package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/tokengen/pkg/generator"
)

type countingRebuilder struct {
	calls atomic.Int32
}

func (c *countingRebuilder) GenerateAll(ctx context.Context) ([]generator.Result, error) {
	c.calls.Add(1)
	return nil, nil
}

func newTestWatcher(t *testing.T, dir string, r Rebuilder, opts Options) *Watcher {
	t.Helper()
	if opts.DebounceMs == 0 {
		opts.DebounceMs = 20
	}
	if opts.Patterns == nil {
		opts.Patterns = []string{"design.json"}
	}
	w, err := NewWithRebuilder(dir, r, opts, nil)
	require.NoError(t, err)
	t.Cleanup(func() { w.Stop() })
	return w
}

func TestMatches(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t, dir, &countingRebuilder{}, Options{
		Patterns: []string{"design.json", "tokens/**/*.json"},
		Ignore:   []string{"tokens/draft/**"},
	})

	assert.True(t, w.matches(filepath.Join(dir, "design.json")))
	assert.True(t, w.matches(filepath.Join(dir, "tokens", "brand", "colors.json")))
	assert.False(t, w.matches(filepath.Join(dir, "tokens", "draft", "colors.json")))
	assert.False(t, w.matches(filepath.Join(dir, "package.json")))
	assert.False(t, w.matches(filepath.Join(dir, ".design.json.swp")))
}

func TestNew_InvalidPattern(t *testing.T) {
	_, err := NewWithRebuilder(t.TempDir(), &countingRebuilder{}, Options{Patterns: []string{"[design"}}, nil)
	assert.Error(t, err)
}

func TestWatcher_RebuildsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "design.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))

	r := &countingRebuilder{}
	w := newTestWatcher(t, dir, r, Options{DebounceMs: 50})
	require.NoError(t, w.Start(context.Background()))

	// A burst of writes collapses into a single rebuild.
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte(`{"v": 1}`), 0644))
	}

	require.Eventually(t, func() bool { return r.calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), r.calls.Load())
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	r := &countingRebuilder{}
	w := newTestWatcher(t, dir, r, Options{})
	require.NoError(t, w.Start(context.Background()))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(0), r.calls.Load())
}

func TestWatcher_WithGenerator(t *testing.T) {
	root := t.TempDir()
	input := filepath.Join(root, generator.DefaultInput)
	require.NoError(t, os.WriteFile(input, []byte(`{"colors": {"light": {"a": "1"}, "dark": {}}, "typography": {}}`), 0644))

	gen, err := generator.New(generator.DefaultConfig(root), nil)
	require.NoError(t, err)

	var mu sync.Mutex
	var lastErr error
	rebuilt := make(chan struct{}, 4)
	w, err := New(gen, Options{DebounceMs: 20, OnRebuild: func(_ []generator.Result, err error) {
		mu.Lock()
		lastErr = err
		mu.Unlock()
		rebuilt <- struct{}{}
	}}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { w.Stop() })
	require.NoError(t, w.Start(context.Background()))

	require.NoError(t, os.WriteFile(input, []byte(`{"colors": {"light": {"a": "2"}, "dark": {}}, "typography": {}}`), 0644))

	select {
	case <-rebuilt:
	case <-time.After(3 * time.Second):
		t.Fatal("no rebuild")
	}
	mu.Lock()
	require.NoError(t, lastErr)
	mu.Unlock()

	css, err := os.ReadFile(filepath.Join(root, generator.DefaultStylesheetOut))
	require.NoError(t, err)
	assert.Contains(t, string(css), "--a: 2;")
}

func TestWatcher_StopIdempotent(t *testing.T) {
	w := newTestWatcher(t, t.TempDir(), &countingRebuilder{}, Options{})
	require.NoError(t, w.Start(context.Background()))
	assert.True(t, w.Stats().IsRunning)

	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
	assert.False(t, w.Stats().IsRunning)
	assert.Error(t, w.Start(context.Background()))
}

func TestWatcher_ContextCancelStops(t *testing.T) {
	w := newTestWatcher(t, t.TempDir(), &countingRebuilder{}, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))

	cancel()
	require.Eventually(t, func() bool { return !w.Stats().IsRunning }, time.Second, 10*time.Millisecond)
}
