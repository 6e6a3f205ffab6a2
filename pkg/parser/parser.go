// Package parser wraps tree-sitter grammars for JavaScript and TypeScript.
//
// The generator uses it to confirm that an emitted theme preset module is
// syntactically valid before a build pipeline hands it to Tailwind.
package parser

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"unsafe"

	ts "github.com/tree-sitter/go-tree-sitter"
	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// maxPoolSize caps parsers per grammar. Checks are short and infrequent, so
// a handful of parsers covers concurrent MCP calls.
const maxPoolSize = 4

// ParserManager manages tree-sitter parsers with lazy initialization and
// thread-safe concurrent access.
//
// Memory Management:
//   - Parser pools are created lazily on first use per language
//   - ParserManager owns the pools and must be closed via Close()
//   - Callers own Tree instances and must call tree.Close() after use
//
// Example:
//
//	manager := NewParserManager(logger)
//	defer manager.Close()
//
//	tree, err := manager.Parse([]byte("export default {}"), LanguageJavaScript)
//	if err != nil {
//	    return err
//	}
//	defer tree.Close()
type ParserManager struct {
	pools  map[Language]*parserPool
	mutex  sync.RWMutex
	logger *slog.Logger

	parsesCalled int
}

// NewParserManager creates a new ParserManager instance.
func NewParserManager(logger *slog.Logger) *ParserManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &ParserManager{
		pools:  make(map[Language]*parserPool),
		logger: logger,
	}
}

// Parse parses source with the grammar for lang.
//
// Returns a Tree that MUST be closed by the caller. Trees with syntax errors
// are still returned; use SyntaxErrors to inspect them.
func (pm *ParserManager) Parse(source []byte, lang Language) (*ts.Tree, error) {
	if lang == LanguageUnknown {
		return nil, fmt.Errorf("cannot parse unknown language")
	}

	pm.mutex.Lock()
	pm.parsesCalled++
	pm.mutex.Unlock()

	pool, err := pm.getOrCreatePool(lang)
	if err != nil {
		return nil, fmt.Errorf("failed to get pool for %s: %w", lang, err)
	}

	parser, err := pool.acquire()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire parser: %w", err)
	}
	tree := parser.Parse(source, nil)
	pool.release(parser)

	if tree == nil {
		return nil, fmt.Errorf("parser.Parse returned nil tree")
	}
	return tree, nil
}

// ParseFile parses source with the grammar matching filePath's extension.
func (pm *ParserManager) ParseFile(source []byte, filePath string) (*ts.Tree, error) {
	lang := DetectLanguage(filePath)
	if lang == LanguageUnknown {
		return nil, fmt.Errorf("unsupported file extension: %s", filePath)
	}
	return pm.Parse(source, lang)
}

// Close releases all parser pool resources. The manager cannot be used
// afterwards.
func (pm *ParserManager) Close() error {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()

	pm.logger.Debug("closing ParserManager", "parses_called", pm.parsesCalled)
	for _, pool := range pm.pools {
		pool.close()
	}
	pm.pools = make(map[Language]*parserPool)
	return nil
}

// getOrCreatePool returns the pool for lang, creating it on first use.
// Thread-safe using double-checked locking.
func (pm *ParserManager) getOrCreatePool(lang Language) (*parserPool, error) {
	pm.mutex.RLock()
	pool, exists := pm.pools[lang]
	pm.mutex.RUnlock()
	if exists {
		return pool, nil
	}

	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	if pool, exists = pm.pools[lang]; exists {
		return pool, nil
	}

	langPtr, err := languagePointer(lang)
	if err != nil {
		return nil, err
	}
	size := min(runtime.NumCPU(), maxPoolSize)
	pool = newParserPool(lang, langPtr, size, pm.logger)
	pm.pools[lang] = pool

	pm.logger.Debug("created new parser pool", "language", lang.String(), "maxSize", size)
	return pool, nil
}

func languagePointer(lang Language) (unsafe.Pointer, error) {
	switch lang {
	case LanguageJavaScript:
		return ts_javascript.Language(), nil
	case LanguageTypeScript:
		return ts_typescript.LanguageTypescript(), nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang.String())
	}
}

// GetStats returns parser usage statistics.
func (pm *ParserManager) GetStats() ParserStats {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()

	total := 0
	for _, pool := range pm.pools {
		total += pool.createdCount()
	}
	return ParserStats{ParsersCreated: total, ParsesCalled: pm.parsesCalled}
}

// ParserStats contains parser usage statistics.
type ParserStats struct {
	ParsersCreated int
	ParsesCalled   int
}

// SyntaxError locates an ERROR or MISSING node in a parse tree.
// Row and Column are zero-based.
type SyntaxError struct {
	Row    uint
	Column uint
	Kind   string
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: syntax error near %s", e.Row+1, e.Column+1, e.Kind)
}

// SyntaxErrors collects the ERROR and MISSING nodes of tree in source order.
func SyntaxErrors(tree *ts.Tree) []SyntaxError {
	root := tree.RootNode()
	if !root.HasError() {
		return nil
	}
	var errs []SyntaxError
	var walk func(n *ts.Node)
	walk = func(n *ts.Node) {
		if n.IsError() || n.IsMissing() {
			pos := n.StartPosition()
			errs = append(errs, SyntaxError{Row: pos.Row, Column: pos.Column, Kind: n.Kind()})
			return
		}
		if !n.HasError() {
			return
		}
		for i := uint(0); i < n.ChildCount(); i++ {
			if child := n.Child(i); child != nil {
				walk(child)
			}
		}
	}
	walk(root)
	return errs
}
