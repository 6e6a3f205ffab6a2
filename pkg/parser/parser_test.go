package parser

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectLanguage(t *testing.T) {
	tests := map[string]Language{
		"src/styles/tailwind-preset.js": LanguageJavaScript,
		"tailwind-preset.MJS":           LanguageJavaScript,
		"tailwind-preset.cjs":           LanguageJavaScript,
		"tailwind-preset.ts":            LanguageTypeScript,
		"tailwind-preset.mts":           LanguageTypeScript,
		"src/styles/design-tokens.css":  LanguageUnknown,
		"tailwind-preset":               LanguageUnknown,
	}
	for path, want := range tests {
		assert.Equal(t, want, DetectLanguage(path), path)
	}
}

func TestParse_ValidModule(t *testing.T) {
	manager := NewParserManager(nil)
	defer manager.Close()

	src := []byte("// header\nexport default {\n  \"theme\": {\n    \"extend\": {}\n  }\n}\n")
	tree, err := manager.Parse(src, LanguageJavaScript)
	require.NoError(t, err)
	defer tree.Close()

	assert.Equal(t, "program", tree.RootNode().Kind())
	assert.Empty(t, SyntaxErrors(tree))
}

func TestParse_TypeScriptModule(t *testing.T) {
	manager := NewParserManager(nil)
	defer manager.Close()

	src := []byte("const preset: Record<string, unknown> = {}\nexport default preset\n")
	tree, err := manager.ParseFile(src, "tailwind-preset.ts")
	require.NoError(t, err)
	defer tree.Close()

	assert.Empty(t, SyntaxErrors(tree))
}

func TestSyntaxErrors_Broken(t *testing.T) {
	manager := NewParserManager(nil)
	defer manager.Close()

	tree, err := manager.Parse([]byte("export default {\n  \"a\": [1, 2\n"), LanguageJavaScript)
	require.NoError(t, err)
	defer tree.Close()

	errs := SyntaxErrors(tree)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "syntax error")
}

func TestParse_Unknown(t *testing.T) {
	manager := NewParserManager(nil)
	defer manager.Close()

	_, err := manager.Parse([]byte("x"), LanguageUnknown)
	assert.Error(t, err)

	_, err = manager.ParseFile([]byte("x"), "tokens.css")
	assert.Error(t, err)
}

func TestParse_Concurrent(t *testing.T) {
	manager := NewParserManager(nil)
	defer manager.Close()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tree, err := manager.Parse([]byte("export default { a: 1 }"), LanguageJavaScript)
			if assert.NoError(t, err) {
				tree.Close()
			}
		}()
	}
	wg.Wait()

	stats := manager.GetStats()
	assert.Equal(t, 16, stats.ParsesCalled)
	assert.LessOrEqual(t, stats.ParsersCreated, maxPoolSize)
	assert.GreaterOrEqual(t, stats.ParsersCreated, 1)
}
