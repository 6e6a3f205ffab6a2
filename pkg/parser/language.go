package parser

import (
	"path/filepath"
	"strings"
)

// Language identifies the grammar used to check a generated module.
type Language int

const (
	// LanguageJavaScript covers .js, .mjs and .cjs presets.
	LanguageJavaScript Language = iota
	// LanguageTypeScript covers .ts, .mts and .cts presets.
	LanguageTypeScript
	// LanguageUnknown is any other extension.
	LanguageUnknown
)

// String returns the string representation of the language.
func (l Language) String() string {
	switch l {
	case LanguageTypeScript:
		return "typescript"
	case LanguageJavaScript:
		return "javascript"
	default:
		return "unknown"
	}
}

// DetectLanguage picks the grammar for a module from its file extension.
func DetectLanguage(filePath string) Language {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".js", ".mjs", ".cjs":
		return LanguageJavaScript
	case ".ts", ".mts", ".cts":
		return LanguageTypeScript
	default:
		return LanguageUnknown
	}
}
