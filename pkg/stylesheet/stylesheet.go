// Package stylesheet renders flattened color tokens as a CSS file with a
// :root block for the light theme and a .dark block for dark overrides.
package stylesheet

import (
	"errors"
	"strings"

	"github.com/gnana997/tokengen/pkg/design"
	"github.com/gnana997/tokengen/pkg/flatten"
)

// Header is the first line of every generated stylesheet.
const Header = "/* This file is auto-generated from design.json. Do not edit manually. */"

// ErrMissingColors is returned when colors.light or colors.dark is absent
// or not an object.
var ErrMissingColors = errors.New("stylesheet: colors.light and colors.dark must be objects")

// Build flattens both theme modes of doc and renders the stylesheet.
func Build(doc *design.Document, opts flatten.Options) ([]byte, error) {
	light, ok := doc.Mode(design.ModeLight)
	if !ok {
		return nil, ErrMissingColors
	}
	dark, ok := doc.Mode(design.ModeDark)
	if !ok {
		return nil, ErrMissingColors
	}
	return Render(
		flatten.FlattenWith(light, "", opts),
		flatten.FlattenWith(dark, "", opts),
	), nil
}

// Render assembles the stylesheet text. A mode without declarations still
// gets its rule, with an empty line as the body.
func Render(light, dark []flatten.Declaration) []byte {
	var b strings.Builder
	b.WriteString(Header)
	b.WriteString("\n:root {\n")
	writeBlock(&b, light)
	b.WriteString("\n}\n\n.dark {\n")
	writeBlock(&b, dark)
	b.WriteString("\n}\n")
	return []byte(b.String())
}

func writeBlock(b *strings.Builder, decls []flatten.Declaration) {
	for i, d := range decls {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("  --")
		b.WriteString(d.Name)
		b.WriteString(": ")
		b.WriteString(d.Value)
		b.WriteByte(';')
	}
}
