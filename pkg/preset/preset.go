// Package preset assembles the Tailwind theme-extension preset from a
// design document and renders it as a JavaScript module.
package preset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gnana997/tokengen/pkg/design"
	"github.com/gnana997/tokengen/pkg/parser"
)

// Header is the first line of every generated preset module.
const Header = "// Auto-generated from design.json. Do not edit manually."

var (
	// ErrSyntax is returned by Verify when the rendered module does not parse.
	ErrSyntax = errors.New("preset: generated module has syntax errors")
	// ErrMissingTypography is returned when the document has no typography
	// group, or it is null. Individual typography scales may still be absent.
	ErrMissingTypography = errors.New("preset: typography is missing")
)

// Preset is the theme-extension object consumed by Tailwind.
type Preset struct {
	Theme Theme `json:"theme"`
}

// Theme holds the extend block.
type Theme struct {
	Extend Extend `json:"extend"`
}

// Extend carries the token groups copied from the document. A nil field
// means the group was absent and is left out of the rendered module.
type Extend struct {
	FontFamily   *design.Value `json:"fontFamily,omitempty"`
	FontSize     *design.Value `json:"fontSize,omitempty"`
	FontWeight   *design.Value `json:"fontWeight,omitempty"`
	LineHeight   *design.Value `json:"lineHeight,omitempty"`
	Spacing      *design.Value `json:"spacing,omitempty"`
	BorderRadius *design.Value `json:"borderRadius,omitempty"`
	BoxShadow    *design.Value `json:"boxShadow,omitempty"`
}

// Assemble copies the token groups of doc into a Preset. Values are shared
// with the document, not copied or transformed; only "shadows" is renamed
// to "boxShadow".
func Assemble(doc *design.Document) (*Preset, error) {
	if doc.Typography == nil || doc.Typography.Kind == design.KindNull {
		return nil, ErrMissingTypography
	}
	return &Preset{Theme: Theme{Extend: Extend{
		FontFamily:   doc.TypographyGroup("fontFamily"),
		FontSize:     doc.TypographyGroup("fontSize"),
		FontWeight:   doc.TypographyGroup("fontWeight"),
		LineHeight:   doc.TypographyGroup("lineHeight"),
		Spacing:      doc.Spacing,
		BorderRadius: doc.BorderRadius,
		BoxShadow:    doc.Shadows,
	}}}, nil
}

// Group returns the extend field named name ("boxShadow", "spacing", ...).
func (p *Preset) Group(name string) (*design.Value, bool) {
	e := p.Theme.Extend
	var v *design.Value
	switch name {
	case "fontFamily":
		v = e.FontFamily
	case "fontSize":
		v = e.FontSize
	case "fontWeight":
		v = e.FontWeight
	case "lineHeight":
		v = e.LineHeight
	case "spacing":
		v = e.Spacing
	case "borderRadius":
		v = e.BorderRadius
	case "boxShadow":
		v = e.BoxShadow
	default:
		return nil, false
	}
	return v, v != nil
}

// GroupNames lists the extend fields in output order.
var GroupNames = []string{"fontFamily", "fontSize", "fontWeight", "lineHeight", "spacing", "borderRadius", "boxShadow"}

// Render serializes p as an ES module with a default export, indented with
// two spaces.
func Render(p *Preset) ([]byte, error) {
	var body bytes.Buffer
	enc := json.NewEncoder(&body)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("preset: encode: %w", err)
	}

	var out bytes.Buffer
	out.Grow(len(Header) + body.Len() + 32)
	out.WriteString(Header)
	out.WriteString("\nexport default ")
	out.Write(bytes.TrimRight(body.Bytes(), "\n"))
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// Build assembles and renders the preset for doc.
func Build(doc *design.Document) ([]byte, error) {
	p, err := Assemble(doc)
	if err != nil {
		return nil, err
	}
	return Render(p)
}

// Verify parses a rendered module with the grammar matching path and
// returns ErrSyntax wrapping the first syntax error, if any.
func Verify(src []byte, path string, pm *parser.ParserManager) error {
	tree, err := pm.ParseFile(src, path)
	if err != nil {
		return fmt.Errorf("preset: %w", err)
	}
	defer tree.Close()

	if errs := parser.SyntaxErrors(tree); len(errs) > 0 {
		return fmt.Errorf("%w: %s: %w", ErrSyntax, path, errs[0])
	}
	return nil
}
