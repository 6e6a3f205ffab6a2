// Package flatten turns a nested color token tree into flat CSS custom
// property declarations.
package flatten

import (
	"strings"

	"github.com/gnana997/tokengen/pkg/design"
)

// Declaration is one custom property, without the leading "--".
type Declaration struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Depth controls where the chart and sidebar groups get their special names.
type Depth int

const (
	// AnyDepth applies the chart/sidebar rules wherever the key appears.
	AnyDepth Depth = iota
	// TopLevelOnly applies them only to direct children of the mode tree;
	// deeper chart/sidebar groups are flattened with the general rule.
	TopLevelOnly
)

// Options configures Flatten.
type Options struct {
	SpecialCases Depth
}

// sidebarNames maps sidebar group keys to their declaration names. Keys not
// listed fall back to "sidebar-" + Kebab(key).
var sidebarNames = map[string]string{
	"background":        "sidebar",
	"foreground":        "sidebar-foreground",
	"primary":           "sidebar-primary",
	"primaryForeground": "sidebar-primary-foreground",
	"accent":            "sidebar-accent",
	"accentForeground":  "sidebar-accent-foreground",
	"border":            "sidebar-border",
	"ring":              "sidebar-ring",
}

// Flatten walks tree depth-first in insertion order using the default
// options. An empty or nil tree yields an empty slice.
func Flatten(tree *design.Object, prefix string) []Declaration {
	return FlattenWith(tree, prefix, Options{})
}

// FlattenWith is Flatten with explicit options.
func FlattenWith(tree *design.Object, prefix string, opts Options) []Declaration {
	f := &flattener{opts: opts, out: make([]Declaration, 0, tree.Len())}
	f.walk(design.ObjectValue(tree), prefix, 0)
	return f.out
}

type flattener struct {
	opts Options
	out  []Declaration
}

func (f *flattener) emit(name string, v *design.Value) {
	f.out = append(f.out, Declaration{Name: name, Value: v.Text()})
}

func (f *flattener) walk(node *design.Value, prefix string, depth int) {
	node.Entries(func(key string, v *design.Value) {
		if !v.IsContainer() {
			f.emit(prefix+Kebab(key), v)
			return
		}

		special := depth == 0 || f.opts.SpecialCases == AnyDepth
		switch {
		case special && key == "chart":
			v.Entries(func(child string, cv *design.Value) {
				f.emit("chart-"+child, cv)
			})
		case special && key == "sidebar":
			v.Entries(func(child string, cv *design.Value) {
				name, ok := sidebarNames[child]
				if !ok {
					name = "sidebar-" + Kebab(child)
				}
				f.emit(name, cv)
			})
		default:
			f.walk(v, prefix+Kebab(key)+"-", depth+1)
		}
	})
}

// Kebab converts camelCase to kebab-case: a hyphen goes between each ASCII
// lowercase letter and a following ASCII uppercase letter, then the result
// is lowercased. Digits and existing separators are left alone.
func Kebab(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	for i := 0; i < len(name); i++ {
		c := name[i]
		if i > 0 && isUpper(c) && isLower(name[i-1]) {
			b.WriteByte('-')
		}
		b.WriteByte(c)
	}
	return strings.ToLower(b.String())
}

func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
