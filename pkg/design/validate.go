package design

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// TypographyGroups are the typography scales copied into the preset.
var TypographyGroups = []string{"fontFamily", "fontSize", "fontWeight", "lineHeight"}

// Validate checks the document against the shape the generators expect.
// Returns a slice of validation errors (empty slice if valid).
//
// Generation never calls Validate; `tokengen check` does.
func (d *Document) Validate() []error {
	var errs []error

	switch {
	case d.Colors == nil:
		errs = append(errs, fmt.Errorf("colors: missing"))
	case d.Colors.Kind != KindObject:
		errs = append(errs, fmt.Errorf("colors: expected object, got %s", d.Colors.Kind))
	default:
		for _, mode := range []string{ModeLight, ModeDark} {
			v, ok := d.Colors.Obj.Get(mode)
			if !ok {
				errs = append(errs, fmt.Errorf("colors.%s: missing", mode))
				continue
			}
			if v.Kind != KindObject {
				errs = append(errs, fmt.Errorf("colors.%s: expected object, got %s", mode, v.Kind))
				continue
			}
			errs = append(errs, validateColorTree("colors."+mode, v.Obj)...)
		}
	}

	if d.Typography != nil {
		if d.Typography.Kind != KindObject {
			errs = append(errs, fmt.Errorf("typography: expected object, got %s", d.Typography.Kind))
		} else {
			for _, name := range TypographyGroups {
				g := d.TypographyGroup(name)
				if g == nil {
					continue
				}
				errs = append(errs, validateScale("typography."+name, g, name == "fontFamily")...)
			}
		}
	}

	for _, group := range []struct {
		name string
		v    *Value
	}{
		{"spacing", d.Spacing},
		{"borderRadius", d.BorderRadius},
		{"shadows", d.Shadows},
	} {
		if group.v != nil {
			errs = append(errs, validateScale(group.name, group.v, false)...)
		}
	}

	return errs
}

func validateColorTree(path string, tree *Object) []error {
	var errs []error
	tree.Each(func(key string, v *Value) {
		p := path + "." + key
		switch {
		case v.IsContainer() && (key == "chart" || key == "sidebar"):
			v.Entries(func(child string, cv *Value) {
				if cv.IsContainer() {
					errs = append(errs, fmt.Errorf("%s.%s: nested %s inside %s group is not supported", p, child, cv.Kind, key))
					return
				}
				if err := checkColor(cv); err != nil {
					errs = append(errs, fmt.Errorf("%s.%s: %w", p, child, err))
				}
			})
		case v.Kind == KindObject:
			errs = append(errs, validateColorTree(p, v.Obj)...)
		case v.Kind == KindArray:
			errs = append(errs, fmt.Errorf("%s: arrays are not valid color values", p))
		default:
			if err := checkColor(v); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", p, err))
			}
		}
	})
	return errs
}

// checkColor rejects null leaves and malformed hex colors. Other color
// syntaxes (hsl, oklch, var()) are passed through unchecked.
func checkColor(v *Value) error {
	switch v.Kind {
	case KindNull:
		return fmt.Errorf("null color value")
	case KindString:
		if strings.HasPrefix(v.Str, "#") && !isHexColor(v.Str) {
			return fmt.Errorf("invalid hex color %q", v.Str)
		}
	}
	return nil
}

// isHexColor accepts #rgb, #rgba, #rrggbb and #rrggbbaa.
func isHexColor(s string) bool {
	var rgb, alpha string
	switch len(s) {
	case 4, 7:
		rgb = s
	case 5:
		rgb, alpha = s[:4], s[4:]
	case 9:
		rgb, alpha = s[:7], s[7:]
	default:
		return false
	}
	if _, err := colorful.Hex(rgb); err != nil {
		return false
	}
	if alpha != "" {
		if _, err := strconv.ParseUint(alpha, 16, 8); err != nil {
			return false
		}
	}
	return true
}

func validateScale(path string, v *Value, allowStacks bool) []error {
	if v.Kind != KindObject {
		return []error{fmt.Errorf("%s: expected object, got %s", path, v.Kind)}
	}
	var errs []error
	v.Obj.Each(func(key string, entry *Value) {
		p := path + "." + key
		switch entry.Kind {
		case KindString, KindNumber:
		case KindArray:
			if !allowStacks && path != "typography.fontSize" {
				errs = append(errs, fmt.Errorf("%s: unexpected array", p))
				return
			}
			for i, item := range entry.Items {
				if item.IsContainer() || item.Kind == KindNull {
					errs = append(errs, fmt.Errorf("%s[%d]: expected string or number, got %s", p, i, item.Kind))
				}
			}
		case KindObject:
			// Composite values such as multi-layer shadows are accepted as-is.
		default:
			errs = append(errs, fmt.Errorf("%s: expected string or number, got %s", p, entry.Kind))
		}
	})
	return errs
}
