// Package design loads design token documents (design.json) into an
// order-preserving tree.
//
// The document is the single source of truth for visual tokens: color trees
// per theme mode, typography scales, spacing, border radius and shadows.
// A loaded Document is never mutated.
package design

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/buger/jsonparser"

	"github.com/gnana997/tokengen/pkg/util"
)

var (
	// ErrRead is returned when the document cannot be read.
	ErrRead = errors.New("design: read failed")
	// ErrInvalidJSON is returned when the document is not valid JSON.
	ErrInvalidJSON = errors.New("design: invalid JSON")
	// ErrNotObject is returned when the document root is not a JSON object.
	ErrNotObject = errors.New("design: document root is not an object")
)

// Theme modes present under "colors".
const (
	ModeLight = "light"
	ModeDark  = "dark"
)

// Document is a parsed design token document.
//
// Every group field is nil when the key is absent from the source, so callers
// can tell "missing" apart from "empty".
type Document struct {
	Root         *Object
	Colors       *Value
	Typography   *Value
	Spacing      *Value
	BorderRadius *Value
	Shadows      *Value
}

// LoadFile reads and parses the document at path.
func LoadFile(path string) (*Document, error) {
	data, err := util.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRead, path, err)
	}
	return Parse(data)
}

// Parse decodes a design document.
func Parse(data []byte) (*Document, error) {
	if err := json.Unmarshal(data, new(json.RawMessage)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}

	raw, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	if dataType != jsonparser.Object {
		return nil, ErrNotObject
	}

	root, err := decodeObject(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}

	doc := &Document{Root: root}
	doc.Colors, _ = root.Get("colors")
	doc.Typography, _ = root.Get("typography")
	doc.Spacing, _ = root.Get("spacing")
	doc.BorderRadius, _ = root.Get("borderRadius")
	doc.Shadows, _ = root.Get("shadows")
	return doc, nil
}

// Mode returns the color tree for a theme mode. The bool is false when
// "colors" or the mode is missing or is not an object; an array mode is
// rejected even though arrays nested inside the tree are walked by index.
func (d *Document) Mode(name string) (*Object, bool) {
	if d.Colors == nil || d.Colors.Kind != KindObject {
		return nil, false
	}
	v, ok := d.Colors.Obj.Get(name)
	if !ok || v.Kind != KindObject {
		return nil, false
	}
	return v.Obj, true
}

// Modes returns the theme mode names in document order.
func (d *Document) Modes() []string {
	if d.Colors == nil || d.Colors.Kind != KindObject {
		return nil
	}
	return d.Colors.Obj.Keys()
}

// TypographyGroup returns typography.<name>, or nil when absent.
func (d *Document) TypographyGroup(name string) *Value {
	if d.Typography == nil || d.Typography.Kind != KindObject {
		return nil
	}
	v, _ := d.Typography.Obj.Get(name)
	return v
}

// Lookup resolves a dotted path such as "sidebar.primary" inside the color
// tree of mode.
func (d *Document) Lookup(path, mode string) (*Value, bool) {
	tree, ok := d.Mode(mode)
	if !ok {
		return nil, false
	}
	cur := ObjectValue(tree)
	for _, key := range strings.Split(path, ".") {
		if cur.Kind != KindObject {
			return nil, false
		}
		next, ok := cur.Obj.Get(key)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func decodeObject(data []byte) (*Object, error) {
	obj := NewObject()
	err := jsonparser.ObjectEach(data, func(key []byte, value []byte, dataType jsonparser.ValueType, _ int) error {
		v, err := decodeValue(value, dataType)
		if err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
		obj.Set(string(key), v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeValue(data []byte, dataType jsonparser.ValueType) (*Value, error) {
	switch dataType {
	case jsonparser.String:
		s, err := jsonparser.ParseString(data)
		if err != nil {
			return nil, err
		}
		return String(s), nil
	case jsonparser.Number:
		return Number(string(data)), nil
	case jsonparser.Boolean:
		return &Value{Kind: KindBool, Str: string(data)}, nil
	case jsonparser.Null:
		return Null(), nil
	case jsonparser.Object:
		obj, err := decodeObject(data)
		if err != nil {
			return nil, err
		}
		return ObjectValue(obj), nil
	case jsonparser.Array:
		arr := &Value{Kind: KindArray, Items: []*Value{}}
		var itemErr error
		_, err := jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, _ int, err error) {
			if itemErr != nil {
				return
			}
			if err != nil {
				itemErr = err
				return
			}
			item, err := decodeValue(value, dataType)
			if err != nil {
				itemErr = err
				return
			}
			arr.Items = append(arr.Items, item)
		})
		if err != nil {
			return nil, err
		}
		if itemErr != nil {
			return nil, itemErr
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("unsupported value type %s", dataType)
	}
}
