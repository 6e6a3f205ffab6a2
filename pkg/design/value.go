package design

import (
	"math"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind identifies the JSON type of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the JSON type name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a decoded JSON value that keeps object key order.
//
// Numbers keep their source literal in Str so nothing is lost before
// rendering; booleans hold "true" or "false".
type Value struct {
	Kind  Kind
	Str   string
	Items []*Value
	Obj   *Object
}

// Object is an insertion-ordered JSON object.
type Object struct {
	m *orderedmap.OrderedMap[string, *Value]
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{m: orderedmap.New[string, *Value]()}
}

// Set stores v under key. An existing key keeps its position and takes the
// new value, which is how JSON.parse treats duplicate keys.
func (o *Object) Set(key string, v *Value) {
	o.m.Set(key, v)
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (*Value, bool) {
	if o == nil {
		return nil, false
	}
	return o.m.Get(key)
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return o.m.Len()
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, o.Len())
	o.Each(func(key string, _ *Value) {
		keys = append(keys, key)
	})
	return keys
}

// Each calls fn for every entry in insertion order.
func (o *Object) Each(fn func(key string, v *Value)) {
	if o == nil {
		return
	}
	for pair := o.m.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// String builds a string Value.
func String(s string) *Value { return &Value{Kind: KindString, Str: s} }

// Number builds a number Value from its literal form.
func Number(literal string) *Value { return &Value{Kind: KindNumber, Str: literal} }

// Bool builds a boolean Value.
func Bool(b bool) *Value { return &Value{Kind: KindBool, Str: strconv.FormatBool(b)} }

// Null builds a null Value.
func Null() *Value { return &Value{Kind: KindNull} }

// Array builds an array Value.
func Array(items ...*Value) *Value { return &Value{Kind: KindArray, Items: items} }

// ObjectValue wraps an Object as a Value.
func ObjectValue(o *Object) *Value { return &Value{Kind: KindObject, Obj: o} }

// IsContainer reports whether v is an object or an array. Both are walked
// as groups when flattening, matching the typeof === "object" test the
// token files were originally written against.
func (v *Value) IsContainer() bool {
	return v != nil && (v.Kind == KindObject || v.Kind == KindArray)
}

// Entries calls fn for each child of a container. Array children are keyed
// by their decimal index.
func (v *Value) Entries(fn func(key string, child *Value)) {
	if v == nil {
		return
	}
	switch v.Kind {
	case KindObject:
		v.Obj.Each(fn)
	case KindArray:
		for i, item := range v.Items {
			fn(strconv.Itoa(i), item)
		}
	}
}

// Text renders v the way it is interpolated into a stylesheet line.
func (v *Value) Text() string {
	if v == nil {
		return "undefined"
	}
	switch v.Kind {
	case KindString, KindBool:
		return v.Str
	case KindNumber:
		f, ok := v.float()
		if !ok {
			return v.Str
		}
		if math.IsInf(f, 1) {
			return "Infinity"
		}
		if math.IsInf(f, -1) {
			return "-Infinity"
		}
		return formatNumber(f)
	case KindNull:
		return "null"
	case KindArray:
		parts := make([]string, len(v.Items))
		for i, item := range v.Items {
			if item == nil || item.Kind == KindNull {
				continue
			}
			parts[i] = item.Text()
		}
		return strings.Join(parts, ",")
	case KindObject:
		return "[object Object]"
	default:
		return ""
	}
}

func (v *Value) float() (float64, bool) {
	f, err := strconv.ParseFloat(v.Str, 64)
	if err != nil && !math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// formatNumber prints f in the shortest round-trip form with ECMAScript
// exponent thresholds (1e21 and 1e-7).
func formatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
		return mant + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
