package design

import (
	"math"
	"unicode/utf8"
)

// MarshalJSON encodes v as compact JSON with object keys in source order.
// Strings are escaped the way JSON.stringify escapes them.
func (v *Value) MarshalJSON() ([]byte, error) {
	return v.appendJSON(nil), nil
}

// MarshalJSON encodes o as a compact JSON object in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	return appendObject(nil, o), nil
}

func (v *Value) appendJSON(dst []byte) []byte {
	if v == nil {
		return append(dst, "null"...)
	}
	switch v.Kind {
	case KindNull:
		return append(dst, "null"...)
	case KindBool:
		return append(dst, v.Str...)
	case KindNumber:
		f, ok := v.float()
		if !ok || math.IsInf(f, 0) {
			return append(dst, "null"...)
		}
		return append(dst, formatNumber(f)...)
	case KindString:
		return appendQuoted(dst, v.Str)
	case KindArray:
		dst = append(dst, '[')
		for i, item := range v.Items {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = item.appendJSON(dst)
		}
		return append(dst, ']')
	case KindObject:
		return appendObject(dst, v.Obj)
	default:
		return append(dst, "null"...)
	}
}

func appendObject(dst []byte, o *Object) []byte {
	dst = append(dst, '{')
	first := true
	o.Each(func(key string, v *Value) {
		if !first {
			dst = append(dst, ',')
		}
		first = false
		dst = appendQuoted(dst, key)
		dst = append(dst, ':')
		dst = v.appendJSON(dst)
	})
	return append(dst, '}')
}

const hexDigits = "0123456789abcdef"

func appendQuoted(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); {
		c := s[i]
		if c >= utf8.RuneSelf {
			r, size := utf8.DecodeRuneInString(s[i:])
			if r == utf8.RuneError && size == 1 {
				dst = append(dst, `�`...)
			} else {
				dst = append(dst, s[i:i+size]...)
			}
			i += size
			continue
		}
		switch c {
		case '"':
			dst = append(dst, `\"`...)
		case '\\':
			dst = append(dst, `\\`...)
		case '\b':
			dst = append(dst, `\b`...)
		case '\f':
			dst = append(dst, `\f`...)
		case '\n':
			dst = append(dst, `\n`...)
		case '\r':
			dst = append(dst, `\r`...)
		case '\t':
			dst = append(dst, `\t`...)
		default:
			if c < 0x20 {
				dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
			} else {
				dst = append(dst, c)
			}
		}
		i++
	}
	return append(dst, '"')
}
