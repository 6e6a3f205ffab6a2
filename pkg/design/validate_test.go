package design

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Valid(t *testing.T) {
	doc, err := Parse([]byte(`{
  "colors": {
    "light": {"primary": "#fff", "muted": {"fg": "#aabbcc80"}, "chart": {"1": "hsl(12 76% 61%)"}},
    "dark": {"primary": "oklch(0.2 0 0)", "sidebar": {"ring": "#000f"}}
  },
  "typography": {"fontFamily": {"sans": ["Inter", "sans-serif"]}, "fontWeight": {"bold": 700}},
  "shadows": {"sm": "0 1px 2px #000", "layered": {"x": "1"}}
}`))
	require.NoError(t, err)
	assert.Empty(t, doc.Validate())
}

func TestValidate_Problems(t *testing.T) {
	doc, err := Parse([]byte(`{
  "colors": {
    "light": {"primary": "#ggg", "bad": null, "list": ["#fff"], "chart": {"1": {"deep": "#fff"}}}
  },
  "typography": {"fontSize": "16px"},
  "spacing": {"1": true}
}`))
	require.NoError(t, err)

	msg := errors.Join(doc.Validate()...).Error()
	assert.Contains(t, msg, `colors.light.primary: invalid hex color "#ggg"`)
	assert.Contains(t, msg, "colors.light.bad: null color value")
	assert.Contains(t, msg, "colors.light.list: arrays are not valid color values")
	assert.Contains(t, msg, "colors.light.chart.1: nested object inside chart group")
	assert.Contains(t, msg, "colors.dark: missing")
	assert.Contains(t, msg, "typography.fontSize: expected object, got string")
	assert.Contains(t, msg, "spacing.1: expected string or number, got boolean")
}

func TestValidate_MissingColors(t *testing.T) {
	doc, err := Parse([]byte(`{}`))
	require.NoError(t, err)

	errs := doc.Validate()
	require.Len(t, errs, 1)
	assert.EqualError(t, errs[0], "colors: missing")
}

func TestIsHexColor(t *testing.T) {
	for s, want := range map[string]bool{
		"#fff":      true,
		"#FFF":      true,
		"#ffff":     true,
		"#a1b2c3":   true,
		"#a1b2c3ff": true,
		"#a1b2c3f":  false,
		"#xyz":      false,
		"#":         false,
	} {
		assert.Equal(t, want, isHexColor(s), s)
	}
}
