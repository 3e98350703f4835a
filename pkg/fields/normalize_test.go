package fields_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/factmap/pkg/fields"
)

func TestNormalize(t *testing.T) {
	madrid := time.FixedZone("CEST", 2*60*60)

	tests := []struct {
		name  string
		value fields.Value
		want  string
	}{
		{name: "zero value", value: fields.Value{}, want: "null"},
		{name: "typed null", value: fields.Null(fields.KindString), want: "null"},
		{name: "string trimmed and folded", value: fields.String("  Fiesta  "), want: "fiesta"},
		{name: "string whitespace runs", value: fields.String("Moros \t y\n  Cristianos"), want: "moros y cristianos"},
		{name: "string NFC", value: fields.String("Café del Mar"), want: "café del mar"},
		{name: "date in UTC", value: fields.Date(time.Date(2025, 6, 1, 20, 0, 0, 0, madrid)), want: "2025-06-01T18:00:00.000Z"},
		{name: "multilingual sorted values", value: fields.Multilingual(fields.Text{"es": "Mercado", "en": " market "}), want: "market|mercado"},
		{name: "nil multilingual", value: fields.Multilingual(nil), want: "null"},
		{name: "object sorted keys", value: fields.Object(map[string]any{"mon": "9-14", "fri": "9-20"}), want: `{"fri":"9-20","mon":"9-14"}`},
		{name: "struct object", value: fields.Object(&fields.Coordinates{Lat: 38.64, Lng: 0.04}), want: `{"lat":38.64,"lng":0.04}`},
		{name: "slice object", value: fields.Object([]string{"a.jpg", "b.jpg"}), want: `["a.jpg","b.jpg"]`},
		{name: "float scalar", value: fields.Scalar(12.5), want: "12.5"},
		{name: "whole float equals int", value: fields.Scalar(3.0), want: "3"},
		{name: "int scalar", value: fields.Scalar(3), want: "3"},
		{name: "bool scalar", value: fields.Scalar(true), want: "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fields.Normalize(tt.value))
		})
	}
}

func TestNormalizeRepresentationInvariant(t *testing.T) {
	assert.Equal(t, fields.Normalize(fields.String("  Fiesta  ")), fields.Normalize(fields.String("fiesta")))

	a := fields.Multilingual(fields.Text{"es": "a", "en": "b"})
	b := fields.Multilingual(fields.Text{"en": "b", "es": "a"})
	assert.Equal(t, a.Key(), b.Key())

	utc := fields.Date(time.Date(2025, 8, 15, 22, 0, 0, 0, time.UTC))
	local := fields.Date(time.Date(2025, 8, 16, 0, 0, 0, 0, time.FixedZone("CEST", 2*60*60)))
	assert.Equal(t, utc.Key(), local.Key())

	assert.NotEqual(t, fields.String("fiesta").Key(), fields.String("fiestas").Key())
}

func TestNormalizeUnencodableObject(t *testing.T) {
	v := fields.Object(map[string]any{"bad": func() {}})
	assert.Equal(t, fields.NullKey, v.Key())
}

func TestValueIsEmpty(t *testing.T) {
	tests := []struct {
		name  string
		value fields.Value
		want  bool
	}{
		{"null", fields.Null(fields.KindDate), true},
		{"blank string", fields.String("   "), true},
		{"string", fields.String("x"), false},
		{"zero date", fields.Date(time.Time{}), true},
		{"empty text", fields.Multilingual(fields.Text{}), true},
		{"blank translations", fields.Multilingual(fields.Text{"es": " "}), true},
		{"text", fields.Multilingual(fields.Text{"es": "hola"}), false},
		{"empty map object", fields.Object(map[string]any{}), true},
		{"empty slice object", fields.Object([]string{}), true},
		{"object", fields.Object([]string{"x"}), false},
		{"zero scalar", fields.Scalar(0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.IsEmpty())
		})
	}
}

func TestValueRaw(t *testing.T) {
	assert.Nil(t, fields.Null(fields.KindString).Raw())
	assert.Equal(t, "Calpe", fields.String("Calpe").Raw())
	assert.Equal(t, 4.5, fields.Scalar(4.5).Raw())
	assert.Equal(t, fields.Text{"es": "Peñón"}, fields.Multilingual(fields.Text{"es": "Peñón"}).Raw())
}
