// Package fields defines the typed entity record, the per-field value variant
// and the normalization rules used to compare values reported by different
// sources.
//
// Every field of a Record is reached through a Descriptor from a fixed table;
// the Descriptor's Kind decides how the value is normalized. Two values whose
// normalized keys are equal are the same fact, whatever their formatting.
package fields

import (
	"time"
)

// Kind tags the representation of a field value.
type Kind uint8

// Field kinds.
const (
	KindString Kind = iota + 1
	KindDate
	KindMultilingual
	KindObject
	KindScalar
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindDate:
		return "date"
	case KindMultilingual:
		return "multilingual"
	case KindObject:
		return "object"
	case KindScalar:
		return "scalar"
	default:
		return "unknown"
	}
}

// Text is a multilingual string keyed by language code ("es", "en", "nl").
type Text map[string]string

// Value is a single field value of one Kind, or null.
// The zero Value is null with no kind.
type Value struct {
	kind   Kind
	null   bool
	str    string
	at     time.Time
	text   Text
	object any
	scalar any
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Date returns a date value.
func Date(t time.Time) Value {
	return Value{kind: KindDate, at: t}
}

// Multilingual returns a multilingual value. A nil map is null.
func Multilingual(t Text) Value {
	if t == nil {
		return Null(KindMultilingual)
	}
	return Value{kind: KindMultilingual, text: t}
}

// Object returns a structured value (struct, map or slice). A nil v is null.
func Object(v any) Value {
	if v == nil {
		return Null(KindObject)
	}
	return Value{kind: KindObject, object: v}
}

// Scalar returns a number or boolean value. A nil v is null.
func Scalar(v any) Value {
	if v == nil {
		return Null(KindScalar)
	}
	return Value{kind: KindScalar, scalar: v}
}

// Null returns the null value of kind k.
func Null(k Kind) Value {
	return Value{kind: k, null: true}
}

// Kind returns the value's kind.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v carries no value.
func (v Value) IsNull() bool {
	return v.null || v.kind == 0
}

// IsEmpty reports whether v is null or carries an empty value: a blank
// string, a zero date, a map without text, an empty object.
func (v Value) IsEmpty() bool {
	if v.IsNull() {
		return true
	}
	switch v.kind {
	case KindString:
		return normalizeString(v.str) == ""
	case KindDate:
		return v.at.IsZero()
	case KindMultilingual:
		for _, s := range v.text {
			if normalizeString(s) != "" {
				return false
			}
		}
		return true
	case KindObject:
		switch canonicalJSON(v.object) {
		case "null", "{}", "[]", `""`:
			return true
		}
		return false
	default:
		return false
	}
}

// Raw returns the value as originally reported, or nil when null.
func (v Value) Raw() any {
	if v.IsNull() {
		return nil
	}
	switch v.kind {
	case KindString:
		return v.str
	case KindDate:
		return v.at
	case KindMultilingual:
		return v.text
	case KindObject:
		return v.object
	default:
		return v.scalar
	}
}

// Key returns the normalized comparison key of v.
func (v Value) Key() string {
	return Normalize(v)
}

// canonical returns a representation of v suitable for hashing: dates in
// UTC, everything else as reported.
func (v Value) canonical() any {
	if v.IsNull() {
		return nil
	}
	if v.kind == KindDate {
		return formatInstant(v.at)
	}
	return v.Raw()
}
