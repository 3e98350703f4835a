package fields

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NullKey is the comparison key of a missing or malformed value.
const NullKey = "null"

// instantLayout renders dates as an ISO-8601 UTC instant with milliseconds.
const instantLayout = "2006-01-02T15:04:05.000Z"

// multilingualSeparator joins the normalized translations of a Text.
const multilingualSeparator = "|"

// Normalize returns the comparison key for v, chosen by v's Kind:
//
//   - null: "null"
//   - string: NFC, trimmed, case-folded, whitespace runs collapsed
//   - date: ISO-8601 UTC instant
//   - multilingual: normalized translations, sorted and joined; language
//     codes and map order are ignored
//   - object: canonical JSON with sorted keys
//   - scalar: shortest decimal form
//
// Normalize never fails; values it cannot encode collapse to "null".
func Normalize(v Value) string {
	if v.IsNull() {
		return NullKey
	}
	switch v.kind {
	case KindString:
		return normalizeString(v.str)
	case KindDate:
		return formatInstant(v.at)
	case KindMultilingual:
		return normalizeText(v.text)
	case KindObject:
		return canonicalJSON(v.object)
	case KindScalar:
		return formatScalar(v.scalar)
	default:
		return NullKey
	}
}

func normalizeString(s string) string {
	s = norm.NFC.String(s)
	s = cases.Fold().String(s)
	return strings.Join(strings.Fields(s), " ")
}

func normalizeText(t Text) string {
	parts := make([]string, 0, len(t))
	for _, s := range t {
		parts = append(parts, normalizeString(s))
	}
	sort.Strings(parts)
	return strings.Join(parts, multilingualSeparator)
}

func formatInstant(t time.Time) string {
	return t.UTC().Format(instantLayout)
}

func formatScalar(v any) string {
	switch s := v.(type) {
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case bool:
		return strconv.FormatBool(s)
	case string:
		return normalizeString(s)
	default:
		return fmt.Sprint(s)
	}
}

func canonicalJSON(v any) string {
	out, err := CanonicalJSON(v)
	if err != nil {
		return NullKey
	}
	return string(out)
}

// CanonicalJSON encodes v with object keys sorted at every depth. Struct
// fields are re-decoded into maps so their keys sort too, and numbers keep
// their original decimal form.
func CanonicalJSON(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, err
	}
	return json.Marshal(generic)
}
