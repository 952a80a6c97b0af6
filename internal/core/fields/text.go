package fields

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases s and strips diacritics, so "Curaçao" folds to "curacao".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// Text returns a trimmed string form of a scalar value.
// Numbers are formatted without exponent; other types yield "".
func Text(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return ""
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

// Bool interprets flags such as true, "yes", "Y", 1.
// Anything unrecognised is false.
func Bool(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case int:
		return x != 0
	case int64:
		return x != 0
	case float64:
		return x != 0
	case string:
		switch EnumKey(x) {
		case "true", "yes", "y", "1", "featured":
			return true
		}
	}
	return false
}

// Strings coerces a list-like value into strings. A single string is
// split on commas and semicolons; lists keep scalar members only.
func Strings(v any) []string {
	switch x := v.(type) {
	case nil:
		return nil
	case []string:
		out := make([]string, 0, len(x))
		for _, s := range x {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			if s := Text(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		parts := strings.FieldsFunc(x, func(r rune) bool { return r == ',' || r == ';' })
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	default:
		if s := Text(x); s != "" {
			return []string{s}
		}
		return nil
	}
}

// MaxRating is the top of the rating scale.
const MaxRating = 5.0

// ParseRating parses a rating on the [0,5] scale. Strings such as "4.6"
// and "4.6/5" are accepted. Out-of-range or non-numeric input yields nil.
func ParseRating(v any) *float64 {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case string:
		s := strings.TrimSpace(x)
		s = strings.TrimSuffix(s, "/5")
		s = strings.TrimSpace(strings.TrimSuffix(s, "★"))
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || f < 0 || f > MaxRating {
		return nil
	}
	return &f
}

// RoundRating rounds to one decimal place.
func RoundRating(f float64) float64 {
	return math.Round(f*10) / 10
}
