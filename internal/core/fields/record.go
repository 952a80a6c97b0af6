package fields

import (
	"sort"
	"strings"

	"github.com/custodia-labs/shardcat/internal/core/domain"
)

// Record is a read-only view over a RawRecord that resolves field-name
// variants. Keys are matched exactly first, then case-insensitively.
type Record struct {
	raw domain.RawRecord
}

// NewRecord wraps raw without copying it.
func NewRecord(raw domain.RawRecord) Record {
	return Record{raw: raw}
}

// Lookup returns the value of the first variant present with a non-nil,
// non-blank value.
func (r Record) Lookup(variants ...string) (any, bool) {
	for _, key := range variants {
		if v, ok := r.raw[key]; ok && present(v) {
			return v, true
		}
	}
	for _, key := range variants {
		if v, ok := r.lookupFold(key); ok {
			return v, true
		}
	}
	return nil, false
}

// lookupFold scans keys in sorted order so the result is deterministic.
func (r Record) lookupFold(key string) (any, bool) {
	keys := make([]string, 0, len(r.raw))
	for k := range r.raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.EqualFold(k, key) && present(r.raw[k]) {
			return r.raw[k], true
		}
	}
	return nil, false
}

// Value returns the first present variant, or nil.
func (r Record) Value(variants ...string) any {
	v, _ := r.Lookup(variants...)
	return v
}

// String returns the first present variant as trimmed text.
func (r Record) String(variants ...string) string {
	return Text(r.Value(variants...))
}

// StringPtr returns the first present variant as text, or nil.
func (r Record) StringPtr(variants ...string) *string {
	return domain.StringPtr(r.String(variants...))
}

// List returns every variant coerced to strings, concatenated. Unlike
// the scalar accessors, all variants contribute ("tags" and "topics").
func (r Record) List(variants ...string) []string {
	var out []string
	seen := make(map[string]bool, len(variants))
	for _, key := range variants {
		v, ok := r.raw[key]
		if !ok {
			v, ok = r.lookupFold(key)
		}
		if !ok || seen[strings.ToLower(key)] {
			continue
		}
		seen[strings.ToLower(key)] = true
		out = append(out, Strings(v)...)
	}
	return out
}

// Has reports whether any variant is present.
func (r Record) Has(variants ...string) bool {
	_, ok := r.Lookup(variants...)
	return ok
}

// Attributes collects the given keys as display strings, keyed by the
// first variant name of each group.
func (r Record) Attributes(groups ...[]string) map[string]string {
	var out map[string]string
	for _, group := range groups {
		if len(group) == 0 {
			continue
		}
		v, ok := r.Lookup(group...)
		if !ok {
			continue
		}
		text := Text(v)
		if text == "" {
			text = strings.Join(Strings(v), ", ")
		}
		if text == "" {
			continue
		}
		if out == nil {
			out = make(map[string]string)
		}
		out[group[0]] = text
	}
	return out
}

func present(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(x) != ""
	default:
		return true
	}
}
