package catalog

import (
	"strings"
	"unicode"

	"github.com/custodia-labs/shardcat/internal/core/fields"
)

// Tokenize folds s and splits it on anything that is not a letter or digit.
// Tokens are returned in order of first appearance without duplicates.
func Tokenize(s string) []string {
	parts := strings.FieldsFunc(fields.Fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(parts) < 2 {
		return parts
	}

	out := parts[:0]
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// tokenSet is the set of tokens one entity field produced.
type tokenSet map[string]struct{}

func newTokenSet(texts ...string) tokenSet {
	set := make(tokenSet)
	for _, t := range texts {
		for _, tok := range Tokenize(t) {
			set[tok] = struct{}{}
		}
	}
	return set
}

func (s tokenSet) has(tok string) bool {
	_, ok := s[tok]
	return ok
}
