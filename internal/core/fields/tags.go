package fields

import (
	"sort"
	"strings"
)

// UnionTags merges tag lists into one sorted set: lowercased, trimmed,
// inner whitespace collapsed, empty strings dropped, duplicates removed.
// The result never depends on argument order.
func UnionTags(lists ...[]string) []string {
	seen := make(map[string]struct{})
	for _, list := range lists {
		for _, tag := range list {
			t := strings.Join(strings.Fields(strings.ToLower(tag)), " ")
			if t == "" {
				continue
			}
			seen[t] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
