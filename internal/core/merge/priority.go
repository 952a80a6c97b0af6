package merge

import "sort"

// Priority is the fixed shard-priority ordering supplied at ingestion
// time. Families earlier in the list win ties.
type Priority struct {
	rank map[string]int
}

// NewPriority builds a priority ordering from families, highest first.
// Repeated families keep their first position.
func NewPriority(families ...string) Priority {
	rank := make(map[string]int, len(families))
	for _, f := range families {
		if _, ok := rank[f]; !ok {
			rank[f] = len(rank)
		}
	}
	return Priority{rank: rank}
}

// Less reports whether family a outranks family b. Families unknown to
// the ordering come after known ones, in lexical order.
func (p Priority) Less(a, b string) bool {
	ra, aok := p.rank[a]
	rb, bok := p.rank[b]
	switch {
	case aok && bok:
		return ra < rb
	case aok:
		return true
	case bok:
		return false
	default:
		return a < b
	}
}

// Families returns the known families in priority order.
func (p Priority) Families() []string {
	out := make([]string, 0, len(p.rank))
	for f := range p.rank {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return p.rank[out[i]] < p.rank[out[j]] })
	return out
}
