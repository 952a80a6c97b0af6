package catalog

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/custodia-labs/shardcat/internal/core/domain"
	"github.com/custodia-labs/shardcat/internal/core/fields"
)

const featuredBoost = 2.0

// Query evaluates req against the index. The index is never modified, so
// repeated calls with the same request return identical results.
func (x *Index) Query(req domain.QueryRequest) (*domain.QueryResult, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}

	var queryTokens []string
	for _, kw := range req.Keywords {
		queryTokens = append(queryTokens, Tokenize(kw)...)
	}
	queryTokens = dedupe(queryTokens)

	candidates, ok := x.matchKeywords(queryTokens)
	if ok {
		candidates = x.filterFacets(candidates, req.Facets)
	}

	hits := make([]domain.Hit, len(candidates))
	ordinals := make([]int, len(candidates))
	for i, ord := range candidates {
		e := &x.entities[ord]
		hits[i] = domain.Hit{Entity: *e, Score: x.score(ord, queryTokens)}
		ordinals[i] = ord
	}

	sort.Sort(&hitSorter{hits: hits, ordinals: ordinals, order: req.Sort})

	result := &domain.QueryResult{
		Total:       len(hits),
		FacetCounts: x.facetCounts(candidates),
		Hits:        []domain.Hit{},
	}
	if req.Offset < len(hits) {
		end := req.Offset + req.Limit
		if end > len(hits) || end < req.Offset {
			end = len(hits)
		}
		result.Hits = hits[req.Offset:end]
	}
	return result, nil
}

// Validate checks pagination, sort, keywords and facet dimensions of req.
// Blank keywords are ignored; a keyword made only of separators is an error.
func Validate(req domain.QueryRequest) error {
	if req.Limit <= 0 {
		return fmt.Errorf("%w: limit must be positive, got %d", domain.ErrInvalidQuery, req.Limit)
	}
	if req.Offset < 0 {
		return fmt.Errorf("%w: offset must not be negative, got %d", domain.ErrInvalidQuery, req.Offset)
	}
	switch req.Sort {
	case "", domain.SortRelevance, domain.SortRating, domain.SortPopularity, domain.SortName:
	default:
		return fmt.Errorf("%w: unknown sort %q", domain.ErrInvalidQuery, req.Sort)
	}
	for _, kw := range req.Keywords {
		if strings.TrimSpace(kw) != "" && len(Tokenize(kw)) == 0 {
			return fmt.Errorf("%w: keyword %q has no searchable characters", domain.ErrInvalidQuery, kw)
		}
	}
	for f, values := range req.Facets {
		if !knownFacet(f) {
			return fmt.Errorf("%w: unknown facet %q", domain.ErrInvalidQuery, f)
		}
		if len(values) == 0 {
			return fmt.Errorf("%w: facet %q has no values", domain.ErrInvalidQuery, f)
		}
		for _, v := range values {
			if strings.TrimSpace(v) == "" {
				return fmt.Errorf("%w: facet %q has an empty value", domain.ErrInvalidQuery, f)
			}
		}
	}
	return nil
}

// matchKeywords intersects the postings of every token. An empty token
// list matches every entity. The boolean is false when nothing matches.
func (x *Index) matchKeywords(tokens []string) ([]int, bool) {
	if len(tokens) == 0 {
		all := make([]int, len(x.entities))
		for i := range all {
			all[i] = i
		}
		return all, len(all) > 0
	}

	// Start from the shortest postings list.
	lists := make([][]int, 0, len(tokens))
	for _, tok := range tokens {
		p, ok := x.postings[tok]
		if !ok {
			return nil, false
		}
		lists = append(lists, p)
	}
	sort.SliceStable(lists, func(i, j int) bool { return len(lists[i]) < len(lists[j]) })

	out := append([]int(nil), lists[0]...)
	for _, l := range lists[1:] {
		out = intersect(out, l)
		if len(out) == 0 {
			return nil, false
		}
	}
	return out, true
}

// filterFacets ORs values within a dimension and ANDs dimensions.
func (x *Index) filterFacets(candidates []int, facets map[domain.Facet][]string) []int {
	dims := make([]domain.Facet, 0, len(facets))
	for f := range facets {
		dims = append(dims, f)
	}
	sort.Slice(dims, func(i, j int) bool { return dims[i] < dims[j] })

	for _, f := range dims {
		var allowed []int
		for _, v := range facets[f] {
			allowed = union(allowed, x.facets[f][normalizeFacetValue(f, v)])
		}
		candidates = intersect(candidates, allowed)
		if len(candidates) == 0 {
			return nil
		}
	}
	return candidates
}

func normalizeFacetValue(f domain.Facet, v string) string {
	v = strings.TrimSpace(v)
	switch f {
	case domain.FacetPricing:
		if t := fields.CoercePricing(v); t != domain.PricingUnknown {
			return string(t)
		}
	case domain.FacetDifficulty:
		if d := fields.CoerceDifficulty(v); d != domain.DifficultyUnknown {
			return string(d)
		}
	case domain.FacetDomain:
		if d := fields.CoerceDomain(v); d != "" {
			return string(d)
		}
	}
	return strings.ToLower(v)
}

// score is the weighted relevance of entity ord for the query tokens:
// keyword matches + 2 if featured + rating + log10(1+popularity).
func (x *Index) score(ord int, tokens []string) float64 {
	e := &x.entities[ord]

	var matches int
	for _, tok := range tokens {
		for _, set := range x.slots[ord] {
			if set.has(tok) {
				matches++
			}
		}
	}

	s := float64(matches)
	if e.Featured {
		s += featuredBoost
	}
	if e.Rating != nil {
		s += *e.Rating
	}
	if e.Popularity != nil && *e.Popularity > 0 {
		s += math.Log10(1 + float64(*e.Popularity))
	}
	return s
}

func (x *Index) facetCounts(ordinals []int) map[domain.Facet]map[string]int {
	out := make(map[domain.Facet]map[string]int, len(x.facets))
	for _, f := range domain.AllFacets() {
		counts := make(map[string]int)
		for _, ord := range ordinals {
			if v := facetValue(&x.entities[ord], f); v != "" {
				counts[v]++
			}
		}
		out[f] = counts
	}
	return out
}

// hitSorter orders hits for a sort mode. Every mode falls back to name
// and then index ordinal, so the order is total.
type hitSorter struct {
	hits     []domain.Hit
	ordinals []int
	order    domain.SortOrder
}

func (s *hitSorter) Len() int { return len(s.hits) }

func (s *hitSorter) Swap(i, j int) {
	s.hits[i], s.hits[j] = s.hits[j], s.hits[i]
	s.ordinals[i], s.ordinals[j] = s.ordinals[j], s.ordinals[i]
}

func (s *hitSorter) Less(i, j int) bool {
	a, b := &s.hits[i], &s.hits[j]

	switch s.order {
	case domain.SortRating:
		if c := compareDesc(a.Entity.Rating, b.Entity.Rating); c != 0 {
			return c < 0
		}
	case domain.SortPopularity:
		if c := compareDesc(a.Entity.Popularity, b.Entity.Popularity); c != 0 {
			return c < 0
		}
	case domain.SortName:
	default:
		if a.Score != b.Score {
			return a.Score > b.Score
		}
	}

	an, bn := fields.Fold(a.Entity.Name), fields.Fold(b.Entity.Name)
	if an != bn {
		return an < bn
	}
	return s.ordinals[i] < s.ordinals[j]
}

// compareDesc orders known values high to low with nil last.
func compareDesc[T int64 | float64](a, b *T) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a > *b:
		return -1
	case *a < *b:
		return 1
	}
	return 0
}

// intersect merges two sorted ordinal lists.
func intersect(a, b []int) []int {
	out := make([]int, 0, min(len(a), len(b)))
	for i, j := 0, 0; i < len(a) && j < len(b); {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

// union merges two sorted ordinal lists without duplicates.
func union(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}

func dedupe(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := tokens[:0]
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
