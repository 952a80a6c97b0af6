package catalog

import (
	"sort"
	"strings"

	"github.com/custodia-labs/shardcat/internal/core/domain"
)

// Rating buckets, highest first.
const (
	Rated4  = "4+"
	Rated3  = "3+"
	Rated2  = "2+"
	Rated1  = "1+"
	Rated0  = "0+"
	Unrated = "unrated"
)

// RatingBucket returns the facet bucket for a rating.
func RatingBucket(r *float64) string {
	if r == nil {
		return Unrated
	}
	switch {
	case *r >= 4:
		return Rated4
	case *r >= 3:
		return Rated3
	case *r >= 2:
		return Rated2
	case *r >= 1:
		return Rated1
	default:
		return Rated0
	}
}

// facetValue returns the lowercased facet value of e for dimension f,
// or "" when the entity has none.
func facetValue(e *domain.Entity, f domain.Facet) string {
	switch f {
	case domain.FacetCategory:
		return strings.ToLower(e.Category)
	case domain.FacetPricing:
		return string(e.PricingTier)
	case domain.FacetDifficulty:
		return string(e.Difficulty)
	case domain.FacetDomain:
		return string(e.Domain)
	case domain.FacetLanguage:
		return strings.ToLower(domain.Deref(e.Language))
	case domain.FacetRating:
		return RatingBucket(e.Rating)
	}
	return ""
}

func knownFacet(f domain.Facet) bool {
	for _, known := range domain.AllFacets() {
		if f == known {
			return true
		}
	}
	return false
}

// sortedFacetValues orders counts by count descending, then value.
func sortedFacetValues(counts map[string]int) []domain.FacetValue {
	out := make([]domain.FacetValue, 0, len(counts))
	for v, n := range counts {
		out = append(out, domain.FacetValue{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}
