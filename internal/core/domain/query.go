package domain

// Facet is a filterable dimension of the catalog.
type Facet string

const (
	FacetCategory   Facet = "category"
	FacetPricing    Facet = "pricing"
	FacetDifficulty Facet = "difficulty"
	FacetDomain     Facet = "domain"
	FacetLanguage   Facet = "language"
	FacetRating     Facet = "rating"
)

// AllFacets returns every facet dimension in display order.
func AllFacets() []Facet {
	return []Facet{FacetDomain, FacetCategory, FacetPricing, FacetDifficulty, FacetLanguage, FacetRating}
}

// SortOrder selects result ordering.
type SortOrder string

const (
	// SortRelevance orders by the weighted relevance score.
	SortRelevance SortOrder = "relevance"

	// SortRating orders by rating, highest first; unrated last.
	SortRating SortOrder = "rating"

	// SortPopularity orders by popularity, highest first; unknown last.
	SortPopularity SortOrder = "popularity"

	// SortName orders by name ascending.
	SortName SortOrder = "name"
)

// QueryRequest is a keyword + facet query against the catalog.
type QueryRequest struct {
	// Keywords must all be present in an entity's token set.
	// Empty matches everything.
	Keywords []string

	// Facets filters by dimension. Values within a dimension are OR'd;
	// dimensions are AND'd.
	Facets map[Facet][]string

	// Sort is the ordering; empty means SortRelevance.
	Sort SortOrder

	// Offset is the number of sorted results to skip.
	Offset int

	// Limit is the page size and must be positive.
	Limit int
}

// Hit is one scored entity in a result page.
type Hit struct {
	Entity Entity  `json:"entity"`
	Score  float64 `json:"score"`
}

// QueryResult is one page of a sorted result set.
type QueryResult struct {
	// Hits is the requested page.
	Hits []Hit `json:"hits"`

	// Total is the size of the full, unpaginated result set.
	Total int `json:"total"`

	// FacetCounts counts facet values over the full result set.
	FacetCounts map[Facet]map[string]int `json:"facet_counts"`
}

// Entities returns the entities of the page in order.
func (r *QueryResult) Entities() []Entity {
	out := make([]Entity, len(r.Hits))
	for i := range r.Hits {
		out[i] = r.Hits[i].Entity
	}
	return out
}

// FacetValue is one facet value with the number of entities holding it.
type FacetValue struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// CatalogStats summarises the currently served index.
type CatalogStats struct {
	Ready    bool                 `json:"ready"`
	Entities int                  `json:"entities"`
	Tokens   int                  `json:"tokens"`
	ByDomain map[EntityDomain]int `json:"by_domain"`
	Version  uint64               `json:"version"`
}
