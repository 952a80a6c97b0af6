package catalog

import (
	"time"

	"github.com/custodia-labs/shardcat/internal/core/domain"
)

// Field slots of an entity's token sets. Relevance counts one match per
// slot a keyword token appears in.
const (
	slotName = iota
	slotDescription
	slotTags
	slotCount
)

// Index is a read-only catalog snapshot.
type Index struct {
	entities []domain.Entity
	byID     map[string]int
	slots    [][slotCount]tokenSet
	postings map[string][]int
	facets   map[domain.Facet]map[string][]int
	builtAt  time.Time
}

// Build indexes entities in a single pass. Ordinals follow the input
// order, which is the default stable order of every result set.
func Build(entities []domain.Entity) *Index {
	idx := &Index{
		entities: make([]domain.Entity, len(entities)),
		byID:     make(map[string]int, len(entities)),
		slots:    make([][slotCount]tokenSet, len(entities)),
		postings: make(map[string][]int),
		facets:   make(map[domain.Facet]map[string][]int, len(domain.AllFacets())),
		builtAt:  time.Now(),
	}
	copy(idx.entities, entities)

	for _, f := range domain.AllFacets() {
		idx.facets[f] = make(map[string][]int)
	}

	for i := range idx.entities {
		e := &idx.entities[i]
		if e.ID != "" {
			idx.byID[e.ID] = i
		}

		slots := [slotCount]tokenSet{
			slotName:        newTokenSet(e.Name),
			slotDescription: newTokenSet(domain.Deref(e.Description)),
			slotTags:        newTokenSet(e.Tags...),
		}
		idx.slots[i] = slots

		seen := make(map[string]struct{})
		for _, set := range slots {
			for tok := range set {
				if _, ok := seen[tok]; ok {
					continue
				}
				seen[tok] = struct{}{}
				// Ordinals are appended in increasing order, so every
				// postings list stays sorted.
				idx.postings[tok] = append(idx.postings[tok], i)
			}
		}

		for _, f := range domain.AllFacets() {
			if v := facetValue(e, f); v != "" {
				idx.facets[f][v] = append(idx.facets[f][v], i)
			}
		}
	}

	return idx
}

// Len returns the number of indexed entities.
func (x *Index) Len() int {
	return len(x.entities)
}

// Tokens returns the number of distinct tokens in the inverted index.
func (x *Index) Tokens() int {
	return len(x.postings)
}

// BuiltAt returns when the index was built.
func (x *Index) BuiltAt() time.Time {
	return x.builtAt
}

// Entity returns the entity with the given ID.
func (x *Index) Entity(id string) (domain.Entity, bool) {
	i, ok := x.byID[id]
	if !ok {
		return domain.Entity{}, false
	}
	return x.entities[i], true
}

// Entities returns every entity in index order.
func (x *Index) Entities() []domain.Entity {
	out := make([]domain.Entity, len(x.entities))
	copy(out, x.entities)
	return out
}

// Facets returns every value of every facet dimension with its entity
// count, ordered by count descending then value.
func (x *Index) Facets() map[domain.Facet][]domain.FacetValue {
	out := make(map[domain.Facet][]domain.FacetValue, len(x.facets))
	for f, values := range x.facets {
		counts := make(map[string]int, len(values))
		for v, ids := range values {
			counts[v] = len(ids)
		}
		out[f] = sortedFacetValues(counts)
	}
	return out
}

// ByDomain counts entities per domain.
func (x *Index) ByDomain() map[domain.EntityDomain]int {
	out := make(map[domain.EntityDomain]int)
	for v, ids := range x.facets[domain.FacetDomain] {
		out[domain.EntityDomain(v)] = len(ids)
	}
	return out
}
