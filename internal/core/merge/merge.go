// Package merge reduces identity clusters to one canonical entity each.
//
// Resolution is field by field and never depends on map iteration or
// goroutine scheduling, so merging the same cluster twice yields
// identical output. Provenance is only ever appended.
package merge

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/shardcat/internal/core/domain"
	"github.com/custodia-labs/shardcat/internal/core/fields"
	"github.com/custodia-labs/shardcat/internal/core/identity"
)

// Canonical field names used in provenance maps and conflict notes.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldSubcategory = "subcategory"
	FieldURL         = "url"
	FieldLanguage    = "language"
	FieldPricing     = "pricing_tier"
	FieldDifficulty  = "difficulty"
	FieldPopularity  = "popularity"
	FieldFeatured    = "featured"
	attributePrefix  = "attributes."
)

type candidate[T any] struct {
	value  T
	family string
	pos    int
}

// merger holds the state of one cluster reduction.
type merger struct {
	key        string
	members    []domain.Entity
	priority   Priority
	provenance map[string]string
	notes      []domain.ConflictNote
}

// Merge reduces a cluster to a single entity and returns the conflict
// notes raised while doing so. A cluster of one yields that entity with
// absent fields defaulted.
func Merge(c domain.IdentityCluster, p Priority) (domain.Entity, []domain.ConflictNote, error) {
	if len(c.Members) == 0 {
		return domain.Entity{}, nil, fmt.Errorf("merge %q: %w: empty cluster", c.Key, domain.ErrInvalidInput)
	}

	m := &merger{
		key:        c.Key,
		members:    c.Members,
		priority:   p,
		provenance: make(map[string]string),
	}

	out := domain.Entity{
		ID:          identity.EntityID(c.Key),
		IdentityKey: c.Key,
		Domain:      c.Members[0].Domain,
	}

	out.Name, _ = m.longest(FieldName, func(e *domain.Entity) string { return e.Name })
	out.Description = domain.StringPtr(m.longestValue(FieldDescription, func(e *domain.Entity) string {
		return domain.Deref(e.Description)
	}))

	out.Category = m.first(FieldCategory, true, func(e *domain.Entity) string {
		if e.Category == domain.DefaultCategory {
			return ""
		}
		return e.Category
	})
	if out.Category == "" {
		out.Category = domain.DefaultCategory
	}
	out.Subcategory = domain.StringPtr(m.first(FieldSubcategory, true, func(e *domain.Entity) string {
		return domain.Deref(e.Subcategory)
	}))
	out.URL = domain.StringPtr(m.first(FieldURL, false, func(e *domain.Entity) string {
		return domain.Deref(e.URL)
	}))
	out.Language = domain.StringPtr(m.first(FieldLanguage, true, func(e *domain.Entity) string {
		return domain.Deref(e.Language)
	}))

	pricing := m.first(FieldPricing, true, func(e *domain.Entity) string {
		if e.PricingTier == domain.PricingUnknown {
			return ""
		}
		return string(e.PricingTier)
	})
	out.PricingTier = domain.PricingTier(pricing)
	if out.PricingTier == "" {
		out.PricingTier = domain.PricingUnknown
	}

	difficulty := m.first(FieldDifficulty, true, func(e *domain.Entity) string {
		if e.Difficulty == domain.DifficultyUnknown {
			return ""
		}
		return string(e.Difficulty)
	})
	out.Difficulty = domain.Difficulty(difficulty)
	if out.Difficulty == "" {
		out.Difficulty = domain.DifficultyUnknown
	}

	out.Rating = m.meanRating()
	out.Popularity = m.maxPopularity()
	out.Featured = m.anyFeatured()
	out.Tags = m.tags()
	out.Attributes = m.attributes()
	out.SourceShards = m.sourceShards()
	out.FieldProvenance = m.provenance
	out.Conflicts = m.conflicts()

	return out, m.notes, nil
}

// MergeAll merges every cluster in order. Empty clusters are skipped.
func MergeAll(clusters []domain.IdentityCluster, p Priority) ([]domain.Entity, []domain.ConflictNote) {
	entities := make([]domain.Entity, 0, len(clusters))
	var notes []domain.ConflictNote
	for i := range clusters {
		e, n, err := Merge(clusters[i], p)
		if err != nil {
			continue
		}
		entities = append(entities, e)
		notes = append(notes, n...)
	}
	return entities, notes
}

// collect gathers non-empty string candidates for field.
func (m *merger) collect(field string, get func(*domain.Entity) string) []candidate[string] {
	cands := make([]candidate[string], 0, len(m.members))
	for i := range m.members {
		v := strings.TrimSpace(get(&m.members[i]))
		if v == "" {
			continue
		}
		cands = append(cands, candidate[string]{
			value:  v,
			family: m.members[i].ProvenanceOf(field),
			pos:    i,
		})
	}
	return cands
}

// byPriority orders candidates by shard priority, then stream position.
func byPriority[T any](cands []candidate[T], p Priority) {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].family != cands[j].family {
			return p.Less(cands[i].family, cands[j].family)
		}
		return cands[i].pos < cands[j].pos
	})
}

// first picks the highest-priority non-empty value. When note is set,
// every disagreeing value is recorded as a conflict.
func (m *merger) first(field string, note bool, get func(*domain.Entity) string) string {
	cands := m.collect(field, get)
	if len(cands) == 0 {
		return ""
	}
	byPriority(cands, m.priority)
	winner := cands[0]
	m.provenance[field] = winner.family

	if note {
		m.noteLosers(field, winner, cands[1:])
	}
	return winner.value
}

// longest picks the longest non-empty value; ties go to shard priority.
// Every other distinct value is recorded as a conflict.
func (m *merger) longest(field string, get func(*domain.Entity) string) (string, bool) {
	cands := m.collect(field, get)
	if len(cands) == 0 {
		return "", false
	}
	byPriority(cands, m.priority)
	sort.SliceStable(cands, func(i, j int) bool {
		return utf8.RuneCountInString(cands[i].value) > utf8.RuneCountInString(cands[j].value)
	})
	winner := cands[0]
	m.provenance[field] = winner.family
	m.noteLosers(field, winner, cands[1:])
	return winner.value, true
}

func (m *merger) longestValue(field string, get func(*domain.Entity) string) string {
	v, _ := m.longest(field, get)
	return v
}

func (m *merger) noteLosers(field string, winner candidate[string], losers []candidate[string]) {
	seen := make(map[string]bool)
	for _, l := range losers {
		if strings.EqualFold(l.value, winner.value) {
			continue
		}
		k := l.family + "\x00" + strings.ToLower(l.value)
		if seen[k] {
			continue
		}
		seen[k] = true
		m.notes = append(m.notes, domain.ConflictNote{
			IdentityKey:  m.key,
			Field:        field,
			WinnerFamily: winner.family,
			WinnerValue:  winner.value,
			LoserFamily:  l.family,
			LoserValue:   l.value,
		})
	}
}

// meanRating averages every known rating, rounded to one decimal.
func (m *merger) meanRating() *float64 {
	var sum float64
	var n int
	for i := range m.members {
		if r := m.members[i].Rating; r != nil {
			sum += *r
			n++
		}
	}
	if n == 0 {
		return nil
	}
	mean := fields.RoundRating(sum / float64(n))
	return &mean
}

// maxPopularity keeps the largest observed audience. It is never averaged.
func (m *merger) maxPopularity() *int64 {
	cands := make([]candidate[int64], 0, len(m.members))
	for i := range m.members {
		if p := m.members[i].Popularity; p != nil {
			cands = append(cands, candidate[int64]{
				value:  *p,
				family: m.members[i].ProvenanceOf(FieldPopularity),
				pos:    i,
			})
		}
	}
	if len(cands) == 0 {
		return nil
	}
	byPriority(cands, m.priority)
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].value > cands[j].value })

	m.provenance[FieldPopularity] = cands[0].family
	v := cands[0].value
	return &v
}

// anyFeatured ORs the featured flag across members.
func (m *merger) anyFeatured() bool {
	cands := make([]candidate[bool], 0, 1)
	for i := range m.members {
		if m.members[i].Featured {
			cands = append(cands, candidate[bool]{
				value:  true,
				family: m.members[i].ProvenanceOf(FieldFeatured),
				pos:    i,
			})
		}
	}
	if len(cands) == 0 {
		return false
	}
	byPriority(cands, m.priority)
	m.provenance[FieldFeatured] = cands[0].family
	return true
}

func (m *merger) tags() []string {
	lists := make([][]string, len(m.members))
	for i := range m.members {
		lists[i] = m.members[i].Tags
	}
	return fields.UnionTags(lists...)
}

// attributes resolves each extra key independently by shard priority.
func (m *merger) attributes() map[string]string {
	keys := make(map[string]struct{})
	for i := range m.members {
		for k := range m.members[i].Attributes {
			keys[k] = struct{}{}
		}
	}
	if len(keys) == 0 {
		return nil
	}

	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	out := make(map[string]string, len(sorted))
	for _, k := range sorted {
		key := k
		v := m.first(attributePrefix+key, true, func(e *domain.Entity) string { return e.Attributes[key] })
		if v != "" {
			out[key] = v
		}
	}
	return out
}

// sourceShards unions contributing families in first-seen order.
func (m *merger) sourceShards() []string {
	var out []string
	seen := make(map[string]bool)
	for i := range m.members {
		for _, f := range m.members[i].SourceShards {
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	return out
}

// conflicts carries forward members' notes and appends new ones.
func (m *merger) conflicts() []domain.ConflictNote {
	var out []domain.ConflictNote
	seen := make(map[domain.ConflictNote]bool)
	add := func(n domain.ConflictNote) {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	for i := range m.members {
		for _, n := range m.members[i].Conflicts {
			add(n)
		}
	}
	for _, n := range m.notes {
		add(n)
	}
	return out
}
