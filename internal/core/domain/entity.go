package domain

// EntityDomain is the top-level entity family.
// It determines which facet schema applies.
type EntityDomain string

const (
	// DomainCountry is a migration-destination country.
	DomainCountry EntityDomain = "country"

	// DomainTool is an AI or software tool.
	DomainTool EntityDomain = "tool"

	// DomainRepository is an open-source repository.
	DomainRepository EntityDomain = "repository"

	// DomainResource is a learning resource (course, book, video).
	DomainResource EntityDomain = "resource"
)

// AllDomains returns every entity domain in display order.
func AllDomains() []EntityDomain {
	return []EntityDomain{DomainCountry, DomainTool, DomainRepository, DomainResource}
}

// PricingTier is the canonical pricing classification.
type PricingTier string

const (
	PricingFree       PricingTier = "free"
	PricingFreemium   PricingTier = "freemium"
	PricingPaid       PricingTier = "paid"
	PricingEnterprise PricingTier = "enterprise"
	PricingUnknown    PricingTier = "unknown"
)

// AllPricingTiers returns every pricing tier, Unknown last.
func AllPricingTiers() []PricingTier {
	return []PricingTier{PricingFree, PricingFreemium, PricingPaid, PricingEnterprise, PricingUnknown}
}

// Difficulty is the canonical difficulty level.
// For countries it describes how hard immigration is.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
	DifficultyUnknown      Difficulty = "unknown"
)

// AllDifficulties returns every difficulty level, Unknown last.
func AllDifficulties() []Difficulty {
	return []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced, DifficultyUnknown}
}

// DefaultCategory is assigned when no shard supplies a category.
const DefaultCategory = "Uncategorized"

// Entity is the canonical catalog entity.
// Adapters create pre-merge instances; the merge engine supersedes them.
// Optional fields are pointers so that "absent" never reads as a zero value.
type Entity struct {
	// ID is a stable identifier derived from IdentityKey.
	ID string `json:"id"`

	// IdentityKey is derived from normalised name, domain and optionally URL.
	IdentityKey string `json:"identity_key"`

	// Domain is the entity family.
	Domain EntityDomain `json:"domain"`

	// Name is trimmed and never empty.
	Name string `json:"name"`

	// Category is the primary grouping; DefaultCategory when absent.
	Category string `json:"category"`

	// Subcategory is an optional secondary grouping.
	Subcategory *string `json:"subcategory"`

	// Description is optional free text.
	Description *string `json:"description"`

	// URL is canonicalised (scheme/host lowercased, trailing slash stripped).
	URL *string `json:"url"`

	// Language is the repository language or a country's main language.
	Language *string `json:"language"`

	// Tags is the sorted, lowercased union of all tag-like source fields.
	Tags []string `json:"tags"`

	// PricingTier is the canonical pricing classification.
	PricingTier PricingTier `json:"pricing_tier"`

	// Rating is in [0,5].
	Rating *float64 `json:"rating"`

	// Popularity is a unit-normalised magnitude (users, stars, learners).
	// Values authored as "83K+" are stored as their lower bound.
	Popularity *int64 `json:"popularity"`

	// Difficulty is the canonical difficulty level.
	Difficulty Difficulty `json:"difficulty"`

	// Featured is true when any contributing shard featured the entity.
	Featured bool `json:"featured"`

	// Attributes holds domain-specific extras (capital, license, author).
	Attributes map[string]string `json:"attributes,omitempty"`

	// SourceShards lists contributing shard families in first-seen order.
	SourceShards []string `json:"source_shards"`

	// FieldProvenance maps a field name to the shard family whose value won.
	FieldProvenance map[string]string `json:"field_provenance"`

	// Conflicts records values that lost a conflict, for audit.
	Conflicts []ConflictNote `json:"conflicts,omitempty"`
}

// HasURL returns true if the entity has a non-empty URL.
func (e *Entity) HasURL() bool {
	return e.URL != nil && *e.URL != ""
}

// PrimaryShard returns the first contributing shard family, or "".
func (e *Entity) PrimaryShard() string {
	if len(e.SourceShards) == 0 {
		return ""
	}
	return e.SourceShards[0]
}

// ProvenanceOf returns the shard family that supplied field, falling back
// to the primary shard for entities that have not been merged yet.
func (e *Entity) ProvenanceOf(field string) string {
	if family, ok := e.FieldProvenance[field]; ok && family != "" {
		return family
	}
	return e.PrimaryShard()
}

// IdentityCluster groups pre-merge candidates believed to denote the same
// real-world thing. Members keep stream order.
type IdentityCluster struct {
	// Key is the identity key shared by every member.
	Key string

	// Members are the candidates, in first-seen order.
	Members []Entity
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the pointed-to string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
