// Package repos adapts open-source repository shards.
package repos

import (
	"context"

	"github.com/custodia-labs/shardcat/internal/core/domain"
	"github.com/custodia-labs/shardcat/internal/core/fields"
	"github.com/custodia-labs/shardcat/internal/core/ports/driven"
	"github.com/custodia-labs/shardcat/internal/shards"
)

// Ensure Adapter implements the interface.
var _ driven.ShardAdapter = (*Adapter)(nil)

// Family is the shard family handled by this adapter.
const Family = "repos"

var mapping = shards.Mapping{
	Domain:      domain.DomainRepository,
	Name:        []string{"name", "repo", "full_name", "fullName"},
	Category:    []string{"category"},
	Subcategory: []string{"sub", "subcategory"},
	Description: []string{"desc", "description"},
	URL:         []string{"url", "github", "html_url", "repoUrl"},
	Language:    []string{"language", "lang"},
	Tags:        []string{"topics", "tags"},
	Pricing:     []string{"pricing"},
	Rating:      []string{"rating"},
	Popularity:  []string{"stars", "stargazers", "stargazers_count"},
	Difficulty:  []string{"difficulty", "level"},
	Featured:    []string{"featured", "trending"},
	Attributes: [][]string{
		{"license"},
		{"forks", "forks_count"},
		{"owner", "author"},
	},
	Finish: openSourceIsFree,
}

// openSourceIsFree defaults repositories without a pricing field to Free.
func openSourceIsFree(_ fields.Record, e *domain.Entity) {
	if e.PricingTier == domain.PricingUnknown {
		e.PricingTier = domain.PricingFree
	}
}

// Adapter handles repository shards.
type Adapter struct{}

// New creates a new repository adapter.
func New() *Adapter {
	return &Adapter{}
}

// Name returns the adapter name.
func (a *Adapter) Name() string {
	return Family
}

// SupportedFamilies returns the shard families this adapter handles.
func (a *Adapter) SupportedFamilies() []string {
	return []string{Family, "repositories", "github"}
}

// Priority returns the selection priority.
func (a *Adapter) Priority() int {
	return 90
}

// Adapt converts repository records. Star counts such as "83K+" become
// their lower bound and "N/A" becomes unknown.
func (a *Adapter) Adapt(ctx context.Context, familyID string, records []domain.RawRecord) (*domain.AdaptResult, error) {
	return shards.Convert(ctx, familyID, records, mapping)
}
