// Package countries adapts migration-destination country shards.
package countries

import (
	"context"

	"github.com/custodia-labs/shardcat/internal/core/domain"
	"github.com/custodia-labs/shardcat/internal/core/ports/driven"
	"github.com/custodia-labs/shardcat/internal/shards"
)

// Ensure Adapter implements the interface.
var _ driven.ShardAdapter = (*Adapter)(nil)

// Family is the shard family handled by this adapter.
const Family = "countries"

var mapping = shards.Mapping{
	Domain:      domain.DomainCountry,
	Name:        []string{"name", "country"},
	Category:    []string{"region", "continent", "category"},
	Subcategory: []string{"sub", "subregion", "subcategory"},
	Description: []string{"desc", "description", "overview"},
	URL:         []string{"url", "website", "officialSite"},
	Language:    []string{"languages", "language"},
	Tags:        []string{"visas", "visaTypes", "visa_types", "tags"},
	Rating:      []string{"rating", "score"},
	Difficulty:  []string{"difficulty", "immigrationDifficulty"},
	Featured:    []string{"featured", "popular"},
	Attributes: [][]string{
		{"capital"},
		{"currency"},
		{"costOfLiving", "cost_of_living"},
		{"population"},
	},
}

// Adapter handles country shards.
type Adapter struct{}

// New creates a new country adapter.
func New() *Adapter {
	return &Adapter{}
}

// Name returns the adapter name.
func (a *Adapter) Name() string {
	return Family
}

// SupportedFamilies returns the shard families this adapter handles.
func (a *Adapter) SupportedFamilies() []string {
	return []string{Family}
}

// Priority returns the selection priority.
func (a *Adapter) Priority() int {
	return 90
}

// Adapt converts country records. Countries carry no pricing.
func (a *Adapter) Adapt(ctx context.Context, familyID string, records []domain.RawRecord) (*domain.AdaptResult, error) {
	return shards.Convert(ctx, familyID, records, mapping)
}
