// Package resources adapts learning resource shards (courses, books,
// videos).
package resources

import (
	"context"

	"github.com/custodia-labs/shardcat/internal/core/domain"
	"github.com/custodia-labs/shardcat/internal/core/ports/driven"
	"github.com/custodia-labs/shardcat/internal/shards"
)

// Ensure Adapter implements the interface.
var _ driven.ShardAdapter = (*Adapter)(nil)

// Family is the shard family handled by this adapter.
const Family = "resources"

var mapping = shards.Mapping{
	Domain:      domain.DomainResource,
	Name:        []string{"title", "name"},
	Category:    []string{"category", "topic"},
	Subcategory: []string{"type", "format", "subcategory"},
	Description: []string{"desc", "description", "summary"},
	URL:         []string{"url", "link"},
	Language:    []string{"language"},
	Tags:        []string{"tags", "skills"},
	Pricing:     []string{"pricing", "price", "free", "cost"},
	Rating:      []string{"rating"},
	Popularity:  []string{"students", "learners", "enrolled"},
	Difficulty:  []string{"level", "difficulty"},
	Featured:    []string{"featured", "recommended"},
	Attributes: [][]string{
		{"author", "provider", "instructor"},
		{"duration", "length"},
		{"platform"},
	},
}

// Adapter handles learning resource shards.
type Adapter struct{}

// New creates a new resource adapter.
func New() *Adapter {
	return &Adapter{}
}

// Name returns the adapter name.
func (a *Adapter) Name() string {
	return Family
}

// SupportedFamilies returns the shard families this adapter handles.
func (a *Adapter) SupportedFamilies() []string {
	return []string{Family, "learning", "courses"}
}

// Priority returns the selection priority.
func (a *Adapter) Priority() int {
	return 90
}

// Adapt converts resource records.
func (a *Adapter) Adapt(ctx context.Context, familyID string, records []domain.RawRecord) (*domain.AdaptResult, error) {
	return shards.Convert(ctx, familyID, records, mapping)
}
