// Package generic provides the fallback shard adapter. It accepts the
// field variants of every known family and reads the domain from each
// record, so ad hoc shards can be ingested without a dedicated adapter.
package generic

import (
	"context"

	"github.com/custodia-labs/shardcat/internal/core/domain"
	"github.com/custodia-labs/shardcat/internal/core/ports/driven"
	"github.com/custodia-labs/shardcat/internal/shards"
)

// Ensure Adapter implements the interface.
var _ driven.ShardAdapter = (*Adapter)(nil)

// Adapter is the catch-all adapter.
type Adapter struct {
	mapping shards.Mapping
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithDefaultDomain sets the domain for records that do not name one.
func WithDefaultDomain(d domain.EntityDomain) Option {
	return func(a *Adapter) {
		a.mapping.Domain = d
	}
}

// New creates a fallback adapter. Records default to the tool domain.
func New(opts ...Option) *Adapter {
	a := &Adapter{mapping: shards.Mapping{
		Domain:      domain.DomainTool,
		DomainFrom:  []string{"domain", "kind"},
		Name:        []string{"name", "title", "tool", "repo", "full_name", "country"},
		Category:    []string{"category", "region", "topic"},
		Subcategory: []string{"sub", "subcategory", "subregion", "type", "format"},
		Description: []string{"desc", "description", "overview", "summary"},
		URL:         []string{"url", "website", "link", "html_url", "github"},
		Language:    []string{"language", "languages", "lang"},
		Tags:        []string{"tags", "topics", "features", "visas", "skills"},
		Pricing:     []string{"pricing", "price", "pricingModel", "free", "cost"},
		Rating:      []string{"rating", "score"},
		Popularity:  []string{"popularity", "users", "stars", "students", "learners", "enrolled"},
		Difficulty:  []string{"difficulty", "level"},
		Featured:    []string{"featured"},
		Attributes: [][]string{
			{"capital"},
			{"currency"},
			{"license"},
			{"author", "provider", "company"},
			{"platform"},
		},
	}}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name returns the adapter name.
func (a *Adapter) Name() string {
	return "generic"
}

// SupportedFamilies returns nil: the fallback handles every family.
func (a *Adapter) SupportedFamilies() []string {
	return nil
}

// Priority returns the selection priority.
func (a *Adapter) Priority() int {
	return 5 // Fallback
}

// Adapt converts records using the union of all known field variants.
func (a *Adapter) Adapt(ctx context.Context, familyID string, records []domain.RawRecord) (*domain.AdaptResult, error) {
	return shards.Convert(ctx, familyID, records, a.mapping)
}
