// Package tools adapts AI tool shards, including the alphabetical
// phase files ("tools:phase-a").
package tools

import (
	"context"

	"github.com/custodia-labs/shardcat/internal/core/domain"
	"github.com/custodia-labs/shardcat/internal/core/ports/driven"
	"github.com/custodia-labs/shardcat/internal/shards"
)

// Ensure Adapter implements the interface.
var _ driven.ShardAdapter = (*Adapter)(nil)

// Family is the shard family handled by this adapter.
const Family = "tools"

var mapping = shards.Mapping{
	Domain:      domain.DomainTool,
	Name:        []string{"name", "tool"},
	Category:    []string{"category", "cat"},
	Subcategory: []string{"sub", "subcategory"},
	Description: []string{"desc", "description", "summary"},
	URL:         []string{"url", "website", "link"},
	Tags:        []string{"tags", "features", "useCases"},
	Pricing:     []string{"pricing", "price", "pricingModel"},
	Rating:      []string{"rating"},
	Popularity:  []string{"users", "userCount", "monthlyUsers"},
	Difficulty:  []string{"difficulty", "learningCurve"},
	Featured:    []string{"featured"},
	Attributes: [][]string{
		{"platform", "platforms"},
		{"company", "developer"},
		{"launched", "year"},
	},
}

// Adapter handles AI tool shards.
type Adapter struct{}

// New creates a new tool adapter.
func New() *Adapter {
	return &Adapter{}
}

// Name returns the adapter name.
func (a *Adapter) Name() string {
	return Family
}

// SupportedFamilies returns the shard families this adapter handles.
func (a *Adapter) SupportedFamilies() []string {
	return []string{Family, "ai-tools"}
}

// Priority returns the selection priority.
func (a *Adapter) Priority() int {
	return 90
}

// Adapt converts tool records.
func (a *Adapter) Adapt(ctx context.Context, familyID string, records []domain.RawRecord) (*domain.AdaptResult, error) {
	return shards.Convert(ctx, familyID, records, mapping)
}
