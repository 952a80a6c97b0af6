package driven

import (
	"context"

	"github.com/custodia-labs/shardcat/internal/core/domain"
)

// ShardAdapter translates the raw records of one shard family into
// pre-merge canonical entities.
// Malformed records are reported in the result, never returned as errors.
type ShardAdapter interface {
	// Name identifies the adapter in reports and logs.
	Name() string

	// SupportedFamilies returns the shard families this adapter handles.
	// A family matches exactly or as a prefix followed by ':' or '/'.
	// Empty slice means all families (fallback).
	SupportedFamilies() []string

	// Priority returns the selection priority (higher = preferred).
	// Family-specific adapters should return 90-100.
	// Fallback adapters should return 1-9.
	Priority() int

	// Adapt converts records in order. It must not mutate records.
	// The only error is a cancelled context.
	Adapt(ctx context.Context, familyID string, records []domain.RawRecord) (*domain.AdaptResult, error)
}
