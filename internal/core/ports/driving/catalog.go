package driving

import (
	"context"

	"github.com/custodia-labs/shardcat/internal/core/domain"
)

// CatalogService ingests shard sets and answers catalog queries.
type CatalogService interface {
	// Ingest rebuilds the catalog from shards. The order of shards sets
	// merge priority. The served index is swapped only after the new one
	// is complete. Returns domain.ErrUnknownShardFamily for an
	// unregistered family; malformed records are reported, not returned.
	Ingest(ctx context.Context, shards []domain.Shard) (*domain.IngestionReport, error)

	// Query runs a keyword and facet query against the served index.
	// Returns domain.ErrCatalogNotReady before the first ingestion and
	// domain.ErrInvalidQuery for bad pagination or facets.
	Query(ctx context.Context, req domain.QueryRequest) (*domain.QueryResult, error)

	// Entity returns a merged entity by ID.
	Entity(ctx context.Context, id string) (*domain.Entity, error)

	// Facets returns every facet value with its entity count.
	Facets(ctx context.Context) (map[domain.Facet][]domain.FacetValue, error)

	// Report returns the report of the last ingestion.
	Report(ctx context.Context) (*domain.IngestionReport, error)

	// Stats summarises the served index.
	Stats(ctx context.Context) domain.CatalogStats
}

// ReloadService rebuilds the catalog from configured shard sources.
type ReloadService interface {
	// Reload loads every source and ingests the combined shard set.
	Reload(ctx context.Context) (*domain.IngestionReport, error)

	// Watch reloads on every debounced change until ctx is done.
	// Returns nil when ctx is cancelled.
	Watch(ctx context.Context) error
}
