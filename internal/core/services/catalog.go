package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/custodia-labs/shardcat/internal/core/catalog"
	"github.com/custodia-labs/shardcat/internal/core/domain"
	"github.com/custodia-labs/shardcat/internal/core/ports/driving"
	"github.com/custodia-labs/shardcat/internal/logger"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// snapshot is one published index with the report that produced it.
type snapshot struct {
	index   *catalog.Index
	report  *domain.IngestionReport
	version uint64
}

// CatalogService serves queries from the most recently built index.
// Readers load the current snapshot without locking; Ingest builds a new
// snapshot off to the side and publishes it with one atomic store.
type CatalogService struct {
	pipeline *Pipeline
	maxLimit int

	ingestMu sync.Mutex
	current  atomic.Pointer[snapshot]
	versions atomic.Uint64
}

// CatalogOption configures a CatalogService.
type CatalogOption func(*CatalogService)

// WithMaxLimit caps the page size of every query. Zero means no cap.
func WithMaxLimit(n int) CatalogOption {
	return func(s *CatalogService) {
		s.maxLimit = n
	}
}

// NewCatalogService creates a catalog service that rebuilds with pipeline.
func NewCatalogService(pipeline *Pipeline, opts ...CatalogOption) *CatalogService {
	s := &CatalogService{pipeline: pipeline}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ingest rebuilds the catalog. Only one rebuild runs at a time; a
// concurrent call returns domain.ErrIngestInProgress. On error the
// previously served index stays in place.
func (s *CatalogService) Ingest(ctx context.Context, shards []domain.Shard) (*domain.IngestionReport, error) {
	if !s.ingestMu.TryLock() {
		return nil, domain.ErrIngestInProgress
	}
	defer s.ingestMu.Unlock()

	idx, report, err := s.pipeline.Run(ctx, shards)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}

	snap := &snapshot{index: idx, report: report, version: s.versions.Add(1)}
	s.current.Store(snap)
	logger.Info("Published catalog v%d: %d entities", snap.version, idx.Len())

	return report, nil
}

// Query runs req against the current index.
func (s *CatalogService) Query(ctx context.Context, req domain.QueryRequest) (*domain.QueryResult, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if s.maxLimit > 0 && req.Limit > s.maxLimit {
		logger.Debug("Clamping limit %d to %d", req.Limit, s.maxLimit)
		req.Limit = s.maxLimit
	}

	start := time.Now()
	res, err := snap.index.Query(req)
	if err != nil {
		return nil, err
	}
	logger.Debug("Query %v matched %d of %d in %s", req.Keywords, res.Total, snap.index.Len(), time.Since(start))
	return res, nil
}

// Entity returns a merged entity by ID.
func (s *CatalogService) Entity(ctx context.Context, id string) (*domain.Entity, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	e, ok := snap.index.Entity(id)
	if !ok {
		return nil, fmt.Errorf("entity %s: %w", id, domain.ErrNotFound)
	}
	return &e, nil
}

// Facets returns every facet value of the current index.
func (s *CatalogService) Facets(ctx context.Context) (map[domain.Facet][]domain.FacetValue, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.index.Facets(), nil
}

// Report returns the report of the ingestion that built the current index.
func (s *CatalogService) Report(ctx context.Context) (*domain.IngestionReport, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.report, nil
}

// Stats summarises the current index. It never fails.
func (s *CatalogService) Stats(_ context.Context) domain.CatalogStats {
	snap := s.current.Load()
	if snap == nil {
		return domain.CatalogStats{ByDomain: map[domain.EntityDomain]int{}}
	}
	return domain.CatalogStats{
		Ready:    true,
		Entities: snap.index.Len(),
		Tokens:   snap.index.Tokens(),
		ByDomain: snap.index.ByDomain(),
		Version:  snap.version,
	}
}

func (s *CatalogService) snapshot(ctx context.Context) (*snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap := s.current.Load()
	if snap == nil {
		return nil, domain.ErrCatalogNotReady
	}
	return snap, nil
}
