package tui

import (
	"context"
	"sync"

	"github.com/custodia-labs/shardcat/internal/core/domain"
)

// mockCatalog implements driving.CatalogService for testing.
type mockCatalog struct {
	QueryFunc  func(ctx context.Context, req domain.QueryRequest) (*domain.QueryResult, error)
	FacetsFunc func(ctx context.Context) (map[domain.Facet][]domain.FacetValue, error)
	report     *domain.IngestionReport
	stats      domain.CatalogStats
}

func (m *mockCatalog) Ingest(context.Context, []domain.Shard) (*domain.IngestionReport, error) {
	return m.report, nil
}

func (m *mockCatalog) Query(ctx context.Context, req domain.QueryRequest) (*domain.QueryResult, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, req)
	}
	return &domain.QueryResult{}, nil
}

func (m *mockCatalog) Entity(context.Context, string) (*domain.Entity, error) {
	return nil, domain.ErrNotFound
}

func (m *mockCatalog) Facets(ctx context.Context) (map[domain.Facet][]domain.FacetValue, error) {
	if m.FacetsFunc != nil {
		return m.FacetsFunc(ctx)
	}
	return nil, nil
}

func (m *mockCatalog) Report(context.Context) (*domain.IngestionReport, error) {
	if m.report == nil {
		return nil, domain.ErrCatalogNotReady
	}
	return m.report, nil
}

func (m *mockCatalog) Stats(context.Context) domain.CatalogStats {
	return m.stats
}

// mockReload implements driving.ReloadService for testing.
type mockReload struct {
	mu     sync.Mutex
	calls  int
	report *domain.IngestionReport
	err    error
}

func (m *mockReload) Reload(context.Context) (*domain.IngestionReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.report, m.err
}

func (m *mockReload) Watch(ctx context.Context) error {
	<-ctx.Done()
	return nil
}
