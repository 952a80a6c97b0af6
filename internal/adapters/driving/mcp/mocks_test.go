package mcp

import (
	"context"

	"github.com/custodia-labs/shardcat/internal/core/domain"
)

// mockCatalogService is a mock implementation of driving.CatalogService.
type mockCatalogService struct {
	result   *domain.QueryResult
	entities map[string]domain.Entity
	facets   map[domain.Facet][]domain.FacetValue
	report   *domain.IngestionReport
	stats    domain.CatalogStats
	err      error

	lastQuery domain.QueryRequest
}

func (m *mockCatalogService) Ingest(_ context.Context, _ []domain.Shard) (*domain.IngestionReport, error) {
	return m.report, m.err
}

func (m *mockCatalogService) Query(_ context.Context, req domain.QueryRequest) (*domain.QueryResult, error) {
	m.lastQuery = req
	if m.err != nil {
		return nil, m.err
	}
	if m.result == nil {
		return &domain.QueryResult{Hits: []domain.Hit{}}, nil
	}
	return m.result, nil
}

func (m *mockCatalogService) Entity(_ context.Context, id string) (*domain.Entity, error) {
	if m.err != nil {
		return nil, m.err
	}
	e, ok := m.entities[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &e, nil
}

func (m *mockCatalogService) Facets(_ context.Context) (map[domain.Facet][]domain.FacetValue, error) {
	return m.facets, m.err
}

func (m *mockCatalogService) Report(_ context.Context) (*domain.IngestionReport, error) {
	return m.report, m.err
}

func (m *mockCatalogService) Stats(_ context.Context) domain.CatalogStats {
	return m.stats
}

// mockReloadService is a mock implementation of driving.ReloadService.
type mockReloadService struct {
	report *domain.IngestionReport
	err    error
	calls  int
}

func (m *mockReloadService) Reload(_ context.Context) (*domain.IngestionReport, error) {
	m.calls++
	return m.report, m.err
}

func (m *mockReloadService) Watch(_ context.Context) error {
	return m.err
}
