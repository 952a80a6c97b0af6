package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shardcat/internal/core/domain"
)

func newTestCatalog(opts ...CatalogOption) *CatalogService {
	return NewCatalogService(newTestPipeline(), opts...)
}

func TestCatalogService_NotReady(t *testing.T) {
	s := newTestCatalog()
	ctx := context.Background()

	_, err := s.Query(ctx, domain.QueryRequest{Limit: 10})
	assert.ErrorIs(t, err, domain.ErrCatalogNotReady)

	_, err = s.Entity(ctx, "x")
	assert.ErrorIs(t, err, domain.ErrCatalogNotReady)

	_, err = s.Facets(ctx)
	assert.ErrorIs(t, err, domain.ErrCatalogNotReady)

	_, err = s.Report(ctx)
	assert.ErrorIs(t, err, domain.ErrCatalogNotReady)

	stats := s.Stats(ctx)
	assert.False(t, stats.Ready)
	assert.Zero(t, stats.Version)
}

func TestCatalogService_IngestAndQuery(t *testing.T) {
	s := newTestCatalog()
	ctx := context.Background()

	report, err := s.Ingest(ctx, otterShards())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Entities)

	res, err := s.Query(ctx, domain.QueryRequest{Keywords: []string{"meeting"}, Limit: 10})
	require.NoError(t, err)
	require.Len(t, res.Hits, 1)
	otter := res.Hits[0].Entity
	assert.Equal(t, "Otter.ai", otter.Name)

	got, err := s.Entity(ctx, otter.ID)
	require.NoError(t, err)
	assert.Equal(t, otter.Name, got.Name)

	_, err = s.Entity(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	facets, err := s.Facets(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.FacetValue{{Value: "tool", Count: 1}}, facets[domain.FacetDomain])

	last, err := s.Report(ctx)
	require.NoError(t, err)
	assert.Same(t, report, last)

	stats := s.Stats(ctx)
	assert.True(t, stats.Ready)
	assert.Equal(t, 1, stats.Entities)
	assert.Equal(t, uint64(1), stats.Version)
	assert.Equal(t, 1, stats.ByDomain[domain.DomainTool])
}

func TestCatalogService_InvalidQuery(t *testing.T) {
	s := newTestCatalog()
	ctx := context.Background()
	_, err := s.Ingest(ctx, otterShards())
	require.NoError(t, err)

	_, err = s.Query(ctx, domain.QueryRequest{Limit: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidQuery)

	// The catalog keeps serving after a bad request.
	_, err = s.Query(ctx, domain.QueryRequest{Limit: 1})
	assert.NoError(t, err)
}

func TestCatalogService_MaxLimit(t *testing.T) {
	s := newTestCatalog(WithMaxLimit(1))
	ctx := context.Background()
	_, err := s.Ingest(ctx, []domain.Shard{{FamilyID: "tools", Records: []domain.RawRecord{
		{"name": "One"}, {"name": "Two"}, {"name": "Three"},
	}}})
	require.NoError(t, err)

	res, err := s.Query(ctx, domain.QueryRequest{Limit: 100})
	require.NoError(t, err)
	assert.Len(t, res.Hits, 1)
	assert.Equal(t, 3, res.Total)
}

func TestCatalogService_FailedIngestKeepsServing(t *testing.T) {
	s := newTestCatalog()
	ctx := context.Background()
	_, err := s.Ingest(ctx, otterShards())
	require.NoError(t, err)

	failing := NewCatalogService(NewPipeline(NewAdapterRegistry(&mockAdapter{name: "bad", priority: 1, err: errors.New("boom")})))
	_, err = failing.Ingest(ctx, otterShards())
	require.Error(t, err)
	assert.False(t, failing.Stats(ctx).Ready)

	s.pipeline = failing.pipeline
	_, err = s.Ingest(ctx, otterShards())
	require.Error(t, err)

	stats := s.Stats(ctx)
	assert.True(t, stats.Ready)
	assert.Equal(t, uint64(1), stats.Version)
	res, err := s.Query(ctx, domain.QueryRequest{Keywords: []string{"otter"}, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
}

func TestCatalogService_RejectsConcurrentIngest(t *testing.T) {
	blocking := &mockAdapter{
		name:     "slow",
		priority: 1,
		started:  make(chan struct{}),
		release:  make(chan struct{}),
	}
	s := NewCatalogService(NewPipeline(NewAdapterRegistry(blocking)))
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := s.Ingest(ctx, []domain.Shard{{FamilyID: "x", Records: []domain.RawRecord{{"name": "A"}}}})
		done <- err
	}()

	<-blocking.started
	_, err := s.Ingest(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrIngestInProgress)

	close(blocking.release)
	require.NoError(t, <-done)
	assert.True(t, s.Stats(ctx).Ready)
}

func TestCatalogService_QueriesDuringRebuild(t *testing.T) {
	s := newTestCatalog()
	ctx := context.Background()
	_, err := s.Ingest(ctx, otterShards())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				res, err := s.Query(ctx, domain.QueryRequest{Keywords: []string{"otter"}, Limit: 10})
				if assert.NoError(t, err) {
					assert.Equal(t, 1, res.Total)
				}
			}
		}()
	}

	for i := 0; i < 5; i++ {
		_, err := s.Ingest(ctx, otterShards())
		if err != nil {
			assert.ErrorIs(t, err, domain.ErrIngestInProgress)
		}
	}
	wg.Wait()

	assert.GreaterOrEqual(t, s.Stats(ctx).Version, uint64(2))
}

func TestCatalogService_CancelledContext(t *testing.T) {
	s := newTestCatalog()
	_, err := s.Ingest(context.Background(), otterShards())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Query(ctx, domain.QueryRequest{Limit: 10})
	assert.ErrorIs(t, err, context.Canceled)
}
