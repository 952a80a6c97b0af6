package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shardcat/internal/core/domain"
)

func newTestServer(t *testing.T, catalog *mockCatalogService, reload *mockReloadService) *Server {
	t.Helper()
	ports := &Ports{Catalog: catalog, DefaultLimit: 20}
	if reload != nil {
		ports.Reload = reload
	}
	server, err := NewServer(ports, "test")
	require.NoError(t, err)
	return server
}

func otterEntity() domain.Entity {
	rating := 4.5
	pop := int64(83000)
	return domain.Entity{
		ID:          "id-otter",
		Name:        "Otter",
		Domain:      domain.DomainTool,
		Category:    "Productivity",
		PricingTier: domain.PricingFreemium,
		Rating:      &rating,
		Popularity:  &pop,
		URL:         domain.StringPtr("https://otter.ai"),
		Description: domain.StringPtr("AI meeting notes"),
	}
}

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("maps hits and builds the query", func(t *testing.T) {
		catalog := &mockCatalogService{result: &domain.QueryResult{
			Hits:        []domain.Hit{{Entity: otterEntity(), Score: 7.2}},
			Total:       3,
			FacetCounts: map[domain.Facet]map[string]int{domain.FacetPricing: {"freemium": 1}},
		}}
		server := newTestServer(t, catalog, nil)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{
			Query:  "  meeting  notes ",
			Facets: map[string][]string{"Pricing": {"freemium", "free"}},
			Sort:   "Rating",
			Offset: 2,
			Limit:  1,
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"meeting", "notes"}, catalog.lastQuery.Keywords)
		assert.Equal(t, []string{"freemium", "free"}, catalog.lastQuery.Facets[domain.FacetPricing])
		assert.Equal(t, domain.SortRating, catalog.lastQuery.Sort)
		assert.Equal(t, 2, catalog.lastQuery.Offset)
		assert.Equal(t, 1, catalog.lastQuery.Limit)

		assert.Equal(t, 1, output.Count)
		assert.Equal(t, 3, output.Total)
		require.Len(t, output.Hits, 1)
		hit := output.Hits[0]
		assert.Equal(t, "id-otter", hit.ID)
		assert.Equal(t, "Otter", hit.Name)
		assert.Equal(t, "tool", hit.Domain)
		assert.Equal(t, "freemium", hit.PricingTier)
		assert.Equal(t, "https://otter.ai", hit.URL)
		assert.Equal(t, "AI meeting notes", hit.Description)
		assert.Equal(t, 7.2, hit.Score)
		assert.Equal(t, map[string]int{"freemium": 1}, output.FacetCounts["pricing"])
	})

	t.Run("default limit", func(t *testing.T) {
		catalog := &mockCatalogService{}
		server := newTestServer(t, catalog, nil)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{})
		require.NoError(t, err)
		assert.Equal(t, 20, catalog.lastQuery.Limit)
		assert.Nil(t, catalog.lastQuery.Facets)
		assert.Empty(t, catalog.lastQuery.Keywords)
		assert.Equal(t, 0, output.Count)
	})

	t.Run("returns error on query failure", func(t *testing.T) {
		server := newTestServer(t, &mockCatalogService{err: domain.ErrInvalidQuery}, nil)

		_, _, err := server.handleSearch(ctx, nil, SearchInput{Query: "x"})
		assert.ErrorIs(t, err, domain.ErrInvalidQuery)
	})
}

func TestServer_handleGetEntity(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(t, &mockCatalogService{
		entities: map[string]domain.Entity{"id-otter": otterEntity()},
	}, nil)

	t.Run("found", func(t *testing.T) {
		_, output, err := server.handleGetEntity(ctx, nil, EntityInput{ID: "id-otter"})
		require.NoError(t, err)
		assert.Equal(t, "Otter", output.Entity.Name)
	})

	t.Run("not found", func(t *testing.T) {
		_, _, err := server.handleGetEntity(ctx, nil, EntityInput{ID: "nope"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("missing id", func(t *testing.T) {
		_, _, err := server.handleGetEntity(ctx, nil, EntityInput{ID: " "})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestServer_handleFacets(t *testing.T) {
	ctx := context.Background()
	facets := map[domain.Facet][]domain.FacetValue{
		domain.FacetDomain:  {{Value: "tool", Count: 2}},
		domain.FacetPricing: {{Value: "free", Count: 1}, {Value: "paid", Count: 1}},
	}
	server := newTestServer(t, &mockCatalogService{facets: facets}, nil)

	t.Run("all dimensions", func(t *testing.T) {
		_, output, err := server.handleFacets(ctx, nil, FacetsInput{})
		require.NoError(t, err)
		assert.Len(t, output.Facets, 2)
		assert.Equal(t, facets[domain.FacetPricing], output.Facets["pricing"])
	})

	t.Run("selected dimension", func(t *testing.T) {
		_, output, err := server.handleFacets(ctx, nil, FacetsInput{Dimensions: []string{"DOMAIN"}})
		require.NoError(t, err)
		assert.Equal(t, map[string][]domain.FacetValue{"domain": {{Value: "tool", Count: 2}}}, output.Facets)
	})

	t.Run("unknown dimension", func(t *testing.T) {
		_, _, err := server.handleFacets(ctx, nil, FacetsInput{Dimensions: []string{"color"}})
		assert.ErrorIs(t, err, domain.ErrInvalidQuery)
	})
}

func TestServer_handleReload(t *testing.T) {
	ctx := context.Background()

	t.Run("summarises the report", func(t *testing.T) {
		reload := &mockReloadService{report: &domain.IngestionReport{
			Entities:         4,
			ValidationErrors: []domain.ValidationError{{FamilyID: "tools"}},
			Conflicts:        []domain.ConflictNote{{}, {}},
		}}
		server := newTestServer(t, &mockCatalogService{}, reload)

		_, output, err := server.handleReload(ctx, nil, ReloadInput{})
		require.NoError(t, err)
		assert.Equal(t, ReloadOutput{Entities: 4, Skipped: 1, Conflicts: 2}, output)
		assert.Equal(t, 1, reload.calls)
	})

	t.Run("propagates errors", func(t *testing.T) {
		reload := &mockReloadService{err: errors.New("disk gone")}
		server := newTestServer(t, &mockCatalogService{}, reload)

		_, _, err := server.handleReload(ctx, nil, ReloadInput{})
		assert.EqualError(t, err, "disk gone")
	})
}
