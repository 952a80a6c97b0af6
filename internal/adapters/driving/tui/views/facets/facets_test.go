package facets

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shardcat/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/shardcat/internal/core/domain"
)

type mockCatalog struct {
	facets map[domain.Facet][]domain.FacetValue
	err    error
}

func (m *mockCatalog) Ingest(context.Context, []domain.Shard) (*domain.IngestionReport, error) {
	return nil, nil
}

func (m *mockCatalog) Query(context.Context, domain.QueryRequest) (*domain.QueryResult, error) {
	return nil, nil
}

func (m *mockCatalog) Entity(context.Context, string) (*domain.Entity, error) {
	return nil, domain.ErrNotFound
}

func (m *mockCatalog) Facets(context.Context) (map[domain.Facet][]domain.FacetValue, error) {
	return m.facets, m.err
}

func (m *mockCatalog) Report(context.Context) (*domain.IngestionReport, error) {
	return nil, nil
}

func (m *mockCatalog) Stats(context.Context) domain.CatalogStats {
	return domain.CatalogStats{}
}

func loaded(t *testing.T, catalog *mockCatalog) *View {
	t.Helper()
	v := NewView(nil, catalog)
	v.SetDimensions(80, 40)
	cmd := v.Init()
	require.NotNil(t, cmd)
	v.Update(cmd())
	return v
}

func sampleFacets() map[domain.Facet][]domain.FacetValue {
	return map[domain.Facet][]domain.FacetValue{
		domain.FacetPricing: {{Value: "free", Count: 7}, {Value: "paid", Count: 2}},
		domain.FacetDomain:  {{Value: "tool", Count: 9}},
	}
}

func TestView_LoadsInDisplayOrder(t *testing.T) {
	v := loaded(t, &mockCatalog{facets: sampleFacets()})

	require.NoError(t, v.Err())
	facet, value, ok := v.Selected()
	require.True(t, ok)
	assert.Equal(t, domain.FacetDomain, facet)
	assert.Equal(t, "tool", value)

	out := v.View()
	assert.Contains(t, out, "pricing")
	assert.Contains(t, out, "free")
	assert.Less(t, strings.Index(out, "domain"), strings.Index(out, "pricing"))
}

func TestView_SelectAppliesFacet(t *testing.T) {
	v := loaded(t, &mockCatalog{facets: sampleFacets()})

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	v.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.FacetApplied{Facet: domain.FacetPricing, Value: "paid"}, cmd())
}

func TestView_LoadError(t *testing.T) {
	v := loaded(t, &mockCatalog{err: domain.ErrCatalogNotReady})

	assert.ErrorIs(t, v.Err(), domain.ErrCatalogNotReady)
	assert.Contains(t, v.View(), "Error:")

	_, _, ok := v.Selected()
	assert.False(t, ok)
}

func TestView_NoCatalog(t *testing.T) {
	v := NewView(nil, nil)
	cmd := v.Init()
	assert.Contains(t, v.View(), "Loading facets...")

	msg, ok := cmd().(messages.FacetsLoaded)
	require.True(t, ok)
	assert.ErrorIs(t, msg.Err, ErrNoCatalogService)
}

func TestView_Empty(t *testing.T) {
	v := loaded(t, &mockCatalog{})

	assert.Contains(t, v.View(), "No facet values")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestView_Esc(t *testing.T) {
	v := NewView(nil, &mockCatalog{})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}
