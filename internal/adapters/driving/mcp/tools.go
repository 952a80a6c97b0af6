package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/shardcat/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query  string              `json:"query,omitempty" jsonschema:"space-separated keywords; every keyword must match"`
	Facets map[string][]string `json:"facets,omitempty" jsonschema:"facet filters by dimension: domain, category, pricing, difficulty, language, rating"`
	Sort   string              `json:"sort,omitempty" jsonschema:"relevance (default), rating, popularity or name"`
	Offset int                 `json:"offset,omitempty" jsonschema:"number of results to skip"`
	Limit  int                 `json:"limit,omitempty" jsonschema:"maximum number of results to return"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Hits        []HitOutput               `json:"hits"`
	Count       int                       `json:"count"`
	Total       int                       `json:"total"`
	FacetCounts map[string]map[string]int `json:"facet_counts"`
}

// HitOutput is a compact view of one matching entity.
type HitOutput struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Domain      string   `json:"domain"`
	Category    string   `json:"category"`
	PricingTier string   `json:"pricing_tier"`
	Rating      *float64 `json:"rating,omitempty"`
	Popularity  *int64   `json:"popularity,omitempty"`
	URL         string   `json:"url,omitempty"`
	Description string   `json:"description,omitempty"`
	Score       float64  `json:"score"`
}

// EntityInput is the input schema for the get_entity tool.
type EntityInput struct {
	ID string `json:"id" jsonschema:"entity id as returned by search"`
}

// EntityOutput is the output schema for the get_entity tool.
type EntityOutput struct {
	Entity domain.Entity `json:"entity"`
}

// FacetsInput is the input schema for the facets tool.
type FacetsInput struct {
	Dimensions []string `json:"dimensions,omitempty" jsonschema:"facet dimensions to list; all when empty"`
}

// FacetsOutput is the output schema for the facets tool.
type FacetsOutput struct {
	Facets map[string][]domain.FacetValue `json:"facets"`
}

// ReloadInput is the input schema for the reload tool.
type ReloadInput struct{}

// ReloadOutput summarises a rebuild.
type ReloadOutput struct {
	Entities  int `json:"entities"`
	Skipped   int `json:"skipped"`
	Conflicts int `json:"conflicts"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search the merged catalog by keyword and facet",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_entity",
		Description: "Get every field of one catalog entity, with provenance",
	}, s.handleGetEntity)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "facets",
		Description: "List facet values with entity counts",
	}, s.handleFacets)

	if s.ports.Reload != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "reload",
			Description: "Reload all shards and rebuild the catalog",
		}, s.handleReload)
	}
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = s.ports.defaultLimit()
	}

	req := domain.QueryRequest{
		Keywords: strings.Fields(input.Query),
		Sort:     domain.SortOrder(strings.ToLower(input.Sort)),
		Offset:   input.Offset,
		Limit:    limit,
	}
	if len(input.Facets) > 0 {
		req.Facets = make(map[domain.Facet][]string, len(input.Facets))
		for name, values := range input.Facets {
			f := domain.Facet(strings.ToLower(name))
			req.Facets[f] = append(req.Facets[f], values...)
		}
	}

	result, err := s.ports.Catalog.Query(ctx, req)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Hits:        make([]HitOutput, len(result.Hits)),
		Count:       len(result.Hits),
		Total:       result.Total,
		FacetCounts: make(map[string]map[string]int, len(result.FacetCounts)),
	}
	for f, counts := range result.FacetCounts {
		output.FacetCounts[string(f)] = counts
	}

	for i := range result.Hits {
		e := &result.Hits[i].Entity
		output.Hits[i] = HitOutput{
			ID:          e.ID,
			Name:        e.Name,
			Domain:      string(e.Domain),
			Category:    e.Category,
			PricingTier: string(e.PricingTier),
			Rating:      e.Rating,
			Popularity:  e.Popularity,
			URL:         domain.Deref(e.URL),
			Description: domain.Deref(e.Description),
			Score:       result.Hits[i].Score,
		}
	}

	return nil, output, nil
}

// handleGetEntity handles the get_entity tool invocation.
func (s *Server) handleGetEntity(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input EntityInput,
) (*mcp.CallToolResult, EntityOutput, error) {
	if strings.TrimSpace(input.ID) == "" {
		return nil, EntityOutput{}, fmt.Errorf("%w: id is required", domain.ErrInvalidInput)
	}

	entity, err := s.ports.Catalog.Entity(ctx, input.ID)
	if err != nil {
		return nil, EntityOutput{}, fmt.Errorf("entity %s: %w", input.ID, err)
	}

	return nil, EntityOutput{Entity: *entity}, nil
}

// handleFacets handles the facets tool invocation.
func (s *Server) handleFacets(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FacetsInput,
) (*mcp.CallToolResult, FacetsOutput, error) {
	all, err := s.ports.Catalog.Facets(ctx)
	if err != nil {
		return nil, FacetsOutput{}, err
	}

	output := FacetsOutput{Facets: make(map[string][]domain.FacetValue)}
	if len(input.Dimensions) == 0 {
		for f, values := range all {
			output.Facets[string(f)] = values
		}
		return nil, output, nil
	}

	for _, d := range input.Dimensions {
		f := domain.Facet(strings.ToLower(d))
		values, ok := all[f]
		if !ok {
			return nil, FacetsOutput{}, fmt.Errorf("%w: unknown facet %q", domain.ErrInvalidQuery, d)
		}
		output.Facets[string(f)] = values
	}
	return nil, output, nil
}

// handleReload handles the reload tool invocation.
func (s *Server) handleReload(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ReloadInput,
) (*mcp.CallToolResult, ReloadOutput, error) {
	report, err := s.ports.Reload.Reload(ctx)
	if err != nil {
		return nil, ReloadOutput{}, err
	}

	return nil, ReloadOutput{
		Entities:  report.Entities,
		Skipped:   report.Skipped(),
		Conflicts: len(report.Conflicts),
	}, nil
}
