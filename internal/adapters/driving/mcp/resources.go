package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/shardcat/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for catalog resources.
	uriScheme = "catalog://"

	mimeJSON = "application/json"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "report",
		Name:        "report",
		Description: "Report of the last ingestion: families, skipped records, conflicts",
		MIMEType:    mimeJSON,
	}, s.handleReportResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "facets",
		Name:        "facets",
		Description: "Every facet value with its entity count",
		MIMEType:    mimeJSON,
	}, s.handleFacetsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "stats",
		Name:        "stats",
		Description: "Size and version of the served catalog",
		MIMEType:    mimeJSON,
	}, s.handleStatsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "entities/{id}",
		Name:        "entity",
		Description: "One merged catalog entity",
		MIMEType:    mimeJSON,
	}, s.handleEntityResource)
}

// handleReportResource returns the last ingestion report.
func (s *Server) handleReportResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	report, err := s.ports.Catalog.Report(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting report: %w", err)
	}
	return jsonResource(req.Params.URI, report)
}

// handleFacetsResource returns all facet values.
func (s *Server) handleFacetsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	facets, err := s.ports.Catalog.Facets(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting facets: %w", err)
	}
	return jsonResource(req.Params.URI, facets)
}

// handleStatsResource returns catalog statistics.
func (s *Server) handleStatsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, s.ports.Catalog.Stats(ctx))
}

// handleEntityResource returns one entity.
func (s *Server) handleEntityResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractEntityID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	entity, err := s.ports.Catalog.Entity(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting entity: %w", err)
	}
	return jsonResource(req.Params.URI, entity)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeJSON,
			Text:     string(data),
		}},
	}, nil
}

// extractEntityID extracts the ID from a URI like catalog://entities/{id}.
func extractEntityID(uri string) string {
	const prefix = uriScheme + "entities/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
