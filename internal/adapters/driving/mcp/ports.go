package mcp

import (
	"github.com/custodia-labs/shardcat/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Catalog answers queries. Required.
	Catalog driving.CatalogService

	// Reload enables the reload tool. Optional.
	Reload driving.ReloadService

	// DefaultLimit is the page size when a search names none.
	DefaultLimit int
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Catalog == nil {
		return ErrMissingCatalogService
	}
	return nil
}

func (p *Ports) defaultLimit() int {
	if p.DefaultLimit > 0 {
		return p.DefaultLimit
	}
	return 10
}
