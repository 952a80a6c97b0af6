// Package tui provides an interactive terminal browser for the catalog.
// It is a driving adapter over the catalog and reload ports.
package tui

import (
	"github.com/custodia-labs/shardcat/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI uses.
type Ports struct {
	// Catalog answers queries. Required.
	Catalog driving.CatalogService

	// Reload rebuilds the catalog from shard sources. Optional; the reload
	// menu item is hidden without it.
	Reload driving.ReloadService

	// PageSize is the number of hits per page. Zero uses the search view
	// default.
	PageSize int
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Catalog == nil {
		return ErrMissingCatalogService
	}
	if p.PageSize < 0 {
		return ErrInvalidPorts
	}
	return nil
}
