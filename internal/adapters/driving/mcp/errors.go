// Package mcp provides an MCP (Model Context Protocol) server adapter for
// shardcat. It lets AI assistants search the merged catalog, read entities
// and inspect the last ingestion report.
package mcp

import "errors"

// ErrMissingCatalogService is returned when the catalog service is not provided.
var ErrMissingCatalogService = errors.New("mcp: catalog service is required")
