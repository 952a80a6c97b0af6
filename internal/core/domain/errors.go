package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown shard file format.
	ErrUnsupportedType = errors.New("unsupported type")

	// Catalog Errors.

	// ErrInvalidQuery indicates out-of-range pagination or a malformed
	// facet request. The catalog is unaffected.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrCatalogNotReady indicates a query ran before the first
	// successful ingestion.
	ErrCatalogNotReady = errors.New("catalog not ready")

	// ErrUnknownShardFamily indicates no adapter is registered for a
	// shard family. This is a wiring defect, not a data problem.
	ErrUnknownShardFamily = errors.New("unknown shard family")

	// ErrIngestInProgress indicates a rebuild is already running.
	ErrIngestInProgress = errors.New("ingestion in progress")
)
