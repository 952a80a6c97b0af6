// Package domain defines the core business entities for shardcat.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawRecord: One shard-authored record, opaque until adapted
//   - Shard: A family of raw records handed to ingestion
//   - Entity: The canonical, merged catalog entity
//   - IdentityCluster: Pre-merge candidates believed to be one entity
//   - IngestionReport: Skipped records and conflict notes of a rebuild
//   - QueryRequest / QueryResult: The read side of the catalog
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
