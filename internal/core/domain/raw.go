package domain

// RawRecord is one shard-authored record as key/value pairs.
// It is owned by its shard and must never be mutated.
type RawRecord map[string]any

// Shard is one independently authored data module.
type Shard struct {
	// FamilyID identifies the shard family (e.g. "tools:phase-a").
	// The position of a shard in an ingestion batch sets its priority.
	FamilyID string

	// Records are the raw records in authored order.
	Records []RawRecord

	// Origin describes where the shard was loaded from (file path, table).
	// Informational only.
	Origin string
}

// AdaptResult is the output of adapting one shard.
type AdaptResult struct {
	// Entities are pre-merge canonical entities in record order.
	Entities []Entity

	// Rejected lists records that failed required-field validation.
	Rejected []ValidationError
}
