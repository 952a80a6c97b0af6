package driven

// AdapterRegistry selects the appropriate adapter for a shard family.
// It maintains a priority-ordered list of adapters and falls back to
// a catch-all adapter when no family-specific one matches.
type AdapterRegistry interface {
	// Register adds an adapter to the registry.
	Register(adapter ShardAdapter)

	// Select returns the best adapter for familyID.
	// Returns domain.ErrUnknownShardFamily when nothing matches.
	Select(familyID string) (ShardAdapter, error)

	// Adapters returns all registered adapters, highest priority first.
	Adapters() []ShardAdapter
}
