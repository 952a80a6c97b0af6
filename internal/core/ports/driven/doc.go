// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - ShardAdapter: Translates one shard family's raw records
//   - AdapterRegistry: Selects the adapter for a shard family
//   - ShardSource: Loads shards from files or a database
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ChangeWatcher: Notifies of shard changes. Without it, reloads are manual.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or shard package
package driven
