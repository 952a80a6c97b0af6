// Package sqlite stores shards in a SQLite database and serves them as a
// driven.ShardSource.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO.
//
// # Schema
//
//   - shards(family_id, priority, origin, updated_at): one row per shard.
//     Lower priority values load first and therefore win merges.
//   - shard_records(family_id, seq, body): one JSON object per record,
//     replayed in seq order.
//
// The schema is managed through versioned migrations stored in the
// migrations/ directory.
//
// # Data Location
//
// By default, the database is stored at ~/.shardcat/data/shards.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
