// Package shards provides the shared record mapping used by every
// ShardAdapter implementation. Each subpackage knows the field-name
// variants of one shard family and hands them to Convert, which invokes
// the field normalisers; adapters never parse values themselves.
//
// Adapters are registered with the AdapterRegistry at startup.
package shards
