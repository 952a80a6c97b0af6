// Package fields provides the family-agnostic field normaliser used by
// every shard adapter.
//
// All functions are total: malformed input degrades to nil, an empty
// value or a fallback, never to a panic or an error. Adapters must route
// every unit or type coercion through this package so that parsing rules
// live in one place.
package fields
