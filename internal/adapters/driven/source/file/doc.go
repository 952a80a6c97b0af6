// Package file loads shards from a directory of JSON, YAML and TOML files.
//
// Each file is one shard. Its body is either a top-level array of record
// objects or an object with "family" and "records" keys:
//
//	{"family": "tools:phase-a", "records": [{"name": "Otter"}]}
//
// The family ID defaults to the file name without its extension. TOML
// files cannot hold a top-level array and always use the object form.
//
// Shards load in the configured family order first, then by file name,
// which makes the directory listing the default merge priority.
package file
