// Package memory provides in-memory implementations of driven ports for
// tests and ephemeral runs (for example `shardcat search --dir` without a
// settings file).
package memory
