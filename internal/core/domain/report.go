package domain

import (
	"fmt"
	"time"
)

// ValidationError describes a raw record that failed required-field checks.
// The record is skipped; the batch continues.
type ValidationError struct {
	// FamilyID is the shard family the record came from.
	FamilyID string `json:"family_id"`

	// Position is the zero-based index of the record within its shard.
	Position int `json:"position"`

	// Field is the canonical field that failed ("name", "domain").
	Field string `json:"field"`

	// Reason is a human-readable explanation.
	Reason string `json:"reason"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s[%d]: %s: %s", e.FamilyID, e.Position, e.Field, e.Reason)
}

// ConflictNote is an informational record of a merge override: the value
// from LoserFamily was superseded by the value from WinnerFamily.
type ConflictNote struct {
	IdentityKey  string `json:"identity_key"`
	Field        string `json:"field"`
	WinnerFamily string `json:"winner_family"`
	WinnerValue  string `json:"winner_value"`
	LoserFamily  string `json:"loser_family"`
	LoserValue   string `json:"loser_value"`
}

// String returns a one-line summary of the note.
func (n ConflictNote) String() string {
	return fmt.Sprintf("%s: %s %q (%s) over %q (%s)",
		n.IdentityKey, n.Field, n.WinnerValue, n.WinnerFamily, n.LoserValue, n.LoserFamily)
}

// FamilyStats summarises one shard family within an ingestion run.
type FamilyStats struct {
	FamilyID string `json:"family_id"`
	Adapter  string `json:"adapter"`
	Priority int    `json:"priority"`
	Records  int    `json:"records"`
	Accepted int    `json:"accepted"`
	Rejected int    `json:"rejected"`
}

// IngestionReport is the outcome of one full catalog rebuild.
// A rebuild always produces an index, possibly empty.
type IngestionReport struct {
	// StartedAt and CompletedAt bound the rebuild.
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`

	// Families lists per-family counts in priority order.
	Families []FamilyStats `json:"families"`

	// ValidationErrors lists every skipped record.
	ValidationErrors []ValidationError `json:"validation_errors"`

	// Conflicts lists every merge override.
	Conflicts []ConflictNote `json:"conflicts"`

	// Candidates is the number of pre-merge entities.
	Candidates int `json:"candidates"`

	// Clusters is the number of identity clusters.
	Clusters int `json:"clusters"`

	// URLSplits is the number of primary keys split by URL disagreement.
	URLSplits int `json:"url_splits"`

	// Entities is the number of entities in the built index.
	Entities int `json:"entities"`

	// Tokens is the number of distinct tokens in the built index.
	Tokens int `json:"tokens"`
}

// Duration returns how long the rebuild took.
func (r *IngestionReport) Duration() time.Duration {
	return r.CompletedAt.Sub(r.StartedAt)
}

// Skipped returns the number of records rejected across all families.
func (r *IngestionReport) Skipped() int {
	return len(r.ValidationErrors)
}
