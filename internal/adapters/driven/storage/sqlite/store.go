package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/shardcat/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/shardcat/internal/core/domain"
	"github.com/custodia-labs/shardcat/internal/core/ports/driven"
)

// DefaultFileName is the database file created under the data directory.
const DefaultFileName = "shards.db"

// Ensure Store implements the interface.
var _ driven.ShardSource = (*Store)(nil)

// Store persists shards and loads them back as a shard set.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the shard database at path.
// If path is empty, defaults to ~/.shardcat/data/shards.db.
func NewStore(path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, ".shardcat", "data", DefaultFileName)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	// Pragmas in the DSN apply to every pooled connection.
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: path,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Name describes the source for logs.
func (s *Store) Name() string {
	return "sqlite:" + s.path
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// SaveShard stores a shard at the given priority, replacing any shard with
// the same family ID. Records are written in authored order.
func (s *Store) SaveShard(ctx context.Context, shard domain.Shard, priority int) error {
	if strings.TrimSpace(shard.FamilyID) == "" {
		return fmt.Errorf("%w: shard family is empty", domain.ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := deleteFamily(ctx, tx, shard.FamilyID); err != nil {
		return fmt.Errorf("replacing shard: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO shards (family_id, priority, origin, updated_at)
		VALUES (?, ?, ?, ?)
	`, shard.FamilyID, priority, shard.Origin, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving shard: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO shard_records (family_id, seq, body) VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing record insert: %w", err)
	}
	defer stmt.Close()

	for seq, record := range shard.Records {
		body, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshalling record %d: %w", seq, err)
		}
		if _, err := stmt.ExecContext(ctx, shard.FamilyID, seq, string(body)); err != nil {
			return fmt.Errorf("saving record %d: %w", seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing shard: %w", err)
	}
	return nil
}

// DeleteShard removes a shard and its records.
func (s *Store) DeleteShard(ctx context.Context, familyID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var n int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM shards WHERE family_id = ?`, familyID).Scan(&n); err != nil {
		return fmt.Errorf("deleting shard: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	if err := deleteFamily(ctx, tx, familyID); err != nil {
		return fmt.Errorf("deleting shard: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delete: %w", err)
	}
	return nil
}

// deleteFamily removes a family and its records. Records are deleted
// explicitly so removal does not depend on the foreign key cascade.
func deleteFamily(ctx context.Context, tx *sql.Tx, familyID string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM shard_records WHERE family_id = ?`, familyID); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, `DELETE FROM shards WHERE family_id = ?`, familyID)
	return err
}

// Load returns every stored shard ordered by priority, then family ID.
func (s *Store) Load(ctx context.Context) ([]domain.Shard, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT family_id, origin FROM shards ORDER BY priority, family_id
	`)
	if err != nil {
		return nil, fmt.Errorf("listing shards: %w", err)
	}

	var shards []domain.Shard
	for rows.Next() {
		var shard domain.Shard
		var origin string
		if err := rows.Scan(&shard.FamilyID, &origin); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning shard: %w", err)
		}
		shard.Origin = origin
		if shard.Origin == "" {
			shard.Origin = s.Name() + "#" + shard.FamilyID
		}
		shards = append(shards, shard)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating shards: %w", err)
	}
	rows.Close()

	for i := range shards {
		records, err := s.loadRecords(ctx, shards[i].FamilyID)
		if err != nil {
			return nil, err
		}
		shards[i].Records = records
	}

	return shards, nil
}

func (s *Store) loadRecords(ctx context.Context, familyID string) ([]domain.RawRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, body FROM shard_records WHERE family_id = ? ORDER BY seq
	`, familyID)
	if err != nil {
		return nil, fmt.Errorf("listing records of %s: %w", familyID, err)
	}
	defer rows.Close()

	records := []domain.RawRecord{}
	for rows.Next() {
		var seq int
		var body string
		if err := rows.Scan(&seq, &body); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}

		var record map[string]any
		if err := json.Unmarshal([]byte(body), &record); err != nil {
			return nil, fmt.Errorf("decoding %s record %d: %w", familyID, seq, err)
		}
		if record == nil {
			return nil, fmt.Errorf("%w: %s record %d is not an object", domain.ErrInvalidInput, familyID, seq)
		}
		records = append(records, domain.RawRecord(record))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}

	return records, nil
}

// Families lists stored family IDs in load order.
func (s *Store) Families(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT family_id FROM shards ORDER BY priority, family_id`)
	if err != nil {
		return nil, fmt.Errorf("listing shards: %w", err)
	}
	defer rows.Close()

	var families []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning shard: %w", err)
		}
		families = append(families, id)
	}
	return families, rows.Err()
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_shards.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}
