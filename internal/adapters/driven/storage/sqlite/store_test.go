package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shardcat/internal/core/domain"
)

// setupTestStore creates a SQLite store in a temporary directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(filepath.Join(t.TempDir(), "nested", DefaultFileName))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })

	return store
}

func TestNewStore_Migrates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)

	store, err := NewStore(path)
	require.NoError(t, err)
	assert.Equal(t, path, store.Path())
	assert.Equal(t, "sqlite:"+path, store.Name())
	require.NoError(t, store.Close())

	// Reopening must not re-run applied migrations.
	store, err = NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Close())
}

func TestStore_SaveAndLoad(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	tools := domain.Shard{
		FamilyID: "tools",
		Origin:   "tools.json",
		Records: []domain.RawRecord{
			{"name": "Otter", "rating": 4.5, "tags": []any{"audio"}},
			{"name": "Whisper", "users": 1000.0},
		},
	}
	repos := domain.Shard{
		FamilyID: "repos",
		Records:  []domain.RawRecord{{"name": "whisper", "stars": 50000.0}},
	}

	require.NoError(t, store.SaveShard(ctx, repos, 2))
	require.NoError(t, store.SaveShard(ctx, tools, 1))

	shards, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, shards, 2)

	assert.Equal(t, "tools", shards[0].FamilyID)
	assert.Equal(t, "tools.json", shards[0].Origin)
	assert.Equal(t, tools.Records, shards[0].Records)

	assert.Equal(t, "repos", shards[1].FamilyID)
	assert.Equal(t, store.Name()+"#repos", shards[1].Origin)
	assert.Equal(t, repos.Records, shards[1].Records)
}

func TestStore_SaveShardReplaces(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveShard(ctx, domain.Shard{
		FamilyID: "tools",
		Records:  []domain.RawRecord{{"name": "A"}, {"name": "B"}},
	}, 1))
	require.NoError(t, store.SaveShard(ctx, domain.Shard{
		FamilyID: "tools",
		Records:  []domain.RawRecord{{"name": "C"}},
	}, 1))

	shards, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, shards, 1)
	assert.Equal(t, []domain.RawRecord{{"name": "C"}}, shards[0].Records)
}

func TestStore_SaveShardEmptyFamily(t *testing.T) {
	store := setupTestStore(t)

	err := store.SaveShard(context.Background(), domain.Shard{FamilyID: " "}, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStore_EmptyShardHasNoRecords(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveShard(ctx, domain.Shard{FamilyID: "empty"}, 0))

	shards, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, shards, 1)
	assert.Empty(t, shards[0].Records)
	assert.NotNil(t, shards[0].Records)
}

func TestStore_DeleteShard(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveShard(ctx, domain.Shard{
		FamilyID: "tools",
		Records:  []domain.RawRecord{{"name": "A"}},
	}, 0))

	require.NoError(t, store.DeleteShard(ctx, "tools"))
	assert.ErrorIs(t, store.DeleteShard(ctx, "tools"), domain.ErrNotFound)

	families, err := store.Families(ctx)
	require.NoError(t, err)
	assert.Empty(t, families)

	var count int
	require.NoError(t, store.db.QueryRow(`SELECT COUNT(*) FROM shard_records`).Scan(&count))
	assert.Zero(t, count, "records cascade with their shard")
}

func TestStore_ForeignKeysOnEveryConnection(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	first, err := store.db.Conn(ctx)
	require.NoError(t, err)
	defer first.Close()
	second, err := store.db.Conn(ctx)
	require.NoError(t, err)
	defer second.Close()

	for _, conn := range []*sql.Conn{first, second} {
		var enabled int
		require.NoError(t, conn.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&enabled))
		assert.Equal(t, 1, enabled)
	}
}

func TestStore_ReplaceWithoutCascade(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	store.db.SetMaxOpenConns(1)
	_, err := store.db.Exec(`PRAGMA foreign_keys = OFF`)
	require.NoError(t, err)

	require.NoError(t, store.SaveShard(ctx, domain.Shard{
		FamilyID: "tools",
		Records:  []domain.RawRecord{{"name": "A"}, {"name": "B"}},
	}, 0))
	require.NoError(t, store.SaveShard(ctx, domain.Shard{
		FamilyID: "tools",
		Records:  []domain.RawRecord{{"name": "C"}},
	}, 0))

	shards, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, shards, 1)
	assert.Equal(t, []domain.RawRecord{{"name": "C"}}, shards[0].Records)

	require.NoError(t, store.DeleteShard(ctx, "tools"))
	var count int
	require.NoError(t, store.db.QueryRow(`SELECT COUNT(*) FROM shard_records`).Scan(&count))
	assert.Zero(t, count)
}

func TestStore_LoadRejectsNonObjectRecord(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveShard(ctx, domain.Shard{FamilyID: "tools"}, 0))
	_, err := store.db.Exec(`INSERT INTO shard_records (family_id, seq, body) VALUES ('tools', 0, 'null')`)
	require.NoError(t, err)

	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStore_Families(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveShard(ctx, domain.Shard{FamilyID: "b"}, 1))
	require.NoError(t, store.SaveShard(ctx, domain.Shard{FamilyID: "a"}, 1))
	require.NoError(t, store.SaveShard(ctx, domain.Shard{FamilyID: "z"}, 0))

	families, err := store.Families(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "a", "b"}, families)
}
