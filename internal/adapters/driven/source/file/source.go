package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/custodia-labs/shardcat/internal/core/domain"
	"github.com/custodia-labs/shardcat/internal/core/ports/driven"
	"github.com/custodia-labs/shardcat/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.ShardSource = (*Source)(nil)

// Source loads every shard file in one directory. Subdirectories are
// ignored.
type Source struct {
	dir   string
	order []string
}

// Option configures a Source.
type Option func(*Source)

// WithOrder puts the named families first, in the given order. Families
// not listed follow by file name.
func WithOrder(families ...string) Option {
	return func(s *Source) {
		s.order = append([]string(nil), families...)
	}
}

// New creates a directory source.
func New(dir string, opts ...Option) *Source {
	s := &Source{dir: dir}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name describes the source for logs.
func (s *Source) Name() string {
	return "dir:" + s.dir
}

// Dir returns the watched directory.
func (s *Source) Dir() string {
	return s.dir
}

// Load reads and decodes every shard file. Two files declaring the same
// family are rejected.
func (s *Source) Load(ctx context.Context) ([]domain.Shard, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading shard directory: %w", err)
	}

	var shards []domain.Shard
	seen := make(map[string]string)
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || !IsShardFile(entry.Name()) {
			continue
		}

		shard, err := LoadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[shard.FamilyID]; dup {
			return nil, fmt.Errorf("%w: family %q declared by %s and %s",
				domain.ErrInvalidInput, shard.FamilyID, prev, shard.Origin)
		}
		seen[shard.FamilyID] = shard.Origin
		shards = append(shards, shard)
	}

	s.sort(shards)
	logger.Debug("loaded %d shard files from %s", len(shards), s.dir)
	return shards, nil
}

// Close is a no-op.
func (s *Source) Close() error {
	return nil
}

// sort orders shards by configured rank, then file name.
func (s *Source) sort(shards []domain.Shard) {
	rank := make(map[string]int, len(s.order))
	for i, family := range s.order {
		if _, ok := rank[family]; !ok {
			rank[family] = i
		}
	}
	sort.SliceStable(shards, func(i, j int) bool {
		ri, iok := rank[shards[i].FamilyID]
		rj, jok := rank[shards[j].FamilyID]
		switch {
		case iok && jok:
			return ri < rj
		case iok != jok:
			return iok
		default:
			return filepath.Base(shards[i].Origin) < filepath.Base(shards[j].Origin)
		}
	})
}

// LoadFile reads and decodes a single shard file.
func LoadFile(path string) (domain.Shard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Shard{}, fmt.Errorf("reading shard file: %w", err)
	}
	return Decode(path, data)
}
