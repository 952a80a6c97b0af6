package driven

import (
	"context"

	"github.com/custodia-labs/shardcat/internal/core/domain"
)

// ShardSource loads a complete shard set. The order of the returned
// shards sets their merge priority.
type ShardSource interface {
	// Name describes the source for logs ("dir:/path", "sqlite:/path").
	Name() string

	// Load reads every shard. Records must be fully parsed values.
	Load(ctx context.Context) ([]domain.Shard, error)

	// Close releases resources.
	Close() error
}
