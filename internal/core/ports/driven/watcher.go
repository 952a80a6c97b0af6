package driven

import (
	"context"
	"time"
)

// ChangeEvent reports that shard content changed on disk.
type ChangeEvent struct {
	// Path is the changed file.
	Path string

	// Op is the filesystem operation ("write", "create", "remove", "rename").
	Op string

	// At is when the change was observed.
	At time.Time
}

// ChangeWatcher observes shard storage for changes.
type ChangeWatcher interface {
	// Watch starts watching and delivers events until ctx is done.
	// The channel is closed when watching stops.
	Watch(ctx context.Context) (<-chan ChangeEvent, error)

	// Close stops the watcher and releases resources.
	Close() error
}
