// Package watch reports shard file changes using fsnotify.
package watch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/shardcat/internal/core/ports/driven"
	"github.com/custodia-labs/shardcat/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.ChangeWatcher = (*Watcher)(nil)

// Operation names carried by driven.ChangeEvent.
const (
	OpCreate = "create"
	OpWrite  = "write"
	OpRemove = "remove"
	OpRename = "rename"
)

// Watcher watches one directory, non-recursively.
type Watcher struct {
	dir    string
	filter func(path string) bool
	now    func() time.Time

	mu      sync.Mutex
	fs      *fsnotify.Watcher
	started bool
	closed  bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithFilter only reports paths for which keep returns true.
func WithFilter(keep func(path string) bool) Option {
	return func(w *Watcher) {
		w.filter = keep
	}
}

// New creates a watcher for dir. Watching starts with Watch.
func New(dir string, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		dir:    dir,
		filter: func(string) bool { return true },
		now:    time.Now,
		fs:     fsw,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Watch starts delivering events. The returned channel is closed when ctx
// is done or the watcher is closed. Watch may be called once.
func (w *Watcher) Watch(ctx context.Context) (<-chan driven.ChangeEvent, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, fmt.Errorf("watcher closed")
	}
	if w.started {
		return nil, fmt.Errorf("watcher already started")
	}
	if err := w.fs.Add(w.dir); err != nil {
		return nil, fmt.Errorf("watching %s: %w", w.dir, err)
	}
	w.started = true

	out := make(chan driven.ChangeEvent, 16)
	go w.run(ctx, out)
	logger.Debug("watching %s", w.dir)
	return out, nil
}

func (w *Watcher) run(ctx context.Context, out chan<- driven.ChangeEvent) {
	defer close(out)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			op := opName(event.Op)
			if op == "" || !w.filter(event.Name) {
				continue
			}
			change := driven.ChangeEvent{Path: event.Name, Op: op, At: w.now()}
			select {
			case out <- change:
			case <-ctx.Done():
				return
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	return w.fs.Close()
}

// opName maps an fsnotify operation to an event name. Chmod is ignored.
func opName(op fsnotify.Op) string {
	switch {
	case op.Has(fsnotify.Create):
		return OpCreate
	case op.Has(fsnotify.Write):
		return OpWrite
	case op.Has(fsnotify.Remove):
		return OpRemove
	case op.Has(fsnotify.Rename):
		return OpRename
	default:
		return ""
	}
}
