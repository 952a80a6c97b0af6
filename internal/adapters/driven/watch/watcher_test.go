package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/custodia-labs/shardcat/internal/core/ports/driven"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func nextEvent(t *testing.T, events <-chan driven.ChangeEvent) driven.ChangeEvent {
	t.Helper()
	select {
	case ev, ok := <-events:
		require.True(t, ok, "channel closed")
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("no event received")
		return driven.ChangeEvent{}
	}
}

func TestWatcher_ReportsFilteredChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, WithFilter(func(path string) bool {
		return strings.HasSuffix(path, ".json")
	}))
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := w.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tools.json"), []byte("[]"), 0o600))

	ev := nextEvent(t, events)
	assert.Equal(t, filepath.Join(dir, "tools.json"), ev.Path)
	assert.Contains(t, []string{OpCreate, OpWrite}, ev.Op)
	assert.False(t, ev.At.IsZero())
}

func TestWatcher_ClosesOnCancel(t *testing.T) {
	w, err := New(t.TempDir())
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	events, err := w.Watch(ctx)
	require.NoError(t, err)

	cancel()
	for range events {
	}
}

func TestWatcher_ClosesOnClose(t *testing.T) {
	w, err := New(t.TempDir())
	require.NoError(t, err)

	events, err := w.Watch(context.Background())
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	for range events {
	}
}

func TestWatcher_WatchErrors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		w, err := New(filepath.Join(t.TempDir(), "nope"))
		require.NoError(t, err)
		defer w.Close()

		_, err = w.Watch(context.Background())
		assert.Error(t, err)
	})

	t.Run("twice", func(t *testing.T) {
		w, err := New(t.TempDir())
		require.NoError(t, err)
		defer w.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		_, err = w.Watch(ctx)
		require.NoError(t, err)
		_, err = w.Watch(ctx)
		assert.Error(t, err)
	})

	t.Run("after close", func(t *testing.T) {
		w, err := New(t.TempDir())
		require.NoError(t, err)
		require.NoError(t, w.Close())

		_, err = w.Watch(context.Background())
		assert.Error(t, err)
	})
}

func TestOpName(t *testing.T) {
	tests := []struct {
		op   fsnotify.Op
		want string
	}{
		{fsnotify.Create, OpCreate},
		{fsnotify.Write, OpWrite},
		{fsnotify.Remove, OpRemove},
		{fsnotify.Rename, OpRename},
		{fsnotify.Create | fsnotify.Write, OpCreate},
		{fsnotify.Chmod, ""},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, opName(tt.op))
		})
	}
}
