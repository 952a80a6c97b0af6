package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/shardcat/internal/core/domain"
	"github.com/custodia-labs/shardcat/internal/core/ports/driven"
	"github.com/custodia-labs/shardcat/internal/core/ports/driving"
	"github.com/custodia-labs/shardcat/internal/logger"
)

// Ensure ReloadService implements the interface.
var _ driving.ReloadService = (*ReloadService)(nil)

// DefaultDebounce is how long Watch waits for changes to settle.
const DefaultDebounce = 250 * time.Millisecond

// ReloadService rebuilds the catalog from shard sources.
// Shard sets are swapped whole; there is no incremental patching.
type ReloadService struct {
	catalog  driving.CatalogService
	sources  []driven.ShardSource
	watcher  driven.ChangeWatcher
	debounce time.Duration
	limiter  *rate.Limiter
}

// ReloadOption configures a ReloadService.
type ReloadOption func(*ReloadService)

// WithDebounce sets the quiet period between the last change and a reload.
func WithDebounce(d time.Duration) ReloadOption {
	return func(r *ReloadService) {
		r.debounce = d
	}
}

// WithWatcher enables Watch.
func WithWatcher(w driven.ChangeWatcher) ReloadOption {
	return func(r *ReloadService) {
		r.watcher = w
	}
}

// WithMinInterval spaces watch-triggered reloads at least d apart.
// Zero disables the limit.
func WithMinInterval(d time.Duration) ReloadOption {
	return func(r *ReloadService) {
		if d <= 0 {
			r.limiter = nil
			return
		}
		r.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// NewReloadService creates a reload service. Sources are loaded in order,
// so shards of earlier sources take merge priority.
func NewReloadService(
	catalog driving.CatalogService, sources []driven.ShardSource, opts ...ReloadOption,
) *ReloadService {
	r := &ReloadService{
		catalog:  catalog,
		sources:  sources,
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reload loads every source and ingests the combined shard set.
func (r *ReloadService) Reload(ctx context.Context) (*domain.IngestionReport, error) {
	if len(r.sources) == 0 {
		return nil, fmt.Errorf("reload: %w: no shard sources configured", domain.ErrInvalidInput)
	}

	var shards []domain.Shard
	for _, src := range r.sources {
		loaded, err := src.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", src.Name(), err)
		}
		logger.Debug("Loaded %d shards from %s", len(loaded), src.Name())
		shards = append(shards, loaded...)
	}

	return r.catalog.Ingest(ctx, shards)
}

// Watch reloads after every debounced burst of changes until ctx is done.
// Failed reloads are logged and the previous catalog keeps serving.
func (r *ReloadService) Watch(ctx context.Context) error {
	if r.watcher == nil {
		return fmt.Errorf("watch: %w: no change watcher configured", domain.ErrInvalidInput)
	}

	events, err := r.watcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	timer := time.NewTimer(r.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			logger.Debug("Change: %s %s", ev.Op, ev.Path)
			timer.Reset(r.debounce)

		case <-timer.C:
			if r.limiter != nil {
				if err := r.limiter.Wait(ctx); err != nil {
					return nil
				}
			}
			report, err := r.Reload(ctx)
			switch {
			case errors.Is(err, domain.ErrIngestInProgress):
				logger.Debug("Reload skipped: ingestion already running")
				timer.Reset(r.debounce)
			case err != nil:
				logger.Warn("Reload failed, keeping previous catalog: %v", err)
			default:
				logger.Info("Reloaded: %d entities, %d skipped records", report.Entities, report.Skipped())
			}
		}
	}
}
