// Command shardcat merges shard files into a queryable catalog.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	configfile "github.com/custodia-labs/shardcat/internal/adapters/driven/config/file"
	"github.com/custodia-labs/shardcat/internal/adapters/driven/source/file"
	"github.com/custodia-labs/shardcat/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/shardcat/internal/adapters/driven/watch"
	"github.com/custodia-labs/shardcat/internal/adapters/driving/cli"
	"github.com/custodia-labs/shardcat/internal/config"
	"github.com/custodia-labs/shardcat/internal/core/ports/driven"
	"github.com/custodia-labs/shardcat/internal/core/services"
	"github.com/custodia-labs/shardcat/internal/logger"
	"github.com/custodia-labs/shardcat/internal/shards/countries"
	"github.com/custodia-labs/shardcat/internal/shards/generic"
	"github.com/custodia-labs/shardcat/internal/shards/repos"
	"github.com/custodia-labs/shardcat/internal/shards/resources"
	"github.com/custodia-labs/shardcat/internal/shards/tools"
)

// version is set by the linker.
var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cli.SetVersion(version)
	cli.SetInitializer(initServices)

	if err := cli.Execute(ctx); err != nil {
		os.Exit(1)
	}
}

// initServices wires the catalog, its shard sources and the settings store.
func initServices(opts cli.Options) (*cli.Services, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger.SetVerbose(opts.Verbose || cfg.Log.Verbose)

	defaultDomain, err := cfg.DefaultDomain()
	if err != nil {
		return nil, err
	}

	registry := services.NewAdapterRegistry(
		countries.New(),
		tools.New(),
		repos.New(),
		resources.New(),
		generic.New(generic.WithDefaultDomain(defaultDomain)),
	)
	catalog := services.NewCatalogService(
		services.NewPipeline(registry),
		services.WithMaxLimit(cfg.Search.MaxLimit),
	)

	var (
		sources []driven.ShardSource
		closers []func() error
		store   *sqlite.Store
	)
	closeAll := func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i]())
		}
		return errors.Join(errs...)
	}

	if cfg.Shards.Dir != "" {
		sources = append(sources, file.New(cfg.Shards.Dir, file.WithOrder(cfg.Shards.Order...)))
	}
	if cfg.Shards.SQLite != "" {
		store, err = sqlite.NewStore(cfg.Shards.SQLite)
		if err != nil {
			return nil, fmt.Errorf("opening shard store: %w", err)
		}
		sources = append(sources, store)
		closers = append(closers, store.Close)
	}

	reloadOpts := []services.ReloadOption{
		services.WithDebounce(cfg.Shards.Debounce()),
		services.WithMinInterval(cfg.Shards.MinReload()),
	}
	if cfg.Shards.Dir != "" {
		if _, statErr := os.Stat(cfg.Shards.Dir); statErr == nil {
			w, err := watch.New(cfg.Shards.Dir, watch.WithFilter(file.IsShardFile))
			if err != nil {
				logger.Warn("shard watching unavailable: %v", err)
			} else {
				reloadOpts = append(reloadOpts, services.WithWatcher(w))
				closers = append(closers, w.Close)
			}
		}
	}
	reload := services.NewReloadService(catalog, sources, reloadOpts...)

	settingsDir := ""
	if opts.ConfigPath != "" {
		settingsDir = filepath.Dir(opts.ConfigPath)
	}
	settings, err := configfile.NewConfigStore(settingsDir)
	if err != nil {
		_ = closeAll()
		return nil, fmt.Errorf("opening settings: %w", err)
	}

	s := &cli.Services{
		Catalog:     catalog,
		Reload:      reload,
		ConfigStore: settings,
		LoadShard:   file.LoadFile,
		Watch:       cfg.Shards.Watch,
		Limits: cli.Limits{
			Default: cfg.Search.DefaultLimit,
			Max:     cfg.Search.MaxLimit,
		},
		Close: closeAll,
	}
	if store != nil {
		s.ShardStore = store
	}
	logger.Debug("Configured %d shard sources", len(sources))
	return s, nil
}
