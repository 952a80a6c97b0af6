// Package cli provides the shardcat command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shardcat/internal/core/domain"
	"github.com/custodia-labs/shardcat/internal/core/ports/driven"
	"github.com/custodia-labs/shardcat/internal/core/ports/driving"
	"github.com/custodia-labs/shardcat/internal/logger"
)

// version is set at build time.
var version = "dev"

// Global flags.
var (
	configPath string
	verbose    bool
)

// ShardStore persists shards for later ingestion.
type ShardStore interface {
	SaveShard(ctx context.Context, shard domain.Shard, priority int) error
	Families(ctx context.Context) ([]string, error)
	Path() string
}

// ShardLoader reads one shard file.
type ShardLoader func(path string) (domain.Shard, error)

// Limits are the search pagination bounds.
type Limits struct {
	Default int
	Max     int
}

// Services holds everything the commands depend on.
type Services struct {
	Catalog     driving.CatalogService
	Reload      driving.ReloadService
	ConfigStore driven.ConfigStore
	ShardStore  ShardStore
	LoadShard   ShardLoader
	Limits      Limits

	// Watch enables watching by default, as if --watch were passed.
	Watch bool

	// Close releases resources held by the services. May be nil.
	Close func() error
}

// Options are the global flag values handed to the initializer.
type Options struct {
	ConfigPath string
	Verbose    bool
}

// Initializer builds services once flags are parsed.
type Initializer func(opts Options) (*Services, error)

var (
	services    *Services
	initializer Initializer
)

var rootCmd = &cobra.Command{
	Use:   "shardcat",
	Short: "Merge, index and query shard catalogs",
	Long: `shardcat merges independently authored data shards (countries, tools,
repositories, learning resources) into one deduplicated catalog and answers
keyword and facet queries against it.

Shards are read from a directory of JSON, YAML or TOML files and from an
optional SQLite shard store. Earlier shards win merge conflicts.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.shardcat/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// SetVersion sets the version reported by `shardcat version`.
func SetVersion(v string) {
	version = v
}

// SetServices installs services directly, bypassing the initializer.
func SetServices(s *Services) {
	services = s
}

// SetInitializer sets the function that builds services after flag
// parsing.
func SetInitializer(fn Initializer) {
	initializer = fn
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	if verbose {
		logger.SetVerbose(true)
	}
	if services != nil || initializer == nil || !needsServices(cmd) {
		return nil
	}

	s, err := initializer(Options{ConfigPath: configPath, Verbose: verbose})
	if err != nil {
		return err
	}
	services = s
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if services == nil || services.Close == nil {
		return nil
	}
	err := services.Close()
	services.Close = nil
	return err
}

// needsServices reports whether cmd touches the catalog or settings.
func needsServices(cmd *cobra.Command) bool {
	return cmd.Annotations["services"] != "none"
}

// errNotConfigured is returned when main did not wire services.
var errNotConfigured = errors.New("services not configured")

// loadedCatalog returns the catalog, ingesting from the configured sources
// first when nothing has been loaded yet.
func loadedCatalog(ctx context.Context) (driving.CatalogService, error) {
	if services == nil || services.Catalog == nil {
		return nil, errNotConfigured
	}
	if services.Catalog.Stats(ctx).Ready {
		return services.Catalog, nil
	}
	if services.Reload == nil {
		return nil, domain.ErrCatalogNotReady
	}
	if _, err := services.Reload.Reload(ctx); err != nil {
		return nil, fmt.Errorf("loading shards: %w", err)
	}
	return services.Catalog, nil
}

// limits returns the configured limits with fallbacks.
func limits() Limits {
	l := Limits{Default: 20, Max: 100}
	if services != nil {
		if services.Limits.Default > 0 {
			l.Default = services.Limits.Default
		}
		if services.Limits.Max > 0 {
			l.Max = services.Limits.Max
		}
	}
	return l
}
