// Package config loads typed runtime configuration from the shardcat TOML
// file with SHARDCAT_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/custodia-labs/shardcat/internal/core/domain"
	"github.com/custodia-labs/shardcat/internal/core/fields"
)

// Config is the runtime configuration.
type Config struct {
	Shards   ShardsConfig   `toml:"shards"`
	Search   SearchConfig   `toml:"search"`
	Adapters AdaptersConfig `toml:"adapters"`
	Log      LogConfig      `toml:"log"`

	// Path is the file the configuration was read from, if any.
	Path string `toml:"-"`
}

// ShardsConfig locates shard data.
type ShardsConfig struct {
	Dir         string   `toml:"dir" env:"SHARDCAT_SHARDS_DIR" env-default:""`
	SQLite      string   `toml:"sqlite" env:"SHARDCAT_SHARDS_SQLITE" env-default:""`
	Order       []string `toml:"order" env:"SHARDCAT_SHARDS_ORDER" env-separator:","`
	Watch       bool     `toml:"watch" env:"SHARDCAT_SHARDS_WATCH" env-default:"false"`
	DebounceMS  int      `toml:"debounce_ms" env:"SHARDCAT_SHARDS_DEBOUNCE_MS" env-default:"250"`
	MinReloadMS int      `toml:"min_reload_ms" env:"SHARDCAT_SHARDS_MIN_RELOAD_MS" env-default:"1000"`
}

// Debounce returns the watch debounce interval.
func (c ShardsConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// MinReload returns the minimum interval between watch-triggered rebuilds.
func (c ShardsConfig) MinReload() time.Duration {
	return time.Duration(c.MinReloadMS) * time.Millisecond
}

// SearchConfig bounds query pagination.
type SearchConfig struct {
	DefaultLimit int `toml:"default_limit" env:"SHARDCAT_SEARCH_DEFAULT_LIMIT" env-default:"20"`
	MaxLimit     int `toml:"max_limit" env:"SHARDCAT_SEARCH_MAX_LIMIT" env-default:"100"`
}

// AdaptersConfig configures shard adapters.
type AdaptersConfig struct {
	DefaultDomain string `toml:"default_domain" env:"SHARDCAT_ADAPTERS_DEFAULT_DOMAIN" env-default:"tool"`
}

// LogConfig configures logging.
type LogConfig struct {
	Verbose bool `toml:"verbose" env:"SHARDCAT_LOG_VERBOSE" env-default:"false"`
}

// Dir returns ~/.shardcat.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".shardcat"), nil
}

// DefaultPath returns ~/.shardcat/config.toml.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads path (the default path when empty) and applies environment
// overrides. A missing file is not an error: defaults and the environment
// apply.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := &Config{}
	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		cfg.Path = path
	case errors.Is(statErr, os.ErrNotExist):
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("reading environment: %w", err)
		}
	default:
		return nil, fmt.Errorf("checking %s: %w", path, statErr)
	}

	if err := cfg.resolve(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolve expands ~ in paths and fills the default shard directory.
func (c *Config) resolve() error {
	var err error
	if c.Shards.Dir, err = expandHome(c.Shards.Dir); err != nil {
		return err
	}
	if c.Shards.SQLite, err = expandHome(c.Shards.SQLite); err != nil {
		return err
	}
	if c.Shards.Dir == "" && c.Shards.SQLite == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		c.Shards.Dir = filepath.Join(dir, "shards")
	}
	return nil
}

// Validate checks limits and the default domain.
func (c *Config) Validate() error {
	if c.Search.DefaultLimit <= 0 {
		return fmt.Errorf("%w: search.default_limit must be positive", domain.ErrInvalidInput)
	}
	if c.Search.MaxLimit < c.Search.DefaultLimit {
		return fmt.Errorf("%w: search.max_limit must be at least search.default_limit", domain.ErrInvalidInput)
	}
	if c.Shards.MinReloadMS < 0 {
		return fmt.Errorf("%w: shards.min_reload_ms must not be negative", domain.ErrInvalidInput)
	}
	if c.Shards.DebounceMS < 0 {
		return fmt.Errorf("%w: shards.debounce_ms must not be negative", domain.ErrInvalidInput)
	}
	if _, err := c.DefaultDomain(); err != nil {
		return err
	}
	return nil
}

// DefaultDomain parses adapters.default_domain.
func (c *Config) DefaultDomain() (domain.EntityDomain, error) {
	d := fields.CoerceDomain(c.Adapters.DefaultDomain)
	if d == "" {
		return "", fmt.Errorf("%w: unknown adapters.default_domain %q",
			domain.ErrInvalidInput, c.Adapters.DefaultDomain)
	}
	return d, nil
}

func expandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}
