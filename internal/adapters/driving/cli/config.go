package cli

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// settingKind is the value type of a configuration key.
type settingKind int

const (
	kindString settingKind = iota
	kindInt
	kindBool
	kindList
)

// settingKeys lists the keys `config set` accepts.
var settingKeys = map[string]settingKind{
	"shards.dir":              kindString,
	"shards.sqlite":           kindString,
	"shards.order":            kindList,
	"shards.watch":            kindBool,
	"shards.debounce_ms":      kindInt,
	"shards.min_reload_ms":    kindInt,
	"search.default_limit":    kindInt,
	"search.max_limit":        kindInt,
	"adapters.default_domain": kindString,
	"log.verbose":             kindBool,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and change settings",
	Long: `View and change settings stored in the shardcat config file.

Keys:
  shards.dir               directory of shard files
  shards.sqlite            SQLite shard store path
  shards.order             comma-separated family priority order
  shards.watch             rebuild on shard changes (true/false)
  shards.debounce_ms       quiet period before a rebuild
  shards.min_reload_ms     minimum time between watch rebuilds
  search.default_limit     default page size
  search.max_limit         largest page size accepted
  adapters.default_domain  domain for records that name none
  log.verbose              verbose logging (true/false)`,
	RunE: runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func configStore() error {
	if services == nil || services.ConfigStore == nil {
		return errors.New("config store not configured")
	}
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	if err := configStore(); err != nil {
		return err
	}
	keys := services.ConfigStore.Keys()
	if len(keys) == 0 {
		cmd.Println("No settings stored; defaults apply.")
		return nil
	}
	for _, k := range keys {
		v, _ := services.ConfigStore.Get(k)
		cmd.Printf("%s = %s\n", k, formatSetting(v))
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if err := configStore(); err != nil {
		return err
	}
	v, ok := services.ConfigStore.Get(args[0])
	if !ok {
		return fmt.Errorf("%s is not set", args[0])
	}
	cmd.Println(formatSetting(v))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := configStore(); err != nil {
		return err
	}
	key := strings.ToLower(args[0])
	value, err := parseSetting(key, args[1])
	if err != nil {
		return err
	}
	if err := services.ConfigStore.Set(key, value); err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}
	cmd.Printf("%s = %s\n", key, formatSetting(value))
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if err := configStore(); err != nil {
		return err
	}
	cmd.Println(services.ConfigStore.Path())
	return nil
}

// parseSetting converts a command-line value to the key's type.
func parseSetting(key, raw string) (any, error) {
	kind, ok := settingKeys[key]
	if !ok {
		known := make([]string, 0, len(settingKeys))
		for k := range settingKeys {
			known = append(known, k)
		}
		sort.Strings(known)
		return nil, fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(known, ", "))
	}

	switch kind {
	case kindInt:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s must be an integer", key)
		}
		return n, nil
	case kindBool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%s must be true or false", key)
		}
		return b, nil
	case kindList:
		var items []string
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				items = append(items, part)
			}
		}
		return items, nil
	default:
		return strings.TrimSpace(raw), nil
	}
}

func formatSetting(v any) string {
	switch x := v.(type) {
	case []string:
		return strings.Join(x, ",")
	case []any:
		parts := make([]string, len(x))
		for i, item := range x {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(v)
	}
}
