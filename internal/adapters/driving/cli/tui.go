package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shardcat/internal/adapters/driving/tui"
	"github.com/custodia-labs/shardcat/internal/logger"
)

var tuiWatch bool

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the catalog interactively",
	Long: `Launch the interactive terminal browser.

Search with keywords and dimension=value facet filters, page and sort the
results, open an entity to see which shard supplied each field, browse facet
values and read the ingestion report.

Controls:
  ↑/k, ↓/j  Navigate
  Enter     Search / Open
  →/l, ←/h  Next / previous page
  s         Cycle sort
  Esc       Back
  ctrl+c    Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().BoolVarP(&tuiWatch, "watch", "w", false, "rebuild the catalog when shard files change")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	catalog, err := loadedCatalog(cmd.Context())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if (tuiWatch || services.Watch) && services.Reload != nil {
		go func() {
			if err := services.Reload.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("shard watch stopped: %v", err)
			}
		}()
	}

	app, err := tui.NewApp(&tui.Ports{
		Catalog:  catalog,
		Reload:   services.Reload,
		PageSize: limits().Default,
	})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if err := app.WithContext(ctx).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
