package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shardcat/internal/core/domain"
)

var (
	ingestWatch bool
	ingestJSON  bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load, merge and index all shards",
	Long: `Loads every shard from the configured sources, merges records that denote
the same entity and builds the search index. Prints a summary of the run.

With --watch, or shards.watch set in the config, keeps running and rebuilds
the catalog whenever a shard file changes.`,
	Args: cobra.NoArgs,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVarP(&ingestWatch, "watch", "w", false, "rebuild on shard changes until interrupted")
	ingestCmd.Flags().BoolVar(&ingestJSON, "json", false, "output the ingestion report as JSON")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	if services == nil || services.Reload == nil {
		return errNotConfigured
	}

	report, err := services.Reload.Reload(cmd.Context())
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	if ingestJSON {
		if err := writeJSON(cmd, report); err != nil {
			return err
		}
	} else {
		printReportSummary(cmd, report)
	}

	if !ingestWatch && !services.Watch {
		return nil
	}

	cmd.Println("Watching for shard changes (Ctrl+C to stop)...")
	err = services.Reload.Watch(cmd.Context())
	if errors.Is(err, domain.ErrInvalidInput) {
		return fmt.Errorf("watching is not available for the configured sources: %w", err)
	}
	return err
}

func printReportSummary(cmd *cobra.Command, r *domain.IngestionReport) {
	t := newTable(cmd.OutOrStdout(), "Priority", "Family", "Adapter", "Records", "Accepted", "Rejected")
	for _, f := range r.Families {
		t.Row(
			strconv.Itoa(f.Priority),
			f.FamilyID,
			f.Adapter,
			strconv.Itoa(f.Records),
			strconv.Itoa(f.Accepted),
			strconv.Itoa(f.Rejected),
		)
	}
	cmd.Println(t.String())

	cmd.Printf("Entities: %d (from %d candidates, %d clusters, %d URL splits)\n",
		r.Entities, r.Candidates, r.Clusters, r.URLSplits)
	cmd.Printf("Skipped records: %d\n", r.Skipped())
	cmd.Printf("Conflicts: %d\n", len(r.Conflicts))
	cmd.Printf("Index tokens: %d\n", r.Tokens)
	cmd.Printf("Completed in %s\n", r.Duration().Round(time.Microsecond))
}
