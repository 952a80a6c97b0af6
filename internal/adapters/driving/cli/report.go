package cli

import (
	"github.com/spf13/cobra"
)

var reportJSON bool

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the full ingestion report",
	Long: `Ingests all shards and prints the ingestion report in full: per-family
counts, every skipped record with the reason, and every merge conflict.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "output the report as JSON")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	catalog, err := loadedCatalog(cmd.Context())
	if err != nil {
		return err
	}

	report, err := catalog.Report(cmd.Context())
	if err != nil {
		return err
	}

	if reportJSON {
		return writeJSON(cmd, report)
	}

	printReportSummary(cmd, report)

	if len(report.ValidationErrors) > 0 {
		cmd.Println()
		cmd.Println("Skipped records:")
		for _, v := range report.ValidationErrors {
			cmd.Printf("  %s\n", v.Error())
		}
	}

	if len(report.Conflicts) > 0 {
		cmd.Println()
		cmd.Println("Conflicts:")
		for _, n := range report.Conflicts {
			cmd.Printf("  %s\n", n.String())
		}
	}
	return nil
}
