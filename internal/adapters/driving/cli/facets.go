package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shardcat/internal/core/domain"
)

var facetsJSON bool

var facetsCmd = &cobra.Command{
	Use:   "facets [dimension...]",
	Short: "List facet values with entity counts",
	Long: `Lists every value of each facet dimension with the number of catalog
entities holding it. Pass dimension names to restrict the output.`,
	RunE: runFacets,
}

func init() {
	facetsCmd.Flags().BoolVar(&facetsJSON, "json", false, "output facets as JSON")
	rootCmd.AddCommand(facetsCmd)
}

func runFacets(cmd *cobra.Command, args []string) error {
	catalog, err := loadedCatalog(cmd.Context())
	if err != nil {
		return err
	}

	all, err := catalog.Facets(cmd.Context())
	if err != nil {
		return err
	}

	dims := domain.AllFacets()
	if len(args) > 0 {
		dims = nil
		for _, a := range args {
			dims = append(dims, domain.Facet(a))
		}
	}

	if facetsJSON {
		selected := make(map[domain.Facet][]domain.FacetValue, len(dims))
		for _, d := range dims {
			selected[d] = all[d]
		}
		return writeJSON(cmd, selected)
	}

	t := newTable(cmd.OutOrStdout(), "Facet", "Value", "Count")
	for _, d := range dims {
		for _, v := range all[d] {
			t.Row(string(d), v.Value, strconv.Itoa(v.Count))
		}
	}
	cmd.Println(t.String())
	return nil
}
