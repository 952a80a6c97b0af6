package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shardcat/internal/core/domain"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show [entity-id]",
	Short: "Show a merged entity",
	Long:  `Prints every field of a merged entity with the shard family each value came from.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "output the entity as JSON")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	catalog, err := loadedCatalog(cmd.Context())
	if err != nil {
		return err
	}

	entity, err := catalog.Entity(cmd.Context(), args[0])
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("entity %s not found", args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to get entity: %w", err)
	}

	if showJSON {
		return writeJSON(cmd, entity)
	}

	printEntity(cmd, entity)
	return nil
}

func printEntity(cmd *cobra.Command, e *domain.Entity) {
	field := func(label, value, provenanceKey string) {
		line := fmt.Sprintf("  %-12s %s", label+":", value)
		if provenanceKey != "" {
			if src := e.ProvenanceOf(provenanceKey); src != "" {
				line += "  (" + src + ")"
			}
		}
		cmd.Println(line)
	}

	cmd.Println(e.Name)
	cmd.Println(strings.Repeat("=", len([]rune(e.Name))))
	field("ID", e.ID, "")
	field("Domain", string(e.Domain), "")
	field("Category", e.Category, "category")
	field("Subcategory", formatOptional(e.Subcategory), "subcategory")
	field("Pricing", pricingLabel(e.PricingTier), "pricing_tier")
	field("Difficulty", string(e.Difficulty), "difficulty")
	field("Rating", formatRating(e.Rating), "")
	field("Popularity", formatPopularity(e.Popularity), "popularity")
	field("Language", formatOptional(e.Language), "language")
	field("URL", formatOptional(e.URL), "url")
	field("Featured", fmt.Sprintf("%t", e.Featured), "")
	field("Tags", strings.Join(e.Tags, ", "), "")
	field("Shards", strings.Join(e.SourceShards, ", "), "")

	if e.Description != nil {
		cmd.Println()
		cmd.Println("  " + *e.Description)
	}

	if len(e.Attributes) > 0 {
		keys := make([]string, 0, len(e.Attributes))
		for k := range e.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		cmd.Println()
		cmd.Println("Attributes:")
		for _, k := range keys {
			field(k, e.Attributes[k], "attributes."+k)
		}
	}

	if len(e.Conflicts) > 0 {
		cmd.Println()
		cmd.Println("Conflicts:")
		for _, n := range e.Conflicts {
			cmd.Printf("  %s: %q (%s) over %q (%s)\n",
				n.Field, n.WinnerValue, n.WinnerFamily, n.LoserValue, n.LoserFamily)
		}
	}
}
