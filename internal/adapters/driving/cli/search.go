package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shardcat/internal/core/domain"
)

var (
	searchLimit  int
	searchOffset int
	searchSort   string
	searchFacets []string
	searchJSON   bool
)

var searchCmd = &cobra.Command{
	Use:   "search [keywords...]",
	Short: "Search the catalog",
	Long: `Searches merged catalog entities by keyword and facet.

Every keyword must match a token of an entity's name, description or tags.
Facet filters take the form dimension=value and may be repeated; values of
the same dimension are OR'd, dimensions are AND'd.

Facets: domain, category, pricing, difficulty, language, rating.

Examples:
  shardcat search meeting
  shardcat search --facet domain=tool --facet pricing=free --sort rating
  shardcat search python -n 5 --offset 5`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (default search.default_limit)")
	searchCmd.Flags().IntVar(&searchOffset, "offset", 0, "number of results to skip")
	searchCmd.Flags().StringVarP(&searchSort, "sort", "s", string(domain.SortRelevance),
		"sort order: relevance, rating, popularity, name")
	searchCmd.Flags().StringArrayVarP(&searchFacets, "facet", "f", nil, "facet filter dimension=value (repeatable)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	req, err := buildQuery(args, searchFacets, searchSort, searchOffset, searchLimit)
	if err != nil {
		return err
	}

	catalog, err := loadedCatalog(cmd.Context())
	if err != nil {
		return err
	}

	result, err := catalog.Query(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return writeJSON(cmd, result)
	}
	return outputSearchTable(cmd, req, result)
}

// buildQuery assembles a query request from command-line values.
func buildQuery(keywords, facets []string, sort string, offset, limit int) (domain.QueryRequest, error) {
	if limit == 0 {
		limit = limits().Default
	}
	req := domain.QueryRequest{
		Keywords: keywords,
		Sort:     domain.SortOrder(strings.ToLower(sort)),
		Offset:   offset,
		Limit:    limit,
	}

	parsed, err := parseFacets(facets)
	if err != nil {
		return domain.QueryRequest{}, err
	}
	req.Facets = parsed
	return req, nil
}

// parseFacets turns dimension=value pairs into a facet filter.
func parseFacets(pairs []string) (map[domain.Facet][]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	facets := make(map[domain.Facet][]string)
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.TrimSpace(value)
		if !ok || name == "" || value == "" {
			return nil, fmt.Errorf("%w: facet filter %q must be dimension=value", domain.ErrInvalidQuery, pair)
		}
		f := domain.Facet(name)
		facets[f] = append(facets[f], value)
	}
	return facets, nil
}

func outputSearchTable(cmd *cobra.Command, req domain.QueryRequest, result *domain.QueryResult) error {
	if result.Total == 0 {
		cmd.Println("No results found.")
		return nil
	}

	out := cmd.OutOrStdout()
	t := newTable(out, "#", "Name", "Domain", "Category", "Pricing", "Rating", "Popularity", "ID")
	for i := range result.Hits {
		e := &result.Hits[i].Entity
		t.Row(
			strconv.Itoa(req.Offset+i+1),
			truncate(e.Name, 32),
			string(e.Domain),
			truncate(e.Category, 20),
			pricingLabel(e.PricingTier),
			formatRating(e.Rating),
			formatPopularity(e.Popularity),
			e.ID,
		)
	}
	cmd.Println(t.String())

	if len(result.Hits) == 0 {
		cmd.Printf("No results on this page (%d total).\n", result.Total)
		return nil
	}
	cmd.Printf("Showing %d-%d of %d\n", req.Offset+1, req.Offset+len(result.Hits), result.Total)
	return nil
}
