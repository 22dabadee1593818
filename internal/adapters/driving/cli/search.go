package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/developertarun01/weyfar-cli/internal/adapters/driven/config/configvalue"
	"github.com/developertarun01/weyfar-cli/internal/core/domain"
)

var (
	searchParamPairs []string
	searchParamsJSON string
	searchEnhance    bool
	searchJSON       bool
)

var searchCmd = &cobra.Command{
	Use:   "search <kind>",
	Short: "Search the travel-data API",
	Long: `Runs a search of the given kind: flights, hotels, cars or cruises.

Parameters are passed to the API unchanged. Give them as key=value pairs
with --param, as a JSON object with --params, or both (pairs win).

Examples:
  weyfar search flights -p originLocationCode=DEL -p destinationLocationCode=BOM \
    -p departureDate=2026-11-02 -p adults=1 --enhance
  weyfar search hotels --params '{"cityCode":"PAR"}' --json`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: searchKindNames(),
	RunE:      runSearch,
}

func init() {
	searchCmd.Flags().StringArrayVarP(&searchParamPairs, "param", "p", nil, "search parameter as key=value (repeatable)")
	searchCmd.Flags().StringVar(&searchParamsJSON, "params", "", "search parameters as a JSON object")
	searchCmd.Flags().BoolVarP(&searchEnhance, "enhance", "e", false, "add airline names to flight results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	kind := domain.SearchKind(strings.TrimSpace(args[0]))

	params, err := parseSearchParams(searchParamsJSON, searchParamPairs)
	if err != nil {
		return err
	}

	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}
	if searchService == nil {
		return errors.New("search service not configured")
	}

	if searchEnhance {
		if kind != domain.SearchKindFlights {
			return fmt.Errorf("%w: --enhance only applies to flights", domain.ErrInvalidInput)
		}
		flights, err := searchService.SearchAndEnhance(cmd.Context(), params)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		if searchJSON {
			return printJSON(cmd, flights)
		}
		printFlights(cmd, flights)
		return nil
	}

	result, err := searchService.Search(cmd.Context(), kind, params)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if searchJSON {
		return printJSON(cmd, result.Data)
	}
	printResultSummary(cmd, result)
	return nil
}

// parseSearchParams merges a JSON object with key=value pairs. Pair values
// are typed with configvalue.Parse, so adults=2 is sent as a number.
func parseSearchParams(rawJSON string, pairs []string) (domain.SearchParams, error) {
	params := domain.SearchParams{}
	if strings.TrimSpace(rawJSON) != "" {
		if err := json.Unmarshal([]byte(rawJSON), &params); err != nil {
			return nil, fmt.Errorf("%w: --params must be a JSON object: %w", domain.ErrInvalidInput, err)
		}
	}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: parameter %q is not key=value", domain.ErrInvalidInput, pair)
		}
		params[key] = configvalue.Parse(value)
	}
	return params, nil
}

func printResultSummary(cmd *cobra.Command, result *domain.SearchResult) {
	count := result.Count()
	if count == 0 {
		cmd.Println("No results found.")
		return
	}
	cmd.Printf("%d %s result(s). Use --json to see them.\n", count, result.Kind)
}

func printFlights(cmd *cobra.Command, flights []domain.EnrichedFlightRecord) {
	if len(flights) == 0 {
		cmd.Println("No flights found.")
		return
	}

	cmd.Println("Flights:")
	cmd.Println()
	for i := range flights {
		cmd.Printf("  [%d] %s\n", i+1, flights[i].DisplayName)
		if price, ok := flights[i].Extra["price"].(map[string]any); ok {
			if total, ok := price["total"]; ok {
				currency, _ := price["currency"].(string)
				cmd.Printf("      Price: %s\n", strings.TrimSpace(fmt.Sprintf("%v %s", total, currency)))
			}
		}
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func searchKindNames() []string {
	kinds := domain.AllSearchKinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return names
}
