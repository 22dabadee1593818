package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/developertarun01/weyfar-cli/internal/core/domain"
)

var airlineJSON bool

var airlineCmd = &cobra.Command{
	Use:   "airline",
	Short: "Resolve airline names",
	Long: `Resolve carrier codes to airline names using the name cache, the airline
metadata API and the built-in airline table, in that order.`,
}

var airlineResolveCmd = &cobra.Command{
	Use:   "resolve <code> [code...]",
	Short: "Resolve carrier codes to airline names",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAirlineResolve,
}

var airlineEnhanceCmd = &cobra.Command{
	Use:   "enhance [file]",
	Short: "Add airline names to flight records",
	Long: `Reads a JSON array of flight records from a file (or stdin when the file
is "-" or omitted) and prints the records with airlineName and displayName
added. Every other field is kept as is.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAirlineEnhance,
}

var airlineStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show airline resolution counters",
	RunE:  runAirlineStats,
}

func init() {
	airlineResolveCmd.Flags().BoolVar(&airlineJSON, "json", false, "output as JSON")
	airlineCmd.AddCommand(airlineResolveCmd)
	airlineCmd.AddCommand(airlineEnhanceCmd)
	airlineCmd.AddCommand(airlineStatsCmd)
	rootCmd.AddCommand(airlineCmd)
}

type resolvedAirline struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func runAirlineResolve(cmd *cobra.Command, args []string) error {
	if err := ensureAirline(cmd); err != nil {
		return err
	}

	resolved := make([]resolvedAirline, 0, len(args))
	for _, code := range args {
		resolved = append(resolved, resolvedAirline{
			Code: code,
			Name: airlineService.ResolveName(cmd.Context(), code),
		})
	}

	if airlineJSON {
		return printJSON(cmd, resolved)
	}
	for _, r := range resolved {
		cmd.Printf("%-4s %s\n", r.Code, r.Name)
	}
	return nil
}

func runAirlineEnhance(cmd *cobra.Command, args []string) error {
	in := cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening flights file: %w", err)
		}
		defer f.Close()
		in = f
	}

	records, err := readFlightRecords(in)
	if err != nil {
		return err
	}

	if err := ensureAirline(cmd); err != nil {
		return err
	}
	return printJSON(cmd, airlineService.Enhance(cmd.Context(), records))
}

func runAirlineStats(cmd *cobra.Command, _ []string) error {
	if err := ensureAirline(cmd); err != nil {
		return err
	}

	stats := airlineService.Stats()
	cmd.Println("Airline Resolution")
	cmd.Println("==================")
	cmd.Printf("  Cache hits:       %d\n", stats.CacheHits)
	cmd.Printf("  Remote lookups:   %d\n", stats.RemoteLookups)
	cmd.Printf("  Remote failures:  %d\n", stats.RemoteFailures)
	cmd.Printf("  Static fallbacks: %d\n", stats.StaticFallbacks)
	return nil
}

func readFlightRecords(r io.Reader) ([]domain.FlightRecord, error) {
	var records []domain.FlightRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		if errors.Is(err, io.EOF) {
			return []domain.FlightRecord{}, nil
		}
		return nil, fmt.Errorf("%w: flights must be a JSON array: %w", domain.ErrInvalidInput, err)
	}
	if records == nil {
		records = []domain.FlightRecord{}
	}
	return records, nil
}

// ensureAirline builds services on first use unless a resolver was injected.
func ensureAirline(cmd *cobra.Command) error {
	if airlineService != nil {
		return nil
	}
	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}
	if airlineService == nil {
		return errors.New("airline service not configured")
	}
	return nil
}
