// Package cli provides the weyfar command line interface.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/developertarun01/weyfar-cli/internal/adapters/driven/config/file"
	"github.com/developertarun01/weyfar-cli/internal/core/ports/driven"
	"github.com/developertarun01/weyfar-cli/internal/core/ports/driving"
	"github.com/developertarun01/weyfar-cli/internal/logger"
)

var version = "dev"

var (
	verbose   bool
	configDir string
)

// Services used by commands. Built lazily from configuration unless
// injected with SetServices.
var (
	searchService  driving.SearchOrchestrator
	airlineService driving.AirlineResolver
	configStore    driven.ConfigStore
)

// closers release adapters opened while building services.
var closers []func() error

var rootCmd = &cobra.Command{
	Use:   "weyfar",
	Short: "Travel search with airline enrichment",
	Long: `weyfar searches flights, hotels, cars and cruises through the travel-data
API and enriches flight results with airline names.

Results can be used directly from the command line, served to the web UI
over HTTP, or exposed to AI assistants through MCP.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupRoot,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.weyfar)")
}

// Execute runs the root command with ctx and releases any adapters it
// opened. Long-running commands stop when ctx is cancelled.
func Execute(ctx context.Context) error {
	defer closeAdapters()
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetServices injects services instead of building them from configuration.
// Any argument may be nil.
func SetServices(search driving.SearchOrchestrator, airline driving.AirlineResolver, cfg driven.ConfigStore) {
	searchService = search
	airlineService = airline
	configStore = cfg
}

func setupRoot(_ *cobra.Command, _ []string) error {
	if verbose {
		logger.SetVerbose(true)
	}
	if configStore != nil {
		return nil
	}

	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	configStore = store
	logger.Debug("Config: %s", store.Path())
	return nil
}

func closeAdapters() {
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			logger.Warn("Closing adapter: %v", err)
		}
	}
	closers = nil
}
