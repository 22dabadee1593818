package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/developertarun01/weyfar-cli/internal/adapters/driving/httpapi"
)

const defaultHTTPAddr = ":8080"

var (
	serveAddr    string
	serveOrigins []string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the JSON HTTP API used by the web UI.

The listen address comes from --addr, then http.addr in the config file,
then ` + defaultHTTPAddr + `.

Endpoints:
  POST   /api/search/{kind}       run a search (?enhance=true for flights)
  GET    /api/search/state        current search state
  DELETE /api/search/error        clear the recorded error
  DELETE /api/search/data         clear the recorded result
  GET    /api/airlines/{code}     resolve an airline name
  GET    /api/airlines/stats      airline resolution counters
  POST   /api/flights/enhance     add airline names to flight records
  GET    /health                  liveness check`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default "+defaultHTTPAddr+")")
	serveCmd.Flags().StringSliceVar(&serveOrigins, "origin", nil, "allowed CORS origin (repeatable, default any)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}
	if searchService == nil {
		return errors.New("search service not configured")
	}

	server, err := httpapi.NewServer(searchService, airlineService, httpapi.Options{
		AllowedOrigins: serveOrigins,
	})
	if err != nil {
		return err
	}

	addr := resolveHTTPAddr()
	fmt.Fprintf(cmd.OutOrStdout(), "HTTP API listening on %s\n", addr)
	return server.Run(cmd.Context(), addr)
}

func resolveHTTPAddr() string {
	if serveAddr != "" {
		return serveAddr
	}
	if configStore != nil {
		if addr := configStore.GetString(keyHTTPAddr); addr != "" {
			return addr
		}
	}
	return defaultHTTPAddr
}
