package mcp

import (
	"github.com/developertarun01/weyfar-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Search runs travel searches.
	Search driving.SearchOrchestrator

	// Airline resolves carrier codes. Optional; airline tools are not
	// registered without it.
	Airline driving.AirlineResolver
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
