// Package tui provides an interactive terminal interface for travel search.
// It is a driving adapter over the search orchestrator.
package tui

import (
	"github.com/developertarun01/weyfar-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI needs.
type Ports struct {
	// Search runs searches and exposes their state.
	Search driving.SearchOrchestrator
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
