// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/developertarun01/weyfar-cli/internal/core/domain"
)

// SearchCompleted carries the outcome of one search back to the model.
// Flights is set instead of Result when airline enrichment was requested.
type SearchCompleted struct {
	Kind    domain.SearchKind
	Result  *domain.SearchResult
	Flights []domain.EnrichedFlightRecord
	Err     error
}

// StateCleared is sent after the orchestrator's error or result was cleared.
type StateCleared struct{}

// Quit requests the program to exit.
type Quit struct{}
