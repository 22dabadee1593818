package driving

import (
	"context"

	"github.com/developertarun01/weyfar-cli/internal/core/domain"
)

// SearchOrchestrator provides a single search entry point over all search
// kinds and exposes the lifecycle of the most recent search as state.
type SearchOrchestrator interface {
	// Search runs a search of the given kind. Failures are returned and
	// also recorded in State.
	Search(ctx context.Context, kind domain.SearchKind, params domain.SearchParams) (*domain.SearchResult, error)

	// SearchAndEnhance runs a flight search and enriches the returned
	// records with airline names.
	SearchAndEnhance(ctx context.Context, params domain.SearchParams) ([]domain.EnrichedFlightRecord, error)

	// State returns a snapshot of the current search state.
	State() domain.SearchState

	// ClearError resets the recorded error without touching result or loading.
	ClearError()

	// ClearData resets the recorded result without touching error or loading.
	ClearData()
}
