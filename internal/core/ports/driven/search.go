package driven

import (
	"context"

	"github.com/developertarun01/weyfar-cli/internal/core/domain"
)

// TravelSearchClient calls the external travel-data API.
// Each operation passes params through unchanged and returns the API's
// result, or an error carrying a human-readable message.
type TravelSearchClient interface {
	// SearchFlights searches flight offers.
	SearchFlights(ctx context.Context, params domain.SearchParams) (*domain.SearchResult, error)

	// SearchHotels searches hotel offers.
	SearchHotels(ctx context.Context, params domain.SearchParams) (*domain.SearchResult, error)

	// SearchCars searches car and transfer offers.
	SearchCars(ctx context.Context, params domain.SearchParams) (*domain.SearchResult, error)

	// SearchCruises searches cruise offers.
	SearchCruises(ctx context.Context, params domain.SearchParams) (*domain.SearchResult, error)
}

// SearchEventPublisher receives search lifecycle events.
// Optional: the orchestrator works without one.
type SearchEventPublisher interface {
	// Publish sends one event.
	Publish(ctx context.Context, event domain.SearchEvent) error

	// Close releases resources.
	Close() error
}
