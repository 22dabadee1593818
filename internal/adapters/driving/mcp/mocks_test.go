package mcp

import (
	"context"

	"github.com/developertarun01/weyfar-cli/internal/core/domain"
	"github.com/developertarun01/weyfar-cli/internal/core/ports/driving"
)

// mockSearchService is a mock implementation of driving.SearchOrchestrator.
type mockSearchService struct {
	result   *domain.SearchResult
	enriched []domain.EnrichedFlightRecord
	state    domain.SearchState
	err      error

	lastKind   domain.SearchKind
	lastParams domain.SearchParams
	enhanced   bool
}

func (m *mockSearchService) Search(
	_ context.Context, kind domain.SearchKind, params domain.SearchParams,
) (*domain.SearchResult, error) {
	m.lastKind = kind
	m.lastParams = params
	return m.result, m.err
}

func (m *mockSearchService) SearchAndEnhance(
	_ context.Context, params domain.SearchParams,
) ([]domain.EnrichedFlightRecord, error) {
	m.enhanced = true
	m.lastParams = params
	return m.enriched, m.err
}

func (m *mockSearchService) State() domain.SearchState { return m.state }
func (m *mockSearchService) ClearError()               {}
func (m *mockSearchService) ClearData()                {}

// mockAirlineResolver is a mock implementation of driving.AirlineResolver.
type mockAirlineResolver struct {
	names map[string]string
	stats driving.ResolverStats
}

func (m *mockAirlineResolver) ResolveName(_ context.Context, code string) string {
	if name, ok := m.names[code]; ok {
		return name
	}
	return domain.StaticAirlineFallback(code)
}

func (m *mockAirlineResolver) Enhance(ctx context.Context, records []domain.FlightRecord) []domain.EnrichedFlightRecord {
	out := make([]domain.EnrichedFlightRecord, 0, len(records))
	for i := range records {
		out = append(out, domain.NewEnrichedFlightRecord(records[i], m.ResolveName(ctx, domain.ExtractCarrierCode(records[i]))))
	}
	return out
}

func (m *mockAirlineResolver) Stats() driving.ResolverStats { return m.stats }
