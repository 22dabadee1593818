package driving

import (
	"context"

	"github.com/developertarun01/weyfar-cli/internal/core/domain"
)

// AirlineResolver maps carrier codes to display names.
// Neither method ever fails: every code resolves to some displayable name.
type AirlineResolver interface {
	// ResolveName returns the display name for a carrier code.
	ResolveName(ctx context.Context, code string) string

	// Enhance resolves airline names for each record, in order.
	Enhance(ctx context.Context, records []domain.FlightRecord) []domain.EnrichedFlightRecord

	// Stats returns resolution counters since the resolver was created.
	Stats() ResolverStats
}

// ResolverStats counts how airline names were resolved.
type ResolverStats struct {
	CacheHits       int64 `json:"cache_hits"`
	RemoteLookups   int64 `json:"remote_lookups"`
	RemoteFailures  int64 `json:"remote_failures"`
	StaticFallbacks int64 `json:"static_fallbacks"`
}
