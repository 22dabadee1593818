// Package domain defines the core business entities for Weyfar.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SearchKind: One of the four travel search categories
//   - SearchRequest, SearchResult, SearchState: The search lifecycle
//   - FlightRecord, EnrichedFlightRecord: Raw and enriched flight data
//   - StaticAirlineName: Last-resort airline name table
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
