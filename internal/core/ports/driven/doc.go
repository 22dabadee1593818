// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - TravelSearchClient: Flight, hotel, car and cruise search (travel-data API)
//   - AirlineMetadataClient: Airline name lookup by carrier code
//   - AirlineNameCache: Resolved airline names (memory, SQLite or Redis)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - SearchEventPublisher: Search lifecycle events (Kafka). Without it, events are not emitted.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
