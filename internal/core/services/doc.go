// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
//   - SearchService: dispatches searches by kind and tracks the latest outcome
//   - AirlineService: resolves carrier codes to airline names
package services
