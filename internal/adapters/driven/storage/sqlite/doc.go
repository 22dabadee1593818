// Package sqlite provides a SQLite-backed airline name cache.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Names resolved from the airline metadata API survive
// restarts, so repeated CLI runs do not repeat lookups.
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.weyfar/data/weyfar.db
package sqlite
