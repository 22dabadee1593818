package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidSearchKind indicates a search kind outside flights, hotels, cars and cruises.
	// It is raised before any I/O happens.
	ErrInvalidSearchKind = errors.New("invalid search kind")

	// ErrSearchUnavailable indicates no travel search client is configured.
	ErrSearchUnavailable = errors.New("search client unavailable")

	// ErrRemoteFailure indicates the travel-data API failed or returned an error response.
	ErrRemoteFailure = errors.New("remote api failure")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrMissingCredentials indicates the API client ID or secret is not configured.
	ErrMissingCredentials = errors.New("api credentials not configured")

	// ErrSearchPanicked indicates the search client panicked instead of returning an error.
	ErrSearchPanicked = errors.New("search client panicked")
)
