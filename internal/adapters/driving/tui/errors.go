package tui

import "errors"

// ErrMissingSearchService is returned when the search orchestrator is not provided.
var ErrMissingSearchService = errors.New("tui: search service is required")

// ErrInvalidPorts is returned when no ports are given.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
