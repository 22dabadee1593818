package search

import "errors"

// ErrNoSearchService indicates that no search orchestrator was provided.
var ErrNoSearchService = errors.New("search service is required")
