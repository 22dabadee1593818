// Package mcp provides an MCP (Model Context Protocol) server adapter for Weyfar.
// It lets AI assistants run travel searches and resolve airline names.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search orchestrator is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
