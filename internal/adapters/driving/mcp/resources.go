package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for Weyfar resources.
	uriScheme = "weyfar://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "search/state",
		Name:        "search-state",
		Description: "Status, result and error of the latest search",
		MIMEType:    "application/json",
	}, s.handleSearchStateResource)

	if s.ports.Airline == nil {
		return
	}

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "airlines/stats",
		Name:        "airline-stats",
		Description: "Airline name resolution counters",
		MIMEType:    "application/json",
	}, s.handleAirlineStatsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "airlines/{code}",
		Name:        "airline",
		Description: "Display name for an airline carrier code",
		MIMEType:    "application/json",
	}, s.handleAirlineResource)
}

// handleSearchStateResource returns the orchestrator state.
func (s *Server) handleSearchStateResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, s.ports.Search.State())
}

// handleAirlineStatsResource returns resolver counters.
func (s *Server) handleAirlineStatsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, s.ports.Airline.Stats())
}

// handleAirlineResource resolves the code in weyfar://airlines/{code}.
func (s *Server) handleAirlineResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	code := extractAirlineCode(req.Params.URI)
	if code == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return jsonResource(req.Params.URI, ResolveAirlineOutput{
		Code: code,
		Name: s.ports.Airline.ResolveName(ctx, code),
	})
}

// extractAirlineCode extracts the code from weyfar://airlines/{code}.
func extractAirlineCode(uri string) string {
	const prefix = uriScheme + "airlines/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	code := strings.TrimPrefix(uri, prefix)
	if code == "stats" || strings.Contains(code, "/") {
		return ""
	}
	return code
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
