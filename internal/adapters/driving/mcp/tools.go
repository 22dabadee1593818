package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/developertarun01/weyfar-cli/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Kind    string         `json:"kind" jsonschema:"search category: flights, hotels, cars or cruises"`
	Params  map[string]any `json:"params,omitempty" jsonschema:"query parameters passed to the travel API unchanged"`
	Enhance bool           `json:"enhance,omitempty" jsonschema:"for flights, add airline names to each record"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Kind    string           `json:"kind"`
	Count   int              `json:"count"`
	Data    any              `json:"data,omitempty"`
	Meta    map[string]any   `json:"meta,omitempty"`
	Flights []map[string]any `json:"flights,omitempty"`
}

// ResolveAirlineInput is the input schema for the resolve_airline tool.
type ResolveAirlineInput struct {
	Code string `json:"code" jsonschema:"IATA carrier code, e.g. AI"`
}

// ResolveAirlineOutput is the output schema for the resolve_airline tool.
type ResolveAirlineOutput struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// EnhanceFlightsInput is the input schema for the enhance_flights tool.
type EnhanceFlightsInput struct {
	Flights []map[string]any `json:"flights" jsonschema:"flight records as returned by a flights search"`
}

// EnhanceFlightsOutput is the output schema for the enhance_flights tool.
type EnhanceFlightsOutput struct {
	Flights []map[string]any `json:"flights"`
	Count   int              `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search flights, hotels, cars or cruises",
	}, s.handleSearch)

	if s.ports.Airline == nil {
		return
	}

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "resolve_airline",
		Description: "Resolve an airline carrier code to its display name",
	}, s.handleResolveAirline)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "enhance_flights",
		Description: "Add airline names and display names to flight records",
	}, s.handleEnhanceFlights)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	kind, err := domain.ParseSearchKind(input.Kind)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	if input.Enhance && kind == domain.SearchKindFlights {
		flights, err := s.ports.Search.SearchAndEnhance(ctx, input.Params)
		if err != nil {
			return nil, SearchOutput{}, err
		}
		maps, err := toMaps(flights)
		if err != nil {
			return nil, SearchOutput{}, err
		}
		return nil, SearchOutput{Kind: kind.String(), Count: len(maps), Flights: maps}, nil
	}

	result, err := s.ports.Search.Search(ctx, kind, input.Params)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{Kind: kind.String(), Count: result.Count(), Meta: result.Meta}
	if len(result.Data) > 0 {
		if err := json.Unmarshal(result.Data, &output.Data); err != nil {
			return nil, SearchOutput{}, fmt.Errorf("decoding result: %w", err)
		}
	}
	return nil, output, nil
}

// handleResolveAirline handles the resolve_airline tool invocation.
func (s *Server) handleResolveAirline(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ResolveAirlineInput,
) (*mcp.CallToolResult, ResolveAirlineOutput, error) {
	code := strings.TrimSpace(input.Code)
	return nil, ResolveAirlineOutput{
		Code: code,
		Name: s.ports.Airline.ResolveName(ctx, code),
	}, nil
}

// handleEnhanceFlights handles the enhance_flights tool invocation.
func (s *Server) handleEnhanceFlights(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input EnhanceFlightsInput,
) (*mcp.CallToolResult, EnhanceFlightsOutput, error) {
	records, err := fromMaps(input.Flights)
	if err != nil {
		return nil, EnhanceFlightsOutput{}, err
	}

	maps, err := toMaps(s.ports.Airline.Enhance(ctx, records))
	if err != nil {
		return nil, EnhanceFlightsOutput{}, err
	}
	return nil, EnhanceFlightsOutput{Flights: maps, Count: len(maps)}, nil
}

// fromMaps decodes loosely typed flight objects into records.
func fromMaps(in []map[string]any) ([]domain.FlightRecord, error) {
	raw, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encoding flights: %w", err)
	}
	var records []domain.FlightRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decoding flights: %w: %w", domain.ErrInvalidInput, err)
	}
	return records, nil
}

// toMaps encodes enriched records as plain objects so every field survives.
func toMaps(records []domain.EnrichedFlightRecord) ([]map[string]any, error) {
	raw, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encoding flights: %w", err)
	}
	out := []map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decoding flights: %w", err)
	}
	return out, nil
}
