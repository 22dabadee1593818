package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SearchKind identifies one of the supported travel search categories.
type SearchKind string

const (
	// SearchKindFlights searches flight offers.
	SearchKindFlights SearchKind = "flights"
	// SearchKindHotels searches hotel offers.
	SearchKindHotels SearchKind = "hotels"
	// SearchKindCars searches car and transfer offers.
	SearchKindCars SearchKind = "cars"
	// SearchKindCruises searches cruise offers.
	SearchKindCruises SearchKind = "cruises"
)

// AllSearchKinds returns the fixed set of search kinds in display order.
func AllSearchKinds() []SearchKind {
	return []SearchKind{
		SearchKindFlights,
		SearchKindHotels,
		SearchKindCars,
		SearchKindCruises,
	}
}

// IsValid reports whether the kind is one of the four supported values.
func (k SearchKind) IsValid() bool {
	switch k {
	case SearchKindFlights, SearchKindHotels, SearchKindCars, SearchKindCruises:
		return true
	default:
		return false
	}
}

// String returns the kind as a string.
func (k SearchKind) String() string {
	return string(k)
}

// ParseSearchKind converts user input into a SearchKind.
// Matching is exact after trimming surrounding whitespace.
func ParseSearchKind(s string) (SearchKind, error) {
	kind := SearchKind(strings.TrimSpace(s))
	if !kind.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSearchKind, s)
	}
	return kind, nil
}

// SearchParams is the opaque query object passed through to the search client.
type SearchParams map[string]any

// Clone returns a shallow copy of the params.
func (p SearchParams) Clone() SearchParams {
	if p == nil {
		return nil
	}
	clone := make(SearchParams, len(p))
	for k, v := range p {
		clone[k] = v
	}
	return clone
}

// SearchRequest is a submitted search. It is immutable once created.
type SearchRequest struct {
	// ID uniquely identifies the request for logs and events.
	ID string

	// Kind is the search category.
	Kind SearchKind

	// Params is passed to the search client unchanged.
	Params SearchParams

	// Token orders requests issued by one orchestrator. Higher is newer.
	Token uint64

	// SubmittedAt is when the request was issued.
	SubmittedAt time.Time
}

// SearchResult is the result object returned by the travel-data API.
type SearchResult struct {
	// Kind is the search category that produced the result.
	Kind SearchKind `json:"kind"`

	// Data holds the result records exactly as returned by the API.
	Data json.RawMessage `json:"data"`

	// Meta holds optional response metadata (counts, links, dictionaries).
	Meta map[string]any `json:"meta,omitempty"`
}

// Count returns the number of records in Data when it is a JSON array, or 0.
func (r *SearchResult) Count() int {
	if r == nil || len(r.Data) == 0 {
		return 0
	}
	var items []json.RawMessage
	if err := json.Unmarshal(r.Data, &items); err != nil {
		return 0
	}
	return len(items)
}

// FlightRecords decodes Data into flight records.
// Returns an empty slice when there is no data.
func (r *SearchResult) FlightRecords() ([]FlightRecord, error) {
	if r == nil || len(r.Data) == 0 || string(r.Data) == "null" {
		return []FlightRecord{}, nil
	}
	var records []FlightRecord
	if err := json.Unmarshal(r.Data, &records); err != nil {
		return nil, fmt.Errorf("decode flight records: %w", err)
	}
	if records == nil {
		records = []FlightRecord{}
	}
	return records, nil
}

// Clone returns a deep copy of the result.
func (r *SearchResult) Clone() *SearchResult {
	if r == nil {
		return nil
	}
	clone := &SearchResult{Kind: r.Kind}
	if r.Data != nil {
		clone.Data = append(json.RawMessage(nil), r.Data...)
	}
	if r.Meta != nil {
		clone.Meta = make(map[string]any, len(r.Meta))
		for k, v := range r.Meta {
			clone.Meta[k] = v
		}
	}
	return clone
}

// SearchStatus is the lifecycle status of the orchestrator.
type SearchStatus string

const (
	// SearchStatusIdle means no search has run or data was cleared.
	SearchStatusIdle SearchStatus = "idle"
	// SearchStatusLoading means a search is in flight.
	SearchStatusLoading SearchStatus = "loading"
	// SearchStatusSucceeded means the last applied search returned a result.
	SearchStatusSucceeded SearchStatus = "succeeded"
	// SearchStatusFailed means the last applied search failed.
	SearchStatusFailed SearchStatus = "failed"
)

// ErrorInfo describes a failed search for display.
type ErrorInfo struct {
	// Kind is the search kind that failed. Empty if the kind itself was invalid.
	Kind SearchKind `json:"kind,omitempty"`

	// Message is the human-readable error message.
	Message string `json:"message"`

	// Code classifies the failure: invalid_request, rate_limited or remote_failure.
	Code string `json:"code"`
}

// Error codes used in ErrorInfo.
const (
	ErrorCodeInvalidRequest = "invalid_request"
	ErrorCodeRateLimited    = "rate_limited"
	ErrorCodeRemoteFailure  = "remote_failure"
)

// NewErrorInfo builds an ErrorInfo from an error.
func NewErrorInfo(kind SearchKind, err error) *ErrorInfo {
	if err == nil {
		return nil
	}
	code := ErrorCodeRemoteFailure
	switch {
	case errors.Is(err, ErrInvalidSearchKind), errors.Is(err, ErrInvalidInput):
		code = ErrorCodeInvalidRequest
	case errors.Is(err, ErrRateLimited):
		code = ErrorCodeRateLimited
	}
	return &ErrorInfo{Kind: kind, Message: err.Error(), Code: code}
}

// SearchState is a snapshot of the orchestrator's observable state.
// Exactly one of Result and Error is set when Status is succeeded or failed.
type SearchState struct {
	Status    SearchStatus  `json:"status"`
	Loading   bool          `json:"loading"`
	Result    *SearchResult `json:"result,omitempty"`
	Error     *ErrorInfo    `json:"error,omitempty"`
	RequestID string        `json:"request_id,omitempty"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// SearchEventType identifies a state transition.
type SearchEventType string

const (
	SearchEventStarted   SearchEventType = "search.started"
	SearchEventSucceeded SearchEventType = "search.succeeded"
	SearchEventFailed    SearchEventType = "search.failed"
	SearchEventDiscarded SearchEventType = "search.discarded"
)

// SearchEvent records one lifecycle transition of a search request.
type SearchEvent struct {
	Type        SearchEventType `json:"type"`
	RequestID   string          `json:"request_id"`
	Kind        SearchKind      `json:"kind"`
	ResultCount int             `json:"result_count,omitempty"`
	Error       *ErrorInfo      `json:"error,omitempty"`
	DurationMs  int64           `json:"duration_ms,omitempty"`
	Timestamp   time.Time       `json:"timestamp"`
}
