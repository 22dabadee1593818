package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/developertarun01/weyfar-cli/internal/core/domain"
	"github.com/developertarun01/weyfar-cli/internal/core/ports/driven"
	"github.com/developertarun01/weyfar-cli/internal/core/ports/driving"
	"github.com/developertarun01/weyfar-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchOrchestrator = (*SearchService)(nil)

// searchFunc runs one kind of search against the travel client.
type searchFunc func(ctx context.Context, params domain.SearchParams) (*domain.SearchResult, error)

// SearchService dispatches searches by kind and tracks the outcome of the
// most recently issued request. Results of superseded requests are returned
// to their callers but never applied to the shared state.
type SearchService struct {
	client    driven.TravelSearchClient
	resolver  driving.AirlineResolver
	publisher driven.SearchEventPublisher
	timeout   time.Duration
	dispatch  map[domain.SearchKind]searchFunc
	now       func() time.Time

	mu        sync.Mutex
	state     domain.SearchState
	lastToken uint64
}

// NewSearchService creates a new search orchestrator.
// The resolver is optional (can be nil); flight enrichment then falls back
// to the static airline table.
func NewSearchService(client driven.TravelSearchClient, resolver driving.AirlineResolver) *SearchService {
	s := &SearchService{
		client:   client,
		resolver: resolver,
		dispatch: make(map[domain.SearchKind]searchFunc),
		now:      time.Now,
	}
	s.state = domain.SearchState{Status: domain.SearchStatusIdle, UpdatedAt: s.now()}

	if client != nil {
		s.dispatch[domain.SearchKindFlights] = client.SearchFlights
		s.dispatch[domain.SearchKindHotels] = client.SearchHotels
		s.dispatch[domain.SearchKindCars] = client.SearchCars
		s.dispatch[domain.SearchKindCruises] = client.SearchCruises
	}
	return s
}

// SetEventPublisher sets the publisher for search lifecycle events.
func (s *SearchService) SetEventPublisher(publisher driven.SearchEventPublisher) {
	s.publisher = publisher
}

// SetTimeout bounds each client call. Zero means no bound beyond the caller's context.
func (s *SearchService) SetTimeout(timeout time.Duration) {
	s.timeout = timeout
}

// Search runs a search of the given kind and records its outcome.
// An unknown kind fails before any event is published or client is called.
func (s *SearchService) Search(
	ctx context.Context, kind domain.SearchKind, params domain.SearchParams,
) (*domain.SearchResult, error) {
	if !kind.IsValid() {
		return nil, s.reject(kind)
	}

	req := s.begin(ctx, kind, params)

	logger.Section("Search Execution")
	logger.Debug("Request: %s kind=%s params=%d", req.ID, req.Kind, len(req.Params))

	result, err := s.execute(ctx, req)
	s.finish(ctx, req, result, err)

	if err != nil {
		return nil, err
	}
	return result, nil
}

// SearchAndEnhance runs a flight search and enriches every record with its
// airline name.
func (s *SearchService) SearchAndEnhance(
	ctx context.Context, params domain.SearchParams,
) ([]domain.EnrichedFlightRecord, error) {
	result, err := s.Search(ctx, domain.SearchKindFlights, params)
	if err != nil {
		return nil, err
	}

	records, err := result.FlightRecords()
	if err != nil {
		return nil, fmt.Errorf("flight results: %w", err)
	}

	if s.resolver != nil {
		return s.resolver.Enhance(ctx, records), nil
	}

	logger.Debug("No airline resolver configured, using static names")
	enriched := make([]domain.EnrichedFlightRecord, 0, len(records))
	for i := range records {
		name := domain.StaticAirlineFallback(domain.ExtractCarrierCode(records[i]))
		enriched = append(enriched, domain.NewEnrichedFlightRecord(records[i], name))
	}
	return enriched, nil
}

// State returns a snapshot of the current state.
func (s *SearchService) State() domain.SearchState {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state
	snapshot.Result = s.state.Result.Clone()
	if s.state.Error != nil {
		errInfo := *s.state.Error
		snapshot.Error = &errInfo
	}
	return snapshot
}

// ClearError removes the stored error. Loading and data are untouched.
func (s *SearchService) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Error = nil
	if s.state.Status == domain.SearchStatusFailed {
		s.state.Status = domain.SearchStatusIdle
	}
	s.state.UpdatedAt = s.now()
}

// ClearData removes the stored result. Loading and error are untouched.
func (s *SearchService) ClearData() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Result = nil
	if s.state.Status == domain.SearchStatusSucceeded {
		s.state.Status = domain.SearchStatusIdle
	}
	s.state.UpdatedAt = s.now()
}

// reject records an invalid-kind failure. It supersedes any search in
// flight, since it is now the latest request.
func (s *SearchService) reject(kind domain.SearchKind) error {
	err := fmt.Errorf("search %q: %w", kind, domain.ErrInvalidSearchKind)

	s.mu.Lock()
	s.lastToken++
	s.state.Status = domain.SearchStatusFailed
	s.state.Loading = false
	s.state.Result = nil
	s.state.Error = domain.NewErrorInfo("", err)
	s.state.RequestID = ""
	s.state.UpdatedAt = s.now()
	s.mu.Unlock()

	logger.Warn("Search rejected: %v", err)
	return err
}

// begin issues a new request token and moves the state to loading.
func (s *SearchService) begin(ctx context.Context, kind domain.SearchKind, params domain.SearchParams) domain.SearchRequest {
	s.mu.Lock()
	s.lastToken++
	req := domain.SearchRequest{
		ID:          uuid.New().String(),
		Kind:        kind,
		Params:      params,
		Token:       s.lastToken,
		SubmittedAt: s.now(),
	}
	s.state.Status = domain.SearchStatusLoading
	s.state.Loading = true
	s.state.Error = nil
	s.state.RequestID = req.ID
	s.state.UpdatedAt = req.SubmittedAt
	s.mu.Unlock()

	s.publish(ctx, domain.SearchEvent{
		Type:      domain.SearchEventStarted,
		RequestID: req.ID,
		Kind:      kind,
		Timestamp: req.SubmittedAt,
	})
	return req
}

// execute looks up the client operation for the request kind and calls it.
// Panics raised by the client are returned as errors.
func (s *SearchService) execute(ctx context.Context, req domain.SearchRequest) (result *domain.SearchResult, err error) {
	fn, ok := s.dispatch[req.Kind]
	if !ok {
		return nil, fmt.Errorf("search %s: %w", req.Kind, domain.ErrSearchUnavailable)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Search %s panicked: %v", req.ID, r)
			result = nil
			err = fmt.Errorf("search %s: %w: %v", req.Kind, domain.ErrSearchPanicked, r)
		}
	}()

	result, err = fn(ctx, req.Params)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", req.Kind, err)
	}
	if result == nil {
		result = &domain.SearchResult{Kind: req.Kind}
	}
	return result, nil
}

// finish applies the outcome if req is still the latest request.
func (s *SearchService) finish(ctx context.Context, req domain.SearchRequest, result *domain.SearchResult, err error) {
	done := s.now()
	event := domain.SearchEvent{
		RequestID:  req.ID,
		Kind:       req.Kind,
		DurationMs: done.Sub(req.SubmittedAt).Milliseconds(),
		Timestamp:  done,
	}

	var errInfo *domain.ErrorInfo
	if err != nil {
		errKind := req.Kind
		if !errKind.IsValid() {
			errKind = ""
		}
		errInfo = domain.NewErrorInfo(errKind, err)
	}

	s.mu.Lock()
	if req.Token != s.lastToken {
		s.mu.Unlock()
		logger.Debug("Request %s superseded, outcome discarded", req.ID)
		event.Type = domain.SearchEventDiscarded
		s.publish(ctx, event)
		return
	}

	s.state.Loading = false
	s.state.UpdatedAt = done
	if err != nil {
		s.state.Status = domain.SearchStatusFailed
		s.state.Result = nil
		s.state.Error = errInfo
	} else {
		s.state.Status = domain.SearchStatusSucceeded
		s.state.Result = result
		s.state.Error = nil
	}
	s.mu.Unlock()

	if err != nil {
		logger.Warn("Search %s failed: %v", req.ID, err)
		event.Type = domain.SearchEventFailed
		event.Error = errInfo
	} else {
		logger.Debug("Search %s returned %d records", req.ID, result.Count())
		event.Type = domain.SearchEventSucceeded
		event.ResultCount = result.Count()
	}
	s.publish(ctx, event)
}

// publish sends an event if a publisher is configured. Failures are logged only.
func (s *SearchService) publish(ctx context.Context, event domain.SearchEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(context.WithoutCancel(ctx), event); err != nil {
		logger.Warn("Publish %s for %s: %v", event.Type, event.RequestID, err)
	}
}
