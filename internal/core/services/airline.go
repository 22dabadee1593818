package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/developertarun01/weyfar-cli/internal/core/domain"
	"github.com/developertarun01/weyfar-cli/internal/core/ports/driven"
	"github.com/developertarun01/weyfar-cli/internal/core/ports/driving"
	"github.com/developertarun01/weyfar-cli/internal/logger"
)

// Ensure AirlineService implements the interface.
var _ driving.AirlineResolver = (*AirlineService)(nil)

// AirlineService resolves carrier codes to airline names through three tiers:
// the name cache, the airline metadata API, and the built-in static table.
type AirlineService struct {
	metadata driven.AirlineMetadataClient
	cache    driven.AirlineNameCache

	cacheHits       atomic.Int64
	remoteLookups   atomic.Int64
	remoteFailures  atomic.Int64
	staticFallbacks atomic.Int64
}

// NewAirlineService creates a new airline resolver.
// The metadata client is optional (can be nil); without it every uncached code
// resolves from the static table. A nil cache is replaced by a private
// in-process cache.
func NewAirlineService(metadata driven.AirlineMetadataClient, cache driven.AirlineNameCache) *AirlineService {
	if cache == nil {
		cache = &processNameCache{}
	}
	return &AirlineService{
		metadata: metadata,
		cache:    cache,
	}
}

// ResolveName returns the display name for a carrier code. It never fails:
// remote errors and negative answers fall through to the static table, then
// to the code itself. Surrounding whitespace is trimmed from code before it
// is used as the cache key, so "AI " and "AI" share one entry.
func (s *AirlineService) ResolveName(ctx context.Context, code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.FallbackAirlineLabel
	}

	if name, ok := s.cached(ctx, code); ok {
		s.cacheHits.Add(1)
		logger.Debug("Airline %s: cache hit (%s)", code, name)
		return name
	}

	if name, ok := s.lookupRemote(ctx, code); ok {
		stored, err := s.cache.PutIfAbsent(ctx, code, name)
		if err != nil {
			logger.Warn("Airline %s: cache write failed: %v", code, err)
			return name
		}
		logger.Debug("Airline %s: resolved remotely (%s)", code, stored)
		return stored
	}

	// Fallback names are not cached so a later call can still reach the API.
	s.staticFallbacks.Add(1)
	name := domain.StaticAirlineFallback(code)
	logger.Debug("Airline %s: static fallback (%s)", code, name)
	return name
}

// Enhance resolves the airline name of each record in order, one at a time,
// and returns enriched copies. The input slice is not modified.
func (s *AirlineService) Enhance(ctx context.Context, records []domain.FlightRecord) []domain.EnrichedFlightRecord {
	logger.Section("Airline Enrichment")
	logger.Debug("Records: %d", len(records))

	enriched := make([]domain.EnrichedFlightRecord, 0, len(records))
	for i := range records {
		code := domain.ExtractCarrierCode(records[i])
		name := s.ResolveName(ctx, code)
		enriched = append(enriched, domain.NewEnrichedFlightRecord(records[i], name))
	}
	return enriched
}

// Stats returns resolution counters.
func (s *AirlineService) Stats() driving.ResolverStats {
	return driving.ResolverStats{
		CacheHits:       s.cacheHits.Load(),
		RemoteLookups:   s.remoteLookups.Load(),
		RemoteFailures:  s.remoteFailures.Load(),
		StaticFallbacks: s.staticFallbacks.Load(),
	}
}

// cached reads the cache. Read errors count as a miss.
func (s *AirlineService) cached(ctx context.Context, code string) (string, bool) {
	name, ok, err := s.cache.Get(ctx, code)
	if err != nil {
		logger.Warn("Airline %s: cache read failed: %v", code, err)
		return "", false
	}
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// lookupRemote asks the metadata API. Errors and panics are absorbed.
func (s *AirlineService) lookupRemote(ctx context.Context, code string) (name string, ok bool) {
	if s.metadata == nil {
		return "", false
	}

	s.remoteLookups.Add(1)
	defer func() {
		if r := recover(); r != nil {
			s.remoteFailures.Add(1)
			logger.Warn("Airline %s: metadata client panicked: %v", code, r)
			name, ok = "", false
		}
	}()

	lookup, err := s.metadata.LookupAirline(ctx, code)
	if err != nil {
		s.remoteFailures.Add(1)
		logger.Warn("Airline %s: metadata lookup failed: %v", code, err)
		return "", false
	}

	name, ok = lookup.Name()
	if !ok {
		logger.Debug("Airline %s: metadata API has no name", code)
	}
	return name, ok
}

// processNameCache is the cache used when none is supplied.
type processNameCache struct {
	names sync.Map
	size  atomic.Int64
}

func (c *processNameCache) Get(_ context.Context, code string) (string, bool, error) {
	v, ok := c.names.Load(code)
	if !ok {
		return "", false, nil
	}
	name, isString := v.(string)
	if !isString {
		return "", false, fmt.Errorf("unexpected cache value %T", v)
	}
	return name, true, nil
}

func (c *processNameCache) PutIfAbsent(_ context.Context, code, name string) (string, error) {
	v, loaded := c.names.LoadOrStore(code, name)
	if !loaded {
		c.size.Add(1)
	}
	return v.(string), nil
}

func (c *processNameCache) Len(_ context.Context) (int, error) {
	return int(c.size.Load()), nil
}
