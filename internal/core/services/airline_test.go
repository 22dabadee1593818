package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/developertarun01/weyfar-cli/internal/adapters/driven/storage/memory"
	"github.com/developertarun01/weyfar-cli/internal/core/domain"
	"github.com/developertarun01/weyfar-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockMetadataClient implements driven.AirlineMetadataClient for testing.
type mockMetadataClient struct {
	mu      sync.Mutex
	names   map[string]string
	err     error
	panics  bool
	calls   []string
	missing bool
}

func newMockMetadataClient(names map[string]string) *mockMetadataClient {
	return &mockMetadataClient{names: names}
}

func (m *mockMetadataClient) LookupAirline(_ context.Context, code string) (*driven.AirlineLookup, error) {
	m.mu.Lock()
	m.calls = append(m.calls, code)
	m.mu.Unlock()

	if m.panics {
		panic("metadata client exploded")
	}
	if m.err != nil {
		return nil, m.err
	}
	if m.missing {
		return &driven.AirlineLookup{Success: true, Data: &driven.AirlineData{Code: code}}, nil
	}
	name, ok := m.names[code]
	if !ok {
		return &driven.AirlineLookup{Success: false}, nil
	}
	return &driven.AirlineLookup{Success: true, Data: &driven.AirlineData{Code: code, Name: name}}, nil
}

func (m *mockMetadataClient) callCount(code string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c == code {
			n++
		}
	}
	return n
}

func (m *mockMetadataClient) totalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// failingCache implements driven.AirlineNameCache and fails every call.
type failingCache struct{}

func (failingCache) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("cache down")
}

func (failingCache) PutIfAbsent(context.Context, string, string) (string, error) {
	return "", errors.New("cache down")
}

func (failingCache) Len(context.Context) (int, error) {
	return 0, errors.New("cache down")
}

// --- ResolveName ---

func TestAirlineService_ResolveName_EmptyCode(t *testing.T) {
	client := newMockMetadataClient(nil)
	svc := NewAirlineService(client, memory.NewAirlineCache())

	assert.Equal(t, "Flight", svc.ResolveName(context.Background(), ""))
	assert.Equal(t, "Flight", svc.ResolveName(context.Background(), "   "))
	assert.Zero(t, client.totalCalls(), "empty code must not reach the API")
}

func TestAirlineService_ResolveName_RemoteHitIsCached(t *testing.T) {
	ctx := context.Background()
	client := newMockMetadataClient(map[string]string{"XX": "Example Air"})
	cache := memory.NewAirlineCache()
	svc := NewAirlineService(client, cache)

	assert.Equal(t, "Example Air", svc.ResolveName(ctx, "XX"))
	assert.Equal(t, "Example Air", svc.ResolveName(ctx, "XX"))

	assert.Equal(t, 1, client.callCount("XX"))
	name, ok, err := cache.Get(ctx, "XX")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Example Air", name)

	stats := svc.Stats()
	assert.Equal(t, int64(1), stats.CacheHits)
	assert.Equal(t, int64(1), stats.RemoteLookups)
	assert.Zero(t, stats.RemoteFailures)
	assert.Zero(t, stats.StaticFallbacks)
}

func TestAirlineService_ResolveName_CacheWinsOverRemote(t *testing.T) {
	ctx := context.Background()
	client := newMockMetadataClient(map[string]string{"AI": "Remote Name"})
	cache := memory.NewAirlineCache()
	_, err := cache.PutIfAbsent(ctx, "AI", "Cached Name")
	require.NoError(t, err)

	svc := NewAirlineService(client, cache)

	assert.Equal(t, "Cached Name", svc.ResolveName(ctx, "AI"))
	assert.Zero(t, client.totalCalls())
}

func TestAirlineService_ResolveName_NegativeResultFallsBackWithoutCaching(t *testing.T) {
	ctx := context.Background()
	client := newMockMetadataClient(map[string]string{})
	cache := memory.NewAirlineCache()
	svc := NewAirlineService(client, cache)

	assert.Equal(t, "IndiGo", svc.ResolveName(ctx, "6E"))
	assert.Equal(t, "ZZ", svc.ResolveName(ctx, "ZZ"))
	assert.Equal(t, "ZZ", svc.ResolveName(ctx, "ZZ"))

	assert.Equal(t, 2, client.callCount("ZZ"), "negative answers are not cached")
	n, err := cache.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, int64(3), svc.Stats().StaticFallbacks)
}

func TestAirlineService_ResolveName_SuccessWithoutName(t *testing.T) {
	client := newMockMetadataClient(nil)
	client.missing = true
	svc := NewAirlineService(client, memory.NewAirlineCache())

	assert.Equal(t, "Lufthansa", svc.ResolveName(context.Background(), "LH"))
}

func TestAirlineService_ResolveName_RemoteErrorIsAbsorbed(t *testing.T) {
	ctx := context.Background()
	client := newMockMetadataClient(nil)
	client.err = errors.New("connection refused")
	cache := memory.NewAirlineCache()
	svc := NewAirlineService(client, cache)

	assert.Equal(t, "Air India", svc.ResolveName(ctx, "AI"))
	assert.Equal(t, "QQ", svc.ResolveName(ctx, "QQ"))

	n, err := cache.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, int64(2), svc.Stats().RemoteFailures)

	// A later success for the same code is still cached.
	client.err = nil
	client.names = map[string]string{"QQ": "Quick Air"}
	assert.Equal(t, "Quick Air", svc.ResolveName(ctx, "QQ"))
}

func TestAirlineService_ResolveName_StaticFallbackRetriesRemote(t *testing.T) {
	ctx := context.Background()
	client := newMockMetadataClient(nil)
	client.err = errors.New("connection refused")
	svc := NewAirlineService(client, memory.NewAirlineCache())

	assert.Equal(t, "Air India", svc.ResolveName(ctx, "AI"))
	assert.Equal(t, "Air India", svc.ResolveName(ctx, "AI"))

	assert.Equal(t, 2, client.callCount("AI"))
}

func TestAirlineService_ResolveName_TrimsCode(t *testing.T) {
	ctx := context.Background()
	client := newMockMetadataClient(map[string]string{"XX": "Example Air"})
	cache := memory.NewAirlineCache()
	svc := NewAirlineService(client, cache)

	assert.Equal(t, "Example Air", svc.ResolveName(ctx, " XX "))
	assert.Equal(t, "Example Air", svc.ResolveName(ctx, "XX"))

	assert.Equal(t, 1, client.callCount("XX"))
	n, err := cache.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestAirlineService_ResolveName_RemotePanicIsAbsorbed(t *testing.T) {
	client := newMockMetadataClient(nil)
	client.panics = true
	svc := NewAirlineService(client, memory.NewAirlineCache())

	assert.Equal(t, "SpiceJet", svc.ResolveName(context.Background(), "SG"))
	assert.Equal(t, int64(1), svc.Stats().RemoteFailures)
}

func TestAirlineService_ResolveName_NoClient(t *testing.T) {
	svc := NewAirlineService(nil, nil)

	assert.Equal(t, "Emirates", svc.ResolveName(context.Background(), "EK"))
	assert.Equal(t, "Q9", svc.ResolveName(context.Background(), "Q9"))
	assert.Zero(t, svc.Stats().RemoteLookups)
}

func TestAirlineService_ResolveName_CaseSensitive(t *testing.T) {
	client := newMockMetadataClient(nil)
	svc := NewAirlineService(client, memory.NewAirlineCache())

	assert.Equal(t, "ai", svc.ResolveName(context.Background(), "ai"))
	assert.Equal(t, 1, client.callCount("ai"))
}

func TestAirlineService_ResolveName_CacheFailureStillResolves(t *testing.T) {
	client := newMockMetadataClient(map[string]string{"XX": "Example Air"})
	svc := NewAirlineService(client, failingCache{})

	assert.Equal(t, "Example Air", svc.ResolveName(context.Background(), "XX"))
}

func TestAirlineService_DefaultCache(t *testing.T) {
	ctx := context.Background()
	client := newMockMetadataClient(map[string]string{"XX": "Example Air"})
	svc := NewAirlineService(client, nil)

	assert.Equal(t, "Example Air", svc.ResolveName(ctx, "XX"))
	assert.Equal(t, "Example Air", svc.ResolveName(ctx, "XX"))
	assert.Equal(t, 1, client.callCount("XX"))

	n, err := svc.cache.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

// --- Enhance ---

func TestAirlineService_Enhance_Empty(t *testing.T) {
	client := newMockMetadataClient(nil)
	svc := NewAirlineService(client, memory.NewAirlineCache())

	out := svc.Enhance(context.Background(), nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
	assert.Zero(t, client.totalCalls())
}

func TestAirlineService_Enhance_RepeatedCodeHitsRemoteOnce(t *testing.T) {
	client := newMockMetadataClient(map[string]string{"XX": "Example Air"})
	svc := NewAirlineService(client, memory.NewAirlineCache())

	records := []domain.FlightRecord{
		{FlightNumber: "XX 1", CarrierCode: "XX"},
		{FlightNumber: "XX 2", CarrierCode: "XX"},
	}

	out := svc.Enhance(context.Background(), records)

	require.Len(t, out, 2)
	assert.Equal(t, 1, client.callCount("XX"))
	assert.Equal(t, "Example Air", out[0].AirlineName)
	assert.Equal(t, "Example Air XX 1", out[0].DisplayName)
	assert.Equal(t, "Example Air XX 2", out[1].DisplayName)
}

func TestAirlineService_Enhance_CacheSharedAcrossExtractors(t *testing.T) {
	client := newMockMetadataClient(map[string]string{"XX": "Test Air"})
	svc := NewAirlineService(client, memory.NewAirlineCache())

	records := []domain.FlightRecord{
		{FlightNumber: "1", ValidatingAirlineCodes: []string{"XX"}},
		{FlightNumber: "2", Operating: &domain.OperatingCarrier{CarrierCode: "XX"}},
	}

	out := svc.Enhance(context.Background(), records)

	require.Len(t, out, 2)
	assert.Equal(t, 1, client.callCount("XX"))
	assert.Equal(t, "Test Air 1", out[0].DisplayName)
	assert.Equal(t, "Test Air 2", out[1].DisplayName)
	assert.Equal(t, "Test Air", out[1].AirlineName)
}

func TestAirlineService_Enhance_PreservesOrderAndFields(t *testing.T) {
	client := newMockMetadataClient(map[string]string{"AI": "Air India"})
	svc := NewAirlineService(client, memory.NewAirlineCache())

	records := []domain.FlightRecord{
		{FlightNumber: "101", ValidatingAirlineCodes: []string{"AI"}, Extra: map[string]any{"id": "1"}},
		{FlightNumber: "22", Operating: &domain.OperatingCarrier{CarrierCode: "6E"}},
		{FlightNumber: "9"},
	}

	out := svc.Enhance(context.Background(), records)

	require.Len(t, out, 3)
	assert.Equal(t, "Air India 101", out[0].DisplayName)
	assert.Equal(t, "1", out[0].Extra["id"])
	assert.Equal(t, "IndiGo 22", out[1].DisplayName)
	assert.Equal(t, "Flight", out[2].AirlineName)
	assert.Equal(t, "Flight 9", out[2].DisplayName)
}

func TestAirlineService_Enhance_DoesNotMutateInput(t *testing.T) {
	svc := NewAirlineService(newMockMetadataClient(nil), memory.NewAirlineCache())

	records := []domain.FlightRecord{
		{FlightNumber: "1", CarrierCode: "AI", Extra: map[string]any{"price": map[string]any{"total": "10"}}},
	}

	out := svc.Enhance(context.Background(), records)
	out[0].Extra["price"].(map[string]any)["total"] = "99"
	out[0].CarrierCode = "XX"

	assert.Equal(t, "AI", records[0].CarrierCode)
	assert.Equal(t, "10", records[0].Extra["price"].(map[string]any)["total"])
}

func TestAirlineService_ConcurrentResolveCachesOneName(t *testing.T) {
	ctx := context.Background()
	client := newMockMetadataClient(map[string]string{"XX": "Example Air"})
	cache := memory.NewAirlineCache()
	svc := NewAirlineService(client, cache)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, "Example Air", svc.ResolveName(ctx, "XX"))
		}()
	}
	wg.Wait()

	n, err := cache.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
