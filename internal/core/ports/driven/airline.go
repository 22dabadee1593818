package driven

import "context"

// AirlineMetadataClient looks up airline metadata by carrier code.
type AirlineMetadataClient interface {
	// LookupAirline returns the API's answer for a code. A response with
	// Success false or no name is a normal negative result, not an error.
	LookupAirline(ctx context.Context, code string) (*AirlineLookup, error)
}

// AirlineLookup is the airline metadata API response.
type AirlineLookup struct {
	Success bool         `json:"success"`
	Data    *AirlineData `json:"data,omitempty"`
}

// AirlineData carries the resolved airline.
type AirlineData struct {
	Code string `json:"code,omitempty"`
	Name string `json:"name"`
}

// Name returns the airline name if the lookup succeeded with one.
func (l *AirlineLookup) Name() (string, bool) {
	if l == nil || !l.Success || l.Data == nil || l.Data.Name == "" {
		return "", false
	}
	return l.Data.Name, true
}

// AirlineNameCache stores resolved airline names by carrier code.
// Entries never expire and are never overwritten.
type AirlineNameCache interface {
	// Get returns the cached name for code.
	Get(ctx context.Context, code string) (string, bool, error)

	// PutIfAbsent stores name for code unless an entry exists, and
	// returns the name that is cached after the call.
	PutIfAbsent(ctx context.Context, code, name string) (string, error)

	// Len returns the number of cached entries.
	Len(ctx context.Context) (int, error)
}
