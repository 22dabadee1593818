package memory

import (
	"context"
	"sync"

	"github.com/developertarun01/weyfar-cli/internal/core/ports/driven"
)

// Ensure AirlineCache implements the interface.
var _ driven.AirlineNameCache = (*AirlineCache)(nil)

// AirlineCache is an in-memory implementation of driven.AirlineNameCache.
// Entries live for the lifetime of the process.
type AirlineCache struct {
	mu    sync.RWMutex
	names map[string]string
}

// NewAirlineCache creates an empty airline name cache.
func NewAirlineCache() *AirlineCache {
	return &AirlineCache{
		names: make(map[string]string),
	}
}

// Get returns the cached name for code.
func (c *AirlineCache) Get(_ context.Context, code string) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	name, ok := c.names[code]
	return name, ok, nil
}

// PutIfAbsent stores name unless code is already cached, and returns the
// cached name.
func (c *AirlineCache) PutIfAbsent(_ context.Context, code, name string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.names[code]; ok {
		return existing, nil
	}
	c.names[code] = name
	return name, nil
}

// Len returns the number of cached entries.
func (c *AirlineCache) Len(_ context.Context) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.names), nil
}
