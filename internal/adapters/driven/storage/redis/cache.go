// Package redis provides a Redis-backed airline name cache shared between
// processes.
//
// Names are stored as plain string keys under KeyPrefix with no expiry and
// are written with SETNX, so the first resolved name for a code wins.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/developertarun01/weyfar-cli/internal/core/ports/driven"
)

// KeyPrefix namespaces airline keys.
const KeyPrefix = "weyfar:airline:"

// scanBatch is the COUNT hint used when counting keys.
const scanBatch = 100

// commander is the subset of the go-redis client used by the cache.
type commander interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.BoolCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *goredis.ScanCmd
}

// Ensure AirlineCache implements the interface.
var _ driven.AirlineNameCache = (*AirlineCache)(nil)

// AirlineCache implements driven.AirlineNameCache on Redis.
type AirlineCache struct {
	client commander
}

// NewAirlineCache wraps an existing go-redis client.
func NewAirlineCache(client goredis.UniversalClient) *AirlineCache {
	return &AirlineCache{client: client}
}

// Dial connects to addr and verifies the connection with PING.
func Dial(ctx context.Context, addr string) (*AirlineCache, func() error, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return NewAirlineCache(client), client.Close, nil
}

// Key returns the Redis key for a carrier code.
func Key(code string) string {
	return KeyPrefix + code
}

// Get returns the cached name for code.
func (c *AirlineCache) Get(ctx context.Context, code string) (string, bool, error) {
	name, err := c.client.Get(ctx, Key(code)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", code, err)
	}
	return name, true, nil
}

// PutIfAbsent writes name with SETNX and returns whichever name is stored.
func (c *AirlineCache) PutIfAbsent(ctx context.Context, code, name string) (string, error) {
	set, err := c.client.SetNX(ctx, Key(code), name, 0).Result()
	if err != nil {
		return "", fmt.Errorf("redis setnx %s: %w", code, err)
	}
	if set {
		return name, nil
	}

	existing, ok, err := c.Get(ctx, code)
	if err != nil {
		return "", err
	}
	if !ok {
		// Removed between SETNX and GET.
		return name, nil
	}
	return existing, nil
}

// Len counts airline keys with SCAN.
func (c *AirlineCache) Len(ctx context.Context) (int, error) {
	var (
		cursor uint64
		total  int
	)
	for {
		keys, next, err := c.client.Scan(ctx, cursor, KeyPrefix+"*", scanBatch).Result()
		if err != nil {
			return 0, fmt.Errorf("redis scan: %w", err)
		}
		total += len(keys)
		if next == 0 {
			return total, nil
		}
		cursor = next
	}
}
