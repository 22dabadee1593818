package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/developertarun01/weyfar-cli/internal/core/ports/driven"
)

// airlineCache implements driven.AirlineNameCache.
type airlineCache struct {
	store *Store
}

var _ driven.AirlineNameCache = (*airlineCache)(nil)

// Get returns the cached name for code.
func (c *airlineCache) Get(ctx context.Context, code string) (string, bool, error) {
	var name string
	err := c.store.db.QueryRowContext(ctx, "SELECT name FROM airline_names WHERE code = ?", code).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying airline %s: %w", code, err)
	}
	return name, true, nil
}

// PutIfAbsent inserts name unless code already has a row, then returns the
// stored name.
func (c *airlineCache) PutIfAbsent(ctx context.Context, code, name string) (string, error) {
	var stored string
	err := c.store.db.QueryRowContext(ctx, `
		INSERT INTO airline_names (code, name) VALUES (?, ?)
		ON CONFLICT(code) DO UPDATE SET code = excluded.code
		RETURNING name
	`, code, name).Scan(&stored)
	if err != nil {
		return "", fmt.Errorf("storing airline %s: %w", code, err)
	}
	return stored, nil
}

// Len returns the number of cached names.
func (c *airlineCache) Len(ctx context.Context) (int, error) {
	var n int
	if err := c.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM airline_names").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting airlines: %w", err)
	}
	return n, nil
}
