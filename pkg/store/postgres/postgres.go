// Package postgres is the directly-connected relational backend. It
// compiles the shared product filter into parameterized SQL, maps rows
// onto the canonical API entities, and owns the persisted schema.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the pgx-backed storage implementation.
type Store struct {
	pool *pgxpool.Pool
	wide bool
	now  func() time.Time
}

// Open parses the connection string and builds the pool. The pool is
// small and lazily established; no connection is made here, so a down
// database surfaces on first use, not at boot.
func Open(ctx context.Context, url string, widenApproved bool) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	cfg.MaxConns = 4
	cfg.MinConns = 0

	// Simple protocol, no statement caching: a transaction-mode pooler
	// in front of the database invalidates prepared statements between
	// checkouts.
	cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	cfg.ConnConfig.StatementCacheCapacity = 0
	cfg.ConnConfig.DescriptionCacheCapacity = 0

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	return &Store{pool: pool, wide: widenApproved, now: time.Now}, nil
}

// NewWithPool wires an existing pool, used by integration tests.
func NewWithPool(pool *pgxpool.Pool, widenApproved bool) *Store {
	return &Store{pool: pool, wide: widenApproved, now: time.Now}
}

// WithClock overrides the wall clock used for calendar-month windows.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Pool exposes the underlying pool for migrations and tests.
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// CountProducts returns the total product row count.
func (s *Store) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}
