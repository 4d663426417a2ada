package postgres

import (
	"context"
	"fmt"
	"time"
)

// Migration is one versioned schema step. The schema is owned by the
// relational backend only; the REST-fronted service manages its own.
type Migration struct {
	Version string
	Name    string
	SQL     string
}

// MigrationRecord is a row of the schema_migrations bookkeeping table.
type MigrationRecord struct {
	Version   string
	Name      string
	AppliedAt time.Time
}

// migrations is the ordered, embedded schema history.
var migrations = []Migration{
	{
		Version: "20240101000000",
		Name:    "create_core_tables",
		SQL: `
			CREATE TYPE product_status AS ENUM ('pending', 'approved', 'rejected');

			CREATE TABLE products (
				id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
				name text NOT NULL,
				slogan text NOT NULL DEFAULT '',
				description text NOT NULL DEFAULT '',
				website text NOT NULL DEFAULT '',
				logo_url text,
				category text NOT NULL DEFAULT '',
				tags text[] NOT NULL DEFAULT '{}',
				maker_name text NOT NULL DEFAULT '',
				maker_email text NOT NULL DEFAULT '',
				maker_website text,
				language text NOT NULL DEFAULT 'en',
				status product_status NOT NULL DEFAULT 'pending',
				created_at timestamptz NOT NULL DEFAULT now(),
				updated_at timestamptz NOT NULL DEFAULT now()
			);

			CREATE INDEX idx_products_category ON products (category);
			CREATE INDEX idx_products_status ON products (status);
			CREATE INDEX idx_products_created_at ON products (created_at DESC);
			CREATE INDEX idx_products_maker_email ON products (maker_email);

			CREATE TABLE categories (
				id text PRIMARY KEY,
				name_en text NOT NULL,
				name_zh text,
				icon text NOT NULL DEFAULT '',
				color text NOT NULL DEFAULT ''
			);

			CREATE TABLE developers (
				email text PRIMARY KEY,
				name text NOT NULL,
				avatar_url text,
				website text,
				created_at timestamptz NOT NULL DEFAULT now()
			);
		`,
	},
	{
		Version: "20240101000001",
		Name:    "create_engagement_tables",
		SQL: `
			CREATE TABLE developer_follows (
				developer_email text NOT NULL,
				user_id text NOT NULL,
				created_at timestamptz NOT NULL DEFAULT now(),
				PRIMARY KEY (developer_email, user_id)
			);

			CREATE TABLE product_likes (
				id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
				product_id uuid NOT NULL,
				user_id text NOT NULL,
				created_at timestamptz NOT NULL DEFAULT now(),
				UNIQUE (product_id, user_id)
			);

			CREATE TABLE product_favorites (
				id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
				product_id uuid NOT NULL,
				user_id text NOT NULL,
				created_at timestamptz NOT NULL DEFAULT now(),
				UNIQUE (product_id, user_id)
			);

			CREATE INDEX idx_product_likes_product ON product_likes (product_id);
			CREATE INDEX idx_product_likes_created ON product_likes (created_at);
			CREATE INDEX idx_product_favorites_product ON product_favorites (product_id);
			CREATE INDEX idx_product_favorites_created ON product_favorites (created_at);
		`,
	},
}

const migrationLockID = 7232150914

// Migrate applies all pending migrations in order under an advisory
// lock and returns the versions applied.
func (s *Store) Migrate(ctx context.Context) ([]string, error) {
	if err := s.initMigrations(ctx); err != nil {
		return nil, err
	}

	var acquired bool
	if err := s.pool.QueryRow(ctx, "SELECT pg_try_advisory_lock($1)", int64(migrationLockID)).Scan(&acquired); err != nil {
		return nil, fmt.Errorf("failed to acquire migration lock: %w", err)
	}
	if !acquired {
		return nil, fmt.Errorf("another migration is in progress")
	}
	defer func() {
		var released bool
		_ = s.pool.QueryRow(ctx, "SELECT pg_advisory_unlock($1)", int64(migrationLockID)).Scan(&released)
	}()

	applied, err := s.appliedVersions(ctx)
	if err != nil {
		return nil, err
	}

	var done []string
	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		if _, err := s.pool.Exec(ctx, m.SQL); err != nil {
			return done, fmt.Errorf("failed to apply migration %s (%s): %w", m.Version, m.Name, err)
		}
		if _, err := s.pool.Exec(ctx,
			"INSERT INTO schema_migrations (version, name) VALUES ($1, $2)",
			m.Version, m.Name); err != nil {
			return done, fmt.Errorf("failed to record migration %s: %w", m.Version, err)
		}
		done = append(done, m.Version)
	}
	return done, nil
}

// MigrationStatus returns the recorded migration history.
func (s *Store) MigrationStatus(ctx context.Context) ([]MigrationRecord, error) {
	if err := s.initMigrations(ctx); err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx,
		"SELECT version, name, applied_at FROM schema_migrations ORDER BY version ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	var records []MigrationRecord
	for rows.Next() {
		var r MigrationRecord
		if err := rows.Scan(&r.Version, &r.Name, &r.AppliedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// PendingMigrations lists embedded migrations not yet applied.
func (s *Store) PendingMigrations(ctx context.Context) ([]Migration, error) {
	if err := s.initMigrations(ctx); err != nil {
		return nil, err
	}
	applied, err := s.appliedVersions(ctx)
	if err != nil {
		return nil, err
	}

	var pending []Migration
	for _, m := range migrations {
		if !applied[m.Version] {
			pending = append(pending, m)
		}
	}
	return pending, nil
}

func (s *Store) initMigrations(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version varchar(14) PRIMARY KEY,
			name varchar(255) NOT NULL,
			applied_at timestamptz NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}
	return nil
}

func (s *Store) appliedVersions(ctx context.Context) (map[string]bool, error) {
	rows, err := s.pool.Query(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer rows.Close()

	applied := map[string]bool{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		applied[v] = true
	}
	return applied, rows.Err()
}
