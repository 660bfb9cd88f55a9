package database

import (
	"context"
	"fmt"
)

// schemaDDL creates the tables and unique constraints the application relies
// on. Statements are idempotent so EnsureSchema can run on every startup.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS listings (
		id          UUID PRIMARY KEY,
		name        TEXT NOT NULL,
		slug        TEXT NOT NULL UNIQUE,
		channel     TEXT,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id              UUID PRIMARY KEY,
		source          TEXT NOT NULL,
		external_id     TEXT NOT NULL,
		listing_id      UUID NOT NULL REFERENCES listings(id) ON DELETE CASCADE,
		type            TEXT NOT NULL,
		status          TEXT NOT NULL,
		rating_overall  DOUBLE PRECISION,
		categories      JSONB,
		text            TEXT,
		author_name     TEXT,
		channel         TEXT,
		submitted_at    TIMESTAMPTZ NOT NULL,
		approved        BOOLEAN NOT NULL DEFAULT FALSE,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_reviews_source_external_id
		ON reviews (source, external_id)`,
	`CREATE INDEX IF NOT EXISTS idx_reviews_listing_submitted
		ON reviews (listing_id, submitted_at DESC)`,
	`CREATE TABLE IF NOT EXISTS review_selection_logs (
		id          UUID PRIMARY KEY,
		review_id   UUID NOT NULL REFERENCES reviews(id) ON DELETE CASCADE,
		action      TEXT NOT NULL,
		actor       TEXT,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_selection_logs_review
		ON review_selection_logs (review_id)`,
}

// EnsureSchema creates missing tables and indexes. It replaces an external
// migration tool for this service; all statements are IF NOT EXISTS.
func (db *PostgresDB) EnsureSchema(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	for _, stmt := range schemaDDL {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}

	return nil
}
