package db

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS export_artifacts (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL,
		report_type TEXT NOT NULL,
		format      TEXT NOT NULL,
		file_name   TEXT NOT NULL,
		size_bytes  INTEGER NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS export_artifacts_user_created_idx
		ON export_artifacts (user_id, created_at DESC)`,
}

// Migrate creates the export audit table. Statements are idempotent.
func Migrate(ctx context.Context, q Querier) error {
	for i, stmt := range schema {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}
