package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the tables for the configured prefix if they do not
// exist. Used by the seed command and dev bootstrap; production schema is
// managed outside the application.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	stmts := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
				user_id    TEXT NOT NULL,
				name       TEXT NOT NULL,
				company    TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, tables.Clients),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id           TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
				client_id    TEXT NOT NULL REFERENCES %s(id),
				user_id      TEXT NOT NULL,
				slug         TEXT NOT NULL UNIQUE,
				name         TEXT NOT NULL,
				status       TEXT NOT NULL,
				intake       JSONB,
				plan         JSONB,
				architecture JSONB,
				summary      TEXT,
				created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				archived_at  TIMESTAMPTZ
			)`, tables.Projects, tables.Clients),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id             TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
				project_id     TEXT NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
				sequence       INT NOT NULL,
				status         TEXT NOT NULL,
				goal           TEXT NOT NULL DEFAULT '',
				started_at     TIMESTAMPTZ,
				completed_at   TIMESTAMPTZ,
				review_summary TEXT,
				created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				UNIQUE (project_id, sequence)
			)`, tables.Sprints, tables.Projects),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
				project_id TEXT NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
				type       TEXT NOT NULL,
				title      TEXT NOT NULL,
				content    JSONB,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, tables.Artifacts, tables.Projects),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id               TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
				project_id       TEXT NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
				role             TEXT NOT NULL,
				interaction_type TEXT NOT NULL,
				input            JSONB,
				output           JSONB,
				created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, tables.Conversations, tables.Projects),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id               TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
				sprint_id        TEXT NOT NULL UNIQUE REFERENCES %s(id) ON DELETE CASCADE,
				conversation_log JSONB NOT NULL DEFAULT '[]'::jsonb,
				created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, tables.SprintReviews, tables.Sprints),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
				project_id TEXT NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
				old_status TEXT NOT NULL,
				new_status TEXT NOT NULL,
				changed_by TEXT NOT NULL,
				changed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, tables.StatusChanges, tables.Projects),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_project ON %s(project_id)`,
			tables.StatusChanges, tables.StatusChanges),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_status ON %s(user_id, status)`,
			tables.Projects, tables.Projects),
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	return nil
}
