package database

import (
	"context"
	"database/sql"
)

// runMigrations creates the local schema. It mirrors the hosted
// design_partners table so both stores return the same rows.
func runMigrations(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS design_partners (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			stage TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}

	// Dashboard counts and stage-in-use checks filter by stage
	_, err = db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_design_partners_stage
		ON design_partners(stage)
	`)
	return err
}
