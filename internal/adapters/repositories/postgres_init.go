package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres schema: coverage map, fleet, assignments and the route cache table.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createHexesQuery := `
	CREATE TABLE IF NOT EXISTS hexes (
		id INTEGER PRIMARY KEY,
		q INTEGER NOT NULL,
		r INTEGER NOT NULL,
		x DOUBLE PRECISION NOT NULL,
		y DOUBLE PRECISION NOT NULL,
		priority INTEGER NOT NULL,
		UNIQUE (q, r)
	);
	`

	createUAVsQuery := `
	CREATE TABLE IF NOT EXISTS uavs (
		id INTEGER PRIMARY KEY
	);
	`

	createAssignmentsQuery := `
	CREATE TABLE IF NOT EXISTS assignments (
		uav_id INTEGER NOT NULL REFERENCES uavs(id) ON DELETE CASCADE,
		hex_id INTEGER NOT NULL REFERENCES hexes(id) ON DELETE CASCADE,
		PRIMARY KEY (hex_id)
	);
	`

	createRouteCacheQuery := `
	CREATE TABLE IF NOT EXISTS route_cache (
		key TEXT PRIMARY KEY,
		plan JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_assignments_uav_hex
	ON assignments(uav_id, hex_id);
	`

	statements := []string{
		createHexesQuery,
		createUAVsQuery,
		createAssignmentsQuery,
		createRouteCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
