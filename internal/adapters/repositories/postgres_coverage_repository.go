package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hex-coverage-planner/internal/domain"
	"hex-coverage-planner/internal/hexgrid"
	"hex-coverage-planner/internal/platform/obs"
)

// Postgres-backed implementation of the CoverageStore port.
type PostgresCoverageRepository struct{ DB *sql.DB }

func NewPostgresCoverageRepository(db *sql.DB) *PostgresCoverageRepository {
	return &PostgresCoverageRepository{DB: db}
}

// Replace all hexes. Vehicles and assignments refer to the old map and are removed with it.
func (s *PostgresCoverageRepository) SeedGrid(ctx context.Context, hexes []hexgrid.Hex) (err error) {
	defer obs.Time(ctx, "coverage.store.SeedGrid")(&err)

	if s.DB == nil {
		return errors.New("postgres coverage repository: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed grid: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"assignments", "uavs", "hexes"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("seed grid: clear %s: %w", table, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO hexes (id, q, r, x, y, priority)
	VALUES ($1, $2, $3, $4, $5, $6);
	`)
	if err != nil {
		return fmt.Errorf("seed grid: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, h := range hexes {
		if !h.Position.Finite() {
			return &domain.InvalidInputError{CellID: h.ID, Reason: "coordinates must be finite"}
		}
		if _, err := stmt.ExecContext(ctx, int(h.ID), h.Axial.Q, h.Axial.R, h.Position.X, h.Position.Y, h.Priority); err != nil {
			return fmt.Errorf("seed grid: insert hex id=%d: %w", h.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed grid: commit tx: %w", err)
	}

	return nil
}

// Replace the fleet and its assignment in one transaction.
func (s *PostgresCoverageRepository) ReplaceAssignments(
	ctx context.Context,
	vehicleCount int,
	assignment domain.Assignment,
) (err error) {
	defer obs.Time(ctx, "coverage.store.ReplaceAssignments")(&err)

	if s.DB == nil {
		return errors.New("postgres coverage repository: DB is nil")
	}
	if err := checkAssignment(vehicleCount, assignment); err != nil {
		return err
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace assignments: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM assignments"); err != nil {
		return fmt.Errorf("replace assignments: clear assignments: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM uavs"); err != nil {
		return fmt.Errorf("replace assignments: clear uavs: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
	INSERT INTO uavs (id)
	SELECT generate_series(0, $1::int - 1);
	`, vehicleCount); err != nil {
		return fmt.Errorf("replace assignments: insert uavs: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO assignments (uav_id, hex_id)
	VALUES ($1, $2);
	`)
	if err != nil {
		return fmt.Errorf("replace assignments: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, vid := range assignment.Vehicles() {
		for _, c := range assignment[vid] {
			if _, err := stmt.ExecContext(ctx, int(vid), int(c.ID)); err != nil {
				return fmt.Errorf("replace assignments: insert uav_id=%d hex_id=%d: %w", vid, c.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace assignments: commit tx: %w", err)
	}

	return nil
}

// Return all hexes as planning cells ordered by id.
func (s *PostgresCoverageRepository) ListCells(ctx context.Context) (_ []domain.Cell, err error) {
	defer obs.Time(ctx, "coverage.store.ListCells")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres coverage repository: DB is nil")
	}

	query := `
	SELECT
		id,
		x,
		y,
		priority
	FROM hexes
	ORDER BY id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list cells: query hexes table: %w", err)
	}
	defer rows.Close()

	cells := make([]domain.Cell, 0, 64)
	for rows.Next() {
		c, err := scanCell(rows)
		if err != nil {
			return nil, fmt.Errorf("list cells: scan row: %w", err)
		}
		cells = append(cells, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list cells: row iteration: %w", err)
	}

	return cells, nil
}

// Return the cells assigned to each vehicle, ordered by vehicle then hex id.
func (s *PostgresCoverageRepository) ListAssignments(ctx context.Context) (_ domain.Assignment, err error) {
	defer obs.Time(ctx, "coverage.store.ListAssignments")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres coverage repository: DB is nil")
	}

	query := `
	SELECT
		a.uav_id,
		h.id,
		h.x,
		h.y,
		h.priority
	FROM assignments a
	JOIN hexes h ON h.id = a.hex_id
	ORDER BY a.uav_id, h.id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list assignments: query assignments table: %w", err)
	}
	defer rows.Close()

	out := domain.Assignment{}
	for rows.Next() {
		var vid int
		var id int
		var x, y float64
		var priority int
		if err := rows.Scan(&vid, &id, &x, &y, &priority); err != nil {
			return nil, fmt.Errorf("list assignments: scan row: %w", err)
		}
		v := domain.VehicleID(vid)
		out[v] = append(out[v], domain.Cell{
			ID:       domain.CellID(id),
			Position: domain.Position{X: x, Y: y},
			Priority: float64(priority),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list assignments: row iteration: %w", err)
	}

	return out, nil
}

func scanCell(rows *sql.Rows) (domain.Cell, error) {
	var id int
	var x, y float64
	var priority int
	if err := rows.Scan(&id, &x, &y, &priority); err != nil {
		return domain.Cell{}, err
	}
	return domain.Cell{
		ID:       domain.CellID(id),
		Position: domain.Position{X: x, Y: y},
		Priority: float64(priority),
	}, nil
}
