package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Estimate is a stored effort calculation: its inputs, the power breakdown,
// and the resulting energies.
type Estimate struct {
	ID            int64
	Activity      string
	MassKg        float64
	SpeedKmh      float64
	DurationS     float64
	AscentM       float64
	DescentM      float64
	DragW         float64
	RollingW      float64
	GravityW      float64
	TotalW        float64
	MechanicalKJ  float64
	MetabolicKJ   float64
	MetabolicKcal float64
	CreatedAt     time.Time
}

// SaveEstimate inserts an estimate and sets its ID
func (db *DB) SaveEstimate(e *Estimate) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	result, err := db.Exec(`
		INSERT INTO estimates (
			activity, mass_kg, speed_kmh, duration_s, ascent_m, descent_m,
			drag_w, rolling_w, gravity_w, total_w,
			mechanical_kj, metabolic_kj, metabolic_kcal, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		e.Activity, e.MassKg, e.SpeedKmh, e.DurationS, e.AscentM, e.DescentM,
		e.DragW, e.RollingW, e.GravityW, e.TotalW,
		e.MechanicalKJ, e.MetabolicKJ, e.MetabolicKcal,
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return err
	}

	e.ID, err = result.LastInsertId()
	return err
}

// ListEstimates retrieves the most recent estimates, newest first
func (db *DB) ListEstimates(limit int) ([]Estimate, error) {
	rows, err := db.Query(`
		SELECT id, activity, mass_kg, speed_kmh, duration_s, ascent_m, descent_m,
			drag_w, rolling_w, gravity_w, total_w,
			mechanical_kj, metabolic_kj, metabolic_kcal, created_at
		FROM estimates
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEstimates(rows)
}

// GetEstimate retrieves a single estimate by ID
func (db *DB) GetEstimate(id int64) (*Estimate, error) {
	row := db.QueryRow(`
		SELECT id, activity, mass_kg, speed_kmh, duration_s, ascent_m, descent_m,
			drag_w, rolling_w, gravity_w, total_w,
			mechanical_kj, metabolic_kj, metabolic_kcal, created_at
		FROM estimates
		WHERE id = ?
	`, id)

	return scanEstimate(row)
}

// CountEstimates returns the total number of stored estimates
func (db *DB) CountEstimates() (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM estimates`).Scan(&count)
	return count, err
}

// DeleteEstimate removes a single estimate by ID
func (db *DB) DeleteEstimate(id int64) error {
	result, err := db.Exec(`DELETE FROM estimates WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrEstimateNotFound
	}
	return nil
}

// ClearEstimates removes all stored estimates
func (db *DB) ClearEstimates() error {
	_, err := db.Exec(`DELETE FROM estimates`)
	return err
}

// scanEstimate scans a single estimate from a row
func scanEstimate(row *sql.Row) (*Estimate, error) {
	var e Estimate
	var createdAt string

	err := row.Scan(
		&e.ID, &e.Activity, &e.MassKg, &e.SpeedKmh, &e.DurationS, &e.AscentM, &e.DescentM,
		&e.DragW, &e.RollingW, &e.GravityW, &e.TotalW,
		&e.MechanicalKJ, &e.MetabolicKJ, &e.MetabolicKcal,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEstimateNotFound
	}
	if err != nil {
		return nil, err
	}

	var parseErr error
	e.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAt)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at %q: %w", createdAt, parseErr)
	}

	return &e, nil
}

// scanEstimates scans multiple estimates from rows
func scanEstimates(rows *sql.Rows) ([]Estimate, error) {
	var estimates []Estimate

	for rows.Next() {
		var e Estimate
		var createdAt string

		err := rows.Scan(
			&e.ID, &e.Activity, &e.MassKg, &e.SpeedKmh, &e.DurationS, &e.AscentM, &e.DescentM,
			&e.DragW, &e.RollingW, &e.GravityW, &e.TotalW,
			&e.MechanicalKJ, &e.MetabolicKJ, &e.MetabolicKcal,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		var parseErr error
		e.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAt)
		if parseErr != nil {
			return nil, fmt.Errorf("parsing created_at %q: %w", createdAt, parseErr)
		}

		estimates = append(estimates, e)
	}

	return estimates, rows.Err()
}
