package store

import "database/sql"

// migrate runs all database migrations
func migrate(db *sql.DB) error {
	migrations := []string{
		// Computed effort estimates
		`CREATE TABLE IF NOT EXISTS estimates (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			activity TEXT NOT NULL,
			mass_kg REAL NOT NULL,
			speed_kmh REAL NOT NULL,
			duration_s REAL NOT NULL,
			ascent_m REAL NOT NULL DEFAULT 0,
			descent_m REAL NOT NULL DEFAULT 0,
			drag_w REAL NOT NULL,
			rolling_w REAL NOT NULL,
			gravity_w REAL NOT NULL,
			total_w REAL NOT NULL,
			mechanical_kj REAL NOT NULL,
			metabolic_kj REAL NOT NULL,
			metabolic_kcal REAL NOT NULL,
			created_at TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_estimates_created_at ON estimates(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_estimates_activity ON estimates(activity)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}
