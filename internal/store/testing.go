package store

import (
	"database/sql"
)

// NewTestDB creates a DB for testing from an existing connection, typically
// an in-memory database. This is only intended for use in tests.
func NewTestDB(sqlDB *sql.DB) (*DB, error) {
	if err := migrate(sqlDB); err != nil {
		return nil, err
	}
	return &DB{sqlDB}, nil
}
