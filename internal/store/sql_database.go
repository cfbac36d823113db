package store

import (
	"database/sql"

	"github.com/adaptsync/adaptsync/internal/logger"
)

type DB struct {
	*sql.DB
	logger *logger.Logger
}

// Migrate creates the local schema (cursor, outbox, conflicts tables) if it
// does not exist yet. SQLite executes the whole DDL script in one call.
func (db *DB) Migrate() error {
	_, err := db.Exec(schemaDDL)
	return err
}
