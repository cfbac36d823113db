package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/adaptsync/adaptsync/internal/config"
	"github.com/adaptsync/adaptsync/internal/logger"
)

// NewConnectSQLite opens the local sqlite file backing the sync state,
// creating it on first run, and verifies the connection with a ping.
func NewConnectSQLite(ctx context.Context, cfg config.ClientDB, log *logger.Logger) (*DB, error) {
	if err := ensureDBFile(cfg.DSN); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("sync database file unavailable")
		return nil, fmt.Errorf("create sync database file: %w", err)
	}

	conn, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("sync database unreachable")
		return nil, fmt.Errorf("open sync database: %w", err)
	}

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("sync database ping failed")
		return nil, fmt.Errorf("ping sync database: %w", err)
	}
	log.Debug().Str("func", "NewConnectSQLite").Msg("sync database connected")

	return &DB{
		DB:     conn,
		logger: log,
	}, nil
}

// ensureDBFile creates an empty database file when none exists yet; sql.Open
// alone defers that to the first statement.
func ensureDBFile(dbFile string) error {
	_, err := os.Stat(dbFile)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}

	f, err := os.Create(dbFile)
	if err != nil {
		return fmt.Errorf("create %s: %w", dbFile, err)
	}
	return f.Close()
}
