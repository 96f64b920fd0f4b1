package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure Go SQLite driver
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS trades (
	id                TEXT PRIMARY KEY,
	user_id           TEXT NOT NULL,
	entry_date        TEXT NOT NULL,
	symbol            TEXT NOT NULL,
	action            TEXT NOT NULL,
	quantity          TEXT NOT NULL,
	entry_price       TEXT NOT NULL,
	instrument_type   TEXT NOT NULL,
	option_type       TEXT NOT NULL DEFAULT '',
	strategy          TEXT NOT NULL DEFAULT '',
	notes             TEXT NOT NULL DEFAULT '',
	exit_date         TEXT,
	exit_price        TEXT,
	profit            TEXT,
	profit_percentage TEXT
);
CREATE INDEX IF NOT EXISTS idx_trades_user_id ON trades (user_id);
`

// Open opens (and creates when needed) the database at path and applies the schema.
// Use ":memory:" for a throwaway database.
func Open(path string) (*DB, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// a single connection keeps :memory: databases alive and serializes writers
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := conn.ExecContext(context.Background(), schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &DB{DB: conn}, nil
}
