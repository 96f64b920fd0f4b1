package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS trades (
	id                UUID PRIMARY KEY,
	user_id           TEXT NOT NULL,
	entry_date        DATE NOT NULL,
	symbol            TEXT NOT NULL,
	action            TEXT NOT NULL,
	quantity          NUMERIC NOT NULL,
	entry_price       NUMERIC NOT NULL,
	instrument_type   TEXT NOT NULL,
	option_type       TEXT NOT NULL DEFAULT '',
	strategy          TEXT NOT NULL DEFAULT '',
	notes             TEXT NOT NULL DEFAULT '',
	exit_date         DATE,
	exit_price        NUMERIC,
	profit            NUMERIC,
	profit_percentage NUMERIC,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_trades_user_id ON trades (user_id);
`

// NewDB creates a new database connection
// connectionString should be in the format: "host=localhost port=5432 user=postgres password=postgres dbname=tradejournal sslmode=disable"
func NewDB(connectionString string) (*DB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

// EnsureSchema creates the trades table when missing
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
