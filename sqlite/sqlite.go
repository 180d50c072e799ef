// Package sqlite stores the market line catalog in SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// SchemaVersion is recorded in PRAGMA user_version once the schema exists.
const SchemaVersion = 1

// DB is a catalog database handle.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB returns a DB for path. ":memory:" selects a private in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open connects, applies connection pragmas and migrates the schema.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// One connection: SQLite has a single writer and :memory: is per-connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	for _, pragma := range pragmas(db.path == ":memory:") {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if err := migrate(conn); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	db.db = conn
	return nil
}

// pragmas lists per-connection settings. WAL is unavailable in memory.
func pragmas(inMemory bool) []string {
	p := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	if !inMemory {
		p = append(p, "PRAGMA journal_mode = WAL")
	}
	return p
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, opts)
}

const schema = `
	CREATE TABLE IF NOT EXISTS lines (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		aisle INTEGER NOT NULL,
		position INTEGER NOT NULL,
		seq INTEGER NOT NULL DEFAULT 0,
		content_hash TEXT NOT NULL DEFAULT '',
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS line_items (
		line_id TEXT NOT NULL REFERENCES lines(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		item TEXT NOT NULL,
		PRIMARY KEY (line_id, position)
	);

	CREATE INDEX IF NOT EXISTS idx_lines_aisle ON lines(aisle, position, seq);
	CREATE INDEX IF NOT EXISTS idx_lines_name ON lines(name COLLATE NOCASE);
`

// migrate creates the schema when user_version is behind SchemaVersion.
func migrate(conn *sql.DB) error {
	var version int
	if err := conn.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return err
	}
	if version >= SchemaVersion {
		return nil
	}

	tx, err := conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(schema); err != nil {
		return err
	}
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion)); err != nil {
		return err
	}
	return tx.Commit()
}
