// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo, which needs a C compiler and makes
// cross-compilation painful. modernc.org/sqlite is a pure Go translation of
// the SQLite sources — works everywhere Go works.
//
// The pattern throughout this package is plain database/sql:
//  1. sql.Open(driverName, dataSourceName) → creates a pool
//  2. db.QueryContext / db.ExecContext     → runs queries
//  3. rows.Scan(&field1, &field2)          → reads results into Go variables
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	// Side-effect import: the driver registers itself with database/sql
	// under the name "sqlite".
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and provides the repository methods.
// Wrapping in a struct lets us attach methods, control the lifecycle
// (New/Close), and satisfy repository.RecommendationRepository.
type DB struct {
	conn *sql.DB
}

// New opens a SQLite database and runs migrations.
//
// dbPath examples:
//   - "data/recommendations.db" → file-based database (persistent)
//   - ":memory:"                → in-memory database (tests, lost on close)
//
// sql.Open does not actually connect — it creates a pool manager. We Ping()
// to force a real connection so a bad path fails here, not on the first query.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Each pool connection to ":memory:" gets its own private database,
	// so the pool must be capped at one connection or data "disappears"
	// between queries.
	if dbPath == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL mode allows concurrent reads while a write is in progress —
	// important for a web server where multiple requests hit the DB.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Callers should defer this right after New
// so the WAL is flushed and the file lock released even on a panic.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping verifies database connectivity. The readiness probe calls this on
// every GET /health/readiness.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS is idempotent, so
// running this on every startup is safe; there is no separate migration tool.
//
// id is INTEGER PRIMARY KEY AUTOINCREMENT: SQLite assigns a fresh,
// monotonically increasing rowid on insert, which is exactly the surrogate
// key contract — assigned by the store, immutable, never reused.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS recommendations (
			id                     INTEGER PRIMARY KEY AUTOINCREMENT,
			name                   TEXT NOT NULL DEFAULT '',
			product_id             INTEGER NOT NULL,
			recommended_product_id INTEGER NOT NULL,
			recommendation_type    TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_recommendations_product_id
			ON recommendations(product_id);
		CREATE INDEX IF NOT EXISTS idx_recommendations_recommended_product_id
			ON recommendations(recommended_product_id);
		CREATE INDEX IF NOT EXISTS idx_recommendations_type
			ON recommendations(recommendation_type);
	`)
	if err != nil {
		return fmt.Errorf("creating recommendations table: %w", err)
	}

	return nil
}
