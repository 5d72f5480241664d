package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite connection to a lattice workspace file
type DB struct {
	conn *sql.DB
	Path string
}

// OpenDB opens a workspace database with WAL mode and foreign keys enabled,
// creating the schema when missing so the CLI can seed fresh workspaces.
func OpenDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// WAL lets the canvas keep reading while the CLI writes
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := ensureSchema(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ensuring schema: %w", err)
	}

	return &DB{conn: conn, Path: path}, nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.conn.Close()
}

// Conn returns the underlying sql.DB for custom queries
func (d *DB) Conn() *sql.DB {
	return d.conn
}

func ensureSchema(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS nodes (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL DEFAULT 'note',
			title TEXT,
			content TEXT,
			status TEXT,
			priority TEXT,
			description TEXT,
			content_type TEXT,
			language TEXT,
			injection_format TEXT,
			messages TEXT,
			include_in_context INTEGER NOT NULL DEFAULT 1,
			is_archived INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS edges (
			id TEXT PRIMARY KEY,
			source_id TEXT NOT NULL,
			target_id TEXT NOT NULL,
			active INTEGER NOT NULL DEFAULT 1,
			direction TEXT NOT NULL DEFAULT 'unidirectional',
			max_depth INTEGER,
			is_workspace_link INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_edges_source ON edges(source_id);
		CREATE INDEX IF NOT EXISTS idx_edges_target ON edges(target_id);
		CREATE TABLE IF NOT EXISTS context_settings (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			global_depth INTEGER NOT NULL DEFAULT 3,
			max_tokens INTEGER,
			traversal_mode TEXT NOT NULL DEFAULT 'all',
			include_disabled_nodes INTEGER NOT NULL DEFAULT 1
		);
	`)
	return err
}
