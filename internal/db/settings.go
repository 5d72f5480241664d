package db

import (
	"database/sql"
	"errors"
	"fmt"
)

// ContextSettings holds the per-workspace traversal and budget parameters.
// It is always passed explicitly into the engine; nothing reads it from
// global state.
type ContextSettings struct {
	GlobalDepth          int    `json:"global_depth"`
	MaxTokens            *int   `json:"max_tokens"`
	TraversalMode        string `json:"traversal_mode"`
	IncludeDisabledNodes bool   `json:"include_disabled_nodes"`
}

// TraversalModeAll visits every eligible inbound/bidirectional neighbor.
// The column is reserved for alternate policies; "all" is the only mode
// implemented today.
const TraversalModeAll = "all"

// DefaultSettings returns the canonical defaults: depth 3, no token budget,
// disabled nodes pass through.
func DefaultSettings() ContextSettings {
	return ContextSettings{
		GlobalDepth:          3,
		TraversalMode:        TraversalModeAll,
		IncludeDisabledNodes: true,
	}
}

// LoadSettings reads the workspace settings row, falling back to defaults
// when the workspace has never stored one.
func (d *DB) LoadSettings() (ContextSettings, error) {
	row := d.conn.QueryRow(`
		SELECT global_depth, max_tokens, traversal_mode, include_disabled_nodes
		FROM context_settings WHERE id = 1
	`)
	var s ContextSettings
	err := row.Scan(&s.GlobalDepth, &s.MaxTokens, &s.TraversalMode, &s.IncludeDisabledNodes)
	if errors.Is(err, sql.ErrNoRows) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return ContextSettings{}, fmt.Errorf("loading settings: %w", err)
	}
	return s, nil
}

// SaveSettings upserts the single workspace settings row.
func (d *DB) SaveSettings(s ContextSettings) error {
	_, err := d.conn.Exec(`
		INSERT INTO context_settings (id, global_depth, max_tokens, traversal_mode, include_disabled_nodes)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			global_depth = excluded.global_depth,
			max_tokens = excluded.max_tokens,
			traversal_mode = excluded.traversal_mode,
			include_disabled_nodes = excluded.include_disabled_nodes
	`, s.GlobalDepth, s.MaxTokens, s.TraversalMode, s.IncludeDisabledNodes)
	if err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}
