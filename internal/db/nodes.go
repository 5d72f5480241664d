package db

import (
	"database/sql"
	"errors"
)

const nodeColumns = `id, type, title, content, status, priority, description,
	       content_type, language, injection_format, messages,
	       include_in_context, is_archived, created_at, updated_at`

// scanNode scans a row into a Node. The row must have all 15 columns in standard order.
func scanNode(scanner interface{ Scan(dest ...any) error }) (Node, error) {
	var n Node
	err := scanner.Scan(
		&n.ID, &n.NodeType, &n.Title, &n.Content, &n.Status,
		&n.Priority, &n.Description, &n.ContentType, &n.Language,
		&n.InjectionFormat, &n.Messages, &n.IncludeInContext,
		&n.IsArchived, &n.CreatedAt, &n.UpdatedAt,
	)
	return n, err
}

// AllNodes returns all nodes ordered by creation time
func (d *DB) AllNodes() ([]Node, error) {
	rows, err := d.conn.Query(`
		SELECT ` + nodeColumns + `
		FROM nodes ORDER BY created_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nodes []Node
	for rows.Next() {
		n, err := scanNode(rows)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, rows.Err()
}

// GetNode returns a single node by ID, or nil if not found
func (d *DB) GetNode(id string) (*Node, error) {
	row := d.conn.QueryRow(`
		SELECT `+nodeColumns+`
		FROM nodes WHERE id = ?
	`, id)

	n, err := scanNode(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// SearchByIDPrefix finds nodes whose ID starts with the given prefix.
func (d *DB) SearchByIDPrefix(prefix string, limit int) ([]Node, error) {
	rows, err := d.conn.Query(`
		SELECT `+nodeColumns+`
		FROM nodes WHERE id LIKE ? ORDER BY id LIMIT ?
	`, prefix+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nodes []Node
	for rows.Next() {
		n, err := scanNode(rows)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, rows.Err()
}
