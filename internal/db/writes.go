package db

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CreateNodeOpts holds optional fields for node creation
type CreateNodeOpts struct {
	Title           string
	Content         string
	Status          string
	Priority        string
	Description     string
	ContentType     string
	Language        string
	InjectionFormat string
	Messages        []Message
	ExcludeFromCtx  bool
	Archived        bool
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// CreateNode inserts a node of the given type and returns its UUID.
func (d *DB) CreateNode(nodeType string, opts CreateNodeOpts) (string, error) {
	id := uuid.New().String()
	now := time.Now().UnixMilli()

	var messages *string
	if len(opts.Messages) > 0 {
		raw, err := json.Marshal(opts.Messages)
		if err != nil {
			return "", fmt.Errorf("encoding messages: %w", err)
		}
		s := string(raw)
		messages = &s
	}

	_, err := d.conn.Exec(`
		INSERT INTO nodes (id, type, title, content, status, priority, description,
		                   content_type, language, injection_format, messages,
		                   include_in_context, is_archived, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, nodeType, nullable(opts.Title), nullable(opts.Content),
		nullable(opts.Status), nullable(opts.Priority), nullable(opts.Description),
		nullable(opts.ContentType), nullable(opts.Language), nullable(opts.InjectionFormat),
		messages, !opts.ExcludeFromCtx, opts.Archived, now, now)
	if err != nil {
		return "", fmt.Errorf("creating node: %w", err)
	}
	return id, nil
}

// CreateEdgeOpts holds optional fields for edge creation
type CreateEdgeOpts struct {
	Bidirectional bool
	Inactive      bool
	MaxDepth      *int
	WorkspaceLink bool
}

// CreateEdge inserts an edge from sourceID to targetID and returns its UUID.
// Both endpoints must exist.
func (d *DB) CreateEdge(sourceID, targetID string, opts CreateEdgeOpts) (string, error) {
	for _, endpoint := range []string{sourceID, targetID} {
		n, err := d.GetNode(endpoint)
		if err != nil {
			return "", fmt.Errorf("checking endpoint %s: %w", endpoint, err)
		}
		if n == nil {
			return "", fmt.Errorf("edge endpoint not found: %s", endpoint)
		}
	}

	direction := DirectionUni
	if opts.Bidirectional {
		direction = DirectionBi
	}

	id := uuid.New().String()
	_, err := d.conn.Exec(`
		INSERT INTO edges (id, source_id, target_id, active, direction,
		                   max_depth, is_workspace_link, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, id, sourceID, targetID, !opts.Inactive, direction,
		opts.MaxDepth, opts.WorkspaceLink, time.Now().UnixMilli())
	if err != nil {
		return "", fmt.Errorf("creating edge: %w", err)
	}
	return id, nil
}

// SetEdgeActive toggles an edge's participation in context propagation.
func (d *DB) SetEdgeActive(edgeID string, active bool) error {
	res, err := d.conn.Exec(`UPDATE edges SET active = ? WHERE id = ?`, active, edgeID)
	if err != nil {
		return fmt.Errorf("updating edge %s: %w", edgeID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("edge not found: %s", edgeID)
	}
	return nil
}

// SetIncludeInContext toggles whether a node contributes its own content.
func (d *DB) SetIncludeInContext(nodeID string, include bool) error {
	res, err := d.conn.Exec(`
		UPDATE nodes SET include_in_context = ?, updated_at = ? WHERE id = ?
	`, include, time.Now().UnixMilli(), nodeID)
	if err != nil {
		return fmt.Errorf("updating node %s: %w", nodeID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("node not found: %s", nodeID)
	}
	return nil
}

// DeleteNode deletes a node and every edge touching it.
func (d *DB) DeleteNode(id string) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM edges WHERE source_id = ? OR target_id = ?`, id, id); err != nil {
		return fmt.Errorf("deleting edges of %s: %w", id, err)
	}
	res, err := tx.Exec(`DELETE FROM nodes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting node %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("node not found: %s", id)
	}
	return tx.Commit()
}
