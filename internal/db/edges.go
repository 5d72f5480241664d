package db

const edgeColumns = `id, source_id, target_id, active, direction,
	       max_depth, is_workspace_link, created_at`

// scanEdge scans a row into an Edge. The row must have all 8 columns in standard order.
func scanEdge(scanner interface{ Scan(dest ...any) error }) (Edge, error) {
	var e Edge
	err := scanner.Scan(
		&e.ID, &e.SourceID, &e.TargetID, &e.Active, &e.Direction,
		&e.MaxDepth, &e.IsWorkspaceLink, &e.CreatedAt,
	)
	return e, err
}

// AllEdges returns all edges in creation order. The order is load-bearing:
// the traversal engine discovers neighbors in this order, which makes
// assembled context deterministic across calls.
func (d *DB) AllEdges() ([]Edge, error) {
	rows, err := d.conn.Query(`
		SELECT ` + edgeColumns + `
		FROM edges ORDER BY created_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var edges []Edge
	for rows.Next() {
		e, err := scanEdge(rows)
		if err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

// GetEdgesForNode returns all edges where the given node is source OR target.
func (d *DB) GetEdgesForNode(nodeID string) ([]Edge, error) {
	rows, err := d.conn.Query(`
		SELECT `+edgeColumns+`
		FROM edges WHERE source_id = ? OR target_id = ?
		ORDER BY created_at, id
	`, nodeID, nodeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var edges []Edge
	for rows.Next() {
		e, err := scanEdge(rows)
		if err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}
