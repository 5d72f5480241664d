package graph

import "lattice/loom/internal/db"

// SnapshotFromDB loads a GraphSnapshot from the workspace database
func SnapshotFromDB(d *db.DB) (*GraphSnapshot, error) {
	dbNodes, err := d.AllNodes()
	if err != nil {
		return nil, err
	}
	dbEdges, err := d.AllEdges()
	if err != nil {
		return nil, err
	}

	nodes := make([]*NodeInfo, 0, len(dbNodes))
	for i := range dbNodes {
		n := dbNodes[i]
		nodes = append(nodes, &NodeInfo{
			ID:               n.ID,
			NodeType:         n.NodeType,
			Title:            n.Title,
			Content:          n.Content,
			Status:           n.Status,
			Priority:         n.Priority,
			Description:      n.Description,
			ContentType:      n.ContentType,
			Language:         n.Language,
			InjectionFormat:  n.InjectionFormat,
			Messages:         n.Messages,
			IncludeInContext: n.IncludeInContext,
			IsArchived:       n.IsArchived,
			CreatedAt:        n.CreatedAt,
			UpdatedAt:        n.UpdatedAt,
		})
	}

	edges := make([]EdgeInfo, 0, len(dbEdges))
	for _, e := range dbEdges {
		var maxDepth *int
		if e.MaxDepth != nil {
			v := *e.MaxDepth
			maxDepth = &v
		}
		edges = append(edges, EdgeInfo{
			ID:              e.ID,
			Source:          e.SourceID,
			Target:          e.TargetID,
			Active:          e.Active,
			Direction:       e.Direction,
			MaxDepth:        maxDepth,
			IsWorkspaceLink: e.IsWorkspaceLink,
			CreatedAt:       e.CreatedAt,
		})
	}

	return NewSnapshot(nodes, edges), nil
}
