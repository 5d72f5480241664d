package graph

// Visit is one node discovered by the context traversal, with its hop
// distance from the target.
type Visit struct {
	NodeID string `json:"node_id"`
	Depth  int    `json:"depth"`
}

// TraverseOptions bounds a context traversal. MaxDepth is the global hop
// ceiling; ExpandDisabled controls whether nodes opted out of context
// still pass traversal through to their own sources.
type TraverseOptions struct {
	MaxDepth       int
	ExpandDisabled bool
}

// Traverse walks the context-providing sources of targetID breadth-first
// and returns them in discovery order. Each node appears at most once, at
// its minimum discovered depth; the target itself is never included. An
// unknown target yields nil.
//
// The hop ceiling is carried per path: traversing an edge with a max_depth
// override lowers the ceiling for everything beyond it to
// min(current ceiling, override).
func Traverse(snap *GraphSnapshot, opts TraverseOptions, targetID string) []Visit {
	if _, ok := snap.Nodes[targetID]; !ok {
		return nil
	}

	type entry struct {
		id    string
		depth int
		limit int
	}

	visited := map[string]bool{targetID: true}
	var queue []entry
	for _, src := range snap.Sources[targetID] {
		limit := opts.MaxDepth
		if src.MaxDepth != nil && *src.MaxDepth < limit {
			limit = *src.MaxDepth
		}
		queue = append(queue, entry{src.NodeID, 1, limit})
	}

	var result []Visit
	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]

		if e.depth > e.limit {
			continue
		}
		if visited[e.id] {
			continue
		}
		visited[e.id] = true
		result = append(result, Visit{NodeID: e.id, Depth: e.depth})

		if e.depth == e.limit {
			continue
		}
		node := snap.Nodes[e.id]
		if !node.IncludeInContext && !opts.ExpandDisabled {
			// opted-out node blocks propagation past itself
			continue
		}
		for _, src := range snap.Sources[e.id] {
			if visited[src.NodeID] {
				continue
			}
			limit := e.limit
			if src.MaxDepth != nil && *src.MaxDepth < limit {
				limit = *src.MaxDepth
			}
			queue = append(queue, entry{src.NodeID, e.depth + 1, limit})
		}
	}
	return result
}
