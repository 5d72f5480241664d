package graph

import "sort"

// NodeInfo is an immutable node view decoupled from DB types. The engine
// never writes through it.
type NodeInfo struct {
	ID               string
	NodeType         string
	Title            *string
	Content          *string
	Status           *string
	Priority         *string
	Description      *string
	ContentType      *string
	Language         *string
	InjectionFormat  *string
	Messages         *string
	IncludeInContext bool
	IsArchived       bool
	CreatedAt        int64
	UpdatedAt        int64
}

// EdgeInfo is a lightweight edge representation
type EdgeInfo struct {
	ID              string
	Source          string
	Target          string
	Active          bool
	Direction       string // "unidirectional" or "bidirectional"
	MaxDepth        *int
	IsWorkspaceLink bool
	CreatedAt       int64
}

const directionBi = "bidirectional"

// SourceRef is one context-providing neighbor of a node: the edge's other
// endpoint plus the edge's optional depth ceiling.
type SourceRef struct {
	NodeID   string
	EdgeID   string
	MaxDepth *int
}

// GraphSnapshot holds a point-in-time copy of the canvas graph with
// precomputed adjacency. Sources maps a node to the neighbors that provide
// context to it: inbound edges plus either end of bidirectional ones,
// skipping inactive edges, workspace links, and dangling endpoints.
type GraphSnapshot struct {
	Nodes   map[string]*NodeInfo
	Edges   []EdgeInfo
	Sources map[string][]SourceRef
	Adj     map[string][]string // undirected, every edge (structure analysis)
	InAdj   map[string][]string // directed: target -> sources
	OutAdj  map[string][]string // directed: source -> targets
	Regions map[string]string   // node_id -> workspace id via workspace links
}

// NewSnapshot builds a GraphSnapshot from raw nodes and edges. Edge slice
// order is preserved into Sources, so discovery order is deterministic for
// a given input order.
func NewSnapshot(nodes []*NodeInfo, edges []EdgeInfo) *GraphSnapshot {
	nodeMap := make(map[string]*NodeInfo, len(nodes))
	sources := make(map[string][]SourceRef)
	adj := make(map[string][]string)
	inAdj := make(map[string][]string)
	outAdj := make(map[string][]string)

	for _, n := range nodes {
		nodeMap[n.ID] = n
		sources[n.ID] = nil // ensure entry exists
		adj[n.ID] = nil
		inAdj[n.ID] = nil
		outAdj[n.ID] = nil
	}

	for _, e := range edges {
		if _, ok := nodeMap[e.Source]; !ok {
			continue
		}
		if _, ok := nodeMap[e.Target]; !ok {
			continue
		}
		adj[e.Source] = append(adj[e.Source], e.Target)
		adj[e.Target] = append(adj[e.Target], e.Source)
		outAdj[e.Source] = append(outAdj[e.Source], e.Target)
		inAdj[e.Target] = append(inAdj[e.Target], e.Source)

		// Context propagation: source feeds target; a bidirectional edge
		// feeds both ways. Workspace links carry no content.
		if !e.Active || e.IsWorkspaceLink {
			continue
		}
		sources[e.Target] = append(sources[e.Target], SourceRef{
			NodeID: e.Source, EdgeID: e.ID, MaxDepth: e.MaxDepth,
		})
		if e.Direction == directionBi {
			sources[e.Source] = append(sources[e.Source], SourceRef{
				NodeID: e.Target, EdgeID: e.ID, MaxDepth: e.MaxDepth,
			})
		}
	}

	return &GraphSnapshot{
		Nodes:   nodeMap,
		Edges:   edges,
		Sources: sources,
		Adj:     adj,
		InAdj:   inAdj,
		OutAdj:  outAdj,
		Regions: computeRegions(nodeMap, edges),
	}
}

// ContextEdges returns the edges that participate in context propagation.
func (s *GraphSnapshot) ContextEdges() []EdgeInfo {
	var out []EdgeInfo
	for _, e := range s.Edges {
		if !e.Active || e.IsWorkspaceLink {
			continue
		}
		if _, ok := s.Nodes[e.Source]; !ok {
			continue
		}
		if _, ok := s.Nodes[e.Target]; !ok {
			continue
		}
		out = append(out, e)
	}
	return out
}

// NodeIDs returns a sorted list of all node IDs (for deterministic output)
func (s *GraphSnapshot) NodeIDs() []string {
	ids := make([]string, 0, len(s.Nodes))
	for id := range s.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// computeRegions assigns each node to a workspace group via workspace-link
// edges. A workspace link joins a member node and a workspace node; the
// member's region is the workspace's id. Ungrouped nodes get "unassigned".
func computeRegions(nodes map[string]*NodeInfo, edges []EdgeInfo) map[string]string {
	regions := make(map[string]string, len(nodes))
	for id := range nodes {
		regions[id] = "unassigned"
	}
	for _, e := range edges {
		if !e.IsWorkspaceLink {
			continue
		}
		src, okS := nodes[e.Source]
		tgt, okT := nodes[e.Target]
		if !okS || !okT {
			continue
		}
		switch {
		case tgt.NodeType == "workspace":
			regions[src.ID] = tgt.ID
			regions[tgt.ID] = tgt.ID
		case src.NodeType == "workspace":
			regions[tgt.ID] = src.ID
			regions[src.ID] = src.ID
		}
	}
	return regions
}
