package graph

import "sort"

// HubNode is a node with high connectivity
type HubNode struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Degree    int    `json:"degree"`
	InDegree  int    `json:"in_degree"`
	OutDegree int    `json:"out_degree"`
}

// DegreeBucket is one bucket in the degree histogram
type DegreeBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// TopologyReport contains topology analysis results
type TopologyReport struct {
	TotalNodes        int            `json:"total_nodes"`
	TotalEdges        int            `json:"total_edges"`
	NumComponents     int            `json:"num_components"`
	LargestComponent  int            `json:"largest_component"`
	SmallestComponent int            `json:"smallest_component"`
	OrphanCount       int            `json:"orphan_count"`
	OrphanIDs         []string       `json:"orphan_ids"`
	DegreeHistogram   []DegreeBucket `json:"degree_histogram"`
	Hubs              []HubNode      `json:"hubs"`
}

func displayTitle(n *NodeInfo) string {
	if n == nil || n.Title == nil {
		return ""
	}
	return *n.Title
}

// ComputeTopology analyzes canvas topology: components, orphans, degree
// distribution, hubs. All edges count here, including inactive and
// workspace links; this is about canvas structure, not context flow.
func ComputeTopology(snap *GraphSnapshot, hubThreshold, topN int) *TopologyReport {
	report := &TopologyReport{
		TotalNodes:      len(snap.Nodes),
		TotalEdges:      len(snap.Edges),
		DegreeHistogram: defaultHistogram(),
	}
	if report.TotalNodes == 0 {
		return report
	}

	ids := snap.NodeIDs()

	uf := newUnionFind(ids)
	for _, e := range snap.Edges {
		if snap.Nodes[e.Source] == nil || snap.Nodes[e.Target] == nil {
			continue
		}
		uf.union(e.Source, e.Target)
	}
	sizes := uf.componentSizes()
	report.NumComponents = len(sizes)
	report.LargestComponent = sizes[0]
	report.SmallestComponent = sizes[len(sizes)-1]

	// ids are sorted, so orphans come out sorted too
	var orphans []string
	var hubs []HubNode
	for _, id := range ids {
		degree := len(snap.Adj[id])
		report.DegreeHistogram[degreeBucket(degree)].Count++
		switch {
		case degree == 0:
			orphans = append(orphans, id)
		case degree > hubThreshold:
			hubs = append(hubs, HubNode{
				ID:        id,
				Title:     displayTitle(snap.Nodes[id]),
				Degree:    degree,
				InDegree:  len(snap.InAdj[id]),
				OutDegree: len(snap.OutAdj[id]),
			})
		}
	}

	report.OrphanCount = len(orphans)
	if len(orphans) > topN {
		orphans = orphans[:topN]
	}
	report.OrphanIDs = orphans

	sort.Slice(hubs, func(i, j int) bool { return hubs[i].Degree > hubs[j].Degree })
	if len(hubs) > topN {
		hubs = hubs[:topN]
	}
	report.Hubs = hubs

	return report
}

var degreeLabels = [7]string{"0", "1", "2-3", "4-7", "8-15", "16-31", "32+"}

func defaultHistogram() []DegreeBucket {
	buckets := make([]DegreeBucket, len(degreeLabels))
	for i, label := range degreeLabels {
		buckets[i] = DegreeBucket{Label: label}
	}
	return buckets
}

// degreeBucket maps a degree to its log-scale bucket index.
func degreeBucket(degree int) int {
	switch {
	case degree <= 1:
		return degree
	case degree >= 32:
		return 6
	default:
		b := 1
		for v := degree; v > 1; v >>= 1 {
			b++
		}
		return b
	}
}
