package graph

// HealthBreakdown shows the sub-scores feeding the composite score. All
// four are computed over the context-carrying subgraph: inactive edges
// and workspace links move none of them.
type HealthBreakdown struct {
	Connectivity float64 `json:"connectivity"`
	Cohesion     float64 `json:"cohesion"`
	Freshness    float64 `json:"freshness"`
	Resilience   float64 `json:"resilience"`
}

// AnalysisReport is the full analysis result
type AnalysisReport struct {
	HealthScore     float64          `json:"health_score"`
	HealthBreakdown HealthBreakdown  `json:"health_breakdown"`
	Topology        *TopologyReport  `json:"topology"`
	Staleness       *StalenessReport `json:"staleness"`
	Bridges         *BridgeReport    `json:"bridges"`
}

// AnalyzerConfig holds analysis parameters
type AnalyzerConfig struct {
	HubThreshold int
	TopN         int
	StaleDays    int64
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *AnalyzerConfig {
	return &AnalyzerConfig{
		HubThreshold: 10,
		TopN:         50,
		StaleDays:    30,
	}
}

// Analyze runs all analyses and scores how well the workspace can feed
// context into conversations: how much of the canvas is wired into
// context flow at all, whether that flow forms one body or several,
// whether its sources are fresh, and how many single points of failure
// it has.
func Analyze(snap *GraphSnapshot, config *AnalyzerConfig) *AnalysisReport {
	topology := ComputeTopology(snap, config.HubThreshold, config.TopN)
	staleness := ComputeStaleness(snap, config.StaleDays)
	bridges := ComputeBridges(snap)

	ctxEdges := snap.ContextEdges()
	wired := make(map[string]bool)
	for _, e := range ctxEdges {
		wired[e.Source] = true
		wired[e.Target] = true
	}

	breakdown := HealthBreakdown{
		Connectivity: scoreConnectivity(snap, wired),
		Cohesion:     scoreCohesion(ctxEdges, wired),
		Freshness:    scoreFreshness(staleness, wired),
		Resilience:   scoreResilience(bridges, ctxEdges, wired),
	}

	return &AnalysisReport{
		HealthScore: 0.35*breakdown.Connectivity + 0.20*breakdown.Cohesion +
			0.20*breakdown.Freshness + 0.25*breakdown.Resilience,
		HealthBreakdown: breakdown,
		Topology:        topology,
		Staleness:       staleness,
		Bridges:         bridges,
	}
}

// scoreConnectivity is the share of nodes at least one context edge
// touches. Workspace nodes only group others and are left out of the
// denominator.
func scoreConnectivity(snap *GraphSnapshot, wired map[string]bool) float64 {
	total, connected := 0, 0
	for id, n := range snap.Nodes {
		if n.NodeType == "workspace" {
			continue
		}
		total++
		if wired[id] {
			connected++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(connected) / float64(total)
}

// scoreCohesion is the inverse of the number of context components among
// wired nodes. Workspace links can make the topology look whole while
// context still flows in separate islands; those islands count here.
func scoreCohesion(ctxEdges []EdgeInfo, wired map[string]bool) float64 {
	if len(wired) == 0 {
		return 0
	}
	ids := make([]string, 0, len(wired))
	for id := range wired {
		ids = append(ids, id)
	}
	uf := newUnionFind(ids)
	components := len(ids)
	for _, e := range ctxEdges {
		if uf.union(e.Source, e.Target) {
			components--
		}
	}
	return 1 / float64(components)
}

// scoreFreshness penalizes stale context sources in proportion to the
// wired canvas; a quarter of it stale zeroes the term.
func scoreFreshness(staleness *StalenessReport, wired map[string]bool) float64 {
	if staleness.StaleSourceCount == 0 {
		return 1
	}
	if len(wired) == 0 {
		return 0
	}
	share := float64(staleness.StaleSourceCount) / float64(len(wired))
	return clamp01(1 - 4*share)
}

// scoreResilience penalizes articulation points and bridge edges, each a
// single removal that cuts assembled context for everything downstream.
func scoreResilience(bridges *BridgeReport, ctxEdges []EdgeInfo, wired map[string]bool) float64 {
	if len(ctxEdges) == 0 {
		return 1
	}
	cuts := bridges.APCount + bridges.BridgeCount
	return clamp01(1 - 2*float64(cuts)/float64(len(wired)+len(ctxEdges)))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
