package cmd

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"lattice/loom/internal/graph"
)

var (
	analyzeJSON         bool
	analyzeTopN         int
	analyzeStaleDays    int64
	analyzeHubThreshold int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze workspace structure: topology, stale sources, fragility, health score",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		snap, err := graph.SnapshotFromDB(d)
		if err != nil {
			return fmt.Errorf("loading graph: %w", err)
		}

		config := &graph.AnalyzerConfig{
			HubThreshold: analyzeHubThreshold,
			TopN:         analyzeTopN,
			StaleDays:    analyzeStaleDays,
		}

		report := graph.Analyze(snap, config)

		if analyzeJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		printAnalysisHumanReadable(report, snap)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Output as JSON")
	analyzeCmd.Flags().IntVar(&analyzeTopN, "top-n", 10, "Number of top items to show per section")
	analyzeCmd.Flags().Int64Var(&analyzeStaleDays, "stale-days", 60, "Days since update to consider a context source stale")
	analyzeCmd.Flags().IntVar(&analyzeHubThreshold, "hub-threshold", 15, "Minimum degree to consider a node a hub")
	rootCmd.AddCommand(analyzeCmd)
}

func printAnalysisHumanReadable(report *graph.AnalysisReport, snap *graph.GraphSnapshot) {
	// Health bar
	barLen := int(report.HealthScore * 20)
	if barLen > 20 {
		barLen = 20
	}
	bar := strings.Repeat("█", barLen) + strings.Repeat("░", 20-barLen)
	fmt.Printf("\n  Workspace Health: %.0f%%  [%s]\n", report.HealthScore*100, bar)
	fmt.Printf("  breakdown: connectivity=%.2f cohesion=%.2f freshness=%.2f resilience=%.2f\n\n",
		report.HealthBreakdown.Connectivity,
		report.HealthBreakdown.Cohesion,
		report.HealthBreakdown.Freshness,
		report.HealthBreakdown.Resilience)

	// Topology
	t := report.Topology
	fmt.Println("  TOPOLOGY")
	fmt.Println("  ────────────────────────────────────────")
	fmt.Printf("  Nodes: %d  Edges: %d  Components: %d\n", t.TotalNodes, t.TotalEdges, t.NumComponents)
	fmt.Printf("  Largest component: %d  Smallest: %d\n", t.LargestComponent, t.SmallestComponent)

	if t.OrphanCount > 0 {
		fmt.Printf("  Orphans: %d disconnected nodes\n", t.OrphanCount)
		limit := 5
		if len(t.OrphanIDs) < limit {
			limit = len(t.OrphanIDs)
		}
		for _, id := range t.OrphanIDs[:limit] {
			title := "?"
			if node := snap.Nodes[id]; node != nil {
				title = truncTitle(snapTitle(node), 50)
			}
			fmt.Printf("    - %s (%s)\n", truncID(id), title)
		}
		if t.OrphanCount > 5 {
			fmt.Printf("    ... and %d more\n", t.OrphanCount-5)
		}
	}

	// Degree distribution
	fmt.Println("\n  Degree distribution:")
	for _, b := range t.DegreeHistogram {
		if b.Count > 0 {
			barWidth := int(math.Log2(float64(b.Count))) + 2
			if barWidth < 1 {
				barWidth = 1
			}
			fmt.Printf("    %5s: %4d  %s\n", b.Label, b.Count, strings.Repeat("=", barWidth))
		}
	}

	// Hubs
	if len(t.Hubs) > 0 {
		fmt.Println("\n  Top hubs (degree > threshold):")
		for _, hub := range t.Hubs {
			fmt.Printf("    %s degree=%d (in=%d, out=%d)  %s\n",
				truncID(hub.ID), hub.Degree, hub.InDegree, hub.OutDegree, truncTitle(hub.Title, 40))
		}
	}

	// Stale context sources
	s := report.Staleness
	if s.StaleSourceCount > 0 {
		fmt.Println("\n  STALE CONTEXT SOURCES")
		fmt.Println("  ────────────────────────────────────────")
		fmt.Printf("  %d old nodes recently wired into context:\n", s.StaleSourceCount)
		limit := 10
		if len(s.StaleSources) < limit {
			limit = len(s.StaleSources)
		}
		for _, n := range s.StaleSources[:limit] {
			fmt.Printf("    %s %dd old, %d recent links  %s\n",
				truncID(n.ID), n.DaysSinceUpdate, n.RecentLinkCount, truncTitle(n.Title, 40))
		}
	}

	// Fragility
	br := report.Bridges
	if br.APCount > 0 || br.BridgeCount > 0 || len(br.FragileConnections) > 0 {
		fmt.Println("\n  STRUCTURAL FRAGILITY (context flow)")
		fmt.Println("  ────────────────────────────────────────")
		if br.APCount > 0 {
			fmt.Printf("  %d articulation points (removal cuts context flow):\n", br.APCount)
			limit := 10
			if len(br.ArticulationPoints) < limit {
				limit = len(br.ArticulationPoints)
			}
			for _, ap := range br.ArticulationPoints[:limit] {
				fmt.Printf("    %s (degree ~%d)  %s\n",
					truncID(ap.ID), ap.ComponentsIfRemoved, truncTitle(ap.Title, 40))
			}
		}
		if br.BridgeCount > 0 {
			fmt.Printf("  %d bridge edges (removal cuts context flow):\n", br.BridgeCount)
			limit := 10
			if len(br.BridgeEdges) < limit {
				limit = len(br.BridgeEdges)
			}
			for _, be := range br.BridgeEdges[:limit] {
				fmt.Printf("    %s -> %s\n", truncTitle(be.SourceTitle, 30), truncTitle(be.TargetTitle, 30))
			}
		}
		if len(br.FragileConnections) > 0 {
			fmt.Printf("  %d fragile inter-workspace connections (<=2 edges):\n", len(br.FragileConnections))
			limit := 10
			if len(br.FragileConnections) < limit {
				limit = len(br.FragileConnections)
			}
			for _, fc := range br.FragileConnections[:limit] {
				raTitle := fc.RegionA
				rbTitle := fc.RegionB
				if n := snap.Nodes[fc.RegionA]; n != nil {
					raTitle = snapTitle(n)
				}
				if n := snap.Nodes[fc.RegionB]; n != nil {
					rbTitle = snapTitle(n)
				}
				s := ""
				if fc.CrossEdges != 1 {
					s = "s"
				}
				fmt.Printf("    %s <-> %s (%d edge%s)\n",
					truncTitle(raTitle, 25), truncTitle(rbTitle, 25), fc.CrossEdges, s)
			}
		}
	}

	fmt.Println()
}
