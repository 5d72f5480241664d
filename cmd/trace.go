package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"lattice/loom/internal/db"
	"lattice/loom/internal/graph"
	"lattice/loom/internal/prompt"
)

var (
	traceDepth           int
	traceIncludeDisabled bool
	traceJSON            bool
)

var traceCmd = &cobra.Command{
	Use:   "trace <id>",
	Short: "Show which nodes feed context into a target, in traversal order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		target, err := ResolveNode(d, args[0])
		if err != nil {
			return err
		}

		settings, err := d.LoadSettings()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("depth") {
			settings.GlobalDepth = traceDepth
		}
		if cmd.Flags().Changed("include-disabled") {
			settings.IncludeDisabledNodes = traceIncludeDisabled
		}

		snap, err := graph.SnapshotFromDB(d)
		if err != nil {
			return fmt.Errorf("loading graph: %w", err)
		}

		visits := graph.Traverse(snap, graph.TraverseOptions{
			MaxDepth:       settings.GlobalDepth,
			ExpandDisabled: settings.IncludeDisabledNodes,
		}, target.ID)

		if traceJSON {
			type visitOut struct {
				NodeID      string `json:"node_id"`
				Depth       int    `json:"depth"`
				Type        string `json:"type"`
				Title       string `json:"title"`
				Contributes bool   `json:"contributes"`
			}
			out := struct {
				Target string     `json:"target"`
				Depth  int        `json:"depth"`
				Visits []visitOut `json:"visits"`
				Count  int        `json:"count"`
			}{Target: target.ID, Depth: settings.GlobalDepth}
			for _, v := range visits {
				node := snap.Nodes[v.NodeID]
				_, contributes := prompt.FormatNode(node)
				out.Visits = append(out.Visits, visitOut{
					NodeID:      v.NodeID,
					Depth:       v.Depth,
					Type:        node.NodeType,
					Title:       snapTitle(node),
					Contributes: contributes,
				})
			}
			out.Count = len(visits)
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}

		printTraceHumanReadable(target, snap, visits)
		return nil
	},
}

func init() {
	traceCmd.Flags().IntVar(&traceDepth, "depth", 3, "Max hop count from the target node")
	traceCmd.Flags().BoolVar(&traceIncludeDisabled, "include-disabled", true, "Traverse through nodes opted out of context")
	traceCmd.Flags().BoolVar(&traceJSON, "json", false, "JSON output")
	rootCmd.AddCommand(traceCmd)
}

func snapTitle(n *graph.NodeInfo) string {
	if n == nil || n.Title == nil {
		return "(untitled)"
	}
	return *n.Title
}

func printTraceHumanReadable(target *db.Node, snap *graph.GraphSnapshot, visits []graph.Visit) {
	if len(visits) == 0 {
		fmt.Printf("No context sources for: %s\n", nodeTitle(target))
		return
	}

	fmt.Printf("Context sources for: %s (%s)\n\n", nodeTitle(target), truncID(target.ID))

	for _, v := range visits {
		node := snap.Nodes[v.NodeID]
		marker := "+"
		if _, contributes := prompt.FormatNode(node); !contributes {
			marker = "-"
		}
		fmt.Printf("  depth %d  %s %-13s %s  %s\n",
			v.Depth, marker, node.NodeType, truncID(v.NodeID),
			truncTitle(snapTitle(node), 50))
	}

	fmt.Printf("\n%d node(s) within depth limit (+ contributes, - silent)\n", len(visits))
}
