package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"lattice/loom/internal/db"
)

var (
	linkBidirectional bool
	linkInactive      bool
	linkMaxDepth      int
	linkWorkspace     bool
)

var linkCmd = &cobra.Command{
	Use:   "link <source> <target>",
	Short: "Create an edge so source provides context to target",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		source, err := ResolveNode(d, args[0])
		if err != nil {
			return err
		}
		target, err := ResolveNode(d, args[1])
		if err != nil {
			return err
		}

		opts := db.CreateEdgeOpts{
			Bidirectional: linkBidirectional,
			Inactive:      linkInactive,
			WorkspaceLink: linkWorkspace,
		}
		if cmd.Flags().Changed("max-depth") {
			opts.MaxDepth = &linkMaxDepth
		}

		id, err := d.CreateEdge(source.ID, target.ID, opts)
		if err != nil {
			return err
		}
		fmt.Println(id)
		return nil
	},
}

var edgeToggleCmd = &cobra.Command{
	Use:   "edge <id> <on|off>",
	Short: "Toggle whether an edge participates in context propagation",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		switch strings.ToLower(args[1]) {
		case "on":
			return d.SetEdgeActive(args[0], true)
		case "off":
			return d.SetEdgeActive(args[0], false)
		default:
			return fmt.Errorf("expected on or off, got %q", args[1])
		}
	},
}

func init() {
	linkCmd.Flags().BoolVar(&linkBidirectional, "bidirectional", false, "Context flows both ways")
	linkCmd.Flags().BoolVar(&linkInactive, "inactive", false, "Create the edge inactive")
	linkCmd.Flags().IntVar(&linkMaxDepth, "max-depth", 0, "Per-edge ceiling on traversal depth")
	linkCmd.Flags().BoolVar(&linkWorkspace, "workspace", false, "Mark as a workspace membership link (no context)")
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(edgeToggleCmd)
}
