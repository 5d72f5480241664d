package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"lattice/loom/internal/db"
)

var nodeCmd = &cobra.Command{
	Use:   "node",
	Short: "Create, inspect, and remove canvas nodes",
}

var (
	addType        string
	addTitle       string
	addContent     string
	addStatus      string
	addPriority    string
	addDescription string
	addContentType string
	addLanguage    string
	addInjection   string
	addMessages    string
	addExclude     bool
)

var nodeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a node in the workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		opts := db.CreateNodeOpts{
			Title:           addTitle,
			Content:         addContent,
			Status:          addStatus,
			Priority:        addPriority,
			Description:     addDescription,
			ContentType:     addContentType,
			Language:        addLanguage,
			InjectionFormat: addInjection,
			ExcludeFromCtx:  addExclude,
		}
		if addMessages != "" {
			var msgs []db.Message
			if err := json.Unmarshal([]byte(addMessages), &msgs); err != nil {
				return fmt.Errorf("parsing --messages: %w", err)
			}
			opts.Messages = msgs
		}

		id, err := d.CreateNode(addType, opts)
		if err != nil {
			return err
		}
		fmt.Println(id)
		return nil
	},
}

var nodeShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a node and its edges",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		node, err := ResolveNode(d, args[0])
		if err != nil {
			return err
		}
		edges, err := d.GetEdgesForNode(node.ID)
		if err != nil {
			return err
		}

		output := struct {
			Node  *db.Node  `json:"node"`
			Edges []db.Edge `json:"edges"`
		}{node, edges}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(output)
	},
}

var nodeRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a node and its edges",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		node, err := ResolveNode(d, args[0])
		if err != nil {
			return err
		}
		return d.DeleteNode(node.ID)
	},
}

var nodeExcludeCmd = &cobra.Command{
	Use:   "context <id> <on|off>",
	Short: "Toggle whether a node contributes its content to context",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		node, err := ResolveNode(d, args[0])
		if err != nil {
			return err
		}
		switch strings.ToLower(args[1]) {
		case "on":
			return d.SetIncludeInContext(node.ID, true)
		case "off":
			return d.SetIncludeInContext(node.ID, false)
		default:
			return fmt.Errorf("expected on or off, got %q", args[1])
		}
	},
}

func init() {
	nodeAddCmd.Flags().StringVar(&addType, "type", db.TypeNote, "Node type (note, task, project, artifact, conversation, ...)")
	nodeAddCmd.Flags().StringVar(&addTitle, "title", "", "Node title")
	nodeAddCmd.Flags().StringVar(&addContent, "content", "", "Note/artifact content")
	nodeAddCmd.Flags().StringVar(&addStatus, "status", "", "Task status")
	nodeAddCmd.Flags().StringVar(&addPriority, "priority", "", "Task priority")
	nodeAddCmd.Flags().StringVar(&addDescription, "description", "", "Task/project description")
	nodeAddCmd.Flags().StringVar(&addContentType, "content-type", "", "Artifact content type")
	nodeAddCmd.Flags().StringVar(&addLanguage, "language", "", "Artifact language")
	nodeAddCmd.Flags().StringVar(&addInjection, "injection", "", "Artifact injection format (full or reference-only)")
	nodeAddCmd.Flags().StringVar(&addMessages, "messages", "", `Conversation transcript as JSON, e.g. [{"role":"user","content":"hi"}]`)
	nodeAddCmd.Flags().BoolVar(&addExclude, "exclude-from-context", false, "Create the node opted out of context")

	nodeCmd.AddCommand(nodeAddCmd)
	nodeCmd.AddCommand(nodeShowCmd)
	nodeCmd.AddCommand(nodeRmCmd)
	nodeCmd.AddCommand(nodeExcludeCmd)
	rootCmd.AddCommand(nodeCmd)
}
