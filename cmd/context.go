package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"lattice/loom/internal/graph"
	"lattice/loom/internal/prompt"
)

var (
	ctxDepth           int
	ctxMaxTokens       int
	ctxIncludeDisabled bool
	ctxTokenizer       string
	ctxJSON            bool
)

var contextCmd = &cobra.Command{
	Use:   "context <id>",
	Short: "Assemble the context string a conversation at this node would receive",
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
			settings.GlobalDepth = ctxDepth
		}
		if cmd.Flags().Changed("max-tokens") {
			settings.MaxTokens = &ctxMaxTokens
		}
		if cmd.Flags().Changed("include-disabled") {
			settings.IncludeDisabledNodes = ctxIncludeDisabled
		}

		var est prompt.Estimator = prompt.WordEstimator{}
		if ctxTokenizer != "words" {
			est, err = prompt.NewTiktokenEstimator(ctxTokenizer)
			if err != nil {
				return err
			}
		}

		snap, err := graph.SnapshotFromDB(d)
		if err != nil {
			return fmt.Errorf("loading graph: %w", err)
		}

		engine := prompt.NewEngine(snap, settings, est)
		context := engine.ContextForNode(target.ID)

		if ctxJSON {
			output := struct {
				Target  string `json:"target"`
				Title   string `json:"title"`
				Depth   int    `json:"depth"`
				Tokens  int    `json:"tokens"`
				Context string `json:"context"`
			}{
				Target:  target.ID,
				Title:   nodeTitle(target),
				Depth:   settings.GlobalDepth,
				Tokens:  est.Count(context),
				Context: context,
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(output)
		}

		if context == "" {
			fmt.Fprintf(os.Stderr, "No contributing context for: %s\n", nodeTitle(target))
			return nil
		}
		fmt.Println(context)
		return nil
	},
}

func init() {
	contextCmd.Flags().IntVar(&ctxDepth, "depth", 3, "Max hop count from the target node")
	contextCmd.Flags().IntVar(&ctxMaxTokens, "max-tokens", 0, "Token budget for the assembled context")
	contextCmd.Flags().BoolVar(&ctxIncludeDisabled, "include-disabled", true, "Traverse through nodes opted out of context")
	contextCmd.Flags().StringVar(&ctxTokenizer, "tokenizer", "words", "Budget estimator: words or a tiktoken encoding (e.g. cl100k_base)")
	contextCmd.Flags().BoolVar(&ctxJSON, "json", false, "JSON output")
	rootCmd.AddCommand(contextCmd)
}
