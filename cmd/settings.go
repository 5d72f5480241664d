package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"lattice/loom/internal/db"
)

var (
	setDepth           int
	setMaxTokens       int
	setMode            string
	setIncludeDisabled bool
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or update the workspace context settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		settings, err := d.LoadSettings()
		if err != nil {
			return err
		}

		changed := false
		cmd.Flags().Visit(func(f *pflag.Flag) {
			switch f.Name {
			case "depth":
				settings.GlobalDepth = setDepth
				changed = true
			case "max-tokens":
				if setMaxTokens <= 0 {
					settings.MaxTokens = nil
				} else {
					v := setMaxTokens
					settings.MaxTokens = &v
				}
				changed = true
			case "mode":
				settings.TraversalMode = setMode
				changed = true
			case "include-disabled":
				settings.IncludeDisabledNodes = setIncludeDisabled
				changed = true
			}
		})

		if changed {
			if err := d.SaveSettings(settings); err != nil {
				return err
			}
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(settings)
	},
}

func init() {
	settingsCmd.Flags().IntVar(&setDepth, "depth", 3, "Global traversal depth limit")
	settingsCmd.Flags().IntVar(&setMaxTokens, "max-tokens", 0, "Token budget (0 clears it)")
	settingsCmd.Flags().StringVar(&setMode, "mode", db.TraversalModeAll, "Traversal mode")
	settingsCmd.Flags().BoolVar(&setIncludeDisabled, "include-disabled", true, "Traverse through nodes opted out of context")
	rootCmd.AddCommand(settingsCmd)
}
