package main

import (
	"fmt"
	"os"

	"github.com/aretw0/tessera/pkg/markup"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build <plan.yaml>",
	Short: "Replay a layout plan and export its markup",
	Long: `Replays the drops of a YAML plan on an empty layout and prints the nested
flex-box HTML. Use --document to wrap it in a complete page.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, s, err := buildPlan(cmd, args[0])
		if err != nil {
			return err
		}

		var out string
		if doc, _ := cmd.Flags().GetBool("document"); doc {
			title := p.Title
			if title == "" {
				title = "Layout"
			}
			out = markup.Document(s.Current(), title)
		} else {
			out = s.ExportMarkup(cmd.Context())
		}

		if dest, _ := cmd.Flags().GetString("output"); dest != "" {
			if err := os.WriteFile(dest, []byte(out), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", dest, err)
			}
			logger.Info("Layout exported", "path", dest, "bytes", len(out))
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().Bool("document", false, "Wrap the markup in a complete HTML page")
	buildCmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")
}
