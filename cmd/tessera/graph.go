package main

import (
	"fmt"

	"github.com/aretw0/tessera/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <plan.yaml>",
	Short: "Export the layout tree visualization",
	Long:  `Replays a plan and outputs a Mermaid diagram (graph TD) of the resulting layout tree.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, s, err := buildPlan(cmd, args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(s.Current(), nil))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
