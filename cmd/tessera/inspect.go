package main

import (
	"fmt"
	"os"

	"github.com/aretw0/tessera/internal/presentation/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <plan.yaml>",
	Short: "Print an outline of the layout a plan builds",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, s, err := buildPlan(cmd, args[0])
		if err != nil {
			return err
		}

		interactive := cmd.OutOrStdout() == os.Stdout && term.IsTerminal(int(os.Stdout.Fd()))
		if interactive {
			tui.PrintBanner(os.Stdout)
		}

		render, err := tui.NewRenderer(interactive)
		if err != nil {
			return err
		}
		out, err := render(tui.Outline(s.Current(), p.Title))
		if err != nil {
			return fmt.Errorf("failed to render outline: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
