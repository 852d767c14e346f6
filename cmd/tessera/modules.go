package main

import (
	"encoding/json"

	"github.com/aretw0/tessera/pkg/domain"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "List the module presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(domain.Catalog())
		}

		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"ID", "Rows", "Cols", "Cells", "Label"})
		for _, m := range domain.Catalog() {
			t.AppendRow(table.Row{m.ID, m.Rows, m.Cols, m.Cells(), m.Label})
		}
		t.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modulesCmd)
	modulesCmd.Flags().Bool("json", false, "Print the catalog as JSON")
}
