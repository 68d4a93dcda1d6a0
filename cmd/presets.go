package cmd

import (
	"fmt"

	"github.com/rpgo/wealth-projector/internal/config"
	"github.com/rpgo/wealth-projector/internal/domain"
	"github.com/rpgo/wealth-projector/internal/output"

	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the spending presets",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println()
		for _, cat := range domain.Categories {
			rows := [][]string{}
			for _, p := range config.Presets(cat) {
				marker := ""
				if config.DefaultPresetKeys[cat] == p.Key {
					marker = "default"
				}
				rows = append(rows, []string{p.Key, p.Label, output.FormatCurrency("", p.Amount), marker})
			}
			fmt.Println(output.RenderSection(string(cat)))
			fmt.Println(output.RenderTable([]string{"Key", "Label", "Monthly", ""}, rows))
			fmt.Println()
		}
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}
