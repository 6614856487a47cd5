/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/josephgoksu/Taskify/internal/app"
	"github.com/josephgoksu/Taskify/internal/ui"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show completion statistics",
	Long: `Show how many tasks you have completed, your streak of completion days
and how much of the current list is done.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withTaskApp(func(a *app.TaskApp) error {
			res := a.Stats()
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), res)
			}
			ui.RenderStats(cmd.OutOrStdout(), ui.StatsView{
				Stats:     res.Stats,
				Total:     res.Total,
				Completed: res.Completed,
				Progress:  res.Progress,
			})
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
