/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/josephgoksu/Taskify/internal/app"
)

// filterCmd represents the filter command
var filterCmd = &cobra.Command{
	Use:       "filter <all|active|completed>",
	Short:     "Choose which tasks list shows",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"all", "active", "completed"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTaskApp(func(a *app.TaskApp) error {
			res, err := a.SetFilter(args[0])
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		})
	},
}

func init() {
	rootCmd.AddCommand(filterCmd)
}
