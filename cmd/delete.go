/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/josephgoksu/Taskify/internal/app"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTaskApp(func(a *app.TaskApp) error {
			res, err := a.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		})
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
