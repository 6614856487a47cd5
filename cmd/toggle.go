/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/josephgoksu/Taskify/internal/app"
)

// toggleCmd represents the toggle command
var toggleCmd = &cobra.Command{
	Use:     "toggle <id>",
	Aliases: []string{"done"},
	Short:   "Mark a task done, or not done again",
	Long: `Flip the completion of a task. IDs accept any unique prefix.

Completing a task counts towards the statistics; reopening it does not
take the count back.

Examples:
  taskify toggle 3f2a
  taskify done 3f2a`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTaskApp(func(a *app.TaskApp) error {
			res, err := a.Toggle(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		})
	},
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}
