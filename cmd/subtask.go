/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/Taskify/internal/app"
	"github.com/josephgoksu/Taskify/internal/ui"
)

// subtaskCmd represents the subtask command
var subtaskCmd = &cobra.Command{
	Use:     "subtask",
	Aliases: []string{"sub"},
	Short:   "Manage the checklist of a task",
	Long: `Add, toggle and remove checklist entries of a task. Subtasks do not
count towards the statistics.

Examples:
  taskify subtask add 3f2a Book flights
  taskify subtask toggle 3f2a 9c1e
  taskify subtask rm 3f2a 9c1e
  taskify subtask show 3f2a`,
}

var subtaskAddCmd = &cobra.Command{
	Use:   "add <task-id> <title>",
	Short: "Add a subtask",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTaskApp(func(a *app.TaskApp) error {
			res, err := a.AddSubtask(cmd.Context(), args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		})
	},
}

var subtaskToggleCmd = &cobra.Command{
	Use:   "toggle <task-id> <subtask-id>",
	Short: "Mark a subtask done, or not done again",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTaskApp(func(a *app.TaskApp) error {
			res, err := a.ToggleSubtask(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		})
	},
}

var subtaskRemoveCmd = &cobra.Command{
	Use:     "rm <task-id> <subtask-id>",
	Aliases: []string{"remove", "delete"},
	Short:   "Remove a subtask",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTaskApp(func(a *app.TaskApp) error {
			res, err := a.RemoveSubtask(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		})
	},
}

var subtaskShowCmd = &cobra.Command{
	Use:   "show <task-id>",
	Short: "Show a task with its subtasks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTaskApp(func(a *app.TaskApp) error {
			t, err := a.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), t)
			}
			ui.RenderTaskDetail(cmd.OutOrStdout(), t)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(subtaskCmd)
	subtaskCmd.AddCommand(subtaskAddCmd, subtaskToggleCmd, subtaskRemoveCmd, subtaskShowCmd)
}
