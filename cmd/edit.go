/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/josephgoksu/Taskify/internal/app"
)

var editClearDue bool

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change the title, due date or priority of a task",
	Long: `Change fields of a task. Only the flags you pass are changed.

Examples:
  taskify edit 3f2a --title "Buy oat milk"
  taskify edit 3f2a --due 2026-05-02 --priority medium
  taskify edit 3f2a --clear-due
  taskify edit 3f2a --priority ""     # remove the priority`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().String("title", "", "new title")
	editCmd.Flags().String("due", "", "new due date (YYYY-MM-DD)")
	editCmd.Flags().BoolVar(&editClearDue, "clear-due", false, "remove the due date")
	editCmd.Flags().String("priority", "", "new priority: low, medium, high or empty")
	editCmd.MarkFlagsMutuallyExclusive("due", "clear-due")
}

func runEdit(cmd *cobra.Command, args []string) error {
	opts := app.EditOptions{
		Title:    changedString(cmd, "title"),
		DueDate:  changedString(cmd, "due"),
		Priority: changedString(cmd, "priority"),
		ClearDue: editClearDue,
	}
	return withTaskApp(func(a *app.TaskApp) error {
		res, err := a.Edit(cmd.Context(), args[0], opts)
		if err != nil {
			return err
		}
		return printResult(cmd, res)
	})
}

// changedString returns the flag value only when the user set it.
func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}
