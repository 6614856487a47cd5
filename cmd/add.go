/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/Taskify/internal/app"
	"github.com/josephgoksu/Taskify/internal/logger"
)

var (
	addDue       string
	addPriority  string
	addRecurring string
	addEvery     int
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Long: `Add a task to the list. Words after "add" form the title.

Examples:
  taskify add Buy milk
  taskify add "Pay rent" --due 2026-05-01 --priority high
  taskify add Water plants --recurring custom --every 3`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addDue, "due", "d", "", "due date (YYYY-MM-DD)")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "priority: low, medium or high")
	addCmd.Flags().StringVarP(&addRecurring, "recurring", "r", "", "repeat: daily, weekly, monthly or custom")
	addCmd.Flags().IntVar(&addEvery, "every", 0, "days between repeats for --recurring custom")
}

func runAdd(cmd *cobra.Command, args []string) error {
	title := strings.Join(args, " ")
	logger.SetLastInput(title)

	return withTaskApp(func(a *app.TaskApp) error {
		res, err := a.Add(cmd.Context(), app.AddOptions{
			Title:      title,
			DueDate:    addDue,
			Priority:   addPriority,
			Recurring:  addRecurring,
			CustomDays: addEvery,
		})
		if err != nil {
			return err
		}
		return printResult(cmd, res)
	})
}
