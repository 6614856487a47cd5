/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/Taskify/internal/app"
	"github.com/josephgoksu/Taskify/internal/ui"
)

var clearYes bool

// clearCmd represents the clear command
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all completed tasks",
	Long: `Remove every completed task from the list. Statistics are kept.

You are asked to confirm unless --yes or --json is given. Without a
terminal, --yes is required.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withTaskApp(func(a *app.TaskApp) error {
			n := a.CompletedCount()
			if n > 0 && !clearYes && !isJSON() {
				if cmd.InOrStdin() == os.Stdin && !ui.IsInteractive() {
					return errors.New("input is not a terminal; pass --yes to clear completed tasks")
				}
				if !confirmOrAbort(cmd, fmt.Sprintf("Remove %d completed task(s)? [y/N]: ", n)) {
					return nil
				}
			}
			return printResult(cmd, a.ClearCompleted())
		})
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "do not ask for confirmation")
}
