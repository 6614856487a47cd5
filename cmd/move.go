/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/Taskify/internal/app"
)

// moveCmd represents the move command
var moveCmd = &cobra.Command{
	Use:   "move <from> <to>",
	Short: "Move a task to another position",
	Long: `Move the task at position <from> to position <to>. Positions are the
numbers in the # column of list and count the whole list, whatever the
filter. A <to> past the end moves the task last.

Example:
  taskify move 3 1`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid position %q", args[0])
		}
		to, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid position %q", args[1])
		}
		return withTaskApp(func(a *app.TaskApp) error {
			res, err := a.Move(from, to)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		})
	},
}

func init() {
	rootCmd.AddCommand(moveCmd)
}
