/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/Taskify/internal/app"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Set the title search used by list",
	Long: `Remember a case-insensitive search query. list then shows only tasks
whose title contains it. Run without a query to clear the search.

Examples:
  taskify search milk
  taskify search`,
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		return withTaskApp(func(a *app.TaskApp) error {
			return printResult(cmd, a.Search(query))
		})
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
