/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/josephgoksu/Taskify/internal/app"
	"github.com/josephgoksu/Taskify/internal/ui"
)

var (
	listFilter string
	listSearch string
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List tasks in their saved order.

Without flags the saved filter and search query apply. --filter and
--search replace them and are remembered for the next run.

Examples:
  taskify list
  taskify list --filter active
  taskify list --search milk
  taskify list --search ""       # clear the search`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&listFilter, "filter", "f", "", "all, active or completed")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "case-insensitive title search")
}

func runList(cmd *cobra.Command, _ []string) error {
	opts := app.ListOptions{Filter: listFilter}
	if cmd.Flags().Changed("search") {
		opts.Search = &listSearch
	}

	return withTaskApp(func(a *app.TaskApp) error {
		res, err := a.List(opts)
		if err != nil {
			return err
		}
		if isJSON() {
			return printJSON(cmd.OutOrStdout(), res)
		}

		ui.RenderTaskList(cmd.OutOrStdout(), ui.ListOptions{
			All:          res.All,
			Shown:        res.Tasks,
			Filter:       res.Filter,
			SearchQuery:  res.SearchQuery,
			ShowProgress: a.Context().Settings.App().ShowProgressBar && !isQuiet(),
			Verbose:      isVerbose(),
		})
		return nil
	})
}
