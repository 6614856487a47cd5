/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/Taskify/internal/app"
	"github.com/josephgoksu/Taskify/internal/ui"
)

var (
	exportOut    string
	exportFormat string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all tasks to a dated file",
	Long: `Write every task, whatever the filter, to taskify-export-<date>.json
(or .yaml). The file is replaced atomically if it already exists.

Examples:
  taskify export
  taskify export --out ~/backups --format yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withTaskApp(func(a *app.TaskApp) error {
			path, err := a.Export(exportOut, exportFormat)
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), map[string]any{"success": true, "path": path})
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.StyleSuccess.Render("Exported to "+path))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "directory to write into (default export.dir)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "json or yaml")
}
