/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/Taskify/internal/logger"
	"github.com/josephgoksu/Taskify/internal/ui"
)

var crashesShowLast bool

// crashesCmd represents the crashes command
var crashesCmd = &cobra.Command{
	Use:   "crashes",
	Short: "List saved crash logs",
	Long: `List the crash logs saved in the data directory. Use --last to print the
most recent one in full, for example to attach it to a bug report.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		paths, err := logger.ListCrashLogs()
		if err != nil {
			return fmt.Errorf("list crash logs: %w", err)
		}

		if crashesShowLast {
			if len(paths) == 0 {
				fmt.Fprintln(out, ui.StyleSubtle.Render("No crash logs."))
				return nil
			}
			log, err := logger.ReadCrashLog(paths[len(paths)-1])
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(out, log)
			}
			body := fmt.Sprintf("Version: %s\nCommand: %s\nPanic:   %s\n\n%s",
				log.Version, log.Command, log.PanicValue, log.StackTrace)
			fmt.Fprintln(out, ui.RenderErrorPanel(log.Timestamp.Format("2006-01-02 15:04:05"), body))
			return nil
		}

		if isJSON() {
			if paths == nil {
				paths = []string{}
			}
			return printJSON(out, paths)
		}
		if len(paths) == 0 {
			fmt.Fprintln(out, ui.StyleSubtle.Render("No crash logs."))
			return nil
		}
		for _, p := range paths {
			fmt.Fprintln(out, filepath.Base(p))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(crashesCmd)
	crashesCmd.Flags().BoolVar(&crashesShowLast, "last", false, "print the most recent crash log")
}
