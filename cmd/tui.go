/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/josephgoksu/Taskify/internal/kv"
	"github.com/josephgoksu/Taskify/internal/ui"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive task screen",
	Long: `Open a full-screen task list. Type a title and press Enter to add it,
Tab to move between the input and the list.

List keys:
  space/x  toggle        d  delete        f  cycle filter
  c        clear done    J/K move down/up q  quit

Changes made from other terminals show up live.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if !ui.IsInteractive() {
			return errors.New("tui needs an interactive terminal")
		}
		c, err := openApp()
		if err != nil {
			return fmt.Errorf("open task store: %w", err)
		}
		defer c.Close()

		if err := c.Tasks.Watch(); err != nil {
			if !errors.Is(err, kv.ErrWatchUnsupported) {
				return err
			}
			slog.Debug("live updates disabled", "error", err)
		}

		ui.ApplyTheme(c.Settings.Theme(), lipgloss.HasDarkBackground())
		return ui.RunTUI(cmd.Context(), ui.TUIConfig{
			Store:     c.Tasks,
			Submitter: c.NewSubmitter(),
			Settings:  c.Settings.App(),
			QuoteIdle: c.Config.Quotes.Idle,
		})
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
