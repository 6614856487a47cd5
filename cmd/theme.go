/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/josephgoksu/Taskify/internal/app"
	"github.com/josephgoksu/Taskify/internal/settings"
	"github.com/josephgoksu/Taskify/internal/ui"
)

// themeCmd represents the theme command
var themeCmd = &cobra.Command{
	Use:       "theme [light|dark|system]",
	Short:     "Show or set the colour theme",
	Long:      "Without an argument, print the stored theme and the one in effect. system follows the terminal background.",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"light", "dark", "system"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTaskApp(func(a *app.TaskApp) error {
			store := a.Context().Settings
			if len(args) == 1 {
				t, err := settings.ParseTheme(args[0])
				if err != nil {
					return err
				}
				if err := store.SetTheme(t); err != nil {
					return err
				}
			}

			current := store.Theme()
			effective := settings.Effective(current, lipgloss.HasDarkBackground())
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"theme":     current,
					"effective": effective,
				})
			}
			msg := fmt.Sprintf("Theme: %s", current)
			if current != effective {
				msg += fmt.Sprintf(" (%s)", effective)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.StyleSuccess.Render(msg))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
}
