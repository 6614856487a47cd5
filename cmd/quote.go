/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/Taskify/internal/quotes"
	"github.com/josephgoksu/Taskify/internal/ui"
)

// quoteNow is replaced in tests.
var quoteNow = time.Now

// quoteCmd represents the quote command
var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Print a motivational quote",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		q := quotes.For(quoteNow(), nil)
		if isJSON() {
			return printJSON(cmd.OutOrStdout(), q)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.RenderQuote(q))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(quoteCmd)
}
