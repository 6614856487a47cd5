package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/josephgoksu/Taskify/internal/app"
	"github.com/josephgoksu/Taskify/internal/ui"
)

func isJSON() bool {
	return viper.GetBool("json")
}

func isQuiet() bool {
	return viper.GetBool("quiet")
}

func isVerbose() bool {
	return viper.GetBool("verbose")
}

func printJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

// openApp opens the stores on the configured backend.
var openApp = func() (*app.Context, error) {
	return app.Open(GlobalAppConfig, slog.Default())
}

// withTaskApp opens the app, runs fn and closes the app again.
func withTaskApp(fn func(*app.TaskApp) error) error {
	c, err := openApp()
	if err != nil {
		return fmt.Errorf("open task store: %w", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			slog.Warn("close task store", "error", err)
		}
	}()
	return fn(app.NewTaskApp(c))
}

// printResult prints a task result as JSON or as a styled message with an
// optional hint.
func printResult(cmd *cobra.Command, res *app.TaskResult) error {
	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, res)
	}
	if res.Message != "" {
		fmt.Fprintln(out, ui.StyleSuccess.Render(res.Message))
	}
	if res.Hint != "" && !isQuiet() {
		fmt.Fprintln(out, ui.StyleSubtle.Render(res.Hint))
	}
	return nil
}

// confirmOrAbort asks a yes/no question on the command's input. JSON mode
// never prompts.
func confirmOrAbort(cmd *cobra.Command, prompt string) bool {
	if isJSON() {
		return true
	}
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	if response != "y" && response != "yes" {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
		return false
	}
	return true
}
