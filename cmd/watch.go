/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/Taskify/internal/task"
	"github.com/josephgoksu/Taskify/internal/ui"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print a line whenever another window changes the tasks",
	Long: `Follow the task store and print a summary each time another taskify
process (another terminal, the tui, a script) changes it. Stop with Ctrl+C.

With --json every change is printed as one compact JSON object per line.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := openApp()
		if err != nil {
			return fmt.Errorf("open task store: %w", err)
		}
		defer c.Close()

		if err := c.Tasks.Watch(); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		changes := make(chan struct{}, 1)
		c.Tasks.OnChange(func() {
			select {
			case changes <- struct{}{}:
			default:
			}
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		if !isJSON() && !isQuiet() {
			fmt.Fprintln(out, ui.StyleSubtle.Render("Watching "+GlobalAppConfig.Data.Dir+" (Ctrl+C to stop)"))
		}
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-changes:
				if err := printChange(out, c.Tasks); err != nil {
					return err
				}
			}
		}
	},
}

type changeEvent struct {
	Time      time.Time `json:"time"`
	Total     int       `json:"total"`
	Completed int       `json:"completed"`
	Progress  int       `json:"progress"`
	Streak    int       `json:"streak"`
}

func printChange(w io.Writer, store *task.Store) error {
	tasks := store.Tasks()
	ev := changeEvent{
		Time:      time.Now(),
		Total:     len(tasks),
		Completed: task.CountCompleted(tasks),
		Progress:  task.Progress(tasks),
		Streak:    store.Stats().Streak,
	}
	if isJSON() {
		data, err := json.Marshal(ev)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	_, err := fmt.Fprintf(w, "%s  %d tasks, %d done (%d%%)\n",
		ui.StyleSubtle.Render(ev.Time.Format("15:04:05")), ev.Total, ev.Completed, ev.Progress)
	return err
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
