package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/josephgoksu/Taskify/internal/app"
	"github.com/josephgoksu/Taskify/internal/kv"
	"github.com/josephgoksu/Taskify/internal/task"
	"github.com/josephgoksu/Taskify/internal/ui"
	"github.com/josephgoksu/Taskify/internal/util"
	"github.com/josephgoksu/Taskify/types"
)

// errorCode maps known sentinel errors to stable codes for --json output.
func errorCode(err error) string {
	switch {
	case errors.Is(err, util.ErrNotFound):
		return "not_found"
	case errors.Is(err, util.ErrAmbiguousID):
		return "ambiguous_id"
	case errors.Is(err, task.ErrEmptyTitle):
		return "empty_title"
	case errors.Is(err, task.ErrSubmitInProgress):
		return "submit_in_progress"
	case errors.Is(err, task.ErrInvalidTask), errors.Is(err, task.ErrRejected):
		return "invalid_task"
	case errors.Is(err, app.ErrNoChange):
		return "no_change"
	case errors.Is(err, kv.ErrWatchUnsupported):
		return "watch_unsupported"
	default:
		return "error"
	}
}

// printCommandError reports a failed command. In JSON mode the error is a
// structured object on stdout so scripts can parse it.
func printCommandError(w io.Writer, err error) {
	if isJSON() {
		_ = printJSON(rootCmd.OutOrStdout(), types.NewCommandError(errorCode(err), err.Error(), nil))
		return
	}
	fmt.Fprintln(w, ui.StyleError.Render("Error: "+err.Error()))
	if errors.Is(err, util.ErrAmbiguousID) && !isQuiet() {
		fmt.Fprintln(w, ui.StyleSubtle.Render("Type more characters of the ID."))
	}
}
