package ui

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/josephgoksu/Taskify/internal/quotes"
	"github.com/josephgoksu/Taskify/internal/task"
	"github.com/josephgoksu/Taskify/internal/util"
)

// TitleWidth is the widest task title shown in the list table.
const TitleWidth = 48

var titleCaser = cases.Title(language.English)

// Label capitalizes a filter, priority or theme name for display.
func Label(s string) string {
	if s == "" {
		return "-"
	}
	return titleCaser.String(s)
}

// Checkbox renders the completion mark of a task or subtask.
func Checkbox(done bool) string {
	if done {
		return StyleSuccess.Render("[x]")
	}
	return "[ ]"
}

// ListOptions control RenderTaskList.
type ListOptions struct {
	// All is the unfiltered collection; positions shown are indices into it.
	All []task.Task
	// Shown is the subset to render, in order.
	Shown       []task.Task
	Filter      task.Filter
	SearchQuery string
	// ShowProgress draws the completion bar under the table.
	ShowProgress bool
	Verbose      bool
}

// RenderTaskList writes the task table with a one-line header.
func RenderTaskList(w io.Writer, opts ListOptions) {
	header := fmt.Sprintf("Tasks: %d shown of %d (%s)", len(opts.Shown), len(opts.All), Label(string(opts.Filter)))
	if opts.SearchQuery != "" {
		header += fmt.Sprintf(" matching %q", opts.SearchQuery)
	}
	fmt.Fprintln(w, StyleHeader.Render(header))

	if len(opts.Shown) == 0 {
		msg := "No tasks here yet. Add one with: taskify add \"Buy milk\""
		if len(opts.All) > 0 {
			msg = "No tasks match the current filter."
		}
		fmt.Fprintln(w, StyleSubtle.Render(" "+msg))
	} else {
		fmt.Fprint(w, TaskTable(opts.All, opts.Shown, opts.Verbose).Render())
	}

	if opts.ShowProgress {
		fmt.Fprintln(w)
		fmt.Fprintln(w, " "+ProgressBar(task.Progress(opts.All), 30))
	}
}

// TaskTable builds the table for shown. The # column is the 1-based
// position in all, which is what move expects.
func TaskTable(all, shown []task.Task, verbose bool) *Table {
	position := make(map[string]int, len(all))
	for i, t := range all {
		position[t.ID] = i + 1
	}

	headers := []string{"#", "ID", "", "Title", "Due", "Priority", "Subtasks"}
	if verbose {
		headers = append(headers, "Created", "Repeats")
	}
	table := &Table{Headers: headers}

	for _, t := range shown {
		title := Truncate(t.Title, TitleWidth)
		if t.Completed {
			title = StyleCompleted.Render(title)
		}
		subtasks := "-"
		if done, total := task.SubtaskProgress(t); total > 0 {
			subtasks = fmt.Sprintf("%d/%d", done, total)
		}
		due := t.DueDate
		if due == "" {
			due = "-"
		}
		row := []string{
			fmt.Sprint(position[t.ID]),
			util.ShortID(t.ID, 0),
			Checkbox(t.Completed),
			title,
			due,
			PriorityStyle(t.Priority).Render(Label(string(t.Priority))),
			subtasks,
		}
		if verbose {
			row = append(row, t.CreatedAt, recurrenceLabel(t))
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

func recurrenceLabel(t task.Task) string {
	if !t.IsRecurring() {
		return "-"
	}
	rs := t.RecurringSettings
	if rs.Frequency == task.FrequencyCustom && rs.CustomDays != nil {
		return fmt.Sprintf("every %d days", *rs.CustomDays)
	}
	return string(rs.Frequency)
}

// RenderTaskDetail writes one task with its subtasks.
func RenderTaskDetail(w io.Writer, t task.Task) {
	fmt.Fprintf(w, "%s %s\n", Checkbox(t.Completed), StyleTitle.Render(t.Title))
	fmt.Fprintf(w, "  %s %s\n", StyleSubtle.Render("id:"), t.ID)
	if t.DueDate != "" {
		fmt.Fprintf(w, "  %s %s\n", StyleSubtle.Render("due:"), t.DueDate)
	}
	if t.Priority != task.PriorityNone {
		fmt.Fprintf(w, "  %s %s\n", StyleSubtle.Render("priority:"), PriorityStyle(t.Priority).Render(Label(string(t.Priority))))
	}
	if t.IsRecurring() {
		fmt.Fprintf(w, "  %s %s\n", StyleSubtle.Render("repeats:"), recurrenceLabel(t))
	}
	for _, st := range t.Subtasks {
		fmt.Fprintf(w, "    %s %s %s\n", Checkbox(st.Completed), st.Title, StyleSubtle.Render(util.ShortID(st.ID, 0)))
	}
}

// ProgressBar renders "[████░░░░] 50%" with width cells.
func ProgressBar(percent, width int) string {
	percent = max(0, min(100, percent))
	if width <= 0 {
		width = 20
	}
	filled := percent * width / 100
	bar := StyleSuccess.Render(strings.Repeat("█", filled)) +
		StyleSubtle.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("[%s] %d%%", bar, percent)
}

// StatsView is what RenderStats prints.
type StatsView struct {
	Stats     task.Stats
	Total     int
	Completed int
	Progress  int
}

// RenderStats writes the completion statistics.
func RenderStats(w io.Writer, v StatsView) {
	last := "never"
	if v.Stats.LastCompleted != nil {
		last = *v.Stats.LastCompleted
	}
	body := strings.Join([]string{
		fmt.Sprintf("Tasks:            %d (%d completed)", v.Total, v.Completed),
		fmt.Sprintf("Total completed:  %d", v.Stats.TotalCompleted),
		fmt.Sprintf("Streak:           %d", v.Stats.Streak),
		fmt.Sprintf("Last completed:   %s", last),
		"",
		ProgressBar(v.Progress, 30),
	}, "\n")
	fmt.Fprintln(w, RenderInfoPanel("Stats", body))
}

// RenderQuote formats a quote for the popup and the quote command.
func RenderQuote(q quotes.Quote) string {
	return StyleQuoteBox.Render(fmt.Sprintf("%q\n  - %s", q.Text, q.Author))
}
