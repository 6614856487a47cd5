package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/josephgoksu/Taskify/internal/easteregg"
	"github.com/josephgoksu/Taskify/internal/task"
	"github.com/josephgoksu/Taskify/internal/util"
)

// TaskResult contains the result of a task operation.
// This is the canonical response type printed by the CLI in --json mode.
type TaskResult struct {
	Success   bool           `json:"success"`
	Message   string         `json:"message,omitempty"`
	Task      *task.Task     `json:"task,omitempty"`
	Subtask   *task.Subtask  `json:"subtask,omitempty"`
	EasterEgg easteregg.Type `json:"easter_egg,omitempty"`
	Hint      string         `json:"hint,omitempty"`
}

// AddOptions describe a new task.
type AddOptions struct {
	Title      string
	DueDate    string
	Priority   string
	Recurring  string // frequency, empty for none
	CustomDays int    // only with custom recurrence
}

// EditOptions is a partial edit. Nil fields are left alone.
type EditOptions struct {
	Title    *string
	DueDate  *string
	ClearDue bool
	Priority *string
}

// ListOptions narrow the listing. Empty values use the persisted filter
// and search query.
type ListOptions struct {
	Filter string
	Search *string
}

// ListResult is a listing of the collection.
type ListResult struct {
	Tasks       []task.Task `json:"tasks"`
	Total       int         `json:"total"`
	Filter      task.Filter `json:"filter"`
	SearchQuery string      `json:"search_query,omitempty"`
	Progress    int         `json:"progress"`
	All         []task.Task `json:"-"`
}

// StatsResult reports completion statistics.
type StatsResult struct {
	task.Stats
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Progress  int `json:"progress"`
}

// ErrNoChange is returned when an operation was valid but changed nothing.
var ErrNoChange = errors.New("nothing changed")

// TaskApp provides the task operations behind every command.
type TaskApp struct {
	ctx *Context
	now func() time.Time
}

// NewTaskApp creates a new task application service.
func NewTaskApp(ctx *Context) *TaskApp {
	return &TaskApp{ctx: ctx, now: time.Now}
}

// Context returns the shared dependencies.
func (a *TaskApp) Context() *Context {
	return a.ctx
}

// Resolve turns an ID or unique prefix into a task.
func (a *TaskApp) Resolve(ctx context.Context, idOrPrefix string) (task.Task, error) {
	id, err := util.ResolveTaskID(ctx, a.ctx.Tasks, idOrPrefix)
	if err != nil {
		return task.Task{}, err
	}
	t, ok := a.ctx.Tasks.Task(id)
	if !ok {
		return task.Task{}, fmt.Errorf("task %s: %w", id, util.ErrNotFound)
	}
	return t, nil
}

// Add creates a task through the submitter, so easter eggs and the submit
// delay apply as they do in the TUI.
func (a *TaskApp) Add(ctx context.Context, opts AddOptions) (*TaskResult, error) {
	priority, err := task.ParsePriority(opts.Priority)
	if err != nil {
		return nil, err
	}
	recurring, err := recurringFrom(opts)
	if err != nil {
		return nil, err
	}

	res, err := a.ctx.NewSubmitter().Submit(ctx, task.SubmitInput{
		Title:     opts.Title,
		DueDate:   opts.DueDate,
		Priority:  priority,
		Recurring: recurring,
	})
	if err != nil {
		if errors.Is(err, task.ErrRejected) {
			return nil, fmt.Errorf("add task: %w (check the due date format YYYY-MM-DD)", err)
		}
		return nil, fmt.Errorf("add task: %w", err)
	}

	result := &TaskResult{Success: true, Task: res.Task, EasterEgg: res.EasterEgg}
	switch {
	case res.EasterEgg != easteregg.None:
		result.Message = easteregg.Describe(res.EasterEgg)
		if res.Task != nil {
			result.Hint = "Added: " + res.Task.Title
		}
	case res.Task != nil:
		result.Message = "Added: " + res.Task.Title
		result.Hint = "Mark it done with: taskify toggle " + util.ShortID(res.Task.ID, 0)
	}
	return result, nil
}

func recurringFrom(opts AddOptions) (*task.RecurringSettings, error) {
	if opts.Recurring == "" {
		if opts.CustomDays != 0 {
			return nil, errors.New("--every needs --recurring custom")
		}
		return nil, nil
	}
	freq, err := task.ParseFrequency(opts.Recurring)
	if err != nil {
		return nil, err
	}
	rs := &task.RecurringSettings{Enabled: true, Frequency: freq}
	if opts.CustomDays != 0 {
		days := opts.CustomDays
		rs.CustomDays = &days
	}
	return rs, nil
}

// Toggle flips completion of a task.
func (a *TaskApp) Toggle(ctx context.Context, idOrPrefix string) (*TaskResult, error) {
	t, err := a.Resolve(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}
	updated, ok := a.ctx.Tasks.ToggleTask(t.ID)
	if !ok {
		return nil, fmt.Errorf("toggle task %s: %w", t.ID, util.ErrNotFound)
	}
	msg := "Reopened: " + updated.Title
	if updated.Completed {
		msg = "Completed: " + updated.Title
	}
	return &TaskResult{Success: true, Message: msg, Task: &updated}, nil
}

// Delete removes a task.
func (a *TaskApp) Delete(ctx context.Context, idOrPrefix string) (*TaskResult, error) {
	t, err := a.Resolve(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}
	if !a.ctx.Tasks.DeleteTask(t.ID) {
		return nil, fmt.Errorf("delete task %s: %w", t.ID, util.ErrNotFound)
	}
	return &TaskResult{Success: true, Message: "Deleted: " + t.Title, Task: &t}, nil
}

// Edit applies a partial edit.
func (a *TaskApp) Edit(ctx context.Context, idOrPrefix string, opts EditOptions) (*TaskResult, error) {
	t, err := a.Resolve(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}

	var u task.TaskUpdate
	if opts.Title != nil {
		title := strings.TrimSpace(*opts.Title)
		if title == "" {
			return nil, task.ErrEmptyTitle
		}
		u.Title = &title
	}
	if opts.ClearDue {
		empty := ""
		u.DueDate = &empty
	} else if opts.DueDate != nil {
		u.DueDate = opts.DueDate
	}
	if opts.Priority != nil {
		p, err := task.ParsePriority(*opts.Priority)
		if err != nil {
			return nil, err
		}
		u.Priority = &p
	}
	if u.IsEmpty() {
		return nil, fmt.Errorf("edit task: %w (pass --title, --due, --clear-due or --priority)", ErrNoChange)
	}

	updated, ok := a.ctx.Tasks.EditTask(t.ID, u)
	if !ok {
		return nil, fmt.Errorf("edit task %s: %w", t.ID, task.ErrInvalidTask)
	}
	return &TaskResult{Success: true, Message: "Updated: " + updated.Title, Task: &updated}, nil
}

// List returns the tasks passing the filter and search. Flags given in
// opts are persisted, as choosing a filter in the UI would.
func (a *TaskApp) List(opts ListOptions) (*ListResult, error) {
	store := a.ctx.Tasks
	if opts.Filter != "" {
		f, err := task.ParseFilter(opts.Filter)
		if err != nil {
			return nil, err
		}
		store.SetFilter(f)
	}
	if opts.Search != nil {
		store.SetSearchQuery(*opts.Search)
	}

	st := store.State()
	return &ListResult{
		Tasks:       store.FilteredTasks(),
		Total:       len(st.Tasks),
		Filter:      st.Filter,
		SearchQuery: st.SearchQuery,
		Progress:    task.Progress(st.Tasks),
		All:         st.Tasks,
	}, nil
}

// SetFilter persists the display filter.
func (a *TaskApp) SetFilter(name string) (*TaskResult, error) {
	f, err := task.ParseFilter(name)
	if err != nil {
		return nil, err
	}
	a.ctx.Tasks.SetFilter(f)
	return &TaskResult{Success: true, Message: "Filter: " + string(f)}, nil
}

// Search persists the search query. An empty query clears it.
func (a *TaskApp) Search(query string) *TaskResult {
	a.ctx.Tasks.SetSearchQuery(query)
	if query == "" {
		return &TaskResult{Success: true, Message: "Search cleared"}
	}
	return &TaskResult{Success: true, Message: fmt.Sprintf("Searching for %q", query)}
}

// ClearCompleted removes every completed task.
func (a *TaskApp) ClearCompleted() *TaskResult {
	n := a.ctx.Tasks.ClearCompleted()
	if n == 0 {
		return &TaskResult{Success: true, Message: "No completed tasks to clear"}
	}
	return &TaskResult{Success: true, Message: fmt.Sprintf("Cleared %d completed task(s)", n)}
}

// CompletedCount is the number of tasks ClearCompleted would remove.
func (a *TaskApp) CompletedCount() int {
	return task.CountCompleted(a.ctx.Tasks.Tasks())
}

// Move reorders using 1-based positions in the full list.
func (a *TaskApp) Move(from, to int) (*TaskResult, error) {
	tasks := a.ctx.Tasks.Tasks()
	if from < 1 || from > len(tasks) {
		return nil, fmt.Errorf("position %d is out of range (1-%d)", from, len(tasks))
	}
	if to < 1 {
		to = 1
	}
	moved := tasks[from-1]
	if !a.ctx.Tasks.ReorderTask(from-1, to-1) {
		return nil, fmt.Errorf("move task: %w", ErrNoChange)
	}
	return &TaskResult{Success: true, Message: fmt.Sprintf("Moved %q to position %d", moved.Title, min(to, len(tasks))), Task: &moved}, nil
}

// AddSubtask appends a checklist entry to a task.
func (a *TaskApp) AddSubtask(ctx context.Context, idOrPrefix, title string) (*TaskResult, error) {
	t, err := a.Resolve(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) == "" {
		return nil, task.ErrEmptyTitle
	}
	st, ok := a.ctx.Tasks.AddSubtask(t.ID, title)
	if !ok {
		return nil, fmt.Errorf("add subtask to %s: %w", t.ID, task.ErrInvalidTask)
	}
	return &TaskResult{Success: true, Message: "Added subtask: " + st.Title, Subtask: &st}, nil
}

// ToggleSubtask flips completion of a subtask.
func (a *TaskApp) ToggleSubtask(ctx context.Context, taskRef, subtaskRef string) (*TaskResult, error) {
	t, id, err := a.resolveSubtask(ctx, taskRef, subtaskRef)
	if err != nil {
		return nil, err
	}
	st, ok := a.ctx.Tasks.ToggleSubtask(t.ID, id)
	if !ok {
		return nil, fmt.Errorf("toggle subtask %s: %w", id, util.ErrNotFound)
	}
	mark := "Reopened subtask: "
	if st.Completed {
		mark = "Completed subtask: "
	}
	return &TaskResult{Success: true, Message: mark + st.Title, Subtask: &st}, nil
}

// RemoveSubtask deletes a subtask.
func (a *TaskApp) RemoveSubtask(ctx context.Context, taskRef, subtaskRef string) (*TaskResult, error) {
	t, id, err := a.resolveSubtask(ctx, taskRef, subtaskRef)
	if err != nil {
		return nil, err
	}
	if !a.ctx.Tasks.RemoveSubtask(t.ID, id) {
		return nil, fmt.Errorf("remove subtask %s: %w", id, util.ErrNotFound)
	}
	return &TaskResult{Success: true, Message: "Removed subtask"}, nil
}

func (a *TaskApp) resolveSubtask(ctx context.Context, taskRef, subtaskRef string) (task.Task, string, error) {
	t, err := a.Resolve(ctx, taskRef)
	if err != nil {
		return task.Task{}, "", err
	}
	id, err := util.ResolveSubtaskID(ctx, a.ctx.Tasks, t.ID, subtaskRef)
	if err != nil {
		return task.Task{}, "", err
	}
	return t, id, nil
}

// Stats returns the completion statistics.
func (a *TaskApp) Stats() *StatsResult {
	tasks := a.ctx.Tasks.Tasks()
	return &StatsResult{
		Stats:     a.ctx.Tasks.Stats(),
		Total:     len(tasks),
		Completed: task.CountCompleted(tasks),
		Progress:  task.Progress(tasks),
	}
}

// Export writes the snapshot file into dir and returns its path.
func (a *TaskApp) Export(dir, format string) (string, error) {
	f, err := task.ParseExportFormat(format)
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = a.ctx.Config.Export.Dir
	}
	path, err := task.Export(a.ctx.Tasks, dir, f, a.now())
	if err != nil {
		return "", fmt.Errorf("export tasks: %w", err)
	}
	return path, nil
}
