package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephgoksu/Taskify/internal/easteregg"
	"github.com/josephgoksu/Taskify/internal/kv"
	"github.com/josephgoksu/Taskify/internal/task"
	"github.com/josephgoksu/Taskify/internal/util"
	"github.com/josephgoksu/Taskify/types"
)

func newTestApp(t *testing.T) (*TaskApp, *Context) {
	t.Helper()
	n := 0
	ids := task.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("%02d-task", n)
	})
	cfg := types.AppConfig{
		Data:   types.DataConfig{Dir: t.TempDir(), Backend: "file"},
		Export: types.ExportConfig{Dir: t.TempDir()},
	}
	c := NewContext(kv.NewMemoryBackend(), cfg, nil, ids)
	t.Cleanup(func() { _ = c.Close() })

	a := NewTaskApp(c)
	a.now = func() time.Time { return time.Date(2026, 4, 5, 9, 0, 0, 0, time.UTC) }
	return a, c
}

func mustAdd(t *testing.T, a *TaskApp, title string) task.Task {
	t.Helper()
	res, err := a.Add(context.Background(), AddOptions{Title: title})
	require.NoError(t, err)
	require.NotNil(t, res.Task)
	return *res.Task
}

func TestAdd(t *testing.T) {
	a, _ := newTestApp(t)

	res, err := a.Add(context.Background(), AddOptions{
		Title: "  Pay rent ", DueDate: "2026-05-01", Priority: "HIGH",
		Recurring: "custom", CustomDays: 3,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Task)
	assert.Equal(t, "Pay rent", res.Task.Title)
	assert.Equal(t, task.PriorityHigh, res.Task.Priority)
	require.NotNil(t, res.Task.RecurringSettings)
	assert.Equal(t, 3, *res.Task.RecurringSettings.CustomDays)
	assert.Contains(t, res.Hint, "taskify toggle 01-task")
}

func TestAdd_Rejections(t *testing.T) {
	a, c := newTestApp(t)
	ctx := context.Background()

	_, err := a.Add(ctx, AddOptions{Title: "  "})
	assert.ErrorIs(t, err, task.ErrEmptyTitle)

	_, err = a.Add(ctx, AddOptions{Title: "x", Priority: "urgent"})
	assert.Error(t, err)

	_, err = a.Add(ctx, AddOptions{Title: "x", DueDate: "tomorrow"})
	assert.ErrorIs(t, err, task.ErrRejected)

	_, err = a.Add(ctx, AddOptions{Title: "x", CustomDays: 2})
	assert.Error(t, err)

	assert.Empty(t, c.Tasks.Tasks())
}

func TestAdd_EasterEgg(t *testing.T) {
	a, c := newTestApp(t)

	res, err := a.Add(context.Background(), AddOptions{Title: "/bored"})
	require.NoError(t, err)
	assert.Equal(t, easteregg.InjectRandomTask, res.EasterEgg)
	require.NotNil(t, res.Task)
	assert.Contains(t, easteregg.FunTasks, res.Task.Title)
	assert.Equal(t, 1, c.Eggs.Log().Counts[easteregg.InjectRandomTask])
}

func TestToggleDeleteByPrefix(t *testing.T) {
	a, c := newTestApp(t)
	ctx := context.Background()
	mustAdd(t, a, "one")
	mustAdd(t, a, "two")

	res, err := a.Toggle(ctx, "02")
	require.NoError(t, err)
	assert.True(t, res.Task.Completed)
	assert.Equal(t, 1, c.Tasks.Stats().TotalCompleted)

	_, err = a.Toggle(ctx, "0")
	assert.ErrorIs(t, err, util.ErrAmbiguousID)

	_, err = a.Delete(ctx, "99")
	assert.ErrorIs(t, err, util.ErrNotFound)

	res, err = a.Delete(ctx, "01")
	require.NoError(t, err)
	assert.Equal(t, "Deleted: one", res.Message)
	assert.Len(t, c.Tasks.Tasks(), 1)
}

func TestEdit(t *testing.T) {
	a, _ := newTestApp(t)
	ctx := context.Background()
	created := mustAdd(t, a, "draft")

	title, due, prio := "final", "2026-06-01", "low"
	res, err := a.Edit(ctx, created.ID, EditOptions{Title: &title, DueDate: &due, Priority: &prio})
	require.NoError(t, err)
	assert.Equal(t, "final", res.Task.Title)
	assert.Equal(t, "2026-06-01", res.Task.DueDate)
	assert.Equal(t, created.CreatedAt, res.Task.CreatedAt)

	res, err = a.Edit(ctx, created.ID, EditOptions{ClearDue: true})
	require.NoError(t, err)
	assert.Empty(t, res.Task.DueDate)

	_, err = a.Edit(ctx, created.ID, EditOptions{})
	assert.ErrorIs(t, err, ErrNoChange)

	bad := "06/01/2026"
	_, err = a.Edit(ctx, created.ID, EditOptions{DueDate: &bad})
	assert.ErrorIs(t, err, task.ErrInvalidTask)
}

func TestListPersistsFlags(t *testing.T) {
	a, c := newTestApp(t)
	ctx := context.Background()
	mustAdd(t, a, "Buy milk")
	mustAdd(t, a, "Walk dog")
	_, err := a.Toggle(ctx, "01")
	require.NoError(t, err)

	res, err := a.List(ListOptions{Filter: "active"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	require.Len(t, res.Tasks, 1)
	assert.Equal(t, "Walk dog", res.Tasks[0].Title)
	assert.Equal(t, 50, res.Progress)

	// filter persisted
	res, err = a.List(ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, task.FilterActive, res.Filter)

	q := "MILK"
	res, err = a.List(ListOptions{Filter: "all", Search: &q})
	require.NoError(t, err)
	require.Len(t, res.Tasks, 1)
	assert.Equal(t, "MILK", c.Tasks.State().SearchQuery)

	_, err = a.List(ListOptions{Filter: "done"})
	assert.Error(t, err)
}

func TestClearAndMove(t *testing.T) {
	a, c := newTestApp(t)
	ctx := context.Background()
	mustAdd(t, a, "a")
	mustAdd(t, a, "b")
	mustAdd(t, a, "c")

	res, err := a.Move(1, 9)
	require.NoError(t, err)
	assert.Contains(t, res.Message, "position 3")
	assert.Equal(t, "a", c.Tasks.Tasks()[2].Title)

	_, err = a.Move(0, 1)
	assert.Error(t, err)
	_, err = a.Move(2, 2)
	assert.ErrorIs(t, err, ErrNoChange)

	assert.Equal(t, "No completed tasks to clear", a.ClearCompleted().Message)
	_, err = a.Toggle(ctx, "02")
	require.NoError(t, err)
	assert.Equal(t, 1, a.CompletedCount())
	assert.Equal(t, "Cleared 1 completed task(s)", a.ClearCompleted().Message)
	assert.Len(t, c.Tasks.Tasks(), 2)
}

func TestSubtasks(t *testing.T) {
	a, c := newTestApp(t)
	ctx := context.Background()
	parent := mustAdd(t, a, "trip")

	res, err := a.AddSubtask(ctx, "01", "passport")
	require.NoError(t, err)
	sub := res.Subtask

	res, err = a.ToggleSubtask(ctx, "01", sub.ID[:4])
	require.NoError(t, err)
	assert.True(t, res.Subtask.Completed)

	got, _ := c.Tasks.Task(parent.ID)
	done, total := task.SubtaskProgress(got)
	assert.Equal(t, 1, done)
	assert.Equal(t, 1, total)

	_, err = a.RemoveSubtask(ctx, "01", sub.ID)
	require.NoError(t, err)
	got, _ = c.Tasks.Task(parent.ID)
	assert.Empty(t, got.Subtasks)

	_, err = a.AddSubtask(ctx, "01", " ")
	assert.ErrorIs(t, err, task.ErrEmptyTitle)
}

func TestStatsAndExport(t *testing.T) {
	a, c := newTestApp(t)
	mustAdd(t, a, "one")
	_, err := a.Toggle(context.Background(), "01")
	require.NoError(t, err)

	st := a.Stats()
	assert.Equal(t, 1, st.TotalCompleted)
	assert.Equal(t, 100, st.Progress)

	path, err := a.Export("", "json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(c.Config.Export.Dir, "taskify-export-2026-04-05.json"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"title": "one"`)

	_, err = a.Export(t.TempDir(), "csv")
	assert.Error(t, err)
}

func TestOpenBackend(t *testing.T) {
	dir := t.TempDir()

	for _, backend := range []string{"file", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			cfg := types.AppConfig{Data: types.DataConfig{Dir: dir, Backend: backend}}
			c, err := Open(cfg, nil)
			require.NoError(t, err)
			_, ok := c.Tasks.AddTask("persisted", "", task.PriorityNone, nil)
			require.True(t, ok)
			require.NoError(t, c.Close())

			again, err := Open(cfg, nil)
			require.NoError(t, err)
			defer func() { _ = again.Close() }()
			require.Len(t, again.Tasks.Tasks(), 1)
		})
	}

	_, err := OpenBackend(types.AppConfig{Data: types.DataConfig{Dir: dir, Backend: "redis"}}, nil)
	assert.Error(t, err)
}
