package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephgoksu/Taskify/internal/quotes"
	"github.com/josephgoksu/Taskify/internal/task"
)

func sampleTasks() []task.Task {
	return []task.Task{
		{ID: "aaaaaaaa-1111", Title: "Buy milk", CreatedAt: "2026-01-01T00:00:00.000Z", Priority: task.PriorityHigh},
		{ID: "bbbbbbbb-2222", Title: "Walk dog", Completed: true, CreatedAt: "2026-01-01T00:00:00.000Z", DueDate: "2026-01-05",
			Subtasks: []task.Subtask{{ID: "s1", Title: "leash", Completed: true}, {ID: "s2", Title: "bags"}}},
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "High", Label("high"))
	assert.Equal(t, "Completed", Label("completed"))
	assert.Equal(t, "-", Label(""))
}

func TestTaskTable_PositionsComeFromFullList(t *testing.T) {
	all := sampleTasks()
	table := TaskTable(all, all[1:], false)

	require.Len(t, table.Rows, 1)
	assert.Equal(t, "2", table.Rows[0][0])
	assert.Equal(t, "bbbbbbbb", table.Rows[0][1])
	assert.Equal(t, "2026-01-05", table.Rows[0][4])
	assert.Equal(t, "1/2", table.Rows[0][6])
}

func TestTaskTable_Verbose(t *testing.T) {
	all := sampleTasks()
	days := 3
	all[0].RecurringSettings = &task.RecurringSettings{Enabled: true, Frequency: task.FrequencyCustom, CustomDays: &days}

	table := TaskTable(all, all, true)
	assert.Len(t, table.Headers, 9)
	assert.Equal(t, "every 3 days", table.Rows[0][8])
	assert.Equal(t, "-", table.Rows[1][8])
}

func TestRenderTaskList(t *testing.T) {
	var buf bytes.Buffer
	all := sampleTasks()
	RenderTaskList(&buf, ListOptions{All: all, Shown: all, Filter: task.FilterAll, SearchQuery: "milk", ShowProgress: true})

	out := buf.String()
	assert.Contains(t, out, "2 shown of 2")
	assert.Contains(t, out, `matching "milk"`)
	assert.Contains(t, out, "Buy milk")
	assert.Contains(t, out, "50%")
}

func TestRenderTaskList_EmptyStates(t *testing.T) {
	var buf bytes.Buffer
	RenderTaskList(&buf, ListOptions{Filter: task.FilterAll})
	assert.Contains(t, buf.String(), "No tasks here yet")

	buf.Reset()
	RenderTaskList(&buf, ListOptions{All: sampleTasks(), Filter: task.FilterActive})
	assert.Contains(t, buf.String(), "No tasks match")
}

func TestProgressBar(t *testing.T) {
	assert.Contains(t, ProgressBar(0, 10), "0%")
	assert.Contains(t, ProgressBar(150, 10), "100%")
	assert.Contains(t, ProgressBar(-5, 10), "0%")
}

func TestRenderStats(t *testing.T) {
	var buf bytes.Buffer
	day := "2026-01-02"
	RenderStats(&buf, StatsView{
		Stats: task.Stats{TotalCompleted: 4, Streak: 2, LastCompleted: &day},
		Total: 3, Completed: 1, Progress: 33,
	})

	out := buf.String()
	assert.Contains(t, out, "Streak:           2")
	assert.Contains(t, out, day)
	assert.Contains(t, out, "33%")
}

func TestRenderTaskDetail(t *testing.T) {
	var buf bytes.Buffer
	RenderTaskDetail(&buf, sampleTasks()[1])

	out := buf.String()
	assert.Contains(t, out, "Walk dog")
	assert.Contains(t, out, "leash")
	assert.Contains(t, out, "due:")
}

func TestRenderQuote(t *testing.T) {
	out := RenderQuote(quotes.Quote{Text: "Stay hungry", Author: "Someone"})
	assert.Contains(t, out, "Stay hungry")
	assert.Contains(t, out, "Someone")
}
