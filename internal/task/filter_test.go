package task

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTasks() []Task {
	return []Task{
		{ID: "1", Title: "Write report", Completed: true},
		{ID: "2", Title: "Read book"},
		{ID: "3", Title: "REWRITE notes", Completed: true},
		{ID: "4", Title: "Groceries"},
	}
}

func TestFilterTasks_Predicates(t *testing.T) {
	tasks := sampleTasks()

	for _, tt := range []Filter{FilterActive, FilterCompleted, FilterAll} {
		for _, q := range []string{"", "write", "RE", "zzz"} {
			got := FilterTasks(tasks, tt, q)
			for _, task := range got {
				if tt == FilterActive {
					assert.False(t, task.Completed)
				}
				if tt == FilterCompleted {
					assert.True(t, task.Completed)
				}
				assert.Contains(t, strings.ToLower(task.Title), strings.ToLower(q))
			}
		}
	}
}

func TestFilterTasks_KeepsOrder(t *testing.T) {
	got := FilterTasks(sampleTasks(), FilterAll, "write")
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)

	assert.Len(t, FilterTasks(sampleTasks(), "", ""), 4, "empty filter behaves as all")
	assert.NotNil(t, FilterTasks(nil, FilterAll, ""))
}

func TestProgress(t *testing.T) {
	assert.Equal(t, 0, Progress(nil))
	assert.Equal(t, 25, Progress([]Task{{Completed: true}, {}, {}, {}}))
	assert.Equal(t, 67, Progress([]Task{{Completed: true}, {Completed: true}, {}}))
	assert.Equal(t, 33, Progress([]Task{{Completed: true}, {}, {}}))
	assert.Equal(t, 100, Progress([]Task{{Completed: true}}))
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter(" Active ")
	require.NoError(t, err)
	assert.Equal(t, FilterActive, f)

	_, err = ParseFilter("done")
	assert.Error(t, err)
}

func TestParsePriorityAndFrequency(t *testing.T) {
	p, err := ParsePriority("HIGH")
	require.NoError(t, err)
	assert.Equal(t, PriorityHigh, p)
	p, err = ParsePriority("")
	require.NoError(t, err)
	assert.Equal(t, PriorityNone, p)
	_, err = ParsePriority("urgent")
	assert.Error(t, err)
	for in, want := range map[string]Priority{"lo": PriorityLow, " Med ": PriorityMedium, "h": PriorityHigh} {
		p, err := ParsePriority(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, p, in)
	}

	f, err := ParseFrequency("custom")
	require.NoError(t, err)
	assert.Equal(t, FrequencyCustom, f)
	_, err = ParseFrequency("hourly")
	assert.Error(t, err)
}

func TestRecordCompletion(t *testing.T) {
	s := RecordCompletion(Stats{}, "2026-01-01")
	assert.Equal(t, 1, s.TotalCompleted)
	assert.Equal(t, 1, s.Streak)

	s = RecordCompletion(s, "2026-01-01")
	assert.Equal(t, 2, s.TotalCompleted)
	assert.Equal(t, 1, s.Streak)

	s = RecordCompletion(s, "2026-01-09")
	assert.Equal(t, 3, s.TotalCompleted)
	assert.Equal(t, 2, s.Streak)
	assert.Equal(t, "2026-01-09", *s.LastCompleted)
}

func TestValidate_ErrorMessage(t *testing.T) {
	err := Validate(Task{ID: "1", Title: " ", CreatedAt: "now"})
	require.ErrorIs(t, err, ErrInvalidTask)
	assert.Contains(t, err.Error(), "Task.Title")
}
