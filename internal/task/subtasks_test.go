package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubtasks(t *testing.T) {
	s, _, _ := newTestStore(t)
	parent, _ := s.AddTask("Move house", "", PriorityNone, nil)

	_, ok := s.AddSubtask(parent.ID, "  ")
	assert.False(t, ok)
	_, ok = s.AddSubtask("missing", "Pack")
	assert.False(t, ok)

	pack, ok := s.AddSubtask(parent.ID, " Pack boxes ")
	require.True(t, ok)
	assert.Equal(t, "Pack boxes", pack.Title)
	van, _ := s.AddSubtask(parent.ID, "Rent van")

	toggled, ok := s.ToggleSubtask(parent.ID, pack.ID)
	require.True(t, ok)
	assert.True(t, toggled.Completed)
	_, ok = s.ToggleSubtask(parent.ID, "nope")
	assert.False(t, ok)

	got, _ := s.Task(parent.ID)
	done, total := SubtaskProgress(got)
	assert.Equal(t, 1, done)
	assert.Equal(t, 2, total)
	assert.False(t, got.Completed, "subtasks never complete the parent")
	assert.Equal(t, Stats{}, s.Stats())

	assert.True(t, s.RemoveSubtask(parent.ID, van.ID))
	assert.False(t, s.RemoveSubtask(parent.ID, van.ID))
	assert.True(t, s.RemoveSubtask(parent.ID, pack.ID))

	got, _ = s.Task(parent.ID)
	assert.Nil(t, got.Subtasks)
}
