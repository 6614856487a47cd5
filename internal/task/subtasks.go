package task

import (
	"slices"
	"strings"
)

// AddSubtask appends an active checklist entry to the task. An empty title or
// unknown task is a no-op.
func (s *Store) AddSubtask(taskID, title string) (Subtask, bool) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Subtask{}, false
	}
	sub := Subtask{ID: s.newID(), Title: title}
	_, ok := s.modifyTask(taskID, func(t Task) Task {
		t.Subtasks = append(t.Subtasks, sub)
		return t
	})
	if !ok {
		return Subtask{}, false
	}
	return sub, true
}

// ToggleSubtask flips one checklist entry. Statistics are not touched.
func (s *Store) ToggleSubtask(taskID, subtaskID string) (Subtask, bool) {
	var toggled Subtask
	found := false
	_, ok := s.modifyTask(taskID, func(t Task) Task {
		i := slices.IndexFunc(t.Subtasks, func(st Subtask) bool { return st.ID == subtaskID })
		if i < 0 {
			return t
		}
		t.Subtasks[i].Completed = !t.Subtasks[i].Completed
		toggled = t.Subtasks[i]
		found = true
		return t
	})
	return toggled, ok && found
}

// RemoveSubtask deletes one checklist entry.
func (s *Store) RemoveSubtask(taskID, subtaskID string) bool {
	found := false
	_, ok := s.modifyTask(taskID, func(t Task) Task {
		i := slices.IndexFunc(t.Subtasks, func(st Subtask) bool { return st.ID == subtaskID })
		if i < 0 {
			return t
		}
		t.Subtasks = slices.Delete(t.Subtasks, i, i+1)
		if len(t.Subtasks) == 0 {
			t.Subtasks = nil
		}
		found = true
		return t
	})
	return ok && found
}

// SubtaskProgress counts completed and total checklist entries.
func SubtaskProgress(t Task) (done, total int) {
	for _, st := range t.Subtasks {
		if st.Completed {
			done++
		}
	}
	return done, len(t.Subtasks)
}
