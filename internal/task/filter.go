package task

import (
	"fmt"
	"math"
	"strings"
)

// ParseFilter accepts all, active or completed.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case FilterAll, FilterActive, FilterCompleted:
		return f, nil
	default:
		return "", fmt.Errorf("invalid filter %q (want all, active or completed)", s)
	}
}

// Matches reports whether t passes the filter. Unknown filters behave as all.
func (f Filter) Matches(t Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// FilterTasks returns the tasks that pass filter and whose title contains
// query case-insensitively, in their original order.
func FilterTasks(tasks []Task, filter Filter, query string) []Task {
	q := strings.ToLower(query)
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if !filter.Matches(t) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(t.Title), q) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Progress is the rounded percentage of completed tasks, 0 for no tasks.
func Progress(tasks []Task) int {
	if len(tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(tasks)) * 100))
}

// CountCompleted returns how many tasks are done.
func CountCompleted(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if t.Completed {
			n++
		}
	}
	return n
}
