package task

import (
	"log/slog"
	"time"
)

// RecurrenceStrategy decides what happens to a recurring task when it is
// completed.
type RecurrenceStrategy interface {
	OnComplete(t Task, now time.Time) Task
}

// ReminderScheduler arranges reminders for a task whose reminder settings
// are enabled.
type ReminderScheduler interface {
	Schedule(t Task)
}

// DisabledRecurrence keeps recurring tasks as they are: no new occurrence, no
// reset of subtasks, no lastReset update.
type DisabledRecurrence struct {
	Logger *slog.Logger
}

func (d DisabledRecurrence) OnComplete(t Task, _ time.Time) Task {
	if d.Logger != nil && t.IsRecurring() {
		d.Logger.Debug("recurring task completed; recurrence is disabled", "id", t.ID, "frequency", t.RecurringSettings.Frequency)
	}
	return t
}

// DisabledReminders never schedules anything.
type DisabledReminders struct{}

func (DisabledReminders) Schedule(Task) {}
