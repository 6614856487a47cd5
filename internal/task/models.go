// Package task holds the task collection, its statistics and the operations
// the presentation layer calls to change them.
package task

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Priority is the optional urgency label of a task.
type Priority string

const (
	PriorityNone   Priority = ""
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Frequency is how often a recurring task would repeat.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyCustom  Frequency = "custom"
)

// Sound names a reminder sound.
type Sound string

const (
	SoundDefault      Sound = "default"
	SoundBell         Sound = "bell"
	SoundChime        Sound = "chime"
	SoundNotification Sound = "notification"
)

// Filter is the display predicate over the task collection.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// DateLayout is the format of due dates and statistic days.
const DateLayout = "2006-01-02"

// TimestampLayout is the format of createdAt, millisecond precision in UTC.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Subtask is one checklist entry of a task.
type Subtask struct {
	ID        string `json:"id" validate:"required"`
	Title     string `json:"title" validate:"notblank"`
	Completed bool   `json:"completed"`
}

// RecurringSettings describe how a task would repeat. They are stored and
// validated but nothing acts on them unless a RecurrenceStrategy is installed.
type RecurringSettings struct {
	Enabled    bool      `json:"enabled"`
	Frequency  Frequency `json:"frequency" validate:"oneof=daily weekly monthly custom"`
	CustomDays *int      `json:"customDays,omitempty" validate:"omitempty,min=1"`
	LastReset  string    `json:"lastReset,omitempty"`
}

// ReminderSettings describe when a task would remind. Inert by default.
type ReminderSettings struct {
	Enabled     bool     `json:"enabled"`
	Intervals   []int    `json:"intervals" validate:"dive,min=0"`
	CustomTimes []string `json:"customTimes,omitempty"`
	Sound       Sound    `json:"sound,omitempty" validate:"omitempty,oneof=default bell chime notification"`
	Volume      *float64 `json:"volume,omitempty" validate:"omitempty,min=0,max=1"`
}

// Task is a single trackable to-do item.
type Task struct {
	ID                string             `json:"id" validate:"required"`
	Title             string             `json:"title" validate:"notblank"`
	Completed         bool               `json:"completed"`
	CreatedAt         string             `json:"createdAt" validate:"required"`
	DueDate           string             `json:"dueDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Priority          Priority           `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	RecurringSettings *RecurringSettings `json:"recurringSettings,omitempty"`
	ReminderSettings  *ReminderSettings  `json:"reminderSettings,omitempty"`
	Subtasks          []Subtask          `json:"subtasks,omitempty" validate:"dive"`
}

// IsRecurring reports whether recurrence is switched on for the task.
func (t Task) IsRecurring() bool {
	return t.RecurringSettings != nil && t.RecurringSettings.Enabled
}

// State is the persisted root of the task slot.
type State struct {
	Tasks       []Task `json:"tasks"`
	Filter      Filter `json:"filter"`
	SearchQuery string `json:"searchQuery"`
}

// InitialState is the value of a collection that was never saved.
func InitialState() State {
	return State{Tasks: []Task{}, Filter: FilterAll, SearchQuery: ""}
}

// Stats is the persisted completion bookkeeping.
type Stats struct {
	TotalCompleted int     `json:"totalCompleted"`
	Streak         int     `json:"streak"`
	LastCompleted  *string `json:"lastCompleted"`
}

// TaskUpdate is a partial edit. Nil fields are left alone; id and createdAt
// cannot be changed.
type TaskUpdate struct {
	Title             *string
	Completed         *bool
	DueDate           *string // "" clears the due date
	Priority          *Priority
	RecurringSettings *RecurringSettings
	ClearRecurring    bool
	ReminderSettings  *ReminderSettings
	ClearReminders    bool
	Subtasks          *[]Subtask
}

// Apply merges u into t and returns the result.
func (u TaskUpdate) Apply(t Task) Task {
	if u.Title != nil {
		t.Title = strings.TrimSpace(*u.Title)
	}
	if u.Completed != nil {
		t.Completed = *u.Completed
	}
	if u.DueDate != nil {
		t.DueDate = *u.DueDate
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	if u.ClearRecurring {
		t.RecurringSettings = nil
	} else if u.RecurringSettings != nil {
		rs := *u.RecurringSettings
		t.RecurringSettings = &rs
	}
	if u.ClearReminders {
		t.ReminderSettings = nil
	} else if u.ReminderSettings != nil {
		rs := *u.ReminderSettings
		t.ReminderSettings = &rs
	}
	if u.Subtasks != nil {
		t.Subtasks = append([]Subtask(nil), (*u.Subtasks)...)
	}
	return t
}

// IsEmpty reports whether the update changes nothing.
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Completed == nil && u.DueDate == nil && u.Priority == nil &&
		u.RecurringSettings == nil && !u.ClearRecurring &&
		u.ReminderSettings == nil && !u.ClearReminders && u.Subtasks == nil
}

// ErrInvalidTask wraps every validation failure.
var ErrInvalidTask = errors.New("invalid task")

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	validate.RegisterStructValidation(func(sl validator.StructLevel) {
		rs := sl.Current().Interface().(RecurringSettings)
		if rs.Frequency == FrequencyCustom && rs.CustomDays == nil {
			sl.ReportError(rs.CustomDays, "CustomDays", "customDays", "required_for_custom", "")
		}
	}, RecurringSettings{})
}

// Validate checks the struct tags of a Task, Subtask or settings value.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %v", ErrInvalidTask, err)
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, fmt.Sprintf("field '%s' failed rule '%s'", e.StructNamespace(), e.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidTask, strings.Join(msgs, "; "))
}

// ParsePriority accepts a priority label or a common shorthand for one;
// the empty string means none.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return PriorityNone, nil
	case "low", "lo", "l", "minor":
		return PriorityLow, nil
	case "medium", "med", "m", "normal":
		return PriorityMedium, nil
	case "high", "hi", "h", "important":
		return PriorityHigh, nil
	default:
		return "", fmt.Errorf("invalid priority %q (want low, medium or high)", s)
	}
}

// ParseFrequency accepts a recurrence frequency label.
func ParseFrequency(s string) (Frequency, error) {
	switch f := Frequency(strings.ToLower(strings.TrimSpace(s))); f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyCustom:
		return f, nil
	default:
		return "", fmt.Errorf("invalid frequency %q (want daily, weekly, monthly or custom)", s)
	}
}
