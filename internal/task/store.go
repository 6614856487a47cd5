package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/josephgoksu/Taskify/internal/kv"
)

// Default slot keys.
const (
	TasksKey = "taskify-tasks"
	StatsKey = "taskify-stats"
)

// Store owns the task collection and the completion stats. Every operation
// runs to completion under one mutex; external rewrites of either slot
// replace the in-memory value wholesale.
type Store struct {
	mu sync.Mutex

	tasks *kv.Slot[State]
	stats *kv.Slot[Stats]

	clock      Clock
	newID      func() string
	logger     *slog.Logger
	recurrence RecurrenceStrategy
	reminders  ReminderScheduler

	listenerMu sync.Mutex
	listeners  []func()
}

// StoreOption configures a Store.
type StoreOption func(*storeConfig)

type storeConfig struct {
	clock      Clock
	newID      func() string
	logger     *slog.Logger
	recurrence RecurrenceStrategy
	reminders  ReminderScheduler
	tasksKey   string
	statsKey   string
}

// WithClock sets the clock used for createdAt and statistic days.
func WithClock(c Clock) StoreOption {
	return func(cfg *storeConfig) {
		if c != nil {
			cfg.clock = c
		}
	}
}

// WithIDGenerator replaces UUID generation for tasks and subtasks.
func WithIDGenerator(fn func() string) StoreOption {
	return func(cfg *storeConfig) {
		if fn != nil {
			cfg.newID = fn
		}
	}
}

// WithLogger sets the logger for the store and its slots.
func WithLogger(l *slog.Logger) StoreOption {
	return func(cfg *storeConfig) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// WithRecurrence installs a recurrence strategy.
func WithRecurrence(r RecurrenceStrategy) StoreOption {
	return func(cfg *storeConfig) {
		if r != nil {
			cfg.recurrence = r
		}
	}
}

// WithReminders installs a reminder scheduler.
func WithReminders(r ReminderScheduler) StoreOption {
	return func(cfg *storeConfig) {
		if r != nil {
			cfg.reminders = r
		}
	}
}

// WithKeys overrides the slot keys.
func WithKeys(tasksKey, statsKey string) StoreOption {
	return func(cfg *storeConfig) {
		if tasksKey != "" {
			cfg.tasksKey = tasksKey
		}
		if statsKey != "" {
			cfg.statsKey = statsKey
		}
	}
}

// NewStore hydrates both slots from backend. Nothing is written until the
// first mutation.
func NewStore(backend kv.Backend, opts ...StoreOption) *Store {
	cfg := storeConfig{
		clock:    SystemClock,
		newID:    uuid.NewString,
		logger:   slog.Default(),
		tasksKey: TasksKey,
		statsKey: StatsKey,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.recurrence == nil {
		cfg.recurrence = DisabledRecurrence{Logger: cfg.logger}
	}
	if cfg.reminders == nil {
		cfg.reminders = DisabledReminders{}
	}

	s := &Store{
		tasks:      kv.Open(backend, cfg.tasksKey, InitialState(), kv.WithLogger(cfg.logger)),
		stats:      kv.Open(backend, cfg.statsKey, InitialStats(), kv.WithLogger(cfg.logger)),
		clock:      cfg.clock,
		newID:      cfg.newID,
		logger:     cfg.logger,
		recurrence: cfg.recurrence,
		reminders:  cfg.reminders,
	}
	s.tasks.SetReducer(ReplaceState)
	s.stats.SetReducer(ReplaceStats)
	s.tasks.OnChange(func(State) { s.notify() })
	s.stats.OnChange(func(Stats) { s.notify() })
	return s
}

// Watch starts following writes made by other contexts.
func (s *Store) Watch() error {
	if err := s.tasks.Watch(); err != nil {
		return err
	}
	if err := s.stats.Watch(); err != nil {
		s.tasks.Close()
		return err
	}
	return nil
}

// Close stops watching. The backend is left open.
func (s *Store) Close() {
	s.tasks.Close()
	s.stats.Close()
}

// OnChange registers fn to run after another context replaced the tasks or
// the stats.
func (s *Store) OnChange(fn func()) {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) notify() {
	s.listenerMu.Lock()
	fns := append([]func(){}, s.listeners...)
	s.listenerMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// HandleExternal feeds a raw slot write from another context into the store.
// It is what a backend subscription delivers; tests and custom transports
// can call it directly.
func (s *Store) HandleExternal(key string, raw []byte) bool {
	if s.tasks.HandleExternal(key, raw) {
		return true
	}
	return s.stats.HandleExternal(key, raw)
}

// State returns a copy of the whole collection state.
func (s *Store) State() State {
	st := s.tasks.Get()
	st.Tasks = cloneTasks(st.Tasks)
	return st
}

// Tasks returns a copy of the full task sequence.
func (s *Store) Tasks() []Task {
	return cloneTasks(s.tasks.Get().Tasks)
}

// Stats returns the completion stats.
func (s *Store) Stats() Stats {
	st := s.stats.Get()
	if st.LastCompleted != nil {
		day := *st.LastCompleted
		st.LastCompleted = &day
	}
	return st
}

// Task returns the task with id.
func (s *Store) Task(id string) (Task, bool) {
	for _, t := range s.tasks.Get().Tasks {
		if t.ID == id {
			return cloneTask(t), true
		}
	}
	return Task{}, false
}

// FilteredTasks applies the stored filter and search query.
func (s *Store) FilteredTasks() []Task {
	st := s.tasks.Get()
	return cloneTasks(FilterTasks(st.Tasks, st.Filter, st.SearchQuery))
}

// Progress is the completion percentage over all tasks.
func (s *Store) Progress() int {
	return Progress(s.tasks.Get().Tasks)
}

// AddTask appends a new active task. A title that is empty after trimming, or
// fields that fail validation, leave the collection untouched.
func (s *Store) AddTask(title, dueDate string, priority Priority, recurring *RecurringSettings) (Task, bool) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Task{}, false
	}

	t := Task{
		ID:        s.newID(),
		Title:     title,
		CreatedAt: s.clock.Now().UTC().Format(TimestampLayout),
		DueDate:   dueDate,
		Priority:  priority,
	}
	if recurring != nil {
		rs := *recurring
		t.RecurringSettings = &rs
	}
	if err := Validate(t); err != nil {
		s.logger.Debug("rejected new task", "error", err)
		return Task{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks.Update(func(st State) (State, bool) {
		st.Tasks = append(cloneTasks(st.Tasks), t)
		return st, true
	})
	return cloneTask(t), true
}

// ToggleTask flips completion. Completing updates the stats; un-completing
// leaves them alone.
func (s *Store) ToggleTask(id string) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var toggled Task
	completedNow := false
	found := s.tasks.Update(func(st State) (State, bool) {
		i := indexOf(st.Tasks, id)
		if i < 0 {
			return st, false
		}
		tasks := cloneTasks(st.Tasks)
		t := tasks[i]
		t.Completed = !t.Completed
		if t.Completed {
			completedNow = true
			if t.IsRecurring() {
				t = s.recurrence.OnComplete(t, s.clock.Now())
			}
		}
		tasks[i] = t
		toggled = t
		st.Tasks = tasks
		return st, true
	})
	if !found {
		return Task{}, false
	}

	if completedNow {
		today := Day(s.clock.Now())
		s.stats.Update(func(st Stats) (Stats, bool) {
			return RecordCompletion(st, today), true
		})
	}
	return cloneTask(toggled), true
}

// DeleteTask removes the task with id.
func (s *Store) DeleteTask(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.Update(func(st State) (State, bool) {
		i := indexOf(st.Tasks, id)
		if i < 0 {
			return st, false
		}
		st.Tasks = slices.Delete(cloneTasks(st.Tasks), i, i+1)
		return st, true
	})
}

// EditTask shallow-merges u into the task with id. An edit that would leave
// the task invalid is rejected.
func (s *Store) EditTask(id string, u TaskUpdate) (Task, bool) {
	return s.modifyTask(id, u.Apply)
}

// UpdateRecurringSettings stores rs on the task; nil removes them. Nothing is
// scheduled.
func (s *Store) UpdateRecurringSettings(id string, rs *RecurringSettings) (Task, bool) {
	return s.EditTask(id, TaskUpdate{RecurringSettings: rs, ClearRecurring: rs == nil})
}

// UpdateReminderSettings stores rs on the task and hands it to the reminder
// scheduler.
func (s *Store) UpdateReminderSettings(id string, rs *ReminderSettings) (Task, bool) {
	return s.EditTask(id, TaskUpdate{ReminderSettings: rs, ClearReminders: rs == nil})
}

// modifyTask applies fn to one task and validates the result. The write is
// skipped when nothing changed. ok is false for an unknown id or an invalid
// result.
func (s *Store) modifyTask(id string, fn func(Task) Task) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updated Task
	ok := false
	changed := s.tasks.Update(func(st State) (State, bool) {
		i := indexOf(st.Tasks, id)
		if i < 0 {
			return st, false
		}
		tasks := cloneTasks(st.Tasks)
		next := fn(cloneTask(tasks[i]))
		next.ID = tasks[i].ID
		next.CreatedAt = tasks[i].CreatedAt
		if err := Validate(next); err != nil {
			s.logger.Debug("rejected task edit", "id", id, "error", err)
			return st, false
		}
		ok = true
		updated = next
		if reflect.DeepEqual(next, tasks[i]) {
			return st, false
		}
		tasks[i] = next
		st.Tasks = tasks
		return st, true
	})
	if !ok {
		return Task{}, false
	}
	if changed && updated.ReminderSettings != nil && updated.ReminderSettings.Enabled {
		s.reminders.Schedule(cloneTask(updated))
	}
	return cloneTask(updated), true
}

// SetFilter stores the display filter.
func (s *Store) SetFilter(f Filter) bool {
	if _, err := ParseFilter(string(f)); err != nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks.Update(func(st State) (State, bool) {
		if st.Filter == f {
			return st, false
		}
		st.Filter = f
		return st, true
	})
	return true
}

// SetSearchQuery stores the search query.
func (s *Store) SetSearchQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks.Update(func(st State) (State, bool) {
		if st.SearchQuery == q {
			return st, false
		}
		st.SearchQuery = q
		return st, true
	})
}

// ClearCompleted removes every completed task and returns how many went.
func (s *Store) ClearCompleted() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	s.tasks.Update(func(st State) (State, bool) {
		kept := make([]Task, 0, len(st.Tasks))
		for _, t := range st.Tasks {
			if t.Completed {
				removed++
				continue
			}
			kept = append(kept, cloneTask(t))
		}
		if removed == 0 {
			return st, false
		}
		st.Tasks = kept
		return st, true
	})
	return removed
}

// ReorderTask moves the task at absolute index from to index to. An
// out-of-range from is rejected; to is clamped into the sequence.
func (s *Store) ReorderTask(from, to int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.Update(func(st State) (State, bool) {
		next, ok := Reorder(st.Tasks, from, to)
		if !ok {
			return st, false
		}
		st.Tasks = next
		return st, true
	})
}

// Reorder removes the element at from and reinserts it at to.
func Reorder(tasks []Task, from, to int) ([]Task, bool) {
	if from < 0 || from >= len(tasks) {
		return tasks, false
	}
	to = max(0, min(to, len(tasks)-1))
	if from == to {
		return tasks, false
	}
	out := cloneTasks(tasks)
	moved := out[from]
	out = slices.Delete(out, from, from+1)
	out = slices.Insert(out, to, moved)
	return out, true
}

// ExportSnapshot renders the full task sequence as indented JSON.
func (s *Store) ExportSnapshot() ([]byte, error) {
	tasks := s.tasks.Get().Tasks
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode tasks: %w", err)
	}
	return data, nil
}

// FindTaskIDsByPrefix lists ids starting with prefix, in collection order.
func (s *Store) FindTaskIDsByPrefix(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var ids []string
	for _, t := range s.tasks.Get().Tasks {
		if strings.HasPrefix(t.ID, prefix) {
			ids = append(ids, t.ID)
		}
	}
	return ids, nil
}

// FindSubtaskIDsByPrefix lists subtask ids of taskID starting with prefix.
func (s *Store) FindSubtaskIDsByPrefix(ctx context.Context, taskID, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t, ok := s.Task(taskID)
	if !ok {
		return nil, fmt.Errorf("task %s: %w", taskID, ErrTaskNotFound)
	}
	var ids []string
	for _, st := range t.Subtasks {
		if strings.HasPrefix(st.ID, prefix) {
			ids = append(ids, st.ID)
		}
	}
	return ids, nil
}

// ErrTaskNotFound is returned by lookups for an unknown task id.
var ErrTaskNotFound = errors.New("task not found")

func indexOf(tasks []Task, id string) int {
	return slices.IndexFunc(tasks, func(t Task) bool { return t.ID == id })
}

func cloneTask(t Task) Task {
	if t.RecurringSettings != nil {
		rs := *t.RecurringSettings
		if rs.CustomDays != nil {
			d := *rs.CustomDays
			rs.CustomDays = &d
		}
		t.RecurringSettings = &rs
	}
	if t.ReminderSettings != nil {
		rs := *t.ReminderSettings
		rs.Intervals = slices.Clone(rs.Intervals)
		rs.CustomTimes = slices.Clone(rs.CustomTimes)
		if rs.Volume != nil {
			v := *rs.Volume
			rs.Volume = &v
		}
		t.ReminderSettings = &rs
	}
	t.Subtasks = slices.Clone(t.Subtasks)
	return t
}

func cloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = cloneTask(t)
	}
	return out
}
