package task

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"sync/atomic"
	"time"

	"github.com/josephgoksu/Taskify/internal/easteregg"
)

// DefaultSubmitDelay is the pause between accepting a submission and
// creating the task.
const DefaultSubmitDelay = 200 * time.Millisecond

var (
	// ErrEmptyTitle is returned for a title that is blank after trimming.
	ErrEmptyTitle = errors.New("task title is empty")

	// ErrSubmitInProgress is returned while an earlier submission is pending.
	ErrSubmitInProgress = errors.New("a submission is already in progress")

	// ErrRejected is returned when the store refused the new task.
	ErrRejected = errors.New("task rejected")
)

// SubmitInput is what the add form collects.
type SubmitInput struct {
	Title     string
	DueDate   string
	Priority  Priority
	Recurring *RecurringSettings
}

// SubmitResult reports what a submission did. When EasterEgg is set the
// normal add was skipped; Task is only set if a task was created.
type SubmitResult struct {
	Task      *Task
	EasterEgg easteregg.Type
}

// Submitter is the front door for new tasks typed by a user: it screens the
// title for easter eggs, blocks re-entrant submits and delays the add.
type Submitter struct {
	store      *Store
	tracker    *easteregg.Tracker
	delay      time.Duration
	rng        *rand.Rand
	submitting atomic.Bool
}

// SubmitterOption configures a Submitter.
type SubmitterOption func(*Submitter)

// WithDelay sets the pause before the task is added. Zero disables it.
func WithDelay(d time.Duration) SubmitterOption {
	return func(s *Submitter) {
		if d >= 0 {
			s.delay = d
		}
	}
}

// WithTracker records easter-egg activations.
func WithTracker(t *easteregg.Tracker) SubmitterOption {
	return func(s *Submitter) { s.tracker = t }
}

// WithRand sets the source used to pick fun tasks.
func WithRand(r *rand.Rand) SubmitterOption {
	return func(s *Submitter) { s.rng = r }
}

// NewSubmitter wraps store.
func NewSubmitter(store *Store, opts ...SubmitterOption) *Submitter {
	s := &Submitter{store: store, delay: DefaultSubmitDelay}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submitting reports whether a submission is pending.
func (s *Submitter) Submitting() bool {
	return s.submitting.Load()
}

// Submit adds the task described by in. A detected easter egg replaces the
// add: /bored adds a fun task at once, the others only report themselves.
// The delay is cut short only by ctx.
func (s *Submitter) Submit(ctx context.Context, in SubmitInput) (SubmitResult, error) {
	if strings.TrimSpace(in.Title) == "" {
		return SubmitResult{}, ErrEmptyTitle
	}
	if !s.submitting.CompareAndSwap(false, true) {
		return SubmitResult{}, ErrSubmitInProgress
	}
	defer s.submitting.Store(false)

	if egg := easteregg.Detect(in.Title); egg != easteregg.None {
		if s.tracker != nil {
			s.tracker.Record(egg, s.store.clock.Now())
		}
		res := SubmitResult{EasterEgg: egg}
		if egg == easteregg.InjectRandomTask {
			if t, ok := s.store.AddTask(easteregg.RandomFunTask(s.rng), "", PriorityNone, nil); ok {
				res.Task = &t
			}
		}
		return res, nil
	}

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return SubmitResult{}, ctx.Err()
		}
	}

	t, ok := s.store.AddTask(in.Title, in.DueDate, in.Priority, in.Recurring)
	if !ok {
		return SubmitResult{}, ErrRejected
	}
	return SubmitResult{Task: &t}, nil
}
