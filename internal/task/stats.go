package task

import "time"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// Day formats t as a calendar day in t's own location.
func Day(t time.Time) string {
	return t.Format(DateLayout)
}

// InitialStats is the value of stats that were never saved.
func InitialStats() Stats {
	return Stats{}
}

// RecordCompletion is the stats step for one task going from active to
// completed on day today. The streak grows at most once per day and is never
// reset for missed days.
func RecordCompletion(s Stats, today string) Stats {
	next := Stats{TotalCompleted: s.TotalCompleted + 1, Streak: s.Streak}
	if s.LastCompleted == nil || *s.LastCompleted != today {
		next.Streak++
	}
	day := today
	next.LastCompleted = &day
	return next
}

// ReplaceState is the step applied when another context rewrote the task
// slot: the incoming collection replaces the current one without merging.
func ReplaceState(_ State, incoming State) State {
	if incoming.Tasks == nil {
		incoming.Tasks = []Task{}
	}
	if _, err := ParseFilter(string(incoming.Filter)); err != nil {
		incoming.Filter = FilterAll
	}
	return incoming
}

// ReplaceStats is the stats counterpart of ReplaceState.
func ReplaceStats(_ Stats, incoming Stats) Stats {
	if incoming.TotalCompleted < 0 {
		incoming.TotalCompleted = 0
	}
	if incoming.Streak < 0 {
		incoming.Streak = 0
	}
	return incoming
}
