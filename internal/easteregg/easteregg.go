// Package easteregg recognises the hidden commands typed into the task title
// and keeps a count of how often each one fired.
package easteregg

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/josephgoksu/Taskify/internal/kv"
)

// Type identifies an easter egg. The zero value means none.
type Type string

const (
	None             Type = ""
	MatrixAnimation  Type = "MATRIX_ANIMATION"
	CLITerminalPopup Type = "CLI_TERMINAL_POPUP"
	LaunchGameModal  Type = "LAUNCH_GAME_MODAL"
	InjectRandomTask Type = "INJECT_RANDOM_TASK"
	NoTasksMeme      Type = "NO_TASKS_MEME"
)

// Key is the slot holding activation counts.
const Key = "taskify-easter-eggs"

// Detect inspects raw title input. The name match is case-insensitive and
// anywhere in the text; the slash commands must match exactly.
func Detect(input string) Type {
	switch {
	case strings.Contains(strings.ToLower(input), "acharya"):
		return MatrixAnimation
	case input == "/aayush":
		return CLITerminalPopup
	case input == "/tictactoe":
		return LaunchGameModal
	case input == "/bored":
		return InjectRandomTask
	}
	return None
}

// FunTasks are the titles injected by /bored.
var FunTasks = []string{
	"Touch grass for 5 minutes",
	"Call a friend you haven't spoken to in a while",
	"Do 20 jumping jacks",
	"Learn to say 'hello' in a new language",
	"Draw a doodle of your favorite animal",
	"Write a haiku about your day",
	"Drink a glass of water (stay hydrated!)",
	"Look out the window for 2 minutes",
	"Organize your desk",
	"Send a thank you message to someone",
}

// RandomFunTask picks one of FunTasks. A nil r uses the global source.
func RandomFunTask(r *rand.Rand) string {
	if r == nil {
		return FunTasks[rand.IntN(len(FunTasks))]
	}
	return FunTasks[r.IntN(len(FunTasks))]
}

// Describe is the one-line notice shown instead of the diversion itself.
func Describe(t Type) string {
	switch t {
	case MatrixAnimation:
		return "Wake up, Neo... the Matrix has you."
	case CLITerminalPopup:
		return "A secret terminal flickers open, then closes again."
	case LaunchGameModal:
		return "Tic-tac-toe? Not in this terminal. Maybe later."
	case InjectRandomTask:
		return "Bored? Here's something to do."
	case NoTasksMeme:
		return "No tasks? Enjoy the quiet."
	}
	return ""
}

// Log is the persisted activation record: a count per type plus the time of
// the latest activation, flattened into one JSON object.
type Log struct {
	Counts        map[Type]int
	LastTriggered string
}

func (l Log) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(l.Counts)+1)
	for t, n := range l.Counts {
		m[string(t)] = n
	}
	if l.LastTriggered != "" {
		m["lastTriggered"] = l.LastTriggered
	}
	return json.Marshal(m)
}

func (l *Log) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := Log{Counts: make(map[Type]int)}
	for k, v := range raw {
		if k == "lastTriggered" {
			if err := json.Unmarshal(v, &out.LastTriggered); err != nil {
				return fmt.Errorf("lastTriggered: %w", err)
			}
			continue
		}
		var n int
		if err := json.Unmarshal(v, &n); err != nil {
			return fmt.Errorf("count %s: %w", k, err)
		}
		out.Counts[Type(k)] = n
	}
	*l = out
	return nil
}

// Types lists the recorded types in name order.
func (l Log) Types() []Type {
	out := make([]Type, 0, len(l.Counts))
	for t := range l.Counts {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Tracker records activations into the easter-egg slot.
type Tracker struct {
	slot   *kv.Slot[Log]
	logger *slog.Logger
}

// NewTracker hydrates the activation log from backend.
func NewTracker(backend kv.Backend, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		slot:   kv.Open(backend, Key, Log{Counts: map[Type]int{}}, kv.WithLogger(logger)),
		logger: logger,
	}
}

// Record counts one activation of t and returns the new count. None is
// ignored.
func (tr *Tracker) Record(t Type, now time.Time) int {
	if t == None {
		return 0
	}
	count := 0
	tr.slot.Update(func(l Log) (Log, bool) {
		next := Log{Counts: make(map[Type]int, len(l.Counts)+1)}
		for k, v := range l.Counts {
			next.Counts[k] = v
		}
		next.Counts[t]++
		count = next.Counts[t]
		next.LastTriggered = now.UTC().Format("2006-01-02T15:04:05.000Z07:00")
		return next, true
	})
	tr.logger.Debug("easter egg activated", "type", t, "count", count)
	return count
}

// Log returns the current activation record.
func (tr *Tracker) Log() Log {
	return tr.slot.Get()
}
