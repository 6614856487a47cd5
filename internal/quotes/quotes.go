// Package quotes serves the motivational quotes shown when the user goes idle.
package quotes

import (
	"math/rand/v2"
	"strings"
	"sync"
	"time"
)

// DefaultIdle is how long the user must be inactive before a quote appears.
const DefaultIdle = 2 * time.Minute

// Quote is one saying and its author.
type Quote struct {
	Text   string `json:"quote"`
	Author string `json:"author"`
}

// All is the full quote list.
var All = []Quote{
	{"The secret of getting ahead is getting started.", "Mark Twain"},
	{"It always seems impossible until it's done.", "Nelson Mandela"},
	{"Don't watch the clock; do what it does. Keep going.", "Sam Levenson"},
	{"The way to get started is to quit talking and begin doing.", "Walt Disney"},
	{"You don't have to be great to start, but you have to start to be great.", "Zig Ziglar"},
	{"Start where you are. Use what you have. Do what you can.", "Arthur Ashe"},
	{"The future depends on what you do today.", "Mahatma Gandhi"},
	{"Sleep is temporary. Grind is eternal.", "Unknown"},
	{"Focus on being productive instead of busy.", "Tim Ferriss"},
	{"The most difficult thing is the decision to act, the rest is merely tenacity.", "Amelia Earhart"},
}

// Random picks a quote. A nil r uses the global source.
func Random(r *rand.Rand) Quote {
	if r == nil {
		return All[rand.IntN(len(All))]
	}
	return All[r.IntN(len(All))]
}

// Special is the quote reserved for 15:33.
func Special() Quote {
	for _, q := range All {
		if strings.Contains(q.Text, "Sleep is temporary") {
			return q
		}
	}
	return All[0]
}

// IsSpecialTime reports whether t is within the minute 15:33.
func IsSpecialTime(t time.Time) bool {
	return t.Hour() == 15 && t.Minute() == 33
}

// For returns the special quote at 15:33 and a random one otherwise.
func For(t time.Time, r *rand.Rand) Quote {
	if IsSpecialTime(t) {
		return Special()
	}
	return Random(r)
}

// IdleTimer fires once after a period without activity. Reset restarts the
// countdown unless the timer already fired; Stop cancels it for good.
type IdleTimer struct {
	mu      sync.Mutex
	period  time.Duration
	fn      func()
	timer   *time.Timer
	fired   bool
	stopped bool
}

// NewIdleTimer starts the countdown. fn runs on its own goroutine.
func NewIdleTimer(period time.Duration, fn func()) *IdleTimer {
	if period <= 0 {
		period = DefaultIdle
	}
	it := &IdleTimer{period: period, fn: fn}
	it.timer = time.AfterFunc(period, it.fire)
	return it
}

func (it *IdleTimer) fire() {
	it.mu.Lock()
	if it.fired || it.stopped {
		it.mu.Unlock()
		return
	}
	it.fired = true
	fn := it.fn
	it.mu.Unlock()
	fn()
}

// Reset records activity.
func (it *IdleTimer) Reset() {
	it.mu.Lock()
	defer it.mu.Unlock()
	if it.fired || it.stopped {
		return
	}
	it.timer.Stop()
	it.timer = time.AfterFunc(it.period, it.fire)
}

// Stop cancels the timer.
func (it *IdleTimer) Stop() {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.stopped = true
	it.timer.Stop()
}

// Fired reports whether the idle callback ran.
func (it *IdleTimer) Fired() bool {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.fired
}
