package quotes

import (
	"math/rand/v2"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecialQuote(t *testing.T) {
	assert.Equal(t, "Unknown", Special().Author)

	at := time.Date(2026, 1, 1, 15, 33, 59, 0, time.Local)
	assert.True(t, IsSpecialTime(at))
	assert.False(t, IsSpecialTime(at.Add(time.Second)))
	assert.Equal(t, Special(), For(at, nil))
}

func TestRandom_IsFromList(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 7))
	for i := 0; i < 20; i++ {
		assert.Contains(t, All, Random(r))
	}
}

func TestIdleTimer_FiresOnce(t *testing.T) {
	var n atomic.Int32
	it := NewIdleTimer(20*time.Millisecond, func() { n.Add(1) })
	defer it.Stop()

	require.Eventually(t, it.Fired, time.Second, 5*time.Millisecond)
	it.Reset()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), n.Load())
}

func TestIdleTimer_ResetPostpones(t *testing.T) {
	var n atomic.Int32
	it := NewIdleTimer(80*time.Millisecond, func() { n.Add(1) })
	defer it.Stop()

	for i := 0; i < 4; i++ {
		time.Sleep(30 * time.Millisecond)
		it.Reset()
	}
	assert.Equal(t, int32(0), n.Load())
}

func TestIdleTimer_Stop(t *testing.T) {
	var n atomic.Int32
	it := NewIdleTimer(10*time.Millisecond, func() { n.Add(1) })
	it.Stop()
	time.Sleep(40 * time.Millisecond)
	assert.False(t, it.Fired())
	assert.Equal(t, int32(0), n.Load())
}
