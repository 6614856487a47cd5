package easteregg

import (
	"encoding/json"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephgoksu/Taskify/internal/kv"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		input string
		want  Type
	}{
		{"Meet ACHARYA at noon", MatrixAnimation},
		{"/aayush", CLITerminalPopup},
		{"/aayush ", None},
		{"/tictactoe", LaunchGameModal},
		{"/bored", InjectRandomTask},
		{"/BORED", None},
		{"buy milk", None},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.input))
		})
	}
}

func TestRandomFunTask(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 10; i++ {
		assert.Contains(t, FunTasks, RandomFunTask(r))
	}
	assert.Contains(t, FunTasks, RandomFunTask(nil))
}

func TestTracker_Record(t *testing.T) {
	b := kv.NewMemoryBackend()
	tr := NewTracker(b, nil)
	now := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)

	assert.Equal(t, 0, tr.Record(None, now))
	assert.Equal(t, 1, tr.Record(InjectRandomTask, now))
	assert.Equal(t, 2, tr.Record(InjectRandomTask, now))
	assert.Equal(t, 1, tr.Record(LaunchGameModal, now))

	raw, ok, err := b.Load(Key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"INJECT_RANDOM_TASK":2,"LAUNCH_GAME_MODAL":1,"lastTriggered":"2026-02-03T04:05:06.000Z"}`, string(raw))

	reopened := NewTracker(b, nil)
	assert.Equal(t, []Type{InjectRandomTask, LaunchGameModal}, reopened.Log().Types())
}

func TestLog_UnmarshalRejectsBadCount(t *testing.T) {
	var l Log
	assert.Error(t, json.Unmarshal([]byte(`{"MATRIX_ANIMATION":"lots"}`), &l))
}
