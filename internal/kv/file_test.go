package kv

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileBackend_SaveAndLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	b := NewFileBackend(fs, "/data")

	_, ok, err := b.Load("taskify-tasks")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, b.Save("taskify-tasks", []byte(`{"tasks":[]}`)))

	raw, err := afero.ReadFile(fs, "/data/taskify-tasks.json")
	require.NoError(t, err)
	assert.Equal(t, `{"tasks":[]}`, string(raw))

	got, ok, err := b.Load("taskify-tasks")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, raw, got)
}

func TestFileBackend_NoTempFilesLeftBehind(t *testing.T) {
	fs := afero.NewMemMapFs()
	b := NewFileBackend(fs, "/data")

	for i := 0; i < 3; i++ {
		require.NoError(t, b.Save("theme", []byte(`"dark"`)))
	}

	entries, err := afero.ReadDir(fs, "/data")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "theme.json", entries[0].Name())
}

func TestFileBackend_ReadOnlyKeepsSlotInMemory(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, "/data/counter.json", []byte(`{"n":1}`), 0o644))
	ro := afero.NewReadOnlyFs(base)

	var logs bytes.Buffer
	b := NewFileBackend(ro, "/data")
	s := Open(b, "counter", counter{}, WithLogger(quietLogger(&logs)))
	require.Equal(t, 1, s.Get().N)

	s.Set(counter{N: 2})

	assert.Equal(t, 2, s.Get().N)
	assert.Contains(t, logs.String(), "error setting storage key")
	raw, _ := afero.ReadFile(base, "/data/counter.json")
	assert.Equal(t, `{"n":1}`, string(raw))
}

func TestFileBackend_WatchUnsupportedOnMemFs(t *testing.T) {
	b := NewFileBackend(afero.NewMemMapFs(), "/data")
	_, err := b.Subscribe(func(string, []byte) {})
	assert.ErrorIs(t, err, ErrWatchUnsupported)
}

func TestFileBackend_InvalidKey(t *testing.T) {
	b := NewFileBackend(afero.NewMemMapFs(), "/data")
	assert.ErrorIs(t, b.Save("../escape", []byte("x")), ErrInvalidKey)
}

type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) record(key string, value []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if value == nil {
		r.events = append(r.events, key+" removed")
		return
	}
	r.events = append(r.events, key+"="+string(value))
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func TestFileBackend_WatchReportsOtherWritersOnly(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	watching := NewFileBackend(afero.NewOsFs(), dir)
	other := NewFileBackend(afero.NewOsFs(), dir)
	t.Cleanup(func() {
		_ = watching.Close()
		_ = other.Close()
	})

	rec := &recorder{}
	_, err := watching.Subscribe(rec.record)
	require.NoError(t, err)

	require.NoError(t, watching.Save("theme", []byte(`"light"`)))
	require.NoError(t, other.Save("theme", []byte(`"dark"`)))

	require.Eventually(t, func() bool {
		for _, e := range rec.snapshot() {
			if e == `theme="dark"` {
				return true
			}
		}
		return false
	}, 2*time.Second, 20*time.Millisecond)

	for _, e := range rec.snapshot() {
		assert.NotEqual(t, `theme="light"`, e, "own write reported as external")
	}
}

func TestFileBackend_SlotFollowsSecondProcess(t *testing.T) {
	dir := t.TempDir()
	first := NewFileBackend(afero.NewOsFs(), dir)
	second := NewFileBackend(afero.NewOsFs(), dir)
	t.Cleanup(func() {
		_ = first.Close()
		_ = second.Close()
	})

	watched := Open(first, "counter", counter{})
	require.NoError(t, watched.Watch())
	defer watched.Close()

	writer := Open(second, "counter", counter{})
	writer.Set(counter{N: 42, Label: "elsewhere"})

	require.Eventually(t, func() bool {
		return watched.Get().N == 42
	}, 2*time.Second, 20*time.Millisecond)
	assert.Equal(t, "elsewhere", watched.Get().Label)
}

func TestFileBackend_RapidOwnWritesAreNotReported(t *testing.T) {
	dir := t.TempDir()
	b := NewFileBackend(afero.NewOsFs(), dir)
	t.Cleanup(func() { _ = b.Close() })

	rec := &recorder{}
	_, err := b.Subscribe(rec.record)
	require.NoError(t, err)

	for i := 0; i < 300; i++ {
		require.NoError(t, b.Save("counter", []byte(fmt.Sprintf(`{"n":%d}`, i))))
	}
	time.Sleep(300 * time.Millisecond)

	assert.Empty(t, rec.snapshot(), "own writes reported as external")
}

func TestFileBackend_LateEventForOlderOwnWriteIsIgnored(t *testing.T) {
	fs := afero.NewMemMapFs()
	b := NewFileBackend(fs, "/data")
	rec := &recorder{}
	b.subs.add(rec.record)

	require.NoError(t, b.Save("counter", []byte(`{"n":1}`)))
	require.NoError(t, b.Save("counter", []byte(`{"n":2}`)))

	// The file still holds the first write when its event is handled.
	require.NoError(t, afero.WriteFile(fs, "/data/counter.json", []byte(`{"n":1}`), 0o644))
	b.readAndDeliver("counter")
	assert.Empty(t, rec.snapshot())

	require.NoError(t, afero.WriteFile(fs, "/data/counter.json", []byte(`{"n":7}`), 0o644))
	b.readAndDeliver("counter")
	assert.Equal(t, []string{`counter={"n":7}`}, rec.snapshot())
}

func TestKnownValues(t *testing.T) {
	var k knownValues
	assert.False(t, k.has("a"))
	assert.Zero(t, k.generation("a"))

	k.wrote("a", "h1")
	k.wrote("a", "h2")
	k.remember("a", "h3")
	assert.True(t, k.knows("a", "h1"))
	assert.True(t, k.knows("a", "h3"))
	assert.False(t, k.knows("b", "h1"))
	assert.Equal(t, uint64(2), k.generation("a"))

	k.drop("a", "h2")
	assert.False(t, k.knows("a", "h2"))

	for i := 0; i < maxKnownHashes+5; i++ {
		k.remember("a", fmt.Sprintf("x%d", i))
	}
	assert.False(t, k.knows("a", "h1"), "oldest hashes are evicted")
	assert.True(t, k.knows("a", fmt.Sprintf("x%d", maxKnownHashes+4)))

	k.forget("a")
	assert.False(t, k.has("a"))
}
