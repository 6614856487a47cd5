package kv

import (
	"fmt"
	"sync"
)

// memoryArea is the storage shared by every MemoryBackend handle created from
// the same root, the way tabs of one origin share local storage.
type memoryArea struct {
	mu          sync.Mutex
	data        map[string][]byte
	handles     []*MemoryBackend
	unavailable bool
}

// MemoryBackend is an in-process Backend. Handles created with Peer share the
// same data; a Save through one handle is reported to the subscribers of the
// others, never to its own.
type MemoryBackend struct {
	area   *memoryArea
	mu     sync.Mutex
	subs   subscribers
	closed bool
}

// NewMemoryBackend creates an empty storage area and returns its first handle.
func NewMemoryBackend() *MemoryBackend {
	area := &memoryArea{data: make(map[string][]byte)}
	b := &MemoryBackend{area: area}
	area.handles = append(area.handles, b)
	return b
}

// Peer returns another handle on the same storage area.
func (b *MemoryBackend) Peer() *MemoryBackend {
	p := &MemoryBackend{area: b.area}
	b.area.mu.Lock()
	b.area.handles = append(b.area.handles, p)
	b.area.mu.Unlock()
	return p
}

// SetUnavailable makes every Load and Save on the area fail, simulating
// disabled storage or an exhausted quota.
func (b *MemoryBackend) SetUnavailable(unavailable bool) {
	b.area.mu.Lock()
	defer b.area.mu.Unlock()
	b.area.unavailable = unavailable
}

// Load returns a copy of the stored value.
func (b *MemoryBackend) Load(key string) ([]byte, bool, error) {
	b.area.mu.Lock()
	defer b.area.mu.Unlock()
	if b.area.unavailable {
		return nil, false, ErrUnavailable
	}
	v, ok := b.area.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Save stores value and notifies the other handles.
func (b *MemoryBackend) Save(key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	b.mu.Lock()
	closed := b.closed
	b.mu.Unlock()
	if closed {
		return ErrClosed
	}

	b.area.mu.Lock()
	if b.area.unavailable {
		b.area.mu.Unlock()
		return fmt.Errorf("save %s: %w", key, ErrUnavailable)
	}
	stored := append([]byte(nil), value...)
	b.area.data[key] = stored
	others := b.othersLocked()
	b.area.mu.Unlock()

	for _, h := range others {
		h.deliver(key, append([]byte(nil), stored...))
	}
	return nil
}

// Inject writes value as if another context had saved it, and notifies every
// handle. A nil value removes the key.
func (b *MemoryBackend) Inject(key string, value []byte) {
	b.area.mu.Lock()
	if value == nil {
		delete(b.area.data, key)
	} else {
		b.area.data[key] = append([]byte(nil), value...)
	}
	handles := append([]*MemoryBackend(nil), b.area.handles...)
	b.area.mu.Unlock()

	for _, h := range handles {
		var v []byte
		if value != nil {
			v = append([]byte(nil), value...)
		}
		h.deliver(key, v)
	}
}

// Subscribe registers fn for saves made through other handles.
func (b *MemoryBackend) Subscribe(fn func(key string, value []byte)) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrClosed
	}
	id := b.subs.add(fn)
	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			b.subs.remove(id)
			b.mu.Unlock()
		})
	}, nil
}

// Close detaches the handle from its area.
func (b *MemoryBackend) Close() error {
	b.mu.Lock()
	b.closed = true
	b.subs = subscribers{}
	b.mu.Unlock()

	b.area.mu.Lock()
	defer b.area.mu.Unlock()
	for i, h := range b.area.handles {
		if h == b {
			b.area.handles = append(b.area.handles[:i], b.area.handles[i+1:]...)
			break
		}
	}
	return nil
}

func (b *MemoryBackend) othersLocked() []*MemoryBackend {
	out := make([]*MemoryBackend, 0, len(b.area.handles))
	for _, h := range b.area.handles {
		if h != b {
			out = append(out, h)
		}
	}
	return out
}

func (b *MemoryBackend) deliver(key string, value []byte) {
	b.mu.Lock()
	fns := b.subs.snapshot()
	b.mu.Unlock()
	for _, fn := range fns {
		fn(key, value)
	}
}
