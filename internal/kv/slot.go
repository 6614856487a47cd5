package kv

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Slot keeps one in-memory value of type T mirrored into a backend key.
//
// Open hydrates the value (read only, never writes back). Set and Update are
// mutations and always write through. HandleExternal adopts a value written by
// another context.
type Slot[T any] struct {
	mu        sync.RWMutex
	backend   Backend
	key       string
	value     T
	logger    *slog.Logger
	listeners []func(T)
	reduce    func(current, incoming T) T
	cancel    func()
}

// Option configures a Slot or a backend.
type Option func(*options)

type options struct {
	logger       *slog.Logger
	pollInterval time.Duration
}

func newOptions(opts []Option) options {
	o := options{logger: slog.Default(), pollInterval: defaultPollInterval}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger used for decode and storage warnings.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithPollInterval sets how often SQLiteBackend checks for commits made by
// other connections.
func WithPollInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.pollInterval = d
		}
	}
}

// Open binds a slot to key and hydrates it. When the key is absent, holds a
// JSON null, or cannot be decoded, defaultValue becomes the current value.
// Failures are logged, never returned.
func Open[T any](backend Backend, key string, defaultValue T, opts ...Option) *Slot[T] {
	o := newOptions(opts)

	s := &Slot[T]{
		backend: backend,
		key:     key,
		value:   defaultValue,
		logger:  o.logger,
	}

	raw, ok, err := backend.Load(key)
	switch {
	case err != nil:
		s.logger.Warn("error reading storage key", "key", key, "error", err)
	case !ok || isNull(raw):
		// default stands
	default:
		v, err := decode[T](raw)
		if err != nil {
			s.logger.Warn("error reading storage key", "key", key, "error", err)
			break
		}
		s.value = v
	}
	return s
}

// Key returns the key the slot is currently bound to.
func (s *Slot[T]) Key() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.key
}

// Get returns the current in-memory value.
func (s *Slot[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set replaces the value and writes it through.
func (s *Slot[T]) Set(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = v
	s.persistLocked()
}

// Update applies fn to the current value. When fn reports a change the new
// value is stored and written through; otherwise nothing is written.
func (s *Slot[T]) Update(fn func(T) (T, bool)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, changed := fn(s.value)
	if !changed {
		return false
	}
	s.value = next
	s.persistLocked()
	return true
}

// SetKey rebinds the slot. External changes are matched against the new key
// from now on, and the current value is written under it.
func (s *Slot[T]) SetKey(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if key == s.key {
		return
	}
	s.key = key
	s.persistLocked()
}

// SetReducer sets the step that turns an externally written value into the new
// in-memory value. The default adopts the incoming value as is.
func (s *Slot[T]) SetReducer(fn func(current, incoming T) T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reduce = fn
}

// OnChange registers fn to run after an external change replaced the value.
func (s *Slot[T]) OnChange(fn func(T)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// HandleExternal adopts raw as the new value when key is the slot's current
// key. A nil or JSON null payload, or one that fails to decode, is ignored and
// the previous value is retained. It reports whether the value was replaced.
func (s *Slot[T]) HandleExternal(key string, raw []byte) bool {
	s.mu.Lock()
	if key != s.key || raw == nil || isNull(raw) {
		s.mu.Unlock()
		return false
	}
	v, err := decode[T](raw)
	if err != nil {
		s.mu.Unlock()
		s.logger.Warn("error parsing storage value", "key", key, "error", err)
		return false
	}
	if s.reduce != nil {
		v = s.reduce(s.value, v)
	}
	s.value = v
	listeners := append([]func(T){}, s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(v)
	}
	return true
}

// Watch subscribes the slot to external changes on its backend.
func (s *Slot[T]) Watch() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return nil
	}
	cancel, err := s.backend.Subscribe(func(key string, value []byte) {
		s.HandleExternal(key, value)
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", s.key, err)
	}
	s.cancel = cancel
	return nil
}

// Close stops watching. The backend itself stays open.
func (s *Slot[T]) Close() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// persistLocked writes the current value. Storage failures leave memory
// authoritative for the rest of the session.
func (s *Slot[T]) persistLocked() {
	data, err := json.Marshal(s.value)
	if err != nil {
		s.logger.Warn("error encoding storage value", "key", s.key, "error", err)
		return
	}
	if err := s.backend.Save(s.key, data); err != nil {
		s.logger.Warn("error setting storage key", "key", s.key, "error", err)
	}
}

func decode[T any](raw []byte) (T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

func isNull(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
