// Package kv mirrors in-memory values into durable, named slots.
//
// A Backend is the persistence port: it loads and saves raw slot contents and
// reports changes made by other execution contexts (another process, or another
// handle on the same medium). A Slot binds one typed value to one key.
//
// There is no locking across contexts. The last write to a slot wins and an
// external change replaces the in-memory value wholesale.
package kv

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// Backend is the durable storage port used by Slot.
type Backend interface {
	// Load returns the raw contents of key. ok is false when the slot is absent.
	Load(key string) (value []byte, ok bool, err error)

	// Save replaces the contents of key.
	Save(key string, value []byte) error

	// Subscribe registers fn for changes made by other contexts. A nil value
	// means the slot was removed. The returned cancel func is idempotent.
	Subscribe(fn func(key string, value []byte)) (cancel func(), err error)

	// Close releases watchers and handles.
	Close() error
}

var (
	// ErrWatchUnsupported is returned by Subscribe when the backend medium
	// cannot report external changes.
	ErrWatchUnsupported = errors.New("backend cannot watch for external changes")

	// ErrUnavailable is returned when durable storage cannot be used.
	ErrUnavailable = errors.New("storage unavailable")

	// ErrClosed is returned by operations on a closed backend.
	ErrClosed = errors.New("backend closed")

	// ErrInvalidKey is returned for keys that cannot name a slot.
	ErrInvalidKey = errors.New("invalid slot key")
)

// ValidateKey reports whether key can name a slot on every backend.
func ValidateKey(key string) error {
	if key == "" || strings.TrimSpace(key) != key {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	if strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// calculateChecksum computes the SHA256 checksum of the given data.
func calculateChecksum(data []byte) string {
	hasher := sha256.New()
	hasher.Write(data) // Write never returns an error
	return hex.EncodeToString(hasher.Sum(nil))
}

// subscribers is the callback registry shared by the backends.
type subscribers struct {
	next int
	fns  map[int]func(string, []byte)
}

func (s *subscribers) add(fn func(string, []byte)) int {
	if s.fns == nil {
		s.fns = make(map[int]func(string, []byte))
	}
	s.next++
	s.fns[s.next] = fn
	return s.next
}

func (s *subscribers) remove(id int) {
	delete(s.fns, id)
}

func (s *subscribers) snapshot() []func(string, []byte) {
	out := make([]func(string, []byte), 0, len(s.fns))
	for _, fn := range s.fns {
		out = append(out, fn)
	}
	return out
}

// maxKnownHashes bounds how many recent values per key a backend remembers.
const maxKnownHashes = 32

// knownValues tracks, per key, the hashes of values a backend has recently
// written or seen, and a generation that moves on every local write.
// Watchers use it to drop stale echoes of their own writes: an event whose
// content is any remembered hash is not external, and a value read before a
// newer local write must not be delivered.
type knownValues struct {
	hashes map[string][]string
	gen    map[string]uint64
}

func (k *knownValues) init() {
	if k.hashes == nil {
		k.hashes = make(map[string][]string)
		k.gen = make(map[string]uint64)
	}
}

// remember records hash as a value of key.
func (k *knownValues) remember(key, hash string) {
	k.init()
	hs := k.hashes[key]
	for i, h := range hs {
		if h == hash {
			hs = append(hs[:i], hs[i+1:]...)
			break
		}
	}
	hs = append(hs, hash)
	if len(hs) > maxKnownHashes {
		hs = hs[len(hs)-maxKnownHashes:]
	}
	k.hashes[key] = hs
}

// wrote records a local write and bumps the key's generation.
func (k *knownValues) wrote(key, hash string) {
	k.remember(key, hash)
	k.gen[key]++
}

// drop forgets hash after a failed write.
func (k *knownValues) drop(key, hash string) {
	hs := k.hashes[key]
	for i := len(hs) - 1; i >= 0; i-- {
		if hs[i] == hash {
			k.hashes[key] = append(hs[:i], hs[i+1:]...)
			return
		}
	}
}

func (k *knownValues) knows(key, hash string) bool {
	for _, h := range k.hashes[key] {
		if h == hash {
			return true
		}
	}
	return false
}

func (k *knownValues) has(key string) bool {
	return len(k.hashes[key]) > 0
}

func (k *knownValues) forget(key string) {
	delete(k.hashes, key)
}

func (k *knownValues) generation(key string) uint64 {
	return k.gen[key]
}

func (k *knownValues) keys() []string {
	out := make([]string, 0, len(k.hashes))
	for key := range k.hashes {
		out = append(out, key)
	}
	return out
}
