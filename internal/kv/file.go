package kv

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
)

const slotExt = ".json"

// FileBackend stores each slot as <dir>/<key>.json on an afero filesystem.
//
// Writes go to a dot-prefixed temp file that is renamed over the slot file, so
// a reader never sees a partial document. The hashes of recent values this
// backend loaded or wrote are remembered; the watcher skips events whose
// content is one of them, so a late event for an older own write is never
// reported.
type FileBackend struct {
	fs     afero.Fs
	dir    string
	logger *slog.Logger

	mu      sync.Mutex
	known   knownValues
	subs    subscribers
	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	closed  bool
}

// NewFileBackend returns a backend rooted at dir. The directory is created on
// the first Save.
func NewFileBackend(fsys afero.Fs, dir string, opts ...Option) *FileBackend {
	o := newOptions(opts)
	return &FileBackend{
		fs:     fsys,
		dir:    dir,
		logger: o.logger,
	}
}

// Dir returns the namespace directory.
func (b *FileBackend) Dir() string {
	return b.dir
}

func (b *FileBackend) path(key string) string {
	return filepath.Join(b.dir, key+slotExt)
}

// Load reads the slot file.
func (b *FileBackend) Load(key string) ([]byte, bool, error) {
	if err := ValidateKey(key); err != nil {
		return nil, false, err
	}
	data, err := afero.ReadFile(b.fs, b.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read slot %s: %w", key, err)
	}

	b.mu.Lock()
	b.known.remember(key, calculateChecksum(data))
	b.mu.Unlock()
	return data, true, nil
}

// Save atomically replaces the slot file.
func (b *FileBackend) Save(key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	hash := calculateChecksum(value)
	b.known.wrote(key, hash)
	b.mu.Unlock()

	if err := b.writeAtomic(key, value); err != nil {
		b.mu.Lock()
		b.known.drop(key, hash)
		b.mu.Unlock()
		return fmt.Errorf("save slot %s: %w", key, err)
	}
	return nil
}

func (b *FileBackend) writeAtomic(key string, value []byte) error {
	if err := b.fs.MkdirAll(b.dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmp, err := afero.TempFile(b.fs, b.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = b.fs.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = b.fs.Remove(tmpName)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = b.fs.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := b.fs.Rename(tmpName, b.path(key)); err != nil {
		_ = b.fs.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Subscribe starts the directory watcher on first use. Only the operating
// system filesystem can be watched; other afero filesystems return
// ErrWatchUnsupported.
func (b *FileBackend) Subscribe(fn func(key string, value []byte)) (func(), error) {
	if _, ok := b.fs.(*afero.OsFs); !ok {
		return nil, ErrWatchUnsupported
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrClosed
	}
	if b.watcher == nil {
		if err := b.startWatcherLocked(); err != nil {
			return nil, err
		}
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

func (b *FileBackend) startWatcherLocked() error {
	if err := b.fs.MkdirAll(b.dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := watcher.Add(b.dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", b.dir, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	b.watcher = watcher
	b.cancel = cancel
	b.wg.Add(1)
	go b.eventLoop(ctx, watcher)
	return nil
}

func (b *FileBackend) eventLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer b.wg.Done()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			b.handleEvent(event)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			b.logger.Warn("watch error", "dir", b.dir, "error", err)

		case <-ctx.Done():
			return
		}
	}
}

func (b *FileBackend) handleEvent(event fsnotify.Event) {
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, slotExt) {
		return
	}
	key := strings.TrimSuffix(name, slotExt)
	if ValidateKey(key) != nil {
		return
	}

	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		// A rename away from the slot name; the replacing file arrives as Create.
		if exists, _ := afero.Exists(b.fs, event.Name); exists {
			b.readAndDeliver(key)
			return
		}
		b.mu.Lock()
		known := b.known.has(key)
		b.known.forget(key)
		b.mu.Unlock()
		if known {
			b.deliver(key, nil)
		}

	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		b.readAndDeliver(key)
	}
}

// readAndDeliver reports the slot file's content unless it is a value this
// backend recently loaded or wrote, or a local write landed while reading.
func (b *FileBackend) readAndDeliver(key string) {
	b.mu.Lock()
	gen := b.known.generation(key)
	b.mu.Unlock()

	data, err := afero.ReadFile(b.fs, b.path(key))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			b.logger.Warn("error reading changed slot", "key", key, "error", err)
		}
		return
	}
	hash := calculateChecksum(data)

	b.mu.Lock()
	if b.known.knows(key, hash) || b.known.generation(key) != gen {
		b.mu.Unlock()
		return
	}
	b.known.remember(key, hash)
	b.mu.Unlock()

	b.deliver(key, data)
}

func (b *FileBackend) deliver(key string, value []byte) {
	b.mu.Lock()
	fns := b.subs.snapshot()
	b.mu.Unlock()
	for _, fn := range fns {
		fn(key, value)
	}
}

// Close stops the watcher and waits for the event loop to exit.
func (b *FileBackend) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	watcher := b.watcher
	cancel := b.cancel
	b.watcher = nil
	b.cancel = nil
	b.subs = subscribers{}
	b.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	var err error
	if watcher != nil {
		err = watcher.Close()
	}
	b.wg.Wait()
	return err
}
