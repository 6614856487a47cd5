package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const defaultPollInterval = 500 * time.Millisecond

// SQLiteBackend stores slots as rows of a single table.
//
// External changes are found by polling PRAGMA data_version, which only moves
// when another connection commits to the database file.
type SQLiteBackend struct {
	db       *sql.DB
	path     string
	logger   *slog.Logger
	interval time.Duration

	mu          sync.Mutex
	known       knownValues
	subs        subscribers
	dataVersion int64
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	closed      bool
}

// NewSQLiteBackend opens (creating if needed) the database at path. The path
// ":memory:" opens a private in-memory database.
func NewSQLiteBackend(path string, opts ...Option) (*SQLiteBackend, error) {
	o := newOptions(opts)

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps data_version meaningful and serializes our writes.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	b := &SQLiteBackend{
		db:       db,
		path:     path,
		logger:   o.logger,
		interval: o.pollInterval,
	}
	if err := b.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return b, nil
}

func (b *SQLiteBackend) initSchema() error {
	_, err := b.db.Exec(`
	CREATE TABLE IF NOT EXISTS slots (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at TEXT NOT NULL
	);`)
	return err
}

// Path returns the database path.
func (b *SQLiteBackend) Path() string {
	return b.path
}

// Load reads one slot row.
func (b *SQLiteBackend) Load(key string) ([]byte, bool, error) {
	if err := ValidateKey(key); err != nil {
		return nil, false, err
	}
	var value []byte
	err := b.db.QueryRow("SELECT value FROM slots WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read slot %s: %w", key, err)
	}

	b.mu.Lock()
	b.known.remember(key, calculateChecksum(value))
	b.mu.Unlock()
	return value, true, nil
}

// Save upserts the slot row.
func (b *SQLiteBackend) Save(key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	hash := calculateChecksum(value)
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	// Recorded before the commit so a concurrent poll cannot mistake it.
	b.known.wrote(key, hash)
	b.mu.Unlock()

	_, err := b.db.Exec(`
		INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		b.mu.Lock()
		b.known.drop(key, hash)
		b.mu.Unlock()
		return fmt.Errorf("save slot %s: %w", key, err)
	}
	return nil
}

// Subscribe starts the data_version poller on first use.
func (b *SQLiteBackend) Subscribe(fn func(key string, value []byte)) (func(), error) {
	if b.path == ":memory:" {
		return nil, ErrWatchUnsupported
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrClosed
	}
	if b.cancel == nil {
		version, err := b.queryDataVersion()
		if err != nil {
			return nil, err
		}
		b.dataVersion = version

		ctx, cancel := context.WithCancel(context.Background())
		b.cancel = cancel
		b.wg.Add(1)
		go b.poll(ctx)
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

func (b *SQLiteBackend) queryDataVersion() (int64, error) {
	var version int64
	if err := b.db.QueryRow("PRAGMA data_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("read data_version: %w", err)
	}
	return version, nil
}

func (b *SQLiteBackend) poll(ctx context.Context) {
	defer b.wg.Done()

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := b.checkForChanges(ctx); err != nil && ctx.Err() == nil {
				b.logger.Warn("error polling for slot changes", "path", b.path, "error", err)
			}
		}
	}
}

type slotChange struct {
	key   string
	value []byte
}

// checkForChanges compares every row against the known hashes once another
// connection has committed. Keys written locally while the rows were read are
// skipped; the local write is newer.
func (b *SQLiteBackend) checkForChanges(ctx context.Context) error {
	version, err := b.queryDataVersion()
	if err != nil {
		return err
	}
	b.mu.Lock()
	unchanged := version == b.dataVersion
	b.dataVersion = version
	gens := make(map[string]uint64)
	for _, key := range b.known.keys() {
		gens[key] = b.known.generation(key)
	}
	b.mu.Unlock()
	if unchanged {
		return nil
	}

	rows, err := b.db.QueryContext(ctx, "SELECT key, value FROM slots")
	if err != nil {
		return fmt.Errorf("query slots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	current := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return fmt.Errorf("scan slot: %w", err)
		}
		current[key] = value
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate slots: %w", err)
	}

	var changes []slotChange
	b.mu.Lock()
	for key, value := range current {
		hash := calculateChecksum(value)
		if b.known.generation(key) != gens[key] || b.known.knows(key, hash) {
			continue
		}
		b.known.remember(key, hash)
		changes = append(changes, slotChange{key: key, value: value})
	}
	for _, key := range b.known.keys() {
		if _, ok := current[key]; ok || b.known.generation(key) != gens[key] {
			continue
		}
		b.known.forget(key)
		changes = append(changes, slotChange{key: key})
	}
	fns := b.subs.snapshot()
	b.mu.Unlock()

	for _, c := range changes {
		for _, fn := range fns {
			fn(c.key, c.value)
		}
	}
	return nil
}

// Close stops the poller and closes the database.
func (b *SQLiteBackend) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	cancel := b.cancel
	b.cancel = nil
	b.subs = subscribers{}
	b.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	b.wg.Wait()
	return b.db.Close()
}
