// Package app provides the application layer that orchestrates business logic.
// CLI commands and the TUI are thin adapters over it.
package app

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/josephgoksu/Taskify/internal/config"
	"github.com/josephgoksu/Taskify/internal/easteregg"
	"github.com/josephgoksu/Taskify/internal/kv"
	"github.com/josephgoksu/Taskify/internal/settings"
	"github.com/josephgoksu/Taskify/internal/task"
	"github.com/josephgoksu/Taskify/types"
)

// Context holds shared dependencies for all app services.
type Context struct {
	Config   types.AppConfig
	Logger   *slog.Logger
	Backend  kv.Backend
	Tasks    *task.Store
	Settings *settings.Store
	Eggs     *easteregg.Tracker
}

// OpenBackend opens the storage backend named by cfg.Data.
func OpenBackend(cfg types.AppConfig, logger *slog.Logger) (kv.Backend, error) {
	switch cfg.Data.Backend {
	case config.BackendSQLite:
		b, err := kv.NewSQLiteBackend(config.SQLitePath(cfg.Data.Dir), kv.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("open sqlite backend: %w", err)
		}
		return b, nil
	case config.BackendFile, "":
		return kv.NewFileBackend(afero.NewOsFs(), cfg.Data.Dir, kv.WithLogger(logger)), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Data.Backend)
	}
}

// Open creates an app context on the configured backend.
func Open(cfg types.AppConfig, logger *slog.Logger, opts ...task.StoreOption) (*Context, error) {
	backend, err := OpenBackend(cfg, logger)
	if err != nil {
		return nil, err
	}
	return NewContext(backend, cfg, logger, opts...), nil
}

// NewContext hydrates every store from backend. The context owns backend
// and closes it in Close.
func NewContext(backend kv.Backend, cfg types.AppConfig, logger *slog.Logger, opts ...task.StoreOption) *Context {
	if logger == nil {
		logger = slog.Default()
	}
	opts = append([]task.StoreOption{task.WithLogger(logger)}, opts...)
	return &Context{
		Config:   cfg,
		Logger:   logger,
		Backend:  backend,
		Tasks:    task.NewStore(backend, opts...),
		Settings: settings.Open(backend, logger),
		Eggs:     easteregg.NewTracker(backend, logger),
	}
}

// NewSubmitter returns the add front door configured from the context.
func (c *Context) NewSubmitter() *task.Submitter {
	return task.NewSubmitter(c.Tasks,
		task.WithDelay(c.Config.Submit.Delay),
		task.WithTracker(c.Eggs),
	)
}

// Close stops watching and releases the backend.
func (c *Context) Close() error {
	c.Tasks.Close()
	if err := c.Backend.Close(); err != nil && !errors.Is(err, kv.ErrClosed) {
		return fmt.Errorf("close backend: %w", err)
	}
	return nil
}
