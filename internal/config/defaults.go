// Package config provides centralized configuration constants for Taskify.
// All default values should be defined here to ensure a single source of truth.
package config

import "time"

// Storage backends
const (
	// BackendFile keeps one JSON file per slot in the data directory
	BackendFile = "file"

	// BackendSQLite keeps all slots in one SQLite database
	BackendSQLite = "sqlite"

	// DefaultBackend is used when data.backend is not set
	DefaultBackend = BackendFile

	// SQLiteFileName is the database file inside the data directory
	SQLiteFileName = "taskify.db"
)

// DefaultSubmitDelay is the pause between a submit and the task appearing.
const DefaultSubmitDelay = 200 * time.Millisecond

// DefaultQuoteIdle is how long the TUI waits without input before showing a quote.
const DefaultQuoteIdle = 2 * time.Minute

// DefaultExportDir is where export writes when no --out is given.
const DefaultExportDir = "."

// dirName is the name of the local and global data directories.
const dirName = ".taskify"
