package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// GetGlobalDataDir returns the path to the global data directory (~/.taskify).
// It's a variable to allow overriding in tests.
var GetGlobalDataDir = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, dirName), nil
}

// GetDataDir returns the directory that holds the storage slots.
// Resolution order (first match wins):
// 1. Explicit config via "data.dir" (Viper/env/flag)
// 2. Local directory: ./.taskify (if exists)
// 3. XDG_DATA_HOME/taskify (if XDG_DATA_HOME is set)
// 4. Global fallback: ~/.taskify
func GetDataDir() string {
	if path := viper.GetString("data.dir"); path != "" {
		return path
	}

	// A local .taskify keeps a separate list per working directory
	if info, err := os.Stat(dirName); err == nil && info.IsDir() {
		return dirName
	}

	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "taskify")
	}

	dir, err := GetGlobalDataDir()
	if err != nil {
		return dirName
	}
	return dir
}

// SQLitePath returns the database path inside dataDir.
func SQLitePath(dataDir string) string {
	return filepath.Join(dataDir, SQLiteFileName)
}
