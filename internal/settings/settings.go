// Package settings exposes the application preferences and the colour theme.
// The preferences are read-only here; only the theme has a writer.
package settings

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/josephgoksu/Taskify/internal/kv"
)

// Slot keys.
const (
	SettingsKey = "taskify-settings"
	ThemeKey    = "theme"
)

// AppSettings are the user's display preferences.
type AppSettings struct {
	DarkMode          bool `json:"darkMode"`
	ShowProgressBar   bool `json:"showProgressBar"`
	EnableQuotes      bool `json:"enableQuotes"`
	EnableDragAndDrop bool `json:"enableDragAndDrop"`
}

// Defaults are the preferences of a fresh install.
func Defaults() AppSettings {
	return AppSettings{
		DarkMode:          false,
		ShowProgressBar:   true,
		EnableQuotes:      true,
		EnableDragAndDrop: true,
	}
}

// Theme is the colour scheme choice.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// ParseTheme accepts light, dark or system.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return t, nil
	default:
		return "", fmt.Errorf("invalid theme %q (want light, dark or system)", s)
	}
}

// Effective resolves system to light or dark using the terminal's
// background. Unknown values count as system.
func Effective(t Theme, systemDark bool) Theme {
	switch t {
	case ThemeLight, ThemeDark:
		return t
	}
	if systemDark {
		return ThemeDark
	}
	return ThemeLight
}

// Store binds the settings and theme slots.
type Store struct {
	app   *kv.Slot[AppSettings]
	theme *kv.Slot[Theme]
}

// Open hydrates both slots.
func Open(backend kv.Backend, logger *slog.Logger) *Store {
	return &Store{
		app:   kv.Open(backend, SettingsKey, Defaults(), kv.WithLogger(logger)),
		theme: kv.Open(backend, ThemeKey, ThemeSystem, kv.WithLogger(logger)),
	}
}

// App returns the current preferences.
func (s *Store) App() AppSettings {
	return s.app.Get()
}

// Theme returns the stored theme; an unrecognised value reads as system.
func (s *Store) Theme() Theme {
	t, err := ParseTheme(string(s.theme.Get()))
	if err != nil {
		return ThemeSystem
	}
	return t
}

// SetTheme stores t.
func (s *Store) SetTheme(t Theme) error {
	if _, err := ParseTheme(string(t)); err != nil {
		return err
	}
	s.theme.Update(func(cur Theme) (Theme, bool) {
		return t, cur != t
	})
	return nil
}
