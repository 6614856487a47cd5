package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/josephgoksu/Taskify/internal/settings"
	"github.com/josephgoksu/Taskify/internal/task"
)

var (
	// Colors
	ColorPrimary   = lipgloss.Color("205") // Pink
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("160") // Red
	ColorWarning   = lipgloss.Color("214") // Orange/Yellow
	ColorText      = lipgloss.Color("252") // White/Gray
	ColorCyan      = lipgloss.Color("87")  // Cyan for quotes
	ColorBlue      = lipgloss.Color("75")  // Blue for low priority

	// Base Styles
	StyleTitle   lipgloss.Style
	StyleSubtle  lipgloss.Style
	StylePrimary lipgloss.Style
	StyleSuccess lipgloss.Style
	StyleError   lipgloss.Style
	StyleWarning lipgloss.Style
	StyleText    lipgloss.Style

	// Input Box Style for the add field
	StyleInputBox lipgloss.Style
	// Busy state while a submission is pending
	StyleBusyBox lipgloss.Style
	// Quote popup
	StyleQuoteBox lipgloss.Style

	// Components
	StyleHeader       lipgloss.Style
	StyleSectionTitle lipgloss.Style
	StyleCompleted    lipgloss.Style
	StyleCursor       lipgloss.Style
)

func init() {
	buildStyles()
}

// ApplyTheme switches the text colour for the effective theme. systemDark
// is consulted only for the system theme.
func ApplyTheme(t settings.Theme, systemDark bool) {
	if settings.Effective(t, systemDark) == settings.ThemeDark {
		ColorText = lipgloss.Color("252")
		ColorSecondary = lipgloss.Color("241")
	} else {
		ColorText = lipgloss.Color("235")
		ColorSecondary = lipgloss.Color("245")
	}
	buildStyles()
}

func buildStyles() {
	StyleTitle = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleSubtle = lipgloss.NewStyle().Foreground(ColorSecondary)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleText = lipgloss.NewStyle().Foreground(ColorText)

	StyleInputBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ColorSecondary).
		Padding(0, 1)

	StyleBusyBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ColorWarning).
		Padding(0, 1)

	StyleQuoteBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ColorCyan).
		Italic(true).
		Padding(0, 1)

	StyleHeader = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Padding(0, 1)

	StyleSectionTitle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Underline(true)

	StyleCompleted = lipgloss.NewStyle().Foreground(ColorSecondary).Strikethrough(true)
	StyleCursor = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
}

// PriorityStyle returns the style used for a priority label.
func PriorityStyle(p task.Priority) lipgloss.Style {
	switch p {
	case task.PriorityHigh:
		return StyleError
	case task.PriorityMedium:
		return StyleWarning
	case task.PriorityLow:
		return lipgloss.NewStyle().Foreground(ColorBlue)
	default:
		return StyleSubtle
	}
}

// Icon returns a styled icon string
func Icon(icon string, style lipgloss.Style) string {
	return style.Render(icon)
}
