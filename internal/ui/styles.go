// Package ui holds the terminal styles used for operator-facing output.
package ui

import "github.com/charmbracelet/lipgloss"

// Color palette.
const (
	ColorError     = lipgloss.Color("#EF4444")
	ColorWarning   = lipgloss.Color("#F59E0B")
	ColorSuccess   = lipgloss.Color("#10B981")
	ColorHighlight = lipgloss.Color("#3B82F6")
	ColorMuted     = lipgloss.Color("#6B7280")
)

var (
	// TitleStyle is for usage section headers.
	TitleStyle = lipgloss.NewStyle().Bold(true).Underline(true)

	ErrorStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorError)
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	CmdStyle     = lipgloss.NewStyle().Foreground(ColorHighlight)
	MutedStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
)

// Error renders an error message in the highlighted error style.
func Error(msg string) string { return ErrorStyle.Render(msg) }

// Warning renders a warning message.
func Warning(msg string) string { return WarningStyle.Render(msg) }

// Success renders a success message.
func Success(msg string) string { return SuccessStyle.Render(msg) }

// Cmd renders a command name or path.
func Cmd(s string) string { return CmdStyle.Render(s) }
