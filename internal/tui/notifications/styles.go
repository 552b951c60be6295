// Package notifications renders toast banners and inline status notes.
package notifications

import "github.com/thenoetrevino/partners/internal/tui/theme"

// Severity picks the icon and colors of a notification.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	default:
		return "Info"
	}
}

type style struct {
	icon       string
	foreground string
	background string
}

// style reads the active theme.
func (s Severity) style() style {
	switch s {
	case Warning:
		return style{icon: "⚠", foreground: theme.WarningFg, background: theme.WarningBg}
	case Error:
		return style{icon: "✕", foreground: theme.ErrorFg, background: theme.ErrorBg}
	default:
		return style{icon: "🔔", foreground: theme.InfoFg, background: theme.InfoBg}
	}
}
