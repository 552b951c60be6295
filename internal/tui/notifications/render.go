package notifications

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/partners/internal/tui/state"
)

const maxBannerWidth = 60

// Render draws a toast: icon and severity on the first line, the message
// wrapped below, inside a filled rounded box.
func Render(severity Severity, message string) string {
	st := severity.style()
	text := lipgloss.NewStyle().Foreground(lipgloss.Color(st.foreground))

	header := st.icon + " " + severity.String()
	width := min(max(lipgloss.Width(header), lipgloss.Width(message)), maxBannerWidth)

	body := lipgloss.JoinVertical(lipgloss.Left,
		text.Bold(true).Width(width).Render(header),
		text.Width(width).Render(message),
	)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(st.background)).
		Background(lipgloss.Color(st.background)).
		Padding(0, 1).
		Render(body)
}

// RenderInline draws a one-line note for use inside a view.
func RenderInline(severity Severity, message string) string {
	st := severity.style()
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(st.foreground)).
		Background(lipgloss.Color(st.background)).
		Padding(0, 1).
		Render(st.icon + " " + message)
}

// RenderFromState draws n as a toast, marking folded repeats.
func RenderFromState(n state.Notification) string {
	msg := n.Message
	if n.Repeats > 1 {
		msg = fmt.Sprintf("%s (x%d)", msg, n.Repeats)
	}
	return Render(severityOf(n.Level), msg)
}

func severityOf(l state.NotificationLevel) Severity {
	switch l {
	case state.LevelWarning:
		return Warning
	case state.LevelError:
		return Error
	default:
		return Info
	}
}
