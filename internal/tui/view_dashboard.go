package tui

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/partners/internal/pipeline"
	"github.com/thenoetrevino/partners/internal/tui/components"
	"github.com/thenoetrevino/partners/internal/tui/notifications"
)

// viewDashboard renders the welcome text and one card per stage.
func (m *Model) viewDashboard() string {
	width := m.ui.Width() - 2
	intro := components.RenderMarkdown(pipeline.Intro, width)
	if placeholder, ok := m.fetchPlaceholder(); ok {
		return lipgloss.JoinVertical(lipgloss.Left, intro, placeholder)
	}

	summary := pipeline.Summarize(m.partners, m.stages)
	parts := []string{
		intro,
		components.RenderStageCards(summary.Counts, width),
		components.TitleStyle.Render(fmt.Sprintf("Total: %d", summary.Total)),
	}
	if note := summary.UnassignedNote(); note != "" {
		parts = append(parts,
			notifications.RenderInline(notifications.Warning, note),
			components.RenderUnassigned(summary.Unassigned))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
