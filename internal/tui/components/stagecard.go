package components

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/partners/internal/models"
	"github.com/thenoetrevino/partners/internal/tui/theme"
)

// RenderStageCard renders one dashboard bucket
//
//	╭──────────────────╮
//	│      Design      │
//	│        12        │
//	│ partners in this │
//	│      stage       │
//	╰──────────────────╯
//
// accent colors the border, title and count.
func RenderStageCard(c models.StageCount, accent string) string {
	color := lipgloss.Color(accent)
	count := lipgloss.NewStyle().
		Bold(true).
		Foreground(color).
		Render(fmt.Sprintf("%d", c.Count))

	return StageCardStyle.BorderForeground(color).Render(
		TitleStyle.Foreground(color).Render(c.Stage) + "\n" +
			count + "\n" +
			lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Subtle)).Render("partners in this stage"),
	)
}

// RenderStageCards lays the cards out in rows that fit width.
func RenderStageCards(counts []models.StageCount, width int) string {
	perRow := max(width/(StageCardWidth+3), 1)

	var rows []string
	for start := 0; start < len(counts); start += perRow {
		end := min(start+perRow, len(counts))
		cards := make([]string, 0, end-start)
		for i, c := range counts[start:end] {
			cards = append(cards, RenderStageCard(c, theme.StageAccent(start+i)), " ")
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// RenderUnassigned lists partners whose stage is not in the registry.
func RenderUnassigned(partners []*models.Partner) string {
	if len(partners) == 0 {
		return ""
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Unassigned))
	lines := make([]string, 0, len(partners))
	for _, p := range partners {
		stage := p.Stage
		if stage == "" {
			stage = "no stage"
		}
		lines = append(lines, style.Render(fmt.Sprintf("  • %s (%s)", p.Name, stage)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
