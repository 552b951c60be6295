package components

import (
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/thenoetrevino/partners/internal/models"
	"github.com/thenoetrevino/partners/internal/tui/theme"
)

// CardState is how a card is highlighted.
type CardState int

const (
	CardNormal CardState = iota
	CardSelected
	CardDragging
)

// RenderCard renders a single partner as a card
//
//	┏━━━━━━━━━━━━━━━━━━━━┓
//	┃ {Name}             ┃
//	┃ {email}            ┃
//	┗━━━━━━━━━━━━━━━━━━━━┛
func RenderCard(p *models.Partner, state CardState) string {
	bg := theme.CardBg
	border := theme.CardBorder
	switch state {
	case CardSelected:
		bg, border = theme.SelectedBg, theme.SelectedBorder
	case CardDragging:
		bg, border = theme.SelectedBg, theme.DragBorder
	}

	name := lipgloss.NewStyle().
		Bold(true).
		Background(lipgloss.Color(bg)).
		Render(" " + ansi.Truncate(p.Name, cardTextWidth, "…"))

	email := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Subtle)).
		Background(lipgloss.Color(bg)).
		Render(" " + ansi.Truncate(p.Email, cardTextWidth, "…"))

	return CardStyle.
		BorderForeground(lipgloss.Color(border)).
		BorderBackground(lipgloss.Color(bg)).
		Background(lipgloss.Color(bg)).
		Render(name + "\n" + email + "\n")
}
