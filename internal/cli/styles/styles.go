// Package styles holds the lipgloss styles used by human-readable CLI
// output.
package styles

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/partners/internal/config/colors"
	"github.com/thenoetrevino/partners/internal/models"
)

var (
	// Card styles
	CardStyle lipgloss.Style
	CardWidth = 60

	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style // For field labels like "Email:", "Stage:"
	ValueStyle    lipgloss.Style

	StageStyle lipgloss.Style
)

func init() {
	Init(*colors.Default())
}

// Init initializes all CLI styles with the given color scheme
func Init(scheme colors.ColorScheme) {
	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(scheme.Accent)).
		Padding(1, 2).
		Width(CardWidth)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(scheme.Title))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(scheme.Subtle))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(scheme.Accent))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(scheme.Normal))

	StageStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(scheme.InfoFg)).
		Background(lipgloss.Color(scheme.InfoBg)).
		Padding(0, 1)
}

// RenderPartnerCard renders a partner inside a bordered card
//
//	╭──────────────────────────╮
//	│  Acme Corp  #12          │
//	│                          │
//	│  Email:   ops@acme.dev   │
//	│  Stage:   Design         │
//	│  Created: 2025-01-02     │
//	╰──────────────────────────╯
func RenderPartnerCard(p *models.Partner) string {
	field := func(label, value string) string {
		return LabelStyle.Render(fmt.Sprintf("%-8s", label)) + " " + value
	}

	stage := StageStyle.Render(p.Stage)
	if p.Stage == "" {
		stage = SubtitleStyle.Render("(none)")
	}

	lines := []string{
		TitleStyle.Render(p.Name) + "  " + SubtitleStyle.Render(fmt.Sprintf("#%d", p.ID)),
		"",
		field("Email:", ValueStyle.Render(p.Email)),
		field("Stage:", stage),
	}
	if !p.CreatedAt.IsZero() {
		lines = append(lines, field("Created:", ValueStyle.Render(p.CreatedAt.Local().Format("2006-01-02 15:04"))))
	}
	return CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
