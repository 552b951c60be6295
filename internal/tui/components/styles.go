// Package components renders the pieces of the partners TUI: tabs, board
// columns, partner cards, the list table, dashboard stage cards and the
// status bar. InitStyles must run before anything renders.
package components

import (
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/partners/internal/config/colors"
	"github.com/thenoetrevino/partners/internal/tui/theme"
)

// tabBorder draws a tab whose bottom edge joins the baseline. The active
// tab leaves its bottom open.
func tabBorder(active bool) lipgloss.Border {
	b := lipgloss.Border{
		Top: "─", Bottom: "─", Left: "│", Right: "│",
		TopLeft: "╭", TopRight: "╮", BottomLeft: "┴", BottomRight: "┴",
	}
	if active {
		b.Bottom, b.BottomLeft, b.BottomRight = " ", "┘", "└"
	}
	return b
}

// Tabs and chrome
var (
	TabStyle       lipgloss.Style
	ActiveTabStyle lipgloss.Style
	TabGapStyle    lipgloss.Style
	StatusBarStyle lipgloss.Style
	TitleStyle     lipgloss.Style
	SubtleStyle    lipgloss.Style
	IndicatorStyle lipgloss.Style
)

// Board, list and dashboard
var (
	ColumnStyle      lipgloss.Style
	CardStyle        lipgloss.Style
	StageCardStyle   lipgloss.Style
	TableHeaderStyle lipgloss.Style
	SelectedRowStyle lipgloss.Style
)

// Modal boxes, bordered by what the modal does
var (
	FormBoxStyle          lipgloss.Style // edit and sign in
	CreateInputBoxStyle   lipgloss.Style
	DeleteConfirmBoxStyle lipgloss.Style
	HelpBoxStyle          lipgloss.Style
)

// InitStyles rebuilds every style from scheme.
func InitStyles(scheme colors.ColorScheme) {
	theme.Init(scheme)

	fg := func(c string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(c)) }
	box := func(border string) lipgloss.Style {
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(border))
	}

	TabStyle = lipgloss.NewStyle().
		Border(tabBorder(false), true).
		BorderForeground(lipgloss.Color(scheme.Accent)).
		Padding(0, 1)
	ActiveTabStyle = TabStyle.Border(tabBorder(true), true)
	TabGapStyle = TabStyle.BorderTop(false).BorderLeft(false).BorderRight(false)

	StatusBarStyle = fg(scheme.StatusBarText).Background(lipgloss.Color(scheme.StatusBarBg))
	TitleStyle = fg(scheme.Title).Bold(true)
	SubtleStyle = fg(scheme.Subtle).Italic(true)
	IndicatorStyle = fg(scheme.Subtle).Align(lipgloss.Center)

	ColumnStyle = box(scheme.ColumnBorder).Padding(0, 1).Width(ColumnWidth)
	CardStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(lipgloss.Color(scheme.CardBorder)).
		BorderBackground(lipgloss.Color(scheme.CardBackground)).
		Background(lipgloss.Color(scheme.CardBackground)).
		Width(CardWidth)
	StageCardStyle = box(scheme.ColumnBorder).Padding(0, 2).Width(StageCardWidth).Align(lipgloss.Center)
	TableHeaderStyle = fg(scheme.Title).Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(lipgloss.Color(scheme.Subtle))
	SelectedRowStyle = fg(scheme.Normal).Background(lipgloss.Color(scheme.SelectedBg))

	FormBoxStyle = box(scheme.Edit).Padding(1, 2)
	CreateInputBoxStyle = box(scheme.Create).Padding(1)
	DeleteConfirmBoxStyle = box(scheme.Delete).Padding(1)
	HelpBoxStyle = box(scheme.Accent).Padding(1, 2)
}
