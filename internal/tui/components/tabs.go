package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

// Tab is one entry of the view switcher.
type Tab struct {
	Key   string // shortcut shown before the title
	Title string
	Count int // shown in parentheses when >= 0
}

func (t Tab) label() string {
	label := t.Title
	if t.Key != "" {
		label = t.Key + " " + label
	}
	if t.Count >= 0 {
		label += fmt.Sprintf(" (%d)", t.Count)
	}
	return label
}

// RenderTabs draws the view switcher and fills the rest of width with the
// tab baseline. notification, if any, is right aligned on the same row.
//
//	╭─────────────╮ ╭───────────────╮
//	│ 1 Dashboard │ │ 2 Partners (8)│──────────────  [notification]
func RenderTabs(tabs []Tab, selected int, width int, notification string) string {
	rendered := make([]string, 0, len(tabs))
	for i, t := range tabs {
		style := TabStyle
		if i == selected {
			style = ActiveTabStyle
		}
		rendered = append(rendered, style.Render(t.label()))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)

	gapWidth := max(width-lipgloss.Width(row)-lipgloss.Width(notification)-2, 0)
	parts := []string{row, TabGapStyle.Render(strings.Repeat(" ", gapWidth))}
	if notification != "" {
		parts = append(parts, notification)
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, parts...)
}
