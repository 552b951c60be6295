package components

import (
	"strings"

	"charm.land/lipgloss/v2"
)

type StatusBarProps struct {
	Width int
	// Left replaces the default title, e.g. while dragging
	Left string
	User string
	// Freshness describes the partner data, e.g. "updated 15:04:05"
	Freshness string
}

// RenderStatusBar renders a status bar with left and right aligned text
// Left side: "Partners - Design Partner Pipeline" or the current action
// Right side: data freshness, signed-in user and "press ? for help"
func RenderStatusBar(props StatusBarProps) string {
	leftText := props.Left
	if leftText == "" {
		leftText = "Partners - Design Partner Pipeline"
	}
	rightText := "press ? for help"
	if props.User != "" {
		rightText = props.User + " · " + rightText
	}
	if props.Freshness != "" {
		rightText = props.Freshness + " · " + rightText
	}

	leftRendered := StatusBarStyle.Render(" " + leftText)
	rightRendered := StatusBarStyle.Render(rightText + " ")

	gapWidth := max(props.Width-lipgloss.Width(leftRendered)-lipgloss.Width(rightRendered), 1)
	gap := StatusBarStyle.Render(strings.Repeat(" ", gapWidth))

	return lipgloss.JoinHorizontal(lipgloss.Top, leftRendered, gap, rightRendered)
}
