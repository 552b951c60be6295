package tui

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/partners/internal/tui/components"
)

// viewSettings lists the stages with their member counts.
func (m *Model) viewSettings() string {
	rows := []string{components.TitleStyle.Render("Pipeline stages"), ""}
	if placeholder, ok := m.fetchPlaceholder(); ok {
		return lipgloss.JoinVertical(lipgloss.Left, append(rows, placeholder)...)
	}

	// stages no partner sits in are marked unused
	observed := map[string]bool{}
	for _, s := range m.app.StageService.Observed() {
		observed[s] = true
	}

	for i, s := range m.stages {
		line := fmt.Sprintf("%-*s %3d partners", 30, s, m.app.StageService.Members(s))
		if !observed[s] {
			line += components.SubtleStyle.Render("  (unused)")
		}
		if i == m.ui.SettingsCursor() {
			line = components.SelectedRowStyle.Render("› " + line)
		} else {
			line = "  " + line
		}
		rows = append(rows, line)
	}
	if len(m.stages) == 0 {
		rows = append(rows, components.SubtleStyle.Render("No stages yet."))
	}

	rows = append(rows, "", components.SubtleStyle.Render(fmt.Sprintf(
		"%s add · %s remove (stages with partners cannot be removed)",
		m.cfg.KeyMappings.AddStage, m.cfg.KeyMappings.RemoveStage)))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
