package tui

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/partners/internal/tui/components"
	"github.com/thenoetrevino/partners/internal/tui/layers"
	"github.com/thenoetrevino/partners/internal/tui/state"
)

// modalLayer returns the overlay for the current mode, or nil.
func (m *Model) modalLayer() *lipgloss.Layer {
	var content string
	switch m.ui.Mode() {
	case state.PartnerFormMode:
		if m.form != nil {
			title := "New partner"
			style := components.CreateInputBoxStyle
			if m.editingID.Valid() {
				title = "Edit partner"
				style = components.FormBoxStyle
			}
			content = style.Width(min(60, m.ui.Width()-4)).
				Render(components.TitleStyle.Render(title) + "\n\n" + m.form.View())
		}
	case state.DeleteConfirmMode:
		if m.deleteForm != nil {
			content = components.DeleteConfirmBoxStyle.Render(m.deleteForm.View())
		}
	case state.AddStageMode:
		content = components.CreateInputBoxStyle.Width(44).Render(
			components.TitleStyle.Render("New stage") + "\n\n" + m.stageInput.View() +
				"\n\n" + components.SubtleStyle.Render("enter add · esc cancel"))
	case state.PartnerViewMode:
		content = m.renderPartnerDetails()
	case state.HelpMode:
		content = components.HelpBoxStyle.Render(
			components.TitleStyle.Render("Keys") + "\n\n" + m.help.View(m.keys) +
				"\n\n" + components.SubtleStyle.Render("layout: "+layoutName(m.ui.Layout())+" · any key to close"))
	}
	return layers.CreateCenteredLayer(content, m.ui.Width(), m.ui.Height())
}

func (m *Model) renderPartnerDetails() string {
	p := m.viewing
	if p == nil {
		return ""
	}
	label := components.SubtleStyle.Render
	created := "-"
	if !p.CreatedAt.IsZero() {
		created = p.CreatedAt.Local().Format("2006-01-02 15:04")
	}
	body := fmt.Sprintf("%s\n\n%s %s\n%s %s\n%s %s\n%s #%d",
		components.TitleStyle.Render(p.Name),
		label("Email:  "), p.Email,
		label("Stage:  "), p.Stage,
		label("Created:"), created,
		label("ID:     "), p.ID,
	)
	return components.FormBoxStyle.Width(50).Render(body)
}
