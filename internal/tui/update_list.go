package tui

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/partners/internal/pipeline"
	"github.com/thenoetrevino/partners/internal/tui/state"
)

// updateList handles keys in the sortable list layout.
func (m *Model) updateList(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	n := len(m.partners)
	switch {
	case key.Matches(msg, m.keys.PrevPartner):
		m.ui.SetListCursor(m.ui.ListCursor()-1, n)
	case key.Matches(msg, m.keys.NextPartner):
		m.ui.SetListCursor(m.ui.ListCursor()+1, n)
	case key.Matches(msg, m.keys.SortByName):
		m.sort = m.sort.Toggle(pipeline.SortByName)
	case key.Matches(msg, m.keys.SortByEmail):
		m.sort = m.sort.Toggle(pipeline.SortByEmail)
	case key.Matches(msg, m.keys.SortByStage):
		m.sort = m.sort.Toggle(pipeline.SortByStage)
	case key.Matches(msg, m.keys.SortByCreated):
		m.sort = m.sort.Toggle(pipeline.SortByCreatedAt)
	case key.Matches(msg, m.keys.PrevColumn):
		m.sort = m.sort.Cycle(-1)
	case key.Matches(msg, m.keys.NextColumn):
		m.sort = m.sort.Cycle(1)
	default:
		return m.handlePartnerKey(msg)
	}
	return m, nil
}

// handlePartnerKey opens the add, edit, delete and detail overlays for the
// partner under the cursor. Shared by board and list.
func (m *Model) handlePartnerKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.AddPartner):
		stage := ""
		if m.ui.Layout() == state.BoardLayout {
			stage = m.selectedStage()
		}
		return m, m.openCreateForm(stage)
	case key.Matches(msg, m.keys.EditPartner):
		if p := m.selectedPartner(); p != nil {
			return m, m.openEditForm(p)
		}
	case key.Matches(msg, m.keys.DeletePartner):
		if p := m.selectedPartner(); p != nil {
			return m, m.openDeleteConfirm(p)
		}
	case key.Matches(msg, m.keys.ViewPartner):
		if p := m.selectedPartner(); p != nil {
			m.viewing = p
			m.ui.SetMode(state.PartnerViewMode)
		}
	}
	return m, nil
}
