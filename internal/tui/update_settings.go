package tui

import (
	"errors"
	"fmt"
	"slices"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/partners/internal/models"
	stageservice "github.com/thenoetrevino/partners/internal/services/stage"
	"github.com/thenoetrevino/partners/internal/tui/state"
)

// updateSettings handles keys in the stage registry view.
func (m *Model) updateSettings(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	n := len(m.stages)
	switch {
	case key.Matches(msg, m.keys.PrevPartner):
		m.ui.SetSettingsCursor(m.ui.SettingsCursor()-1, n)
	case key.Matches(msg, m.keys.NextPartner):
		m.ui.SetSettingsCursor(m.ui.SettingsCursor()+1, n)
	case key.Matches(msg, m.keys.AddStage):
		m.stageInput.SetValue("")
		m.ui.SetMode(state.AddStageMode)
		return m, m.stageInput.Focus()
	case key.Matches(msg, m.keys.RemoveStage):
		if n == 0 {
			return m, nil
		}
		return m, m.removeStage(m.stages[m.ui.SettingsCursor()])
	}
	return m, nil
}

// updateAddStage feeds the stage name input. enter adds, esc cancels.
func (m *Model) updateAddStage(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok {
		switch k.String() {
		case "esc":
			m.stageInput.Blur()
			m.ui.SetMode(state.NormalMode)
			return m, nil
		case "enter":
			name := m.stageInput.Value()
			m.stageInput.Blur()
			m.ui.SetMode(state.NormalMode)
			return m, m.addStage(name)
		}
	}

	var cmd tea.Cmd
	m.stageInput, cmd = m.stageInput.Update(msg)
	return m, cmd
}

func (m *Model) addStage(name string) tea.Cmd {
	stored, err := m.app.StageService.AddStage(name)
	if err != nil {
		level := state.LevelError
		if errors.Is(err, stageservice.ErrStageExists) {
			level = state.LevelWarning
		}
		return m.notify(level, stageErrorMessage(err))
	}

	m.refreshStages()
	if i := slices.Index(m.stages, stored); i >= 0 {
		m.ui.SetSettingsCursor(i, len(m.stages))
	}
	return m.notify(state.LevelInfo, fmt.Sprintf("Added stage %s (kept until reload unless a partner uses it)", stored))
}

func (m *Model) removeStage(name string) tea.Cmd {
	if err := m.app.StageService.RemoveStage(name); err != nil {
		return m.notify(state.LevelError, stageErrorMessage(err))
	}
	m.refreshStages()
	return m.notify(state.LevelInfo, fmt.Sprintf("Removed stage %s", name))
}

func stageErrorMessage(err error) string {
	var inUse *models.StageInUseError
	switch {
	case errors.As(err, &inUse):
		return fmt.Sprintf("Cannot remove %s: %d partner(s) still in this stage", inUse.Stage, inUse.Members)
	case errors.Is(err, stageservice.ErrStageNotFound):
		return "Only stages without partners that were added here can be removed"
	case errors.Is(err, stageservice.ErrStageExists):
		return "That stage already exists"
	}
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	return err.Error()
}
