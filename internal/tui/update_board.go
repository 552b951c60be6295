package tui

import (
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/partners/internal/board"
	"github.com/thenoetrevino/partners/internal/tui/state"
)

// updateBoard handles keys on the board in normal mode.
func (m *Model) updateBoard(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.PrevColumn):
		m.moveColumn(-1, false)
	case key.Matches(msg, m.keys.NextColumn):
		m.moveColumn(1, false)
	case key.Matches(msg, m.keys.PrevPartner):
		m.moveCard(-1, false)
	case key.Matches(msg, m.keys.NextPartner):
		m.moveCard(1, false)
	case key.Matches(msg, m.keys.GrabCard):
		return m, m.startDrag()
	default:
		return m.handlePartnerKey(msg)
	}
	return m, nil
}

// moveColumn shifts the focused column. While dragging the cursor may sit
// one past the last card so a drop can append.
func (m *Model) moveColumn(delta int, dragging bool) {
	layout := m.board.Layout()
	if len(layout.Stages) == 0 {
		return
	}
	col := min(max(m.ui.SelectedColumn()+delta, 0), len(layout.Stages)-1)
	m.ui.SetSelectedColumn(col)
	m.ui.EnsureColumnVisible(len(layout.Stages))

	stage := layout.Stages[col]
	last := len(layout.Column(stage)) - 1
	if dragging {
		last++
	}
	m.ui.SetSelectedCard(min(max(m.ui.SelectedCard(), 0), max(last, 0)))
	m.ui.EnsureCardVisible(stage, m.ui.SelectedCard())
}

func (m *Model) moveCard(delta int, dragging bool) {
	stage := m.selectedStage()
	last := len(m.board.Layout().Column(stage)) - 1
	if dragging {
		last++
	}
	if last < 0 {
		return
	}
	m.ui.SetSelectedCard(min(max(m.ui.SelectedCard()+delta, 0), last))
	m.ui.EnsureCardVisible(stage, m.ui.SelectedCard())
}

func (m *Model) startDrag() tea.Cmd {
	source := board.Location{Stage: m.selectedStage(), Index: m.ui.SelectedCard()}
	if err := m.board.DragStart(source); err != nil {
		// empty column or stale cursor
		return nil
	}
	m.ui.SetMode(state.DragMode)
	return nil
}

// updateDrag handles keys while a card is picked up.
func (m *Model) updateDrag(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		m.board.Cancel()
		return m, tea.Quit
	case key.Matches(msg, m.keys.PrevColumn):
		m.moveColumn(-1, true)
	case key.Matches(msg, m.keys.NextColumn):
		m.moveColumn(1, true)
	case key.Matches(msg, m.keys.PrevPartner):
		m.moveCard(-1, true)
	case key.Matches(msg, m.keys.NextPartner):
		m.moveCard(1, true)
	case key.Matches(msg, m.keys.DropCard):
		return m, m.drop()
	case key.Matches(msg, m.keys.CancelDrag):
		return m, m.cancelDrag()
	}
	return m, nil
}

func (m *Model) drop() tea.Cmd {
	source, ok := m.board.Source()
	if !ok {
		m.ui.SetMode(state.NormalMode)
		return nil
	}
	dest := board.Location{Stage: m.selectedStage(), Index: m.ui.SelectedCard()}

	commit, err := m.board.Drop(source, &dest)
	m.ui.SetMode(state.NormalMode)
	if err != nil {
		m.clampSelection()
		return m.notify(state.LevelWarning, "Move cancelled: "+err.Error())
	}

	m.selectPartner(commit.PartnerID)
	if !commit.NeedsPersist() {
		return nil
	}
	return tea.Batch(
		persistMove(m.ctx, m.board, commit),
		m.notify(state.LevelInfo, fmt.Sprintf("Moved to %s", commit.To.Stage)),
	)
}

func (m *Model) cancelDrag() tea.Cmd {
	source, _ := m.board.Source()
	p, found := m.board.Layout().At(source)
	m.board.Cancel()
	m.ui.SetMode(state.NormalMode)

	if found {
		m.selectPartner(p.ID)
	} else {
		m.clampSelection()
	}
	return nil
}

// dragLabel describes the drag for the status bar.
func (m *Model) dragLabel() string {
	source, ok := m.board.Source()
	if !ok {
		return ""
	}
	p, found := m.board.Layout().At(source)
	if !found {
		return ""
	}
	label := fmt.Sprintf("Moving %s: %s → %s", p.Name, source.Stage, m.selectedStage())
	if m.board.HasPendingRebuild() {
		label += " (new data waiting)"
	}
	return label
}
