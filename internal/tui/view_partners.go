package tui

import (
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/partners/internal/tui/components"
	"github.com/thenoetrevino/partners/internal/tui/state"
	"github.com/thenoetrevino/partners/internal/tui/theme"
)

// viewBoard renders the visible columns of the board.
func (m *Model) viewBoard() string {
	if placeholder, ok := m.fetchPlaceholder(); ok {
		return placeholder
	}
	layout := m.board.Layout()
	if len(layout.Stages) == 0 {
		return components.SubtleStyle.Render("No stages. Add one under Settings.")
	}

	source, dragging := m.board.Source()
	height := m.ui.ContentHeight()
	start := m.ui.ViewportOffset()
	end := min(start+m.ui.ViewportSize(), len(layout.Stages))

	columns := make([]string, 0, end-start+2)
	if start > 0 {
		columns = append(columns, components.IndicatorStyle.Render("◀"))
	}
	for i := start; i < end; i++ {
		stage := layout.Stages[i]
		selected := i == m.ui.SelectedColumn()
		props := components.ColumnProps{
			Stage:    stage,
			Partners: layout.Column(stage),
			Selected: selected,
			Cursor:   -1,
			Dragging: -1,
			Height:   height,
			Scroll:   m.ui.ScrollOffset(stage),
			Accent:   theme.StageAccent(i),
		}
		if selected {
			props.Cursor = m.ui.SelectedCard()
		}
		if dragging {
			if stage == source.Stage {
				props.Dragging = source.Index
			}
			props.DropTarget = selected
		}
		columns = append(columns, components.RenderColumn(props), " ")
	}
	if end < len(layout.Stages) {
		columns = append(columns, components.IndicatorStyle.Render("▶"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

// viewList renders the sortable table.
func (m *Model) viewList() string {
	if placeholder, ok := m.fetchPlaceholder(); ok {
		return placeholder
	}
	return components.RenderTable(components.TableProps{
		Partners: m.sortedPartners(),
		Sort:     m.sort,
		Cursor:   m.ui.ListCursor(),
		Offset:   m.ui.ListOffset(),
		Width:    m.ui.Width() - 2,
		Height:   m.ui.ContentHeight(),
	})
}

func layoutName(l state.Layout) string {
	if l == state.ListLayout {
		return "list"
	}
	return "board"
}
