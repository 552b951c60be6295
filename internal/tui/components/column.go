package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/partners/internal/models"
	"github.com/thenoetrevino/partners/internal/tui/theme"
)

// ColumnProps describes one board column.
type ColumnProps struct {
	Stage    string
	Partners []*models.Partner
	// Selected marks the focused column
	Selected bool
	// Cursor is the selected card index, -1 for none
	Cursor int
	// Dragging is the index of the card being dragged, -1 for none
	Dragging int
	// DropTarget marks the column the dragged card would land in
	DropTarget bool
	Height     int
	Scroll     int
	// Accent colors the header, "" uses the title color
	Accent string
}

const columnOverhead = 5 // borders, padding, header, top indicator

// VisibleCards returns how many cards fit in a column of the given height.
func VisibleCards(height int) int {
	return max((height-columnOverhead)/CardHeight, 1)
}

// RenderColumn renders a complete column with its title and cards
//
// Layout:
//
//	{Stage} ({count})
//	▲ (if scrolled down)
//	{Card 1}
//	{Card 2}
//	...
//	▼ (if more cards below)
func RenderColumn(props ColumnProps) string {
	header := fmt.Sprintf("%s (%d)", props.Stage, len(props.Partners))
	title := TitleStyle
	if props.Accent != "" {
		title = title.Foreground(lipgloss.Color(props.Accent))
	}
	content := title.Render(header) + "\n"

	if len(props.Partners) == 0 {
		content += lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Subtle)).
			Italic(true).
			Padding(1, 0).
			Render("No partners")
	} else {
		maxVisible := VisibleCards(props.Height)
		start := min(max(props.Scroll, 0), len(props.Partners)-1)
		end := min(start+maxVisible, len(props.Partners))

		if start > 0 {
			content += IndicatorStyle.Render("▲ more above") + "\n"
		} else {
			content += "\n"
		}

		for i, p := range props.Partners[start:end] {
			idx := start + i
			state := CardNormal
			switch {
			case idx == props.Dragging:
				state = CardDragging
			case props.Selected && idx == props.Cursor:
				state = CardSelected
			}
			content += RenderCard(p, state) + "\n"
		}

		if end < len(props.Partners) {
			used := 2 + (end-start)*CardHeight
			if pad := props.Height - 3 - used - 2; pad > 0 {
				content += strings.Repeat("\n", pad)
			}
			content += "\n" + IndicatorStyle.Render("▼ more below")
		}
	}

	style := ColumnStyle
	switch {
	case props.DropTarget:
		style = style.BorderForeground(lipgloss.Color(theme.DragBorder))
	case props.Selected:
		style = style.BorderForeground(lipgloss.Color(theme.SelectedBorder))
	}
	if props.Height > 0 {
		// Height sets the content area, borders excluded
		style = style.Height(props.Height - 2)
	}

	return style.Render(content)
}
