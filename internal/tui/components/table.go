package components

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/thenoetrevino/partners/internal/models"
	"github.com/thenoetrevino/partners/internal/pipeline"
)

// TableProps describes the sortable partner list.
type TableProps struct {
	Partners []*models.Partner
	Sort     pipeline.SortState
	Cursor   int
	Offset   int
	Width    int
	Height   int
}

var tableColumns = []struct {
	key   pipeline.SortKey
	label string
	share int // parts of the width
}{
	{pipeline.SortByName, "Name", 3},
	{pipeline.SortByEmail, "Email", 4},
	{pipeline.SortByStage, "Stage", 2},
	{pipeline.SortByCreatedAt, "Created", 2},
}

func cell(s string, width int) string {
	return lipgloss.NewStyle().Width(width).MaxWidth(width).Render(ansi.Truncate(s, width-1, "…"))
}

// RenderTable renders the list view: a header row with the sort arrow and
// one row per partner.
func RenderTable(props TableProps) string {
	total := 0
	for _, c := range tableColumns {
		total += c.share
	}
	widths := make([]int, len(tableColumns))
	for i, c := range tableColumns {
		widths[i] = max(props.Width*c.share/total, 8)
	}

	headers := make([]string, len(tableColumns))
	for i, c := range tableColumns {
		label := c.label
		if props.Sort.Key == c.key {
			label += " " + props.Sort.Dir.Arrow()
		}
		headers[i] = cell(label, widths[i])
	}
	out := TableHeaderStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, headers...)) + "\n"

	if len(props.Partners) == 0 {
		return out + SubtleStyle.Render("No partners yet. Press a to add one.")
	}

	visible := max(props.Height-2, 1)
	end := min(props.Offset+visible, len(props.Partners))
	for i := props.Offset; i < end; i++ {
		p := props.Partners[i]
		created := ""
		if !p.CreatedAt.IsZero() {
			created = p.CreatedAt.Local().Format("2006-01-02")
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			cell(p.Name, widths[0]),
			cell(p.Email, widths[1]),
			cell(p.Stage, widths[2]),
			cell(created, widths[3]),
		)
		if i == props.Cursor {
			row = SelectedRowStyle.Render(row)
		}
		out += row + "\n"
	}
	if end < len(props.Partners) {
		out += IndicatorStyle.Render(fmt.Sprintf("▼ %d more", len(props.Partners)-end))
	}
	return out
}
