package components

import (
	"fmt"
	"strings"
	"testing"

	"github.com/thenoetrevino/partners/internal/config"
	"github.com/thenoetrevino/partners/internal/models"
	"github.com/thenoetrevino/partners/internal/pipeline"
)

func init() {
	InitStyles(config.ResolveTheme("default", config.ColorScheme{}))
}

func partners(n int) []*models.Partner {
	out := make([]*models.Partner, n)
	for i := range out {
		out[i] = &models.Partner{Name: fmt.Sprintf("Partner %d", i), Email: fmt.Sprintf("p%d@example.com", i)}
	}
	return out
}

func TestRenderColumn_Header(t *testing.T) {
	tests := []struct {
		name     string
		stage    string
		count    int
		wantText string
	}{
		{name: "empty column", stage: "Design", count: 0, wantText: "Design (0)"},
		{name: "single partner", stage: "Testing", count: 1, wantText: "Testing (1)"},
		{name: "many partners", stage: "Completed", count: 12, wantText: "Completed (12)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RenderColumn(ColumnProps{Stage: tt.stage, Partners: partners(tt.count), Cursor: -1, Dragging: -1, Height: 40})
			if !strings.Contains(result, tt.wantText) {
				t.Errorf("RenderColumn() missing %q", tt.wantText)
			}
		})
	}
}

func TestRenderColumn_Empty(t *testing.T) {
	result := RenderColumn(ColumnProps{Stage: "Design", Cursor: -1, Dragging: -1, Height: 20})
	if !strings.Contains(result, "No partners") {
		t.Errorf("empty column should say so, got %q", result)
	}
}

func TestRenderColumn_ScrollIndicators(t *testing.T) {
	ps := partners(10)
	height := 20 // three cards

	top := RenderColumn(ColumnProps{Stage: "Design", Partners: ps, Cursor: -1, Dragging: -1, Height: height})
	if strings.Contains(top, "more above") {
		t.Error("unscrolled column should not show the above indicator")
	}
	if !strings.Contains(top, "more below") {
		t.Error("overflowing column should show the below indicator")
	}

	bottom := RenderColumn(ColumnProps{Stage: "Design", Partners: ps, Cursor: -1, Dragging: -1, Height: height, Scroll: 7})
	if !strings.Contains(bottom, "more above") {
		t.Error("scrolled column should show the above indicator")
	}
	if strings.Contains(bottom, "more below") {
		t.Error("column scrolled to the end should not show the below indicator")
	}
}

func TestVisibleCards(t *testing.T) {
	if got := VisibleCards(20); got != 3 {
		t.Errorf("VisibleCards(20) = %d, want 3", got)
	}
	if got := VisibleCards(0); got != 1 {
		t.Errorf("VisibleCards(0) = %d, want 1", got)
	}
}

func TestRenderTable_SortArrow(t *testing.T) {
	out := RenderTable(TableProps{
		Partners: partners(2),
		Sort:     pipeline.SortState{Key: pipeline.SortByEmail, Dir: pipeline.Desc},
		Width:    100,
		Height:   10,
	})
	if !strings.Contains(out, "Email ▼") {
		t.Errorf("header should mark the sorted column, got %q", out)
	}
	if strings.Contains(out, "Name ▲") {
		t.Error("only the sorted column gets an arrow")
	}
}

func TestRenderTable_Empty(t *testing.T) {
	out := RenderTable(TableProps{Sort: pipeline.DefaultSort(), Width: 80, Height: 10})
	if !strings.Contains(out, "No partners yet") {
		t.Errorf("empty table should show a hint, got %q", out)
	}
}

func TestRenderStageCards_Wraps(t *testing.T) {
	counts := []models.StageCount{{Stage: "A", Count: 1}, {Stage: "B", Count: 2}, {Stage: "C", Count: 3}}
	narrow := RenderStageCards(counts, StageCardWidth+3)
	wide := RenderStageCards(counts, 3*(StageCardWidth+3))
	if strings.Count(narrow, "\n") <= strings.Count(wide, "\n") {
		t.Error("narrow layout should stack cards in more rows")
	}
}

func TestRenderUnassigned(t *testing.T) {
	if RenderUnassigned(nil) != "" {
		t.Error("no unassigned partners should render nothing")
	}

	out := RenderUnassigned([]*models.Partner{
		{Name: "Acme", Stage: "Archived"},
		{Name: "Globex"},
	})
	if !strings.Contains(out, "Acme (Archived)") {
		t.Errorf("missing unknown stage name in %q", out)
	}
	if !strings.Contains(out, "Globex (no stage)") {
		t.Errorf("missing blank stage marker in %q", out)
	}
}

func TestRenderColumn_AccentKeepsHeader(t *testing.T) {
	out := RenderColumn(ColumnProps{Stage: "Launch", Cursor: -1, Dragging: -1, Height: 12, Accent: "#5FD75F"})
	if !strings.Contains(out, "Launch (0)") {
		t.Errorf("accented header lost its text: %q", out)
	}
}

func TestRenderTabs_Labels(t *testing.T) {
	out := RenderTabs([]Tab{
		{Key: "1", Title: "Dashboard", Count: -1},
		{Key: "2", Title: "Partners", Count: 8},
	}, 1, 80, "")

	if !strings.Contains(out, "1 Dashboard") {
		t.Errorf("missing shortcut label in %q", out)
	}
	if !strings.Contains(out, "2 Partners (8)") {
		t.Errorf("missing partner count in %q", out)
	}
	if strings.Contains(out, "Dashboard (") {
		t.Error("negative count should be hidden")
	}
}
