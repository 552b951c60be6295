// Package board keeps the column layout of the partner board and runs the
// drag-and-drop state machine on top of it.
package board

import (
	"slices"

	"github.com/thenoetrevino/partners/internal/models"
	"github.com/thenoetrevino/partners/internal/pipeline"
	"github.com/thenoetrevino/partners/internal/types"
)

// Location addresses a card: the column (stage name) and the index in it.
type Location struct {
	Stage string
	Index int
}

// Layout is the ordered set of columns shown on the board.
type Layout struct {
	Stages  []string
	Columns map[string][]*models.Partner
}

// BuildLayout groups partners into one column per stage.
// Partners whose stage is not listed get no column.
func BuildLayout(partners []*models.Partner, stages []string) Layout {
	return Layout{
		Stages:  slices.Clone(stages),
		Columns: pipeline.GroupByStage(partners, stages),
	}
}

// Clone copies the layout deeply enough that moving cards in the copy does
// not affect the original. Partners themselves are shared.
func (l Layout) Clone() Layout {
	cols := make(map[string][]*models.Partner, len(l.Columns))
	for stage, ps := range l.Columns {
		cols[stage] = slices.Clone(ps)
	}
	return Layout{Stages: slices.Clone(l.Stages), Columns: cols}
}

// Column returns the cards of stage, nil for an unknown stage.
func (l Layout) Column(stage string) []*models.Partner {
	return l.Columns[stage]
}

// HasStage reports whether the layout has a column for stage.
func (l Layout) HasStage(stage string) bool {
	_, ok := l.Columns[stage]
	return ok
}

// At returns the card at loc.
func (l Layout) At(loc Location) (*models.Partner, bool) {
	col, ok := l.Columns[loc.Stage]
	if !ok || loc.Index < 0 || loc.Index >= len(col) {
		return nil, false
	}
	return col[loc.Index], true
}

// Locate finds the card for id.
func (l Layout) Locate(id types.PartnerID) (Location, bool) {
	for _, stage := range l.Stages {
		for i, p := range l.Columns[stage] {
			if p.ID == id {
				return Location{Stage: stage, Index: i}, true
			}
		}
	}
	return Location{}, false
}

// Len is the number of cards on the board.
func (l Layout) Len() int {
	n := 0
	for _, ps := range l.Columns {
		n += len(ps)
	}
	return n
}

// StageIndex returns the column position of stage, or -1.
func (l Layout) StageIndex(stage string) int {
	return slices.Index(l.Stages, stage)
}

func clamp(i, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(i, hi))
}
