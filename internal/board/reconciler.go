package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/thenoetrevino/partners/internal/models"
	"github.com/thenoetrevino/partners/internal/types"
)

var (
	ErrAlreadyDragging = errors.New("a drag is already in progress")
	ErrNotDragging     = errors.New("no drag in progress")
	ErrInvalidSource   = errors.New("no card at drag source")
	ErrUnknownColumn   = errors.New("unknown board column")
	ErrPartnerGone     = errors.New("dragged partner no longer exists")
)

// StageUpdater persists a stage change. The partner service implements it.
type StageUpdater interface {
	UpdateStage(ctx context.Context, id types.PartnerID, stage string) (*models.Partner, error)
}

// State of the drag machine
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// CommitKind says what a drop did.
type CommitKind int

const (
	Cancelled CommitKind = iota
	NoOp
	Reordered
	Moved
)

// Commit describes a finished drop. Only Moved commits need persisting.
type Commit struct {
	Kind      CommitKind
	PartnerID types.PartnerID
	From      Location
	To        Location

	snapshot   Layout
	generation uint64
	seq        uint64
}

// NeedsPersist reports whether the drop changed a partner's stage.
func (c *Commit) NeedsPersist() bool {
	return c != nil && c.Kind == Moved
}

// Reconciler owns the board layout and the drag state. It is driven from a
// single goroutine; Persist may run on another.
type Reconciler struct {
	updater StageUpdater

	layout     Layout
	generation uint64
	// layout-changing drops since creation
	drops uint64

	state   State
	source  Location
	dragged types.PartnerID

	// latest collection received while dragging
	pending *rebuild
}

type rebuild struct {
	partners []*models.Partner
	stages   []string
}

// NewReconciler creates an idle reconciler with an empty layout.
func NewReconciler(updater StageUpdater) *Reconciler {
	return &Reconciler{
		updater: updater,
		layout:  Layout{Columns: map[string][]*models.Partner{}},
	}
}

// State returns the drag state.
func (r *Reconciler) State() State {
	return r.state
}

// Layout returns a copy of the current layout.
func (r *Reconciler) Layout() Layout {
	return r.layout.Clone()
}

// Source returns where the current drag started.
func (r *Reconciler) Source() (Location, bool) {
	return r.source, r.state == Dragging
}

// HasPendingRebuild reports whether a rebuild is waiting for the drag to end.
func (r *Reconciler) HasPendingRebuild() bool {
	return r.pending != nil
}

// Rebuild replaces the layout from the partner collection. While a drag is
// in progress the rebuild is held back and the latest one is applied when
// the drag ends.
func (r *Reconciler) Rebuild(partners []*models.Partner, stages []string) {
	if r.state == Dragging {
		r.pending = &rebuild{partners: partners, stages: stages}
		return
	}
	r.apply(partners, stages)
}

func (r *Reconciler) apply(partners []*models.Partner, stages []string) {
	r.layout = BuildLayout(partners, stages)
	r.generation++
}

// DragStart picks up the card at source.
func (r *Reconciler) DragStart(source Location) error {
	if r.state == Dragging {
		return ErrAlreadyDragging
	}
	p, ok := r.layout.At(source)
	if !ok {
		return fmt.Errorf("%w: %s[%d]", ErrInvalidSource, source.Stage, source.Index)
	}
	r.state = Dragging
	r.source = source
	r.dragged = p.ID
	return nil
}

// Drop ends the drag and applies it to the layout. A nil destination
// cancels. Nothing is persisted here; see Persist and DragEnd.
func (r *Reconciler) Drop(source Location, dest *Location) (*Commit, error) {
	if r.state != Dragging {
		return nil, ErrNotDragging
	}
	if source != r.source {
		return nil, fmt.Errorf("%w: drop source %s[%d] does not match drag", ErrInvalidSource, source.Stage, source.Index)
	}

	id := r.dragged
	r.state = Idle
	r.source = Location{}
	r.dragged = 0

	if r.pending != nil {
		pending := r.pending
		r.pending = nil
		r.apply(pending.partners, pending.stages)

		loc, ok := r.layout.Locate(id)
		if !ok {
			return nil, ErrPartnerGone
		}
		source = loc
	}

	if dest == nil {
		return &Commit{Kind: Cancelled, PartnerID: id, From: source, To: source}, nil
	}
	if !r.layout.HasStage(dest.Stage) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, dest.Stage)
	}

	snapshot := r.layout.Clone()

	if dest.Stage == source.Stage {
		col := r.layout.Columns[source.Stage]
		to := Location{Stage: dest.Stage, Index: clamp(dest.Index, 0, len(col)-1)}
		if to.Index == source.Index {
			return &Commit{Kind: NoOp, PartnerID: id, From: source, To: to}, nil
		}
		card := col[source.Index]
		col = slices.Delete(col, source.Index, source.Index+1)
		r.layout.Columns[source.Stage] = slices.Insert(col, to.Index, card)
		r.drops++
		return &Commit{Kind: Reordered, PartnerID: id, From: source, To: to}, nil
	}

	from := r.layout.Columns[source.Stage]
	card := from[source.Index].Clone()
	card.Stage = dest.Stage
	r.layout.Columns[source.Stage] = slices.Delete(from, source.Index, source.Index+1)

	target := r.layout.Columns[dest.Stage]
	to := Location{Stage: dest.Stage, Index: clamp(dest.Index, 0, len(target))}
	r.layout.Columns[dest.Stage] = slices.Insert(target, to.Index, card)
	r.drops++

	return &Commit{
		Kind:       Moved,
		PartnerID:  id,
		From:       source,
		To:         to,
		snapshot:   snapshot,
		generation: r.generation,
		seq:        r.drops,
	}, nil
}

// Persist writes a Moved commit through the updater: exactly one stage
// update per cross-column drop. It does not touch the reconciler state.
func (r *Reconciler) Persist(ctx context.Context, c *Commit) error {
	if !c.NeedsPersist() {
		return nil
	}
	_, err := r.updater.UpdateStage(ctx, c.PartnerID, c.To.Stage)
	return err
}

// Revert undoes a Moved commit after its persist failed. Nothing is undone
// when a rebuild happened since the drop, since the layout already reflects
// the store. When later drops changed the layout only the dragged card goes
// back, so their moves survive. Reports whether it restored anything.
func (r *Reconciler) Revert(c *Commit) bool {
	if !c.NeedsPersist() {
		return false
	}
	if r.state == Dragging {
		// the rebuild on drag end will bring back the stored stage
		return false
	}
	if c.generation != r.generation {
		return false
	}
	if c.seq == r.drops {
		r.layout = c.snapshot.Clone()
	} else if !r.moveBack(c) {
		return false
	}
	slog.Info("reverted board move", "partner_id", c.PartnerID, "from", c.From.Stage, "to", c.To.Stage)
	return true
}

// moveBack returns the card of c to its source column, leaving the rest of
// the layout alone.
func (r *Reconciler) moveBack(c *Commit) bool {
	loc, ok := r.layout.Locate(c.PartnerID)
	if !ok || loc.Stage != c.To.Stage || !r.layout.HasStage(c.From.Stage) {
		return false
	}
	col := r.layout.Columns[loc.Stage]
	card := col[loc.Index].Clone()
	card.Stage = c.From.Stage
	r.layout.Columns[loc.Stage] = slices.Delete(col, loc.Index, loc.Index+1)

	from := r.layout.Columns[c.From.Stage]
	at := clamp(c.From.Index, 0, len(from))
	r.layout.Columns[c.From.Stage] = slices.Insert(from, at, card)
	return true
}

// DragEnd drops the card and persists synchronously, reverting the layout
// when the update fails.
func (r *Reconciler) DragEnd(ctx context.Context, source Location, dest *Location) (*Commit, error) {
	c, err := r.Drop(source, dest)
	if err != nil {
		return nil, err
	}
	if err := r.Persist(ctx, c); err != nil {
		r.Revert(c)
		return c, err
	}
	return c, nil
}

// Cancel abandons the current drag, if any, and applies a held-back rebuild.
func (r *Reconciler) Cancel() {
	if r.state != Dragging {
		return
	}
	_, _ = r.Drop(r.source, nil)
}
