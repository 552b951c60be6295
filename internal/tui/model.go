// Package tui is the interactive terminal front end: a dashboard, the
// partner board and list, and the stage settings, behind the auth gate.
package tui

import (
	"context"
	"log/slog"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/huh/v2"

	"github.com/thenoetrevino/partners/internal/app"
	"github.com/thenoetrevino/partners/internal/board"
	"github.com/thenoetrevino/partners/internal/config"
	"github.com/thenoetrevino/partners/internal/models"
	"github.com/thenoetrevino/partners/internal/pipeline"
	"github.com/thenoetrevino/partners/internal/querycache"
	"github.com/thenoetrevino/partners/internal/tui/huhforms"
	"github.com/thenoetrevino/partners/internal/tui/state"
	"github.com/thenoetrevino/partners/internal/types"
)

// Model represents the application state for the TUI
type Model struct {
	ctx context.Context
	app *app.App
	cfg *config.Config

	keys keyMap
	help help.Model

	ui            *state.UIState
	notifications *state.NotificationState

	board    *board.Reconciler
	partners []*models.Partner
	stages   []string
	sort     pipeline.SortState
	loaded   bool
	// last fetch failure, cleared by the next successful fetch
	loadErr error

	invalidations <-chan string
	unsubscribe   func()

	form        *huh.Form
	formValues  *huhforms.PartnerFormValues
	editingID   types.PartnerID
	loginForm   *huh.Form
	loginValues *huhforms.LoginFormValues
	signingIn   bool

	deleteForm    *huh.Form
	deleteConfirm bool
	deleteTarget  *models.Partner

	viewing *models.Partner

	stageInput textinput.Model
}

// New creates the TUI model. The model subscribes to the app's query cache
// so that any invalidation triggers a refetch; Close ends the subscription.
func New(ctx context.Context, a *app.App, cfg *config.Config) *Model {
	if cfg == nil {
		cfg = config.Default()
	}

	ti := textinput.New()
	ti.Placeholder = "Stage name"
	ti.CharLimit = 50

	invalidations, unsubscribe := a.Cache().Subscribe(16)

	m := &Model{
		ctx:           ctx,
		app:           a,
		cfg:           cfg,
		keys:          newKeyMap(cfg.KeyMappings),
		help:          help.New(),
		ui:            state.NewUIState(),
		notifications: state.NewNotificationState(),
		board:         a.NewBoard(),
		sort:          pipeline.DefaultSort(),
		invalidations: invalidations,
		unsubscribe:   unsubscribe,
		stageInput:    ti,
	}
	m.help.ShowAll = true
	return m
}

// Init starts the app (session lookup and first fetch) and listens for
// cache invalidations.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		startApp(m.ctx, m.app),
		listenForInvalidations(m.invalidations),
	)
}

// Close ends the cache subscription.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// notify shows a notification and schedules its dismissal.
func (m *Model) notify(level state.NotificationLevel, message string) tea.Cmd {
	id := m.notifications.Add(level, message)
	return dismissAfter(id, level.TTL())
}

// applyPartners stores a fetched collection, refreshes the stage list and
// rebuilds the board. A rebuild during a drag is held back by the board.
func (m *Model) applyPartners(partners []*models.Partner) {
	m.partners = partners
	m.loaded = true
	m.loadErr = nil
	m.refreshStages()
}

func (m *Model) refreshStages() {
	m.stages = m.app.StageService.ListStages()
	m.board.Rebuild(m.partners, m.stages)
	m.clampSelection()
}

// sortedPartners is the list view ordering.
func (m *Model) sortedPartners() []*models.Partner {
	return pipeline.Sort(m.partners, m.sort)
}

// selectedStage is the stage of the focused board column.
func (m *Model) selectedStage() string {
	layout := m.board.Layout()
	if len(layout.Stages) == 0 {
		return ""
	}
	return layout.Stages[min(m.ui.SelectedColumn(), len(layout.Stages)-1)]
}

// selectedPartner returns the partner under the cursor in the current
// layout.
func (m *Model) selectedPartner() *models.Partner {
	if m.ui.Layout() == state.ListLayout {
		sorted := m.sortedPartners()
		i := m.ui.ListCursor()
		if i < 0 || i >= len(sorted) {
			return nil
		}
		return sorted[i]
	}
	p, ok := m.board.Layout().At(board.Location{Stage: m.selectedStage(), Index: m.ui.SelectedCard()})
	if !ok {
		return nil
	}
	return p
}

// clampSelection keeps every cursor inside the current data.
func (m *Model) clampSelection() {
	layout := m.board.Layout()
	if n := len(layout.Stages); n == 0 {
		m.ui.SetSelectedColumn(0)
	} else {
		m.ui.SetSelectedColumn(min(m.ui.SelectedColumn(), n-1))
	}
	col := layout.Column(m.selectedStage())
	m.ui.SetSelectedCard(max(min(m.ui.SelectedCard(), len(col)-1), 0))
	m.ui.EnsureColumnVisible(len(layout.Stages))
	m.ui.SetListCursor(m.ui.ListCursor(), len(m.partners))
	m.ui.SetSettingsCursor(m.ui.SettingsCursor(), len(m.stages))
}

// selectPartner moves the board cursor onto id.
func (m *Model) selectPartner(id types.PartnerID) {
	layout := m.board.Layout()
	loc, ok := layout.Locate(id)
	if !ok {
		m.clampSelection()
		return
	}
	m.ui.SetSelectedColumn(layout.StageIndex(loc.Stage))
	m.ui.SetSelectedCard(loc.Index)
	m.ui.EnsureColumnVisible(len(layout.Stages))
	m.ui.EnsureCardVisible(loc.Stage, loc.Index)
}

func (m *Model) refetch() tea.Cmd {
	m.app.Cache().Invalidate(querycache.PartnersKey)
	return nil
}

func logCmdError(op string, err error) {
	if err != nil {
		slog.Error("tui command failed", "op", op, "error", err)
	}
}

var _ tea.Model = (*Model)(nil)
