package tui

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/partners/internal/auth"
	"github.com/thenoetrevino/partners/internal/querycache"
	"github.com/thenoetrevino/partners/internal/tui/state"
)

// Update handles all messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ui.SetSize(msg.Width, msg.Height)
		m.notifications.SetWindowSize(msg.Width, msg.Height)
		m.clampSelection()
		return m, nil

	case appStartedMsg:
		if m.app.Gate.Route() != auth.RouteApp {
			return m, m.enterRoute()
		}
		return m.Update(partnersLoadedMsg(msg))

	case signedInMsg:
		m.signingIn = false
		if msg.err != nil {
			m.loginValues.Password = ""
			return m, tea.Batch(m.newLoginForm(), m.notify(state.LevelError, signInMessage(msg.err)))
		}
		m.loginForm = nil
		return m, tea.Batch(fetchPartners(m.ctx, m.app), m.notify(state.LevelInfo, "Signed in as "+msg.session.Email))

	case signedOutMsg:
		if msg.err != nil && !errors.Is(msg.err, auth.ErrNoSession) {
			logCmdError("sign out", msg.err)
		}
		m.resetOverlays()
		m.forgetPartners()
		return m, m.enterRoute()

	case partnersLoadedMsg:
		if msg.err != nil {
			logCmdError("fetch partners", msg.err)
			m.loadErr = msg.err
			return m, m.notify(state.LevelError, "Could not load partners: "+msg.err.Error())
		}
		m.applyPartners(msg.partners)
		return m, nil

	case cacheInvalidatedMsg:
		cmds := []tea.Cmd{listenForInvalidations(m.invalidations)}
		if m.app.Gate.Route() == auth.RouteApp && isPartnerPrefix(msg.prefix) {
			cmds = append(cmds, fetchPartners(m.ctx, m.app))
		}
		return m, tea.Batch(cmds...)

	case moveSavedMsg:
		if msg.err != nil {
			logCmdError("persist move", msg.err)
			m.board.Revert(msg.commit)
			m.clampSelection()
			return m, m.notify(state.LevelError, "Move failed: "+msg.err.Error())
		}
		return m, nil

	case partnerSavedMsg:
		if msg.err != nil {
			return m, m.notify(state.LevelError, "Save failed: "+msg.err.Error())
		}
		verb := "Updated"
		if msg.created {
			verb = "Created"
		}
		return m, m.notify(state.LevelInfo, fmt.Sprintf("%s %s", verb, msg.partner.Name))

	case partnerDeletedMsg:
		if msg.err != nil {
			return m, m.notify(state.LevelError, "Delete failed: "+msg.err.Error())
		}
		return m, m.notify(state.LevelInfo, "Partner deleted")

	case dismissNotificationMsg:
		m.notifications.Dismiss(msg.id)
		return m, nil
	}

	switch m.app.Gate.Route() {
	case auth.RouteLoading:
		if msg, ok := msg.(tea.KeyPressMsg); ok && msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	case auth.RouteLogin:
		return m.updateLogin(msg)
	}

	switch m.ui.Mode() {
	case state.PartnerFormMode:
		return m.updatePartnerForm(msg)
	case state.DeleteConfirmMode:
		return m.updateDeleteConfirm(msg)
	case state.AddStageMode:
		return m.updateAddStage(msg)
	}

	if msg, ok := msg.(tea.KeyPressMsg); ok {
		return m.handleKey(msg)
	}
	return m, nil
}

// isPartnerPrefix reports whether invalidating prefix touches partner keys.
func isPartnerPrefix(prefix string) bool {
	return strings.HasPrefix(querycache.PartnersKey, prefix) || strings.HasPrefix(prefix, querycache.PartnersKey)
}

// enterRoute starts whatever the current auth route needs: the login form
// or the first fetch.
func (m *Model) enterRoute() tea.Cmd {
	switch m.app.Gate.Route() {
	case auth.RouteLogin:
		return m.newLoginForm()
	case auth.RouteApp:
		return fetchPartners(m.ctx, m.app)
	}
	return nil
}

// forgetPartners drops the signed-out user's data from the model and the
// cache so the next session starts from a fresh fetch.
func (m *Model) forgetPartners() {
	m.app.Cache().Forget(querycache.PartnersKey)
	m.partners = nil
	m.loaded = false
	m.loadErr = nil
	m.board.Rebuild(nil, m.stages)
	m.clampSelection()
}

func (m *Model) resetOverlays() {
	m.form = nil
	m.formValues = nil
	m.deleteForm = nil
	m.deleteTarget = nil
	m.viewing = nil
	m.board.Cancel()
	m.ui.SetMode(state.NormalMode)
}

func signInMessage(err error) string {
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return "Invalid email or password"
	}
	return "Sign in failed: " + err.Error()
}

// handleKey dispatches a key press in normal, drag, view and help modes.
func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch m.ui.Mode() {
	case state.HelpMode, state.PartnerViewMode:
		if key.Matches(msg, m.keys.Quit) && msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.viewing = nil
		m.ui.SetMode(state.NormalMode)
		return m, nil
	case state.DragMode:
		return m.updateDrag(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.ShowHelp):
		m.ui.SetMode(state.HelpMode)
		return m, nil
	case key.Matches(msg, m.keys.ViewDashboard):
		m.ui.SetView(state.DashboardView)
		return m, nil
	case key.Matches(msg, m.keys.ViewPartners):
		m.ui.SetView(state.PartnersView)
		return m, nil
	case key.Matches(msg, m.keys.ViewSettings):
		m.ui.SetView(state.SettingsView)
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refetch()
	case key.Matches(msg, m.keys.SignOut):
		return m, signOut(m.ctx, m.app)
	}

	switch m.ui.View() {
	case state.PartnersView:
		if key.Matches(msg, m.keys.ToggleLayout) {
			m.ui.ToggleLayout()
			m.clampSelection()
			return m, nil
		}
		if m.ui.Layout() == state.ListLayout {
			return m.updateList(msg)
		}
		return m.updateBoard(msg)
	case state.SettingsView:
		return m.updateSettings(msg)
	}
	return m, nil
}
