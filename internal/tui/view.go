package tui

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/partners/internal/auth"
	"github.com/thenoetrevino/partners/internal/querycache"
	"github.com/thenoetrevino/partners/internal/tui/components"
	"github.com/thenoetrevino/partners/internal/tui/layers"
	"github.com/thenoetrevino/partners/internal/tui/notifications"
	"github.com/thenoetrevino/partners/internal/tui/state"
	"github.com/thenoetrevino/partners/internal/tui/theme"
)

// View renders the screen for the current auth route: a loading
// placeholder, the sign-in form, or the app.
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.BackgroundColor = lipgloss.Color(theme.Background)

	if m.ui.Width() == 0 {
		view.Content = "Loading..."
		return view
	}

	var content string
	switch m.app.Gate.Route() {
	case auth.RouteLoading:
		content = m.viewLoading()
	case auth.RouteLogin:
		content = m.viewLogin()
	default:
		content = m.viewApp()
	}

	notes := m.notifications.GetLayers(notifications.RenderFromState)
	view.Content = layers.Compose(content, notes...)
	return view
}

func (m *Model) viewLoading() string {
	return lipgloss.Place(m.ui.Width(), m.ui.Height(), lipgloss.Center, lipgloss.Center,
		components.SubtleStyle.Render("Checking session..."))
}

func (m *Model) viewLogin() string {
	body := components.SubtleStyle.Render("Signing in...")
	if m.loginForm != nil && !m.signingIn {
		body = m.loginForm.View()
	}
	box := components.FormBoxStyle.Width(min(60, m.ui.Width()-4)).Render(body)
	return lipgloss.Place(m.ui.Width(), m.ui.Height(), lipgloss.Center, lipgloss.Center, box)
}

// fetchPlaceholder stands in for a view's data until the partners are
// loaded, and after a fetch fails. ok is false when the data can be shown.
func (m *Model) fetchPlaceholder() (string, bool) {
	switch {
	case m.loadErr != nil:
		msg := fmt.Sprintf("Could not load partners: %v (%s to retry)", m.loadErr, m.cfg.KeyMappings.Refresh)
		return notifications.RenderInline(notifications.Error, msg), true
	case !m.loaded:
		return components.SubtleStyle.Render("Loading partners..."), true
	}
	return "", false
}

// freshness describes the age of the partner query for the status bar.
func (m *Model) freshness() string {
	res, ok := m.app.Cache().Peek(querycache.PartnersKey)
	if !ok || !res.HasValue() {
		return ""
	}
	if res.Stale {
		return "refreshing"
	}
	return "updated " + res.FetchedAt.Format(time.TimeOnly)
}

// viewApp renders tabs, the active view and the status bar, with any modal
// on top.
func (m *Model) viewApp() string {
	tabs := make([]components.Tab, 0, 3)
	for i, v := range state.Views() {
		tab := components.Tab{Key: fmt.Sprint(i + 1), Title: v.String(), Count: -1}
		if m.loaded && m.loadErr == nil {
			switch v {
			case state.PartnersView:
				tab.Count = len(m.partners)
			case state.SettingsView:
				tab.Count = len(m.stages)
			}
		}
		tabs = append(tabs, tab)
	}
	header := components.RenderTabs(tabs, int(m.ui.View()), m.ui.Width(), "")

	var body string
	switch m.ui.View() {
	case state.PartnersView:
		if m.ui.Layout() == state.ListLayout {
			body = m.viewList()
		} else {
			body = m.viewBoard()
		}
	case state.SettingsView:
		body = m.viewSettings()
	default:
		body = m.viewDashboard()
	}
	body = lipgloss.NewStyle().Height(m.ui.ContentHeight()).MaxHeight(m.ui.ContentHeight()).Render(body)

	user := ""
	if s, ok := m.app.Gate.Session(); ok {
		user = s.Email
	}
	footer := components.RenderStatusBar(components.StatusBarProps{
		Width:     m.ui.Width(),
		Left:      m.dragLabel(),
		User:      user,
		Freshness: m.freshness(),
	})

	base := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return layers.Compose(base, m.modalLayer())
}
