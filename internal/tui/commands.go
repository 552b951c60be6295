package tui

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/partners/internal/app"
	"github.com/thenoetrevino/partners/internal/board"
	partnerservice "github.com/thenoetrevino/partners/internal/services/partner"
	"github.com/thenoetrevino/partners/internal/types"
)

const requestTimeout = 15 * time.Second

func startApp(ctx context.Context, a *app.App) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		partners, err := a.Start(ctx)
		return appStartedMsg{partners: partners, err: err}
	}
}

func fetchPartners(ctx context.Context, a *app.App) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		partners, err := a.PartnerService.ListPartners(ctx)
		return partnersLoadedMsg{partners: partners, err: err}
	}
}

// listenForInvalidations waits for the next cache invalidation. It returns
// nil once the subscription is closed.
func listenForInvalidations(ch <-chan string) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		prefix, ok := <-ch
		if !ok {
			return nil
		}
		return cacheInvalidatedMsg{prefix: prefix}
	}
}

func persistMove(ctx context.Context, r *board.Reconciler, c *board.Commit) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		return moveSavedMsg{commit: c, err: r.Persist(ctx, c)}
	}
}

func createPartner(ctx context.Context, a *app.App, req partnerservice.CreatePartnerRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		p, err := a.PartnerService.CreatePartner(ctx, req)
		return partnerSavedMsg{partner: p, created: true, err: err}
	}
}

func updatePartner(ctx context.Context, a *app.App, id types.PartnerID, req partnerservice.UpdatePartnerRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		p, err := a.PartnerService.UpdatePartner(ctx, id, req)
		return partnerSavedMsg{partner: p, err: err}
	}
}

func deletePartner(ctx context.Context, a *app.App, id types.PartnerID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		return partnerDeletedMsg{id: id, err: a.PartnerService.DeletePartner(ctx, id)}
	}
}

func signIn(ctx context.Context, a *app.App, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		s, err := a.Gate.SignIn(ctx, email, password)
		return signedInMsg{session: s, err: err}
	}
}

func signOut(ctx context.Context, a *app.App) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		return signedOutMsg{err: a.Gate.SignOut(ctx)}
	}
}

func dismissAfter(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return dismissNotificationMsg{id: id}
	})
}
