package tui

import (
	"github.com/thenoetrevino/partners/internal/auth"
	"github.com/thenoetrevino/partners/internal/board"
	"github.com/thenoetrevino/partners/internal/models"
	"github.com/thenoetrevino/partners/internal/types"
)

// appStartedMsg ends the auth loading state. partners is set when the
// first fetch ran alongside the session lookup.
type appStartedMsg struct {
	partners []*models.Partner
	err      error
}

// partnersLoadedMsg carries a fetch of the partner collection
type partnersLoadedMsg struct {
	partners []*models.Partner
	err      error
}

// cacheInvalidatedMsg is sent when the partner query goes stale
type cacheInvalidatedMsg struct {
	prefix string
}

// moveSavedMsg reports the persist of a cross-column drop
type moveSavedMsg struct {
	commit *board.Commit
	err    error
}

type partnerSavedMsg struct {
	partner *models.Partner
	created bool
	err     error
}

type partnerDeletedMsg struct {
	id  types.PartnerID
	err error
}

type signedInMsg struct {
	session *auth.Session
	err     error
}

type signedOutMsg struct {
	err error
}

type dismissNotificationMsg struct {
	id int
}
