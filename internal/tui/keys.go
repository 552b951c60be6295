package tui

import (
	"charm.land/bubbles/v2/key"

	"github.com/thenoetrevino/partners/internal/config"
)

// keyMap holds the bindings built from the configured key mappings.
type keyMap struct {
	ViewDashboard key.Binding
	ViewPartners  key.Binding
	ViewSettings  key.Binding
	ToggleLayout  key.Binding

	AddPartner    key.Binding
	EditPartner   key.Binding
	DeletePartner key.Binding
	ViewPartner   key.Binding

	GrabCard   key.Binding
	DropCard   key.Binding
	CancelDrag key.Binding

	SortByName    key.Binding
	SortByEmail   key.Binding
	SortByStage   key.Binding
	SortByCreated key.Binding

	AddStage    key.Binding
	RemoveStage key.Binding

	PrevColumn  key.Binding
	NextColumn  key.Binding
	PrevPartner key.Binding
	NextPartner key.Binding

	Refresh  key.Binding
	SignOut  key.Binding
	ShowHelp key.Binding
	Quit     key.Binding
}

func bind(k, help string, extra ...string) key.Binding {
	return key.NewBinding(
		key.WithKeys(append([]string{k}, extra...)...),
		key.WithHelp(k, help),
	)
}

func newKeyMap(km config.KeyMappings) keyMap {
	return keyMap{
		ViewDashboard: bind(km.ViewDashboard, "dashboard"),
		ViewPartners:  bind(km.ViewPartners, "partners"),
		ViewSettings:  bind(km.ViewSettings, "settings"),
		ToggleLayout:  bind(km.ToggleLayout, "board/list"),

		AddPartner:    bind(km.AddPartner, "add partner"),
		EditPartner:   bind(km.EditPartner, "edit partner"),
		DeletePartner: bind(km.DeletePartner, "delete partner"),
		ViewPartner:   bind(km.ViewPartner, "details"),

		GrabCard:   bind(km.GrabCard, "pick up card"),
		DropCard:   bind(km.DropCard, "drop card"),
		CancelDrag: bind(km.CancelDrag, "cancel move"),

		SortByName:    bind(km.SortByName, "sort by name"),
		SortByEmail:   bind(km.SortByEmail, "sort by email"),
		SortByStage:   bind(km.SortByStage, "sort by stage"),
		SortByCreated: bind(km.SortByCreated, "sort by created"),

		AddStage:    bind(km.AddStage, "add stage"),
		RemoveStage: bind(km.RemoveStage, "remove stage"),

		PrevColumn:  bind(km.PrevColumn, "prev column", "left"),
		NextColumn:  bind(km.NextColumn, "next column", "right"),
		PrevPartner: bind(km.PrevPartner, "up", "up"),
		NextPartner: bind(km.NextPartner, "down", "down"),

		Refresh:  bind(km.Refresh, "refresh"),
		SignOut:  bind(km.SignOut, "sign out"),
		ShowHelp: bind(km.ShowHelp, "help"),
		Quit:     bind(km.Quit, "quit", "ctrl+c"),
	}
}

// ShortHelp is shown in the help overlay footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ShowHelp, k.Quit}
}

// FullHelp groups the bindings by view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ViewDashboard, k.ViewPartners, k.ViewSettings, k.ToggleLayout, k.Refresh},
		{k.PrevColumn, k.NextColumn, k.PrevPartner, k.NextPartner, k.GrabCard, k.CancelDrag},
		{k.AddPartner, k.EditPartner, k.DeletePartner, k.ViewPartner},
		{k.SortByName, k.SortByEmail, k.SortByStage, k.SortByCreated},
		{k.AddStage, k.RemoveStage, k.SignOut, k.Quit},
	}
}
