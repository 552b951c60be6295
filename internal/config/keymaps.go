package config

// KeyMappings defines all configurable key bindings
type KeyMappings struct {
	// Views
	ViewDashboard string `yaml:"view_dashboard" mapstructure:"view_dashboard"`
	ViewPartners  string `yaml:"view_partners" mapstructure:"view_partners"`
	ViewSettings  string `yaml:"view_settings" mapstructure:"view_settings"`
	ToggleLayout  string `yaml:"toggle_layout" mapstructure:"toggle_layout"` // board <-> list

	// Partners
	AddPartner    string `yaml:"add_partner" mapstructure:"add_partner"`
	EditPartner   string `yaml:"edit_partner" mapstructure:"edit_partner"`
	DeletePartner string `yaml:"delete_partner" mapstructure:"delete_partner"`
	ViewPartner   string `yaml:"view_partner" mapstructure:"view_partner"`

	// Board drag and drop
	GrabCard   string `yaml:"grab_card" mapstructure:"grab_card"`
	DropCard   string `yaml:"drop_card" mapstructure:"drop_card"`
	CancelDrag string `yaml:"cancel_drag" mapstructure:"cancel_drag"`

	// List sorting
	SortByName    string `yaml:"sort_by_name" mapstructure:"sort_by_name"`
	SortByEmail   string `yaml:"sort_by_email" mapstructure:"sort_by_email"`
	SortByStage   string `yaml:"sort_by_stage" mapstructure:"sort_by_stage"`
	SortByCreated string `yaml:"sort_by_created" mapstructure:"sort_by_created"`

	// Settings
	AddStage    string `yaml:"add_stage" mapstructure:"add_stage"`
	RemoveStage string `yaml:"remove_stage" mapstructure:"remove_stage"`

	// Forms
	SaveForm string `yaml:"save_form" mapstructure:"save_form"`

	// Navigation
	PrevColumn  string `yaml:"prev_column" mapstructure:"prev_column"`
	NextColumn  string `yaml:"next_column" mapstructure:"next_column"`
	PrevPartner string `yaml:"prev_partner" mapstructure:"prev_partner"`
	NextPartner string `yaml:"next_partner" mapstructure:"next_partner"`

	// Other
	Refresh  string `yaml:"refresh" mapstructure:"refresh"`
	SignOut  string `yaml:"sign_out" mapstructure:"sign_out"`
	ShowHelp string `yaml:"show_help" mapstructure:"show_help"`
	Quit     string `yaml:"quit" mapstructure:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		// Views
		ViewDashboard: "1",
		ViewPartners:  "2",
		ViewSettings:  "3",
		ToggleLayout:  "tab",

		// Partners
		AddPartner:    "a",
		EditPartner:   "e",
		DeletePartner: "d",
		ViewPartner:   "enter",

		// Board
		GrabCard:   "space",
		DropCard:   "space",
		CancelDrag: "esc",

		// Sorting
		SortByName:    "n",
		SortByEmail:   "m",
		SortByStage:   "s",
		SortByCreated: "c",

		// Settings
		AddStage:    "a",
		RemoveStage: "x",

		SaveForm: "ctrl+s",

		// Navigation
		PrevColumn:  "h",
		NextColumn:  "l",
		PrevPartner: "k",
		NextPartner: "j",

		// Other
		Refresh:  "r",
		SignOut:  "O",
		ShowHelp: "?",
		Quit:     "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()

	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&k.ViewDashboard, defaults.ViewDashboard)
	fill(&k.ViewPartners, defaults.ViewPartners)
	fill(&k.ViewSettings, defaults.ViewSettings)
	fill(&k.ToggleLayout, defaults.ToggleLayout)
	fill(&k.AddPartner, defaults.AddPartner)
	fill(&k.EditPartner, defaults.EditPartner)
	fill(&k.DeletePartner, defaults.DeletePartner)
	fill(&k.ViewPartner, defaults.ViewPartner)
	fill(&k.GrabCard, defaults.GrabCard)
	fill(&k.DropCard, defaults.DropCard)
	fill(&k.CancelDrag, defaults.CancelDrag)
	fill(&k.SortByName, defaults.SortByName)
	fill(&k.SortByEmail, defaults.SortByEmail)
	fill(&k.SortByStage, defaults.SortByStage)
	fill(&k.SortByCreated, defaults.SortByCreated)
	fill(&k.AddStage, defaults.AddStage)
	fill(&k.RemoveStage, defaults.RemoveStage)
	fill(&k.SaveForm, defaults.SaveForm)
	fill(&k.PrevColumn, defaults.PrevColumn)
	fill(&k.NextColumn, defaults.NextColumn)
	fill(&k.PrevPartner, defaults.PrevPartner)
	fill(&k.NextPartner, defaults.NextPartner)
	fill(&k.Refresh, defaults.Refresh)
	fill(&k.SignOut, defaults.SignOut)
	fill(&k.ShowHelp, defaults.ShowHelp)
	fill(&k.Quit, defaults.Quit)
}
