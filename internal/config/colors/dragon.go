package colors

// Dragon is the dark Kanagawa variant with warm earth tones.
func Dragon() *ColorScheme {
	k := palette
	return &ColorScheme{
		Preset: "dragon",
		Accent: k.dragonViolet,

		Background:       k.dragonBlack1,
		ColumnBackground: k.dragonBlack3,

		Create: k.dragonGreen2,
		Edit:   k.dragonBlue2,
		Delete: k.dragonRed,

		ColumnBorder:   k.dragonBlack6,
		CardBorder:     k.dragonBlack5,
		CardBackground: k.dragonBlack4,
		SelectedBorder: k.dragonOrange,
		SelectedBg:     k.dragonBlack5,
		DragBorder:     k.dragonYellow,

		Title:  k.dragonBlue2,
		Subtle: k.dragonAsh,
		Normal: k.dragonWhite,

		InfoFg:    k.dragonBlue2,
		InfoBg:    k.dragonBlack4,
		WarningFg: k.dragonYellow,
		WarningBg: k.dragonBlack4,
		ErrorFg:   k.dragonRed,
		ErrorBg:   k.dragonBlack4,

		StatusBarBg:   k.dragonBlack5,
		StatusBarText: k.dragonGray,

		StageAccents: []string{k.dragonViolet, k.dragonBlue2, k.dragonOrange, k.dragonGreen2},
		Unassigned:   k.dragonRed,
	}
}
