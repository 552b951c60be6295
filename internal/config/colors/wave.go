package colors

// Wave is the dark Kanagawa variant with blue and violet accents.
func Wave() *ColorScheme {
	k := palette
	return &ColorScheme{
		Preset: "wave",
		Accent: k.oniViolet,

		Background:       k.sumiInk1,
		ColumnBackground: k.sumiInk2,

		Create: k.springGreen,
		Edit:   k.crystalBlue,
		Delete: k.peachRed,

		ColumnBorder:   k.sumiInk6,
		CardBorder:     k.sumiInk4,
		CardBackground: k.sumiInk3,
		SelectedBorder: k.waveAqua2,
		SelectedBg:     k.waveBlue1,
		DragBorder:     k.carpYellow,

		Title:  k.crystalBlue,
		Subtle: k.fujiGray,
		Normal: k.fujiWhite,

		InfoFg:    k.dragonBlue,
		InfoBg:    k.winterBlue,
		WarningFg: k.roninYellow,
		WarningBg: k.winterYellow,
		ErrorFg:   k.samuraiRed,
		ErrorBg:   k.winterRed,

		StatusBarBg:   k.waveBlue2,
		StatusBarText: k.fujiWhite,

		StageAccents: []string{k.oniViolet, k.crystalBlue, k.surimiOrange, k.springGreen, k.waveAqua2},
		Unassigned:   k.peachRed,
	}
}
