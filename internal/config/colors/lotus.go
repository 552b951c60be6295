package colors

// Lotus is the light Kanagawa variant.
func Lotus() *ColorScheme {
	k := palette
	return &ColorScheme{
		Preset: "lotus",
		Accent: k.lotusViolet4,

		Background:       k.lotusWhite3,
		ColumnBackground: k.lotusWhite4,

		Create: k.lotusGreen,
		Edit:   k.lotusBlue4,
		Delete: k.lotusRed,

		ColumnBorder:   k.lotusGray3,
		CardBorder:     k.lotusGray3,
		CardBackground: k.lotusWhite2,
		SelectedBorder: k.lotusTeal1,
		SelectedBg:     k.lotusWhite4,
		DragBorder:     k.lotusYellow3,

		Title:  k.lotusBlue4,
		Subtle: k.lotusGray3,
		Normal: k.lotusInk1,

		InfoFg:    k.lotusTeal1,
		InfoBg:    k.lotusWhite2,
		WarningFg: k.lotusYellow3,
		WarningBg: k.lotusWhite2,
		ErrorFg:   k.lotusRed,
		ErrorBg:   k.lotusWhite2,

		StatusBarBg:   k.lotusViolet4,
		StatusBarText: k.lotusWhite3,

		StageAccents: []string{k.lotusViolet4, k.lotusBlue4, k.lotusYellow3, k.lotusGreen},
		Unassigned:   k.lotusRed,
	}
}
