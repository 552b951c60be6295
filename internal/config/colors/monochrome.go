package colors

// Monochrome is a black and white scheme. Stages are told apart by
// brightness only.
func Monochrome() *ColorScheme {
	const (
		white = "#FFFFFF"
		light = "#D0D0D0"
		mid   = "#585858"
		dim   = "#3A3A3A"
		dark  = "#1C1C1C"
	)
	return &ColorScheme{
		Preset: "monochrome",
		Accent: white,

		Background:       "#121212",
		ColumnBackground: dark,

		Create: white,
		Edit:   white,
		Delete: white,

		ColumnBorder:   white,
		CardBorder:     mid,
		CardBackground: dark,
		SelectedBorder: white,
		SelectedBg:     dim,
		DragBorder:     light,

		Title:  white,
		Subtle: mid,
		Normal: light,

		InfoFg:    white,
		InfoBg:    dark,
		WarningFg: white,
		WarningBg: dim,
		ErrorFg:   white,
		ErrorBg:   mid,

		StatusBarBg:   dim,
		StatusBarText: white,

		StageAccents: []string{white, light, "#A8A8A8", "#808080"},
		Unassigned:   white,
	}
}
