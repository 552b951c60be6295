package colors

// Default is the purple scheme partners ships with.
func Default() *ColorScheme {
	return &ColorScheme{
		Preset: "default",
		Accent: "#874BFD",

		Background:       "#1C1C1C",
		ColumnBackground: "#262626",

		Create: "#5FD75F",
		Edit:   "#5F87D7",
		Delete: "#FF0000",

		ColumnBorder:   "#5F87D7",
		CardBorder:     "#585858",
		CardBackground: "#262626",
		SelectedBorder: "#D75FD7",
		SelectedBg:     "#3A3A3A",
		DragBorder:     "#FFD700",

		Title:  "#D75FD7",
		Subtle: "#585858",
		Normal: "#D0D0D0",

		InfoFg:    "#00AFFF",
		InfoBg:    "#00005F",
		WarningFg: "#FFD700",
		WarningBg: "#875F00",
		ErrorFg:   "#FF0000",
		ErrorBg:   "#5F0000",

		StatusBarBg:   "#874BFD",
		StatusBarText: "#D0D0D0",

		// Design, Development, Testing, Launch
		StageAccents: []string{"#D75FD7", "#5F87D7", "#FFAF00", "#5FD75F"},
		Unassigned:   "#FF875F",
	}
}
