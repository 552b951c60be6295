// Package theme holds the active colors for the TUI. Init must run before
// any component renders.
package theme

import "github.com/thenoetrevino/partners/internal/config/colors"

var scheme colors.ColorScheme

var (
	Highlight      string
	Background     string
	Subtle         string
	CardBorder     string
	CardBg         string
	SelectedBorder string
	SelectedBg     string
	DragBorder     string
	Unassigned     string

	InfoFg, InfoBg       string
	WarningFg, WarningBg string
	ErrorFg, ErrorBg     string
)

// Init switches the TUI to s.
func Init(s colors.ColorScheme) {
	scheme = s

	Highlight = s.Accent
	Background = s.Background
	Subtle = s.Subtle
	CardBorder = s.CardBorder
	CardBg = s.CardBackground
	SelectedBorder = s.SelectedBorder
	SelectedBg = s.SelectedBg
	DragBorder = s.DragBorder
	Unassigned = s.Unassigned
	if Unassigned == "" {
		Unassigned = s.WarningFg
	}

	InfoFg, InfoBg = s.InfoFg, s.InfoBg
	WarningFg, WarningBg = s.WarningFg, s.WarningBg
	ErrorFg, ErrorBg = s.ErrorFg, s.ErrorBg
}

// StageAccent is the color of the stage at position i in the registry.
func StageAccent(i int) string {
	return scheme.StageAccent(i)
}
