package huhforms

import (
	"charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/partners/internal/config/colors"
)

// Purpose tints a form by what submitting it does.
type Purpose int

const (
	PurposeCreate Purpose = iota
	PurposeEdit
	PurposeDelete
	PurposeSignIn
)

func (p Purpose) color(c colors.ColorScheme) string {
	switch p {
	case PurposeCreate:
		return c.Create
	case PurposeEdit:
		return c.Edit
	case PurposeDelete:
		return c.Delete
	default:
		return c.Accent
	}
}

// CreateTheme builds a huh theme from the color scheme. The focused border
// and submit button take the purpose color; everything else follows the
// scheme's text colors.
func CreateTheme(c colors.ColorScheme, purpose Purpose) huh.Theme {
	return huh.ThemeFunc(func(isDark bool) *huh.Styles {
		t := huh.ThemeBase(isDark)

		tint := lipgloss.Color(purpose.color(c))
		accent := lipgloss.Color(c.Accent)
		subtle := lipgloss.Color(c.Subtle)
		normal := lipgloss.Color(c.Normal)
		failure := lipgloss.Color(c.ErrorFg)

		f := &t.Focused
		f.Base = f.Base.BorderForeground(tint)
		f.Title = f.Title.Foreground(lipgloss.Color(c.Title)).Bold(true)
		f.Description = f.Description.Foreground(subtle)
		f.ErrorIndicator = f.ErrorIndicator.Foreground(failure)
		f.ErrorMessage = f.ErrorMessage.Foreground(failure)
		f.SelectSelector = f.SelectSelector.Foreground(accent)
		f.SelectedOption = f.SelectedOption.Foreground(lipgloss.Color(c.SelectedBorder))
		f.UnselectedOption = f.UnselectedOption.Foreground(normal)
		f.FocusedButton = f.FocusedButton.
			Foreground(lipgloss.Color(c.Background)).
			Background(tint).
			Bold(true)
		f.BlurredButton = f.BlurredButton.Foreground(normal).Background(lipgloss.Color(c.SelectedBg))
		f.TextInput.Cursor = f.TextInput.Cursor.Foreground(accent)
		f.TextInput.Placeholder = f.TextInput.Placeholder.Foreground(subtle)
		f.TextInput.Prompt = f.TextInput.Prompt.Foreground(tint)

		t.Blurred = t.Focused
		t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())
		t.Blurred.Title = t.Blurred.Title.Foreground(subtle)

		return t
	})
}
