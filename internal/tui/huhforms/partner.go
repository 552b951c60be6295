// Package huhforms builds the huh forms shown as overlays in the TUI.
package huhforms

import (
	"charm.land/huh/v2"

	partnerservice "github.com/thenoetrevino/partners/internal/services/partner"
)

// PartnerFormValues is bound to the fields of a partner form.
type PartnerFormValues struct {
	Name    string
	Email   string
	Stage   string
	Confirm bool
}

// CreatePartnerForm creates a huh form for adding or editing a partner.
// Fields validate inline with the same rules the partner service applies.
func CreatePartnerForm(v *PartnerFormValues, stages []string, editing bool, saveKey string) *huh.Form {
	options := make([]huh.Option[string], 0, len(stages))
	for _, s := range stages {
		options = append(options, huh.NewOption(s, s))
	}

	confirmTitle := "Create this partner?"
	if editing {
		confirmTitle = "Save changes?"
	}

	fields := []huh.Field{
		huh.NewInput().
			Key("name").
			Title("Name").
			Placeholder("Acme Corp").
			CharLimit(partnerservice.MaxNameLength).
			Validate(partnerservice.ValidateName).
			Value(&v.Name),

		huh.NewInput().
			Key("email").
			Title("Email").
			Placeholder("contact@acme.dev").
			Validate(partnerservice.ValidateEmail).
			Value(&v.Email),

		huh.NewSelect[string]().
			Key("stage").
			Title("Stage").
			Options(options...).
			Value(&v.Stage),

		huh.NewConfirm().
			Key("confirm").
			Title(confirmTitle).
			Affirmative("Yes").
			Negative("No").
			Value(&v.Confirm),
	}

	return huh.NewForm(huh.NewGroup(fields...)).
		WithKeyMap(CreateKeyMap(saveKey)).
		WithShowHelp(true)
}
