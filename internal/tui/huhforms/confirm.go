package huhforms

import "charm.land/huh/v2"

// CreateConfirmForm creates a yes/no form, used for deletes.
func CreateConfirmForm(title, description string, confirm *bool) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Description(description).
			Affirmative("Delete").
			Negative("Cancel").
			Value(confirm),
	)).WithKeyMap(CreateKeyMap(""))
}
