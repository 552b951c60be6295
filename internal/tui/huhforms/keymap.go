package huhforms

import (
	"charm.land/bubbles/v2/key"
	"charm.land/huh/v2"
)

// CreateKeyMap returns the default huh keymap with the configured save key
// added to submit. esc always aborts.
func CreateKeyMap(saveKey string) *huh.KeyMap {
	keymap := huh.NewDefaultKeyMap()

	if saveKey != "" {
		keymap.Input.Submit = key.NewBinding(
			key.WithKeys("enter", saveKey),
			key.WithHelp("enter/"+saveKey, "submit"),
		)
	}
	keymap.Quit = key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	)
	return keymap
}
