package config

import "github.com/thenoetrevino/partners/internal/config/colors"

// ColorScheme is the theme section of the config.
type ColorScheme = colors.ColorScheme

// ResolveTheme returns the scheme for preset with overrides applied on top.
// Unknown preset names fall back to the default scheme.
func ResolveTheme(preset string, overrides ColorScheme) ColorScheme {
	scheme := *colors.GetPreset(preset)
	overrides.Preset = ""
	scheme.MergeFrom(overrides)
	return scheme
}
