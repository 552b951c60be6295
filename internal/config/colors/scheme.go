package colors

// ColorScheme defines all configurable color values
type ColorScheme struct {
	// Preset name (e.g., "default", "monochrome", "wave")
	Preset string `yaml:"preset" mapstructure:"preset"`

	// Primary accent color (used for selections, titles, highlights)
	Accent string `yaml:"accent" mapstructure:"accent"`

	Background       string `yaml:"background" mapstructure:"background"`
	ColumnBackground string `yaml:"column_background" mapstructure:"column_background"`

	// Semantic colors
	Create string `yaml:"create" mapstructure:"create"` // Green - creation dialogs
	Edit   string `yaml:"edit" mapstructure:"edit"`     // Blue - edit dialogs
	Delete string `yaml:"delete" mapstructure:"delete"` // Red - delete confirmations

	// UI element colors
	ColumnBorder   string `yaml:"column_border" mapstructure:"column_border"`
	CardBorder     string `yaml:"card_border" mapstructure:"card_border"`
	CardBackground string `yaml:"card_background" mapstructure:"card_background"`
	SelectedBorder string `yaml:"selected_border" mapstructure:"selected_border"`
	SelectedBg     string `yaml:"selected_bg" mapstructure:"selected_bg"`
	DragBorder     string `yaml:"drag_border" mapstructure:"drag_border"` // card being dragged

	// Text colors
	Title  string `yaml:"title" mapstructure:"title"`
	Subtle string `yaml:"subtle" mapstructure:"subtle"` // Muted/placeholder text
	Normal string `yaml:"normal" mapstructure:"normal"`

	// Notification colors (foreground/background pairs)
	InfoFg    string `yaml:"info_fg" mapstructure:"info_fg"`
	InfoBg    string `yaml:"info_bg" mapstructure:"info_bg"`
	WarningFg string `yaml:"warning_fg" mapstructure:"warning_fg"`
	WarningBg string `yaml:"warning_bg" mapstructure:"warning_bg"`
	ErrorFg   string `yaml:"error_fg" mapstructure:"error_fg"`
	ErrorBg   string `yaml:"error_bg" mapstructure:"error_bg"`

	StatusBarBg   string `yaml:"status_bar_bg" mapstructure:"status_bar_bg"`
	StatusBarText string `yaml:"status_bar_text" mapstructure:"status_bar_text"`

	// StageAccents color stage headers and dashboard cards, by stage position.
	// Stages past the end of the list wrap around.
	StageAccents []string `yaml:"stage_accents,omitempty" mapstructure:"stage_accents"`

	// Unassigned marks partners whose stage is blank or not configured.
	Unassigned string `yaml:"unassigned" mapstructure:"unassigned"`
}

// StageAccent returns the accent for the stage at position i.
func (c ColorScheme) StageAccent(i int) string {
	if len(c.StageAccents) == 0 || i < 0 {
		return c.Accent
	}
	return c.StageAccents[i%len(c.StageAccents)]
}

// Presets lists the built-in scheme names.
func Presets() []string {
	return []string{"default", "monochrome", "wave", "dragon", "lotus"}
}

// GetPreset returns a preset color scheme by name
func GetPreset(name string) *ColorScheme {
	switch name {
	case "monochrome":
		return Monochrome()
	case "wave":
		return Wave()
	case "dragon":
		return Dragon()
	case "lotus":
		return Lotus()
	default:
		return Default()
	}
}

// ApplyDefaults fills in missing color values using the preset as base
// If preset is specified, loads that preset first, then overrides with custom values
func (c *ColorScheme) ApplyDefaults() {
	preset := GetPreset(c.Preset)

	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&c.Accent, preset.Accent)
	fill(&c.Background, preset.Background)
	fill(&c.ColumnBackground, preset.ColumnBackground)
	fill(&c.Create, preset.Create)
	fill(&c.Edit, preset.Edit)
	fill(&c.Delete, preset.Delete)
	fill(&c.ColumnBorder, preset.ColumnBorder)
	fill(&c.CardBorder, preset.CardBorder)
	fill(&c.CardBackground, preset.CardBackground)
	fill(&c.SelectedBorder, preset.SelectedBorder)
	fill(&c.SelectedBg, preset.SelectedBg)
	fill(&c.DragBorder, preset.DragBorder)
	fill(&c.Title, preset.Title)
	fill(&c.Subtle, preset.Subtle)
	fill(&c.Normal, preset.Normal)
	fill(&c.InfoFg, preset.InfoFg)
	fill(&c.InfoBg, preset.InfoBg)
	fill(&c.WarningFg, preset.WarningFg)
	fill(&c.WarningBg, preset.WarningBg)
	fill(&c.ErrorFg, preset.ErrorFg)
	fill(&c.ErrorBg, preset.ErrorBg)
	fill(&c.StatusBarBg, preset.StatusBarBg)
	fill(&c.StatusBarText, preset.StatusBarText)
	fill(&c.Unassigned, preset.Unassigned)
	if len(c.StageAccents) == 0 {
		c.StageAccents = append([]string(nil), preset.StageAccents...)
	}
}

// MergeFrom overrides c with every non-empty value of other.
func (c *ColorScheme) MergeFrom(other ColorScheme) {
	merge := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	merge(&c.Preset, other.Preset)
	merge(&c.Accent, other.Accent)
	merge(&c.Background, other.Background)
	merge(&c.ColumnBackground, other.ColumnBackground)
	merge(&c.Create, other.Create)
	merge(&c.Edit, other.Edit)
	merge(&c.Delete, other.Delete)
	merge(&c.ColumnBorder, other.ColumnBorder)
	merge(&c.CardBorder, other.CardBorder)
	merge(&c.CardBackground, other.CardBackground)
	merge(&c.SelectedBorder, other.SelectedBorder)
	merge(&c.SelectedBg, other.SelectedBg)
	merge(&c.DragBorder, other.DragBorder)
	merge(&c.Title, other.Title)
	merge(&c.Subtle, other.Subtle)
	merge(&c.Normal, other.Normal)
	merge(&c.InfoFg, other.InfoFg)
	merge(&c.InfoBg, other.InfoBg)
	merge(&c.WarningFg, other.WarningFg)
	merge(&c.WarningBg, other.WarningBg)
	merge(&c.ErrorFg, other.ErrorFg)
	merge(&c.ErrorBg, other.ErrorBg)
	merge(&c.StatusBarBg, other.StatusBarBg)
	merge(&c.StatusBarText, other.StatusBarText)
	merge(&c.Unassigned, other.Unassigned)
	if len(other.StageAccents) > 0 {
		c.StageAccents = append([]string(nil), other.StageAccents...)
	}
}
