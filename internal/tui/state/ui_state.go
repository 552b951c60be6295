package state

import "github.com/thenoetrevino/partners/internal/tui/components"

// View is one of the top-level tabs.
type View int

const (
	DashboardView View = iota
	PartnersView
	SettingsView
)

// Views lists the tabs in display order.
func Views() []View {
	return []View{DashboardView, PartnersView, SettingsView}
}

func (v View) String() string {
	switch v {
	case PartnersView:
		return "Partners"
	case SettingsView:
		return "Settings"
	default:
		return "Dashboard"
	}
}

// Layout is how the partners view shows the collection.
type Layout int

const (
	BoardLayout Layout = iota
	ListLayout
)

// Mode represents the current interaction mode of the TUI.
// Each mode determines which keyboard shortcuts are active and what UI is displayed.
type Mode int

const (
	NormalMode        Mode = iota // Default navigation mode
	DragMode                      // Carrying a card on the board
	PartnerFormMode               // Create or edit form
	PartnerViewMode               // Read-only partner details
	DeleteConfirmMode             // Confirming partner deletion
	AddStageMode                  // Typing a new stage name
	RemoveStageMode               // Confirming stage removal
	HelpMode                      // Displaying help screen
)

// UIState manages the user interface state: the active tab, selection in
// each view, terminal dimensions and the current interaction mode.
type UIState struct {
	view   View
	layout Layout
	mode   Mode

	// board selection
	selectedColumn int
	selectedCard   int

	// list selection
	listCursor int
	listOffset int

	settingsCursor int

	width  int
	height int

	// viewportOffset is the index of the leftmost visible column
	viewportOffset int
	viewportSize   int

	// scrollOffsets is the first visible card per stage
	scrollOffsets map[string]int
}

// NewUIState creates a new UIState on the dashboard.
func NewUIState() *UIState {
	return &UIState{
		viewportSize:  1,
		scrollOffsets: make(map[string]int),
	}
}

func (s *UIState) View() View        { return s.view }
func (s *UIState) SetView(v View)    { s.view = v }
func (s *UIState) Layout() Layout    { return s.layout }
func (s *UIState) Mode() Mode        { return s.mode }
func (s *UIState) SetMode(mode Mode) { s.mode = mode }

// ToggleLayout switches the partners view between board and list.
func (s *UIState) ToggleLayout() Layout {
	if s.layout == BoardLayout {
		s.layout = ListLayout
	} else {
		s.layout = BoardLayout
	}
	return s.layout
}

func (s *UIState) SelectedColumn() int         { return s.selectedColumn }
func (s *UIState) SetSelectedColumn(index int) { s.selectedColumn = index }
func (s *UIState) SelectedCard() int           { return s.selectedCard }
func (s *UIState) SetSelectedCard(index int)   { s.selectedCard = index }
func (s *UIState) ListCursor() int             { return s.listCursor }
func (s *UIState) ListOffset() int             { return s.listOffset }
func (s *UIState) SettingsCursor() int         { return s.settingsCursor }

// SetSettingsCursor moves the stage cursor, clamped to count rows.
func (s *UIState) SetSettingsCursor(i, count int) {
	s.settingsCursor = clamp(i, 0, count-1)
}

// SetListCursor moves the list cursor, clamped to count rows, and scrolls
// so the cursor stays visible.
func (s *UIState) SetListCursor(i, count int) {
	s.listCursor = clamp(i, 0, count-1)
	visible := max(s.ContentHeight()-2, 1)
	if s.listCursor < s.listOffset {
		s.listOffset = s.listCursor
	}
	if s.listCursor >= s.listOffset+visible {
		s.listOffset = s.listCursor - visible + 1
	}
}

func (s *UIState) Width() int  { return s.width }
func (s *UIState) Height() int { return s.height }

// SetSize records the terminal size and recalculates the viewport.
func (s *UIState) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.calculateViewportSize()
}

// ContentHeight returns the available height for the main content area.
// This is terminal height minus tab bar and status bar, ensuring a minimum of 5.
func (s *UIState) ContentHeight() int {
	const tabBarHeight = 3
	const statusBarHeight = 2
	return max(s.height-tabBarHeight-statusBarHeight, 5)
}

func (s *UIState) ViewportOffset() int { return s.viewportOffset }
func (s *UIState) ViewportSize() int   { return s.viewportSize }

// calculateViewportSize works out how many columns fit: column width plus
// two for spacing, with four reserved for margins.
func (s *UIState) calculateViewportSize() {
	if s.width == 0 {
		s.viewportSize = 1
		return
	}
	const perColumn = components.ColumnWidth + 4
	s.viewportSize = max(1, (s.width-4)/perColumn)
}

// EnsureColumnVisible scrolls the board horizontally so the selected column
// is on screen.
func (s *UIState) EnsureColumnVisible(columns int) {
	if s.selectedColumn < s.viewportOffset {
		s.viewportOffset = s.selectedColumn
	}
	if s.selectedColumn >= s.viewportOffset+s.viewportSize {
		s.viewportOffset = s.selectedColumn - s.viewportSize + 1
	}
	s.viewportOffset = clamp(s.viewportOffset, 0, max(columns-s.viewportSize, 0))
}

// ScrollOffset returns the first visible card of stage.
func (s *UIState) ScrollOffset(stage string) int {
	return s.scrollOffsets[stage]
}

// EnsureCardVisible scrolls stage's column so index is on screen.
func (s *UIState) EnsureCardVisible(stage string, index int) {
	visible := components.VisibleCards(s.ContentHeight())
	off := s.scrollOffsets[stage]
	if index < off {
		off = index
	}
	if index >= off+visible {
		off = index - visible + 1
	}
	s.scrollOffsets[stage] = max(off, 0)
}

func clamp(i, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(i, lo), hi)
}
