package state

import (
	"time"

	"charm.land/lipgloss/v2"
)

// NotificationLevel is the severity of a notification.
type NotificationLevel int

const (
	LevelInfo NotificationLevel = iota
	LevelWarning
	LevelError
)

// TTL is how long a notification of this level stays on screen.
func (l NotificationLevel) TTL() time.Duration {
	if l == LevelError {
		return 8 * time.Second
	}
	return 4 * time.Second
}

// MaxNotifications caps the stack; the oldest goes first.
const MaxNotifications = 3

// Notification is one toast. Repeats counts identical messages folded into it.
type Notification struct {
	ID      int
	Level   NotificationLevel
	Message string
	Repeats int
}

// NotificationState is the toast stack in the top right corner.
type NotificationState struct {
	items         []Notification
	nextID        int
	width, height int
}

func NewNotificationState() *NotificationState {
	return &NotificationState{}
}

// Add shows message and returns the ID to dismiss it with. A message equal
// to one already shown replaces it with a new ID and a bumped Repeats, so
// only the latest dismissal timer applies.
func (s *NotificationState) Add(level NotificationLevel, message string) int {
	s.nextID++
	n := Notification{ID: s.nextID, Level: level, Message: message, Repeats: 1}

	for i, old := range s.items {
		if old.Level == level && old.Message == message {
			n.Repeats = old.Repeats + 1
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}

	s.items = append(s.items, n)
	if over := len(s.items) - MaxNotifications; over > 0 {
		s.items = s.items[over:]
	}
	return n.ID
}

// Dismiss removes the notification with id if it is still shown.
func (s *NotificationState) Dismiss(id int) {
	for i, n := range s.items {
		if n.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

func (s *NotificationState) Clear() {
	s.items = nil
}

func (s *NotificationState) All() []Notification {
	return s.items
}

func (s *NotificationState) HasAny() bool {
	return len(s.items) > 0
}

func (s *NotificationState) SetWindowSize(width, height int) {
	s.width, s.height = width, height
}

// GetLayers renders the stack top right, newest last. Toasts that would
// not fit the window height are left out.
func (s *NotificationState) GetLayers(render func(Notification) string) []*lipgloss.Layer {
	if s.width == 0 {
		return nil
	}

	var out []*lipgloss.Layer
	y := 0
	for _, n := range s.items {
		view := render(n)
		h := lipgloss.Height(view)
		if y+h >= s.height {
			break
		}
		x := max(s.width-lipgloss.Width(view)-1, 0)
		out = append(out, lipgloss.NewLayer(view).X(x).Y(y))
		y += h + 1
	}
	return out
}
