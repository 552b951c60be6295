package notifications

import (
	"strings"
	"testing"

	"github.com/thenoetrevino/partners/internal/config/colors"
	"github.com/thenoetrevino/partners/internal/tui/state"
	"github.com/thenoetrevino/partners/internal/tui/theme"
)

func init() {
	theme.Init(*colors.Default())
}

func TestRenderFromState(t *testing.T) {
	tests := []struct {
		name string
		n    state.Notification
		want []string
	}{
		{"info", state.Notification{Level: state.LevelInfo, Message: "Moved to Testing", Repeats: 1}, []string{"Info", "Moved to Testing"}},
		{"error", state.Notification{Level: state.LevelError, Message: "save failed", Repeats: 1}, []string{"✕ Error", "save failed"}},
		{"repeated", state.Notification{Level: state.LevelWarning, Message: "offline", Repeats: 3}, []string{"Warning", "offline (x3)"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderFromState(tt.n)
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("RenderFromState() = %q, want to contain %q", out, w)
				}
			}
		})
	}
}

func TestRenderInline(t *testing.T) {
	out := RenderInline(Warning, "2 partners have an unknown stage")
	if !strings.Contains(out, "⚠ 2 partners have an unknown stage") {
		t.Errorf("RenderInline() = %q", out)
	}
	if strings.Contains(out, "\n") {
		t.Error("inline notes must stay on one line")
	}
}
