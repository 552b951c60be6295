package components

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

const minMarkdownWidth = 20

// renderers holds one glamour renderer per wrap width; building one parses
// a full style sheet.
var renderers = struct {
	sync.Mutex
	byWidth map[int]*glamour.TermRenderer
}{byWidth: map[int]*glamour.TermRenderer{}}

func markdownRenderer(width int) (*glamour.TermRenderer, error) {
	renderers.Lock()
	defer renderers.Unlock()

	if r, ok := renderers.byWidth[width]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(width))
	if err != nil {
		return nil, err
	}
	renderers.byWidth[width] = r
	return r, nil
}

// RenderMarkdown renders md wrapped to width. Rendering failures return md
// unchanged.
func RenderMarkdown(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	r, err := markdownRenderer(max(width, minMarkdownWidth))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}
