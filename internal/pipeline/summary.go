package pipeline

import (
	"fmt"
	"strings"

	"github.com/thenoetrevino/partners/internal/models"
)

// Intro is the dashboard header text, in markdown.
const Intro = `# Welcome to the Design Partners CMS

Track every design partner from first conversation to a shipped product.
Partners move through the pipeline stages below; drag them between columns
on the Partners board and manage the stages themselves under Settings.`

// Summary is the dashboard view of the partner collection.
type Summary struct {
	Counts     []models.StageCount
	Total      int
	Unassigned []*models.Partner
}

// Summarize counts partners per stage. Partners outside stages are kept in
// Unassigned instead of any count.
func Summarize(partners []*models.Partner, stages []string) Summary {
	counts := CountByStage(partners, stages)
	return Summary{
		Counts:     counts,
		Total:      Total(counts),
		Unassigned: Unassigned(partners, stages),
	}
}

// Markdown renders the summary as a markdown document headed by Intro.
func (s Summary) Markdown() string {
	var b strings.Builder
	b.WriteString(Intro)
	b.WriteString("\n\n| Stage | Partners |\n|---|---:|\n")
	for _, c := range s.Counts {
		fmt.Fprintf(&b, "| %s | %d |\n", c.Stage, c.Count)
	}
	fmt.Fprintf(&b, "| **Total** | **%d** |\n", s.Total)
	if note := s.UnassignedNote(); note != "" {
		b.WriteString("\n> " + note + "\n")
	}
	return b.String()
}

// UnassignedNote describes the partners left out of the counts, or "".
func (s Summary) UnassignedNote() string {
	switch n := len(s.Unassigned); n {
	case 0:
		return ""
	case 1:
		return "1 partner has an unknown stage and is not counted."
	default:
		return fmt.Sprintf("%d partners have an unknown stage and are not counted.", n)
	}
}
