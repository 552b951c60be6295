// Package pipeline derives the read-only views of the partner collection:
// per-stage counts, stage groupings and sorted lists.
package pipeline

import (
	"github.com/thenoetrevino/partners/internal/models"
)

// CountByStage returns one entry per stage, in the order given, with the
// number of partners whose stage matches exactly (case-sensitive).
// Partners in a stage not listed are left out of every count.
func CountByStage(partners []*models.Partner, stages []string) []models.StageCount {
	index := make(map[string]int, len(stages))
	counts := make([]models.StageCount, len(stages))
	for i, s := range stages {
		counts[i] = models.StageCount{Stage: s}
		if _, dup := index[s]; !dup {
			index[s] = i
		}
	}

	for _, p := range partners {
		if p == nil {
			continue
		}
		if i, ok := index[p.Stage]; ok {
			counts[i].Count++
		}
	}
	return counts
}

// GroupByStage buckets partners under their stage, keeping collection order
// inside each bucket. Every listed stage has an entry, possibly empty.
func GroupByStage(partners []*models.Partner, stages []string) map[string][]*models.Partner {
	groups := make(map[string][]*models.Partner, len(stages))
	for _, s := range stages {
		groups[s] = []*models.Partner{}
	}
	for _, p := range partners {
		if p == nil {
			continue
		}
		if _, ok := groups[p.Stage]; ok {
			groups[p.Stage] = append(groups[p.Stage], p)
		}
	}
	return groups
}

// Unassigned returns the partners whose stage is not in stages.
func Unassigned(partners []*models.Partner, stages []string) []*models.Partner {
	known := make(map[string]struct{}, len(stages))
	for _, s := range stages {
		known[s] = struct{}{}
	}

	var out []*models.Partner
	for _, p := range partners {
		if p == nil {
			continue
		}
		if _, ok := known[p.Stage]; !ok {
			out = append(out, p)
		}
	}
	return out
}

// Total sums the counts.
func Total(counts []models.StageCount) int {
	n := 0
	for _, c := range counts {
		n += c.Count
	}
	return n
}
