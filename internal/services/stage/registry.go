// Package stage keeps the set of pipeline stages. Stages are not stored on
// their own: they are observed from partner data, plus provisional names
// added on this client that no partner uses yet.
package stage

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/thenoetrevino/partners/internal/models"
)

// Service defines the stage registry operations
type Service interface {
	// Read operations
	ListStages() []string
	IsKnown(name string) bool
	Members(name string) int
	Observed() []string
	Provisional() []string

	// Write operations
	AddStage(name string) (string, error)
	RemoveStage(name string) error
	Refresh(partners []*models.Partner)
}

// registry implements Service. Safe for concurrent use.
type registry struct {
	mu sync.RWMutex

	defaults []string
	// client-side names in insertion order, defaults included
	added []string
	// distinct stages of the last partner collection, first-seen order
	observed []string
	members  map[string]int
}

// NewService creates a registry seeded with defaults as provisional stages.
// Empty or duplicate defaults are dropped.
func NewService(defaults []string) Service {
	r := &registry{members: map[string]int{}}
	for _, d := range defaults {
		d = strings.TrimSpace(d)
		if d == "" || slices.Contains(r.defaults, d) {
			continue
		}
		r.defaults = append(r.defaults, d)
		r.added = append(r.added, d)
	}
	return r
}

// ListStages returns every stage in board order: default stages still in
// use or not removed, then other observed stages in first-seen order, then
// the remaining provisional stages in the order they were added.
func (r *registry) ListStages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listLocked()
}

func (r *registry) listLocked() []string {
	out := make([]string, 0, len(r.defaults)+len(r.observed)+len(r.added))
	seen := make(map[string]struct{}, cap(out))
	push := func(s string) {
		if _, dup := seen[s]; dup {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	for _, d := range r.defaults {
		if r.members[d] > 0 || slices.Contains(r.added, d) {
			push(d)
		}
	}
	for _, s := range r.observed {
		push(s)
	}
	for _, s := range r.added {
		push(s)
	}
	return out
}

// IsKnown reports whether name is currently a stage.
func (r *registry) IsKnown(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Contains(r.listLocked(), name)
}

// Members returns how many partners sat in name at the last refresh.
func (r *registry) Members(name string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.members[name]
}

// Observed returns the durable stages, those backed by partner data.
func (r *registry) Observed() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.observed)
}

// Provisional returns client-only stages no partner uses yet.
func (r *registry) Provisional() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for _, s := range r.added {
		if r.members[s] == 0 {
			out = append(out, s)
		}
	}
	return out
}

// AddStage trims name and adds it as a provisional stage. It returns the
// stored name.
func (r *registry) AddStage(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", models.NewValidationError("stage", "stage name is required")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", models.NewValidationError("stage", fmt.Sprintf("stage name cannot exceed %d characters", MaxNameLength))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if slices.Contains(r.listLocked(), name) {
		return name, fmt.Errorf("%w: %q", ErrStageExists, name)
	}
	r.added = append(r.added, name)
	return name, nil
}

// RemoveStage drops an empty stage. A stage with partners fails with a
// *models.StageInUseError.
func (r *registry) RemoveStage(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// partner stages are stored as written, so look up the raw name first
	for _, candidate := range []string{name, strings.TrimSpace(name)} {
		if n := r.members[candidate]; n > 0 {
			return &models.StageInUseError{Stage: candidate, Members: n}
		}
	}
	name = strings.TrimSpace(name)
	i := slices.Index(r.added, name)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrStageNotFound, name)
	}
	r.added = slices.Delete(r.added, i, i+1)
	return nil
}

// Refresh recomputes the observed stages from the partner collection.
// Partners with a blank stage are not counted.
func (r *registry) Refresh(partners []*models.Partner) {
	observed := make([]string, 0, len(r.defaults))
	members := make(map[string]int)
	for _, p := range partners {
		// blank stages are never columns
		if p == nil || strings.TrimSpace(p.Stage) == "" {
			continue
		}
		if members[p.Stage] == 0 {
			observed = append(observed, p.Stage)
		}
		members[p.Stage]++
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.observed = observed
	r.members = members
}
