package pipeline

import (
	"fmt"
	"slices"
	"strings"

	"github.com/thenoetrevino/partners/internal/models"
)

// SortKey is a sortable column of the partner list
type SortKey string

const (
	SortByName      SortKey = "name"
	SortByEmail     SortKey = "email"
	SortByStage     SortKey = "stage"
	SortByCreatedAt SortKey = "created_at"
)

// Direction is the sort direction
type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// Arrow is the column header indicator for d.
func (d Direction) Arrow() string {
	if d == Desc {
		return "▼"
	}
	return "▲"
}

// SortState is the current list ordering.
type SortState struct {
	Key SortKey
	Dir Direction
}

// DefaultSort orders by name ascending.
func DefaultSort() SortState {
	return SortState{Key: SortByName, Dir: Asc}
}

// Toggle returns the state after the user picks key: the same key flips the
// direction, a different key starts ascending.
func (s SortState) Toggle(key SortKey) SortState {
	if s.Key == key {
		if s.Dir == Asc {
			return SortState{Key: key, Dir: Desc}
		}
		return SortState{Key: key, Dir: Asc}
	}
	return SortState{Key: key, Dir: Asc}
}

// ParseSortKey validates a key given on the command line.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortByName, SortByEmail, SortByStage, SortByCreatedAt:
		return k, nil
	case "created":
		return SortByCreatedAt, nil
	default:
		return "", fmt.Errorf("unknown sort key %q (want name, email, stage or created_at)", s)
	}
}

// SortKeys lists the keys in column order.
func SortKeys() []SortKey {
	return []SortKey{SortByName, SortByEmail, SortByStage, SortByCreatedAt}
}

// Cycle moves the sort to the column step places away in SortKeys order,
// wrapping at either end. The direction is kept.
func (s SortState) Cycle(step int) SortState {
	keys := SortKeys()
	i := max(slices.Index(keys, s.Key), 0)
	n := len(keys)
	return SortState{Key: keys[((i+step)%n+n)%n], Dir: s.Dir}
}

func compare(a, b *models.Partner, key SortKey) int {
	switch key {
	case SortByEmail:
		return strings.Compare(a.Email, b.Email)
	case SortByStage:
		return strings.Compare(a.Stage, b.Stage)
	case SortByCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	default:
		return strings.Compare(a.Name, b.Name)
	}
}

// Sort returns a sorted copy of partners. Equal keys keep collection order.
func Sort(partners []*models.Partner, state SortState) []*models.Partner {
	out := slices.Clone(partners)
	slices.SortStableFunc(out, func(a, b *models.Partner) int {
		c := compare(a, b, state.Key)
		if state.Dir == Desc {
			return -c
		}
		return c
	})
	return out
}
