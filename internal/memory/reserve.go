// Package memory detects overlapping address and bit ranges.
package memory

import (
	"fmt"
	"slices"
)

// Area is an inclusive range [Begin, End] owned by the element ID.
type Area struct {
	ID    string
	Begin uint64
	End   uint64
}

func (a Area) overlaps(b Area) bool {
	return a.Begin <= b.End && b.Begin <= a.End
}

// Reserve accumulates areas and reports collisions between them.
//
// Areas are never merged or deduplicated: two identical areas overlap.
// A Reserve is not safe for concurrent use.
type Reserve struct {
	areas []Area
}

// AddArea records the range [begin, end] for id.
func (r *Reserve) AddArea(id string, begin, end uint64) {
	r.areas = append(r.areas, Area{ID: id, Begin: begin, End: end})
}

// Areas returns the recorded areas ordered by begin.
func (r *Reserve) Areas() []Area {
	r.sort()
	return slices.Clone(r.areas)
}

// Len returns the number of recorded areas.
func (r *Reserve) Len() int { return len(r.areas) }

// Reset removes all areas.
func (r *Reserve) Reset() { r.areas = r.areas[:0] }

// sort orders the areas by begin. It runs before every query since
// the forward sweep depends on the order.
func (r *Reserve) sort() {
	slices.SortStableFunc(r.areas, func(a, b Area) int {
		switch {
		case a.Begin < b.Begin:
			return -1
		case a.Begin > b.Begin:
			return 1
		}
		return 0
	})
}

// sweep calls fn for every overlapping pair (a, b) where a precedes b in
// begin order. It stops early when fn returns false.
func (r *Reserve) sweep(fn func(a, b Area) bool) {
	r.sort()
	for i, cur := range r.areas {
		for _, next := range r.areas[i+1:] {
			if next.Begin > cur.End {
				break
			}
			if !fn(cur, next) {
				return
			}
		}
	}
}

// HasOverlap reports whether any two areas intersect.
func (r *Reserve) HasOverlap() bool {
	found := false
	r.sweep(func(a, b Area) bool {
		found = true
		return false
	})
	return found
}

// HasIdentifierOverlap reports whether any two areas with the same ID intersect.
func (r *Reserve) HasIdentifierOverlap() bool {
	found := false
	r.sweep(func(a, b Area) bool {
		found = a.ID == b.ID
		return !found
	})
	return found
}

// OverlapErrors returns one message per intersecting pair of areas, naming
// both owners. label names the kind of element, e.g. "Address blocks".
func (r *Reserve) OverlapErrors(label, context string) []string {
	return r.FindErrorsInOverlap(nil, label, context)
}

// FindErrorsInOverlap appends OverlapErrors to errs.
func (r *Reserve) FindErrorsInOverlap(errs []string, label, context string) []string {
	r.sweep(func(a, b Area) bool {
		errs = append(errs, fmt.Sprintf("%s %s and %s overlap within %s", label, a.ID, b.ID, context))
		return true
	})
	return errs
}

// MultipleDefinitionErrors returns one message per intersecting pair of
// areas that share an ID. label names the kind of owner, e.g. "logical port".
func (r *Reserve) MultipleDefinitionErrors(label, context string) []string {
	return r.FindErrorsInMultipleDefinitions(nil, label, context)
}

// FindErrorsInMultipleDefinitions appends MultipleDefinitionErrors to errs.
func (r *Reserve) FindErrorsInMultipleDefinitions(errs []string, label, context string) []string {
	r.sweep(func(a, b Area) bool {
		if a.ID == b.ID {
			errs = append(errs, fmt.Sprintf("Multiple definitions of %s %s overlap within %s", label, a.ID, context))
		}
		return true
	})
	return errs
}
