// Package marker manages molecular-weight (kDa) annotations on a gel image.
package marker

import (
	"sort"
)

// Marker is a single molecular-weight annotation. Y is the vertical
// position in scene coordinates; KDa is the user-entered weight.
// Markers are immutable once created.
type Marker struct {
	Y   float64 `json:"y"`
	KDa float64 `json:"kda"`
}

// Store holds the markers for one image, kept sorted ascending by Y.
// Undo order is tracked separately from sort order, so RemoveLast
// always removes the most recently placed marker even if later
// insertions sorted above or below it.
type Store struct {
	sorted []Marker
	placed []Marker // insertion order, for undo
}

// NewStore creates an empty marker store.
func NewStore() *Store {
	return &Store{}
}

// Insert adds a marker and returns it. Duplicate Y values are allowed;
// the sort is stable, so equal-Y markers keep their placement order.
func (s *Store) Insert(y, kda float64) Marker {
	m := Marker{Y: y, KDa: kda}
	s.placed = append(s.placed, m)
	s.sorted = append(s.sorted, m)
	sort.SliceStable(s.sorted, func(i, j int) bool {
		return s.sorted[i].Y < s.sorted[j].Y
	})
	return m
}

// RemoveLast removes the most recently placed marker and returns it.
// Returns false if the store is empty.
func (s *Store) RemoveLast() (Marker, bool) {
	if len(s.placed) == 0 {
		return Marker{}, false
	}

	last := s.placed[len(s.placed)-1]
	s.placed = s.placed[:len(s.placed)-1]

	// Remove one matching entry from the sorted slice. Scanning from the
	// end keeps equal-Y duplicates in placement order.
	for i := len(s.sorted) - 1; i >= 0; i-- {
		if s.sorted[i] == last {
			s.sorted = append(s.sorted[:i], s.sorted[i+1:]...)
			break
		}
	}
	return last, true
}

// Clear removes all markers. Clearing an empty store is a no-op.
func (s *Store) Clear() {
	s.sorted = nil
	s.placed = nil
}

// Len returns the number of markers in the store.
func (s *Store) Len() int {
	return len(s.sorted)
}

// All returns the markers in ascending Y order. The returned slice is a
// copy; mutating it does not affect the store.
func (s *Store) All() []Marker {
	out := make([]Marker, len(s.sorted))
	copy(out, s.sorted)
	return out
}

// Query returns the markers with top <= Y <= bottom, inclusive on both
// ends, in ascending Y order.
func (s *Store) Query(top, bottom float64) []Marker {
	var out []Marker
	for _, m := range s.sorted {
		if m.Y >= top && m.Y <= bottom {
			out = append(out, m)
		}
	}
	return out
}
