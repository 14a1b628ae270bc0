// Package contour stitches boundary edges into closed rings and resolves
// nested rings into single concave outlines.
package contour

// RingSet stores rings in one arena. Each ring is an index range into a
// shared slice of vertex ids, so copying a set is two slice copies.
type RingSet struct {
	ids   []int
	spans []span
}

type span struct {
	start, end int
}

// NewRingSet creates an empty set
func NewRingSet() *RingSet {
	return &RingSet{}
}

// Add appends a ring. Rings with fewer than 3 distinct ids are dropped and
// Add reports false.
func (s *RingSet) Add(ids []int) bool {
	if distinct(ids) < 3 {
		return false
	}
	start := len(s.ids)
	s.ids = append(s.ids, ids...)
	s.spans = append(s.spans, span{start: start, end: len(s.ids)})
	return true
}

// Len returns the number of rings
func (s *RingSet) Len() int {
	return len(s.spans)
}

// Ring returns the ids of ring i. The slice aliases the arena.
func (s *RingSet) Ring(i int) []int {
	sp := s.spans[i]
	return s.ids[sp.start:sp.end:sp.end]
}

// Clone returns an independent copy
func (s *RingSet) Clone() *RingSet {
	return &RingSet{
		ids:   append([]int(nil), s.ids...),
		spans: append([]span(nil), s.spans...),
	}
}

// All returns copies of every ring
func (s *RingSet) All() [][]int {
	out := make([][]int, s.Len())
	for i := range out {
		out[i] = append([]int(nil), s.Ring(i)...)
	}
	return out
}

func distinct(ids []int) int {
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	return len(seen)
}
