package raster

import (
	"image"
	"iter"
	"slices"
)

// segment is a polygon edge that is open at the current sweep position.
// first is the vertex the sweep started it from, last the vertex it runs to.
type segment struct {
	first, last int
	line        Line
}

func newSegment(poly []image.Point, first, last int) segment {
	return segment{first: first, last: last, line: NewLine(poly[first], poly[last])}
}

// trapezoid is an open region bounded by two segments. The interior lies
// clockwise of seg[0] and counter-clockwise of seg[1].
type trapezoid struct {
	seg [2]segment
}

// ending returns the slot of the segment that ends at vertex v, preferring
// slot 0, or -1 if neither does.
func (t *trapezoid) ending(v int) int {
	switch {
	case t.seg[0].last == v:
		return 0
	case t.seg[1].last == v:
		return 1
	}
	return -1
}

// contains reports whether p lies strictly between the two boundary edges.
func (t *trapezoid) contains(poly []image.Point, p image.Point) bool {
	s0, s1 := &t.seg[0], &t.seg[1]
	return ccw(poly[s0.first], p, poly[s0.last]) && ccw(poly[s1.first], poly[s1.last], p)
}

// trapezoidSet is the live state of a sweep. Trapezoids are stored in a
// slot arena addressed by id; ids are 1-based so that 0 never names a live
// trapezoid. Freed slots are reused.
type trapezoidSet struct {
	slots []trapezoid
	free  []int
	order []int // live ids, most recently inserted first

	limit int // maximum number of live trapezoids, 0 for no limit
	peak  int

	// reverse makes all traverse oldest first.
	reverse bool
}

func newTrapezoidSet(limit int) *trapezoidSet {
	return &trapezoidSet{limit: limit}
}

// Len returns the number of live trapezoids.
func (s *trapezoidSet) Len() int { return len(s.order) }

// at returns the trapezoid with the given id. The pointer is invalidated by
// the next add.
func (s *trapezoidSet) at(id int) *trapezoid {
	return &s.slots[id-1]
}

// add inserts t at the front of the traversal order and returns its id.
func (s *trapezoidSet) add(t trapezoid) (int, error) {
	if s.limit > 0 && len(s.order) >= s.limit {
		return 0, ErrTrapezoidLimit
	}
	var id int
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
		s.slots[id-1] = t
	} else {
		s.slots = append(s.slots, t)
		id = len(s.slots)
	}
	s.order = slices.Insert(s.order, 0, id)
	s.peak = max(s.peak, len(s.order))
	return id, nil
}

// remove deletes the trapezoid with the given id. Unknown ids are ignored.
func (s *trapezoidSet) remove(id int) {
	i := slices.Index(s.order, id)
	if i < 0 {
		return
	}
	s.order = slices.Delete(s.order, i, i+1)
	s.slots[id-1] = trapezoid{}
	s.free = append(s.free, id)
}

// all yields the live trapezoids in traversal order. The set must not be
// modified while the iteration continues.
func (s *trapezoidSet) all() iter.Seq2[int, *trapezoid] {
	return func(yield func(int, *trapezoid) bool) {
		if s.reverse {
			for i := len(s.order) - 1; i >= 0; i-- {
				if !yield(s.order[i], s.at(s.order[i])) {
					return
				}
			}
			return
		}
		for _, id := range s.order {
			if !yield(id, s.at(id)) {
				return
			}
		}
	}
}

// release drops every trapezoid and returns how many were still live.
func (s *trapezoidSet) release() int {
	n := len(s.order)
	s.slots, s.free, s.order = nil, nil, nil
	return n
}
