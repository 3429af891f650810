// Package raster scan-converts simple polygons into a grid of cells.
//
// The converter sweeps a vertical line left to right through the polygon
// vertices in (x, y) order. At every vertex it updates a set of open
// trapezoids, each bounded by two polygon edges, and then fills the columns
// up to the next vertex by draining the Bresenham steppers of those edges.
//
// Input must be a simple polygon in integer screen coordinates. Invalid
// input produces an unspecified fill but never a panic.
package raster

import (
	"cmp"
	"fmt"
	"image"
	"slices"
)

// Stats describes one conversion.
type Stats struct {
	Vertices int // polygon size
	Peak     int // largest number of simultaneously open trapezoids
	Marks    int // Mark calls issued, including repeats on shared columns
	Leftover int // trapezoids still open after the last vertex
}

// Converter scan-converts polygons. The zero value is ready to use and
// imposes no limits.
type Converter struct {
	// MaxTrapezoids bounds the number of simultaneously open trapezoids.
	// Zero means no bound.
	MaxTrapezoids int

	// Strict enables vertex validation before the sweep and turns
	// trapezoids left open at the end into an error.
	Strict bool

	// reverse traverses the trapezoid set oldest first.
	reverse bool
}

// Fill converts poly into c with a zero Converter.
func Fill(poly []image.Point, c Canvas) error {
	var conv Converter
	_, err := conv.Convert(poly, c)
	return err
}

// Convert marks every cell of c covered by poly. The canvas is only written
// inside [0,w)×[0,h).
func (cv *Converter) Convert(poly []image.Point, c Canvas) (Stats, error) {
	n := len(poly)
	st := Stats{Vertices: n}
	if n < 3 {
		return st, fmt.Errorf("%w: got %d", ErrTooFewVertices, n)
	}
	if cv.Strict {
		if err := checkVertices(poly); err != nil {
			return st, err
		}
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int { return compareVertex(poly[a], poly[b]) })

	set := newTrapezoidSet(cv.MaxTrapezoids)
	set.reverse = cv.reverse
	defer set.release()

	w, h := c.Size()
	for i, curr := range order {
		if err := cv.sweep(set, poly, curr); err != nil {
			st.Peak = set.peak
			return st, fmt.Errorf("vertex %d %v: %w", curr, poly[curr], err)
		}
		if i == n-1 {
			break
		}
		x0, x1 := poly[curr].X, poly[order[i+1]].X
		for _, t := range set.all() {
			st.Marks += fillColumns(x0, x1, &t.seg[0].line, &t.seg[1].line, c, w, h)
		}
	}

	st.Peak = set.peak
	st.Leftover = set.Len()
	Logger().Debug("scan convert", "vertices", n, "peak", st.Peak, "marks", st.Marks)
	if st.Leftover > 0 {
		Logger().Warn("trapezoids left open", "count", st.Leftover, "vertices", n)
		if cv.Strict {
			return st, fmt.Errorf("%w: %d", ErrUnbalancedSweep, st.Leftover)
		}
	}
	return st, nil
}

// sweep classifies vertex v by its neighbours and updates the set.
func (cv *Converter) sweep(set *trapezoidSet, poly []image.Point, v int) error {
	n := len(poly)
	pred := (v + n - 1) % n
	succ := (v + 1) % n

	prev := compareVertex(poly[v], poly[pred]) > 0
	next := compareVertex(poly[v], poly[succ]) < 0

	switch {
	case prev && !next:
		closeVertex(set, v)
	case prev == next:
		to := pred
		if prev {
			to = succ
		}
		passVertex(set, poly, v, to)
	default:
		return openVertex(set, poly, v, pred, succ)
	}
	return nil
}

// closeVertex handles a vertex whose neighbours have both been swept. A
// trapezoid closing on both sides is deleted; two trapezoids meeting at v
// are merged into the first one found.
func closeVertex(set *trapezoidSet, v int) {
	merge := 0
	for id, t := range set.all() {
		a, b := t.seg[0].last == v, t.seg[1].last == v
		if !a && !b {
			continue
		}
		if !(a && b) {
			if merge == 0 {
				merge = id
				continue
			}
			u := set.at(merge)
			if u.seg[1].last == v {
				u.seg[1] = t.seg[1]
			} else {
				u.seg[0] = t.seg[0]
			}
		}
		set.remove(id)
		return
	}
}

// passVertex continues the edge ending at v along the edge from v to to.
func passVertex(set *trapezoidSet, poly []image.Point, v, to int) {
	for _, t := range set.all() {
		k := t.ending(v)
		if k < 0 {
			continue
		}
		t.seg[k] = newSegment(poly, v, to)
		return
	}
}

// openVertex starts two edges at v. Inside an existing trapezoid this splits
// it in two; otherwise a new region begins.
func openVertex(set *trapezoidSet, poly []image.Point, v, pred, succ int) error {
	if ccw(poly[v], poly[pred], poly[succ]) {
		pred, succ = succ, pred
	}
	top := newSegment(poly, v, pred)
	bottom := newSegment(poly, v, succ)

	outer := 0
	for id, t := range set.all() {
		if t.contains(poly, poly[v]) {
			outer = id
			break
		}
	}
	if outer == 0 {
		_, err := set.add(trapezoid{seg: [2]segment{top, bottom}})
		return err
	}

	t := set.at(outer)
	split := trapezoid{seg: [2]segment{t.seg[0], top}}
	if _, err := set.add(split); err != nil {
		return err
	}
	set.at(outer).seg[0] = bottom
	return nil
}

// fillColumns marks columns x0..x1 between the two lines and returns the
// number of cells marked. Lines are drained for every column, including
// those outside the canvas.
func fillColumns(x0, x1 int, a, b *Line, c Canvas, w, h int) int {
	marks := 0
	for x := x0; x <= x1; x++ {
		span := EmptySpan()
		span.Extend(x, a)
		span.Extend(x, b)
		if span.Empty() || x < 0 || x >= w {
			continue
		}
		for y := max(span.Min, 0); y <= min(span.Max, h-1); y++ {
			c.Mark(x, y)
			marks++
		}
	}
	return marks
}

// compareVertex orders points by x, then y.
func compareVertex(p, q image.Point) int {
	return cmp.Or(cmp.Compare(p.X, q.X), cmp.Compare(p.Y, q.Y))
}

// ccw reports whether a→b→c turns counter-clockwise, that is whether the
// cross product (b-a)×(c-a) is positive.
func ccw(a, b, c image.Point) bool {
	return (b.X-a.X)*(c.Y-a.Y) > (b.Y-a.Y)*(c.X-a.X)
}

// checkVertices rejects polygons with repeated vertices, which would create
// zero-length edges or ambiguous sweep positions.
func checkVertices(poly []image.Point) error {
	seen := make(map[image.Point]int, len(poly))
	for i, p := range poly {
		if j, ok := seen[p]; ok {
			return fmt.Errorf("%w: vertices %d and %d at %v", ErrDegenerateEdge, j, i, p)
		}
		seen[p] = i
	}
	return nil
}
