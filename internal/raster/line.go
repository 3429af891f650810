package raster

import (
	"image"
	"iter"
)

// Line steps through the lattice points of a segment with the Bresenham
// algorithm. The zero value is a terminal line at the origin.
//
// A Line keeps its progress between calls, so a caller can drain it one
// column at a time while sweeping left to right.
type Line struct {
	pos, end image.Point
	dx, dy   int // absolute deltas
	sx, sy   int // step direction per axis, +1 or -1
	err      int
}

// NewLine returns a Line from p0 to p1, positioned at p0.
func NewLine(p0, p1 image.Point) Line {
	var l Line
	l.Reset(p0, p1)
	return l
}

// Reset restarts the line from p0 towards p1.
func (l *Line) Reset(p0, p1 image.Point) {
	l.pos = p0
	l.end = p1
	l.dx = abs(p1.X - p0.X)
	l.dy = abs(p1.Y - p0.Y)
	l.sx = -1
	if p0.X < p1.X {
		l.sx = 1
	}
	l.sy = -1
	if p0.Y < p1.Y {
		l.sy = 1
	}
	l.err = l.dx - l.dy
}

// Pos returns the current point.
func (l *Line) Pos() image.Point { return l.pos }

// End returns the target point.
func (l *Line) End() image.Point { return l.end }

// Done reports whether the line has reached its target.
func (l *Line) Done() bool { return l.pos == l.end }

// Step advances to the next lattice point and reports whether the target
// has been reached. Stepping a terminal line is a no-op that returns true.
func (l *Line) Step() bool {
	if l.pos == l.end {
		return true
	}
	e2 := 2 * l.err
	if e2 > -l.dy {
		l.err -= l.dy
		l.pos.X += l.sx
	}
	// a single-row or single-column tail must not overshoot in y
	if l.pos == l.end {
		return true
	}
	if e2 < l.dx {
		l.err += l.dx
		l.pos.Y += l.sy
	}
	return l.pos == l.end
}

// Points yields every remaining lattice point from the current position to
// the target, both inclusive. It works on a copy and leaves l untouched.
func (l Line) Points() iter.Seq[image.Point] {
	return func(yield func(image.Point) bool) {
		if !yield(l.pos) {
			return
		}
		for !l.Done() {
			l.Step()
			if !yield(l.pos) {
				return
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
