package raster

import "math"

// Span is an inclusive row range within one column.
type Span struct {
	Min, Max int
}

// EmptySpan returns a span that contains no rows.
func EmptySpan() Span {
	return Span{Min: math.MaxInt, Max: math.MinInt}
}

// Empty reports whether the span contains no rows.
func (s Span) Empty() bool { return s.Min > s.Max }

// Add grows the span to include row y.
func (s *Span) Add(y int) {
	if y < s.Min {
		s.Min = y
	}
	if y > s.Max {
		s.Max = y
	}
}

// Extend drains the points of l that lie in column x into the span. It stops
// at the first point outside the column without consuming it. When the line
// reaches its target inside the column the target row is included too.
func (s *Span) Extend(x int, l *Line) {
	for l.pos.X == x {
		s.Add(l.pos.Y)
		if l.Step() {
			if l.pos.X == x {
				s.Add(l.pos.Y)
			}
			return
		}
	}
}
