// Package scene places polygon rings on an integer grid and renders them
// with the scan converter.
package scene

import (
	"cmp"
	"image"
	"math"

	"seehuhn.de/go/geom/matrix"

	"polyscan/internal/geom"
	"polyscan/internal/raster"
)

// Scene is a set of rings plus the view applied when projecting them.
type Scene struct {
	Rings [][][2]float64
	BBox  geom.BBox

	// Unit is the number of grid cells per polygon unit. Zero fits the bbox
	// into the grid.
	Unit float64
	// Zoom scales around the grid centre. Zero means 1.
	Zoom float64
	// OffsetX and OffsetY pan the result in grid cells.
	OffsetX, OffsetY int
	// Angle rotates counter-clockwise around the grid centre, in degrees.
	Angle float64
	// Aspect scales grid rows relative to columns; 0.5 suits text cells that
	// are twice as tall as they are wide. Zero means 1.
	Aspect float64
}

// New returns a scene showing d at zoom 1.
func New(d geom.Data) *Scene {
	return &Scene{Rings: d.Rings, BBox: d.BBox, Zoom: 1}
}

// Transform returns the matrix mapping polygon coordinates to a w×h grid.
func (s *Scene) Transform(w, h int) matrix.Matrix {
	aspect := cmp.Or(s.Aspect, 1)
	unit := s.Unit
	if unit <= 0 {
		unit = math.Inf(1)
		if bw := s.BBox.Width(); bw > 0 {
			unit = float64(w-1) / bw
		}
		if bh := s.BBox.Height(); bh > 0 {
			unit = min(unit, float64(h-1)/(bh*aspect))
		}
		if math.IsInf(unit, 1) {
			unit = 1
		}
	}
	unit *= cmp.Or(s.Zoom, 1)

	cx, cy := s.BBox.Center()
	gx := float64(w-1)/2 + float64(s.OffsetX)
	gy := float64(h-1)/2 + float64(s.OffsetY)

	// centre, scale with y flipped so north is up, rotate, squash rows, place
	return matrix.Identity.Translate(-cx, -cy).
		Mul(matrix.Scale(unit, -unit)).
		Mul(matrix.RotateDeg(-s.Angle)).
		Mul(matrix.Scale(1, aspect)).
		Translate(gx, gy)
}

// Project maps every ring into a w×h grid and rounds it to lattice points.
// Consecutive duplicates are dropped and rings left with fewer than three
// points are skipped. Points may fall outside the grid.
func (s *Scene) Project(w, h int) [][]image.Point {
	if w <= 0 || h <= 0 {
		return nil
	}
	m := s.Transform(w, h)
	var out [][]image.Point
	for _, ring := range s.Rings {
		poly := make([]image.Point, 0, len(ring))
		for _, p := range ring {
			q := apply(m, p[0], p[1])
			if n := len(poly); n > 0 && poly[n-1] == q {
				continue
			}
			poly = append(poly, q)
		}
		if n := len(poly); n > 1 && poly[0] == poly[n-1] {
			poly = poly[:n-1]
		}
		if len(poly) >= 3 {
			out = append(out, poly)
		}
	}
	return out
}

// Render projects the scene onto c and converts every ring. It returns the
// statistics of each conversion and the first error. A nil conv behaves like
// a zero Converter.
func (s *Scene) Render(c raster.Canvas, conv *raster.Converter) ([]raster.Stats, error) {
	if conv == nil {
		conv = &raster.Converter{}
	}
	w, h := c.Size()
	var (
		stats []raster.Stats
		first error
	)
	for _, poly := range s.Project(w, h) {
		st, err := conv.Convert(poly, c)
		stats = append(stats, st)
		if err != nil && first == nil {
			first = err
		}
	}
	return stats, first
}

func apply(m matrix.Matrix, x, y float64) image.Point {
	return image.Pt(
		int(math.Round(m[0]*x+m[2]*y+m[4])),
		int(math.Round(m[1]*x+m[3]*y+m[5])),
	)
}
