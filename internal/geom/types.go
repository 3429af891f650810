package geom

import "errors"

var (
	// ErrNoPolygons is returned when an input holds no usable polygon ring.
	ErrNoPolygons = errors.New("no polygons found")
	// ErrUnsupported is returned for unknown file extensions and geometry types.
	ErrUnsupported = errors.New("unsupported input")
)

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Width returns the horizontal extent.
func (b BBox) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent.
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// Center returns the midpoint of the box.
func (b BBox) Center() (x, y float64) {
	return (b.MinX + b.MaxX) / 2, (b.MinY + b.MaxY) / 2
}

// Data holds the exterior rings of the loaded polygons. Rings are open: the
// closing vertex of the source format is dropped.
type Data struct {
	Rings [][][2]float64
	BBox  BBox
}

// addRing appends an exterior ring and grows the bbox. Rings with fewer than
// three distinct vertices are ignored.
func (d *Data) addRing(ring [][2]float64) {
	ring = openRing(ring)
	if len(ring) < 3 {
		return
	}
	for i, p := range ring {
		if i == 0 && len(d.Rings) == 0 {
			d.BBox = BBox{MinX: p[0], MinY: p[1], MaxX: p[0], MaxY: p[1]}
			continue
		}
		d.BBox.MinX = min(d.BBox.MinX, p[0])
		d.BBox.MinY = min(d.BBox.MinY, p[1])
		d.BBox.MaxX = max(d.BBox.MaxX, p[0])
		d.BBox.MaxY = max(d.BBox.MaxY, p[1])
	}
	d.Rings = append(d.Rings, ring)
}

// openRing drops a trailing vertex equal to the first one.
func openRing(ring [][2]float64) [][2]float64 {
	if n := len(ring); n > 1 && ring[0] == ring[n-1] {
		return ring[:n-1]
	}
	return ring
}
