package geom

import (
	"errors"
	"fmt"

	sf "github.com/peterstace/simplefeatures/geom"
)

// ErrInvalidRing is returned by Validate for rings the scan converter cannot
// fill reliably.
var ErrInvalidRing = errors.New("invalid ring")

// Validate checks that ring has at least three vertices and forms a simple
// polygon boundary. The ring may be open or closed.
func Validate(ring [][2]float64) error {
	ring = openRing(ring)
	if len(ring) < 3 {
		return fmt.Errorf("%w: %d vertices", ErrInvalidRing, len(ring))
	}
	floats := make([]float64, 0, 2*len(ring)+2)
	for _, p := range ring {
		floats = append(floats, p[0], p[1])
	}
	floats = append(floats, ring[0][0], ring[0][1])

	ls, err := sf.NewLineString(sf.NewSequence(floats, sf.DimXY))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRing, err)
	}
	if _, err := sf.NewPolygonFromRings([]sf.LineString{ls}); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRing, err)
	}
	return nil
}

// Star returns the four-pointed demo star, eight vertices centred on the
// origin.
func Star() Data {
	var d Data
	d.addRing([][2]float64{
		{-13, -13}, {0, -7}, {13, -13}, {7, 0},
		{13, 13}, {0, 7}, {-13, 13}, {-7, 0},
	})
	return d
}
