package geom

import (
	"errors"
	"fmt"
	"strings"

	sf "github.com/peterstace/simplefeatures/geom"
)

// ParseWKT parses a POLYGON or MULTIPOLYGON and returns its exterior rings.
// Rings that are not simple are rejected by the parser.
func ParseWKT(wkt string) (Data, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return Data{}, errors.New("wkt: empty input")
	}
	g, err := sf.UnmarshalWKT(s)
	if err != nil {
		return Data{}, fmt.Errorf("wkt: %w", err)
	}
	var d Data
	switch g.Type() {
	case sf.TypePolygon:
		d.addRing(exterior(g.AsPolygon()))
	case sf.TypeMultiPolygon:
		mp := g.AsMultiPolygon()
		for i := 0; i < mp.NumPolygons(); i++ {
			d.addRing(exterior(mp.PolygonN(i)))
		}
	default:
		return Data{}, fmt.Errorf("wkt: %w: %v", ErrUnsupported, g.Type())
	}
	if len(d.Rings) == 0 {
		return Data{}, fmt.Errorf("wkt: %w", ErrNoPolygons)
	}
	return d, nil
}

func exterior(p sf.Polygon) [][2]float64 {
	seq := p.ExteriorRing().Coordinates()
	out := make([][2]float64, seq.Length())
	for i := range out {
		xy := seq.GetXY(i)
		out[i] = [2]float64{xy.X, xy.Y}
	}
	return out
}
