package geom

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// LoadGeo reads a GeoJSON file and returns the exterior rings of its
// Polygon and MultiPolygon geometries. Bare geometries, Features and
// FeatureCollections are accepted; other geometry types are skipped.
func LoadGeo(path string) (Data, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Data{}, err
	}
	return parseGeo(data)
}

func parseGeo(data []byte) (Data, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Data{}, fmt.Errorf("geojson: %w", err)
	}
	var d Data
	parsePoint := func(v any) (pt [2]float64, ok bool) {
		if a, ok := v.([]any); ok && len(a) >= 2 {
			x, xok := a[0].(float64)
			y, yok := a[1].(float64)
			if xok && yok {
				return [2]float64{x, y}, true
			}
		}
		return [2]float64{}, false
	}
	parseRing := func(v any) (ring [][2]float64) {
		arr, _ := v.([]any)
		for _, el := range arr {
			if pt, ok := parsePoint(el); ok {
				ring = append(ring, pt)
			}
		}
		return ring
	}
	// only the first ring of a polygon is its exterior
	parsePolygon := func(v any) {
		if rings, ok := v.([]any); ok && len(rings) > 0 {
			d.addRing(parseRing(rings[0]))
		}
	}
	walkGeom := func(g map[string]any) {
		gt, _ := g["type"].(string)
		switch gt {
		case "Polygon":
			parsePolygon(g["coordinates"])
		case "MultiPolygon":
			polys, _ := g["coordinates"].([]any)
			for _, p := range polys {
				parsePolygon(p)
			}
		}
	}
	t, _ := raw["type"].(string)
	switch t {
	case "Feature":
		if g, ok := raw["geometry"].(map[string]any); ok {
			walkGeom(g)
		}
	case "FeatureCollection":
		if fs, ok := raw["features"].([]any); ok {
			for _, f := range fs {
				if fm, ok := f.(map[string]any); ok {
					if g, ok := fm["geometry"].(map[string]any); ok {
						walkGeom(g)
					}
				}
			}
		}
	case "":
		return Data{}, errors.New("geojson: missing type")
	default:
		walkGeom(raw)
	}
	if len(d.Rings) == 0 {
		return Data{}, fmt.Errorf("geojson: %w", ErrNoPolygons)
	}
	return d, nil
}
