package geom

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"
)

type kmlRing struct {
	Coordinates string `xml:"LinearRing>coordinates"`
}

type kmlPolygon struct {
	Outer kmlRing `xml:"outerBoundaryIs"`
}

type kmlPlacemark struct {
	Polygon      *kmlPolygon  `xml:"Polygon"`
	MultiPolygon []kmlPolygon `xml:"MultiGeometry>Polygon"`
}

type kmlDoc struct {
	Placemarks []kmlPlacemark `xml:"Placemark"`
	Document   *kmlDoc        `xml:"Document"`
	Folders    []kmlDoc       `xml:"Folder"`
}

// LoadKML extracts the outer boundary of every Placemark Polygon, including
// polygons inside MultiGeometry, Document and Folder elements. KML
// coordinates are "lon,lat[,alt]"; altitude is ignored.
func LoadKML(path string) (Data, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Data{}, err
	}
	var doc kmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return Data{}, fmt.Errorf("kml: %w", err)
	}
	var d Data
	var walk func(k *kmlDoc)
	walk = func(k *kmlDoc) {
		for _, pm := range k.Placemarks {
			if pm.Polygon != nil {
				d.addRing(parseKMLCoords(pm.Polygon.Outer.Coordinates))
			}
			for _, p := range pm.MultiPolygon {
				d.addRing(parseKMLCoords(p.Outer.Coordinates))
			}
		}
		if k.Document != nil {
			walk(k.Document)
		}
		for i := range k.Folders {
			walk(&k.Folders[i])
		}
	}
	walk(&doc)
	if len(d.Rings) == 0 {
		return Data{}, fmt.Errorf("kml: %w", ErrNoPolygons)
	}
	return d, nil
}

// parseKMLCoords splits whitespace separated "x,y[,z]" tuples.
func parseKMLCoords(s string) [][2]float64 {
	var out [][2]float64
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		x, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
		y, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, [2]float64{x, y})
	}
	return out
}
