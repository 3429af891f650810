package geom

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Extensions lists the file extensions Load understands.
var Extensions = []string{".wkt", ".geojson", ".json", ".csv", ".kml"}

// Supported reports whether Load can read path, judged by its extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Load reads polygon rings from path, choosing the format by extension.
func Load(path string) (Data, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wkt":
		b, err := os.ReadFile(path)
		if err != nil {
			return Data{}, err
		}
		return ParseWKT(string(b))
	case ".geojson", ".json":
		return LoadGeo(path)
	case ".csv":
		return LoadCSV(path)
	case ".kml":
		return LoadKML(path)
	}
	return Data{}, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Base(path))
}
