// Package geojson exports geometry collections as GeoJSON documents.
package geojson

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/geosketch/geosketch/internal/geom"

	"github.com/rs/zerolog/log"
)

// FeatureCollection represents a collection of geographic features.
// It follows the standard GeoJSON structure.
type FeatureCollection struct {
	Type     string    `json:"type" yaml:"type"`
	CRS      string    `json:"crs,omitempty" yaml:"crs,omitempty"`
	Features []Feature `json:"features" yaml:"features"`
}

// Feature represents a single geographic feature with geometry and properties.
type Feature struct {
	Properties map[string]interface{} `json:"properties" yaml:"properties"`
	Type       string                 `json:"type" yaml:"type"`
	Geometry   Geometry               `json:"geometry" yaml:"geometry"`
}

// Geometry represents the geometry of a feature. Coordinates nest per type:
// Point [x,y], LineString [[x,y],...], Polygon [[[x,y],...]].
type Geometry struct {
	Type        string      `json:"type" yaml:"type"`
	Coordinates interface{} `json:"coordinates" yaml:"coordinates"`
}

// FromCollection converts a collection into a feature collection: one
// feature per point, line part, or polygon ring, each carrying the
// collection's attribute values as properties. The CRS descriptor string is
// recorded verbatim.
func FromCollection(col *geom.Collection) FeatureCollection {
	fc := FeatureCollection{
		Type:     "FeatureCollection",
		CRS:      col.CRS().String(),
		Features: []Feature{},
	}

	for i := 0; i < col.FeatureCount(); i++ {
		props := map[string]interface{}{}
		for _, f := range col.Fields() {
			if i < len(f.Values) {
				props[f.Name] = f.Values[i]
			}
		}

		var g Geometry
		part := col.PartCoords(i)
		switch col.Kind() {
		case geom.KindPoint:
			g = Geometry{Type: "Point", Coordinates: pair(part[0])}
		case geom.KindLine:
			g = Geometry{Type: "LineString", Coordinates: pairs(part)}
		case geom.KindPolygon:
			g = Geometry{Type: "Polygon", Coordinates: [][][]float64{pairs(part)}}
		}

		fc.Features = append(fc.Features, Feature{
			Type:       "Feature",
			Geometry:   g,
			Properties: props,
		})
	}

	return fc
}

func pair(c geom.Coord) []float64 {
	return []float64{c.X, c.Y}
}

func pairs(coords []geom.Coord) [][]float64 {
	out := make([][]float64, len(coords))
	for i, c := range coords {
		out[i] = pair(c)
	}

	return out
}

// Save marshals the feature collection and writes it to path.
func Save(path string, fc FeatureCollection) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	// We care about write errors on close
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Error().Err(closeErr).Str("path", path).Msg("Failed to close file")
		}
	}()

	return json.NewEncoder(f).Encode(fc)
}
