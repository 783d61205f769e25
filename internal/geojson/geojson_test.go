package geojson

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/geosketch/geosketch/internal/crs"
	"github.com/geosketch/geosketch/internal/geom"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromPointCollection(t *testing.T) {
	col := geom.NewPoints([]geom.Coord{{X: -116.8, Y: 41.3}, {X: -114.2, Y: 42.9}}, crs.WGS84)
	require.NoError(t, col.AttachField("ID", []float64{1, 2}))

	fc := FromCollection(col)

	assert.Equal(t, "FeatureCollection", fc.Type)
	assert.Equal(t, crs.WGS84.String(), fc.CRS)
	require.Len(t, fc.Features, 2)

	f := fc.Features[0]
	assert.Equal(t, "Feature", f.Type)
	assert.Equal(t, "Point", f.Geometry.Type)
	assert.Equal(t, []float64{-116.8, 41.3}, f.Geometry.Coordinates)
	assert.Equal(t, 1.0, f.Properties["ID"])
}

func TestFromPolygonCollection(t *testing.T) {
	coords := []geom.Coord{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 2, Y: 3}}
	col, err := geom.NewPolygons(coords, []int{0, 0, 0}, crs.WGS84)
	require.NoError(t, err)

	fc := FromCollection(col)
	require.Len(t, fc.Features, 1)

	g := fc.Features[0].Geometry
	assert.Equal(t, "Polygon", g.Type)
	rings, ok := g.Coordinates.([][][]float64)
	require.True(t, ok)
	require.Len(t, rings, 1)
	assert.Len(t, rings[0], 4) // closed ring
	assert.Equal(t, rings[0][0], rings[0][3])
}

func TestFromLineCollection(t *testing.T) {
	coords := []geom.Coord{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 5, Y: 5}, {X: 6, Y: 7}}
	col, err := geom.NewLines(coords, []int{0, 0, 1, 1}, crs.WGS84)
	require.NoError(t, err)

	fc := FromCollection(col)
	require.Len(t, fc.Features, 2)
	assert.Equal(t, "LineString", fc.Features[0].Geometry.Type)
}

func TestSaveWritesValidJSON(t *testing.T) {
	col := geom.NewPoints([]geom.Coord{{X: 1, Y: 2}}, crs.WGS84)
	path := filepath.Join(t.TempDir(), "sub", "pts.geojson")

	require.NoError(t, Save(path, FromCollection(col)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var round map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &round))
	assert.Equal(t, "FeatureCollection", round["type"])
}
