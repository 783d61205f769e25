package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/geosketch/geosketch/internal/geom"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleScene = `
title: Stations and terrain
crs: "+proj=longlat +datum=WGS84"
width: 640
height: 480
layers:
  - name: stations
    kind: points
    coords: [[-116.8, 41.3], [-114.2, 42.9]]
    fields:
      ID: [1, 2]
    style:
      color: "#1f77b4"
      color_field: ID
  - name: boundary
    kind: polygons
    coords: [[-116.8, 41.3], [-114.2, 42.9], [-112.9, 42.4]]
    parts: [0, 0, 0]
  - name: precip
    kind: raster
    rows: 10
    cols: 10
    extent: [-150, 20, -80, 60]
    random:
      seed: 7
      min: 0
      max: 100
    ramp: terrain
`

func writeScene(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	return path
}

func TestLoadAndBuild(t *testing.T) {
	s, err := Load(writeScene(t, sampleScene))
	require.NoError(t, err)

	assert.Equal(t, "Stations and terrain", s.Title)
	assert.Equal(t, 640, s.Width)
	require.Len(t, s.Layers, 3)

	built, err := s.Build()
	require.NoError(t, err)
	require.Len(t, built, 3)

	pts := built[0]
	require.NotNil(t, pts.Collection)
	assert.Equal(t, geom.KindPoint, pts.Collection.Kind())
	assert.Equal(t, 2, pts.Collection.FeatureCount())
	assert.Equal(t, "+proj=longlat +datum=WGS84", pts.Collection.CRS().String())
	ids, ok := pts.Collection.Field("ID")
	require.True(t, ok)
	assert.Equal(t, []float64{1, 2}, ids)

	poly := built[1]
	require.NotNil(t, poly.Collection)
	ring := poly.Collection.PartCoords(0)
	assert.Len(t, ring, 4) // auto-closed
	assert.Equal(t, ring[0], ring[3])

	grid := built[2]
	require.NotNil(t, grid.Grid)
	assert.Equal(t, 100, len(grid.Grid.Values()))
	assert.InDelta(t, 7.0, grid.Grid.ResX(), 1e-12)
	assert.Equal(t, "terrain", grid.Ramp)
}

func TestRandomIsDeterministic(t *testing.T) {
	r := RandomSpec{Seed: 7, Min: 0, Max: 100}

	a := r.samples(50)
	b := r.samples(50)
	assert.Equal(t, a, b)
	for _, v := range a {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 100.0)
	}
}

func TestBuildRejectsBadCoordinate(t *testing.T) {
	s := &Scene{
		CRS: "+proj=longlat +datum=WGS84",
		Layers: []Layer{
			{Name: "bad", Kind: "points", Coords: [][]float64{{1, 2, 3}}},
		},
	}

	_, err := s.Build()
	assert.ErrorIs(t, err, geom.ErrMalformedInput)
}

func TestBuildRejectsShortLine(t *testing.T) {
	s := &Scene{
		CRS: "+proj=longlat +datum=WGS84",
		Layers: []Layer{
			{Name: "stub", Kind: "lines", Coords: [][]float64{{1, 2}}, Parts: []int{0}},
		},
	}

	_, err := s.Build()
	assert.ErrorIs(t, err, geom.ErrInvalidGeometry)
}

func TestBuildRejectsBadRasterValues(t *testing.T) {
	s := &Scene{
		CRS: "+proj=longlat +datum=WGS84",
		Layers: []Layer{
			{Name: "r", Kind: "raster", Rows: 2, Cols: 2, Extent: []float64{0, 0, 1, 1}, Values: []float64{1, 2, 3}},
		},
	}

	_, err := s.Build()
	assert.ErrorIs(t, err, geom.ErrDimensionMismatch)
}

func TestBuildRejectsUnknownKind(t *testing.T) {
	s := &Scene{
		CRS:    "+proj=longlat +datum=WGS84",
		Layers: []Layer{{Name: "x", Kind: "hexbin"}},
	}

	_, err := s.Build()
	assert.ErrorIs(t, err, geom.ErrMalformedInput)
}

func TestBuildRejectsBadCRS(t *testing.T) {
	s := &Scene{CRS: "+proj=longlat +a=not-a-number"}
	_, err := s.Build()
	assert.Error(t, err)
}
