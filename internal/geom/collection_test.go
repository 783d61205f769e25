package geom

import (
	"testing"

	"github.com/geosketch/geosketch/internal/crs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointsWithAttributes(t *testing.T) {
	wgs84, err := crs.Parse("+proj=longlat +datum=WGS84")
	require.NoError(t, err)

	col := NewPoints([]Coord{{-116.8, 41.3}, {-114.2, 42.9}}, wgs84)
	require.NoError(t, col.AttachField("ID", []float64{1, 2}))

	assert.Equal(t, 2, col.FeatureCount())
	assert.Equal(t, "+proj=longlat +datum=WGS84", col.CRS().String())

	ids, ok := col.Field("ID")
	require.True(t, ok)
	assert.Equal(t, []float64{1, 2}, ids)
}

func TestAttachFieldDimensionMismatch(t *testing.T) {
	col := NewPoints([]Coord{{0, 0}, {1, 1}, {2, 2}}, crs.WGS84)
	require.NoError(t, col.AttachField("a", []float64{1, 2, 3}))

	err := col.AttachField("b", []float64{1, 2})
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	// no partial write: table unchanged
	assert.Len(t, col.Fields(), 1)
	_, ok := col.Field("b")
	assert.False(t, ok)
}

func TestAttachFieldOverwrite(t *testing.T) {
	col := NewPoints([]Coord{{0, 0}, {1, 1}}, crs.WGS84)
	require.NoError(t, col.AttachField("v", []float64{1, 2}))
	require.NoError(t, col.AttachField("w", []float64{3, 4}))
	require.NoError(t, col.AttachField("v", []float64{5, 6}))

	assert.Len(t, col.Fields(), 2)
	assert.Equal(t, "v", col.Fields()[0].Name) // insertion order kept

	v, _ := col.Field("v")
	assert.Equal(t, []float64{5, 6}, v)
}

func TestPolygonAutoClose(t *testing.T) {
	coords := []Coord{{-116.8, 41.3}, {-114.2, 42.9}, {-112.9, 42.4}}
	col, err := NewPolygons(coords, []int{0, 0, 0}, crs.WGS84)
	require.NoError(t, err)

	ring := col.PartCoords(0)
	require.Len(t, ring, 4)
	assert.Equal(t, ring[0], ring[len(ring)-1])
	assert.Equal(t, Coord{-116.8, 41.3}, ring[3])
}

func TestPolygonAlreadyClosed(t *testing.T) {
	coords := []Coord{{0, 0}, {4, 0}, {4, 4}, {0, 0}}
	col, err := NewPolygons(coords, []int{0, 0, 0, 0}, crs.WGS84)
	require.NoError(t, err)
	assert.Len(t, col.PartCoords(0), 4)
}

func TestPolygonTooFewDistinct(t *testing.T) {
	coords := []Coord{{0, 0}, {1, 1}, {0, 0}}
	_, err := NewPolygons(coords, []int{0, 0, 0}, crs.WGS84)
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestLineMinimumPoints(t *testing.T) {
	_, err := NewLines([]Coord{{0, 0}}, []int{0}, crs.WGS84)
	assert.ErrorIs(t, err, ErrInvalidGeometry)

	col, err := NewLines([]Coord{{0, 0}, {1, 1}}, []int{0, 0}, crs.WGS84)
	require.NoError(t, err)
	assert.Equal(t, 1, col.FeatureCount())
}

func TestLinePartsMismatch(t *testing.T) {
	_, err := NewLines([]Coord{{0, 0}, {1, 1}}, []int{0}, crs.WGS84)
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestLineScatteredParts(t *testing.T) {
	coords := []Coord{{0, 0}, {1, 1}, {2, 2}, {3, 3}}
	_, err := NewLines(coords, []int{0, 1, 0, 1}, crs.WGS84)
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestMultiPartLines(t *testing.T) {
	coords := []Coord{{0, 0}, {1, 1}, {2, 2}, {5, 5}, {6, 6}}
	col, err := NewLines(coords, []int{7, 7, 7, 9, 9}, crs.WGS84)
	require.NoError(t, err)

	assert.Equal(t, 2, col.FeatureCount())
	assert.Len(t, col.PartCoords(0), 3)
	assert.Len(t, col.PartCoords(1), 2)
}

func TestSetCRSKeepsCoordinates(t *testing.T) {
	col := NewPoints([]Coord{{-116.8, 41.3}}, crs.WGS84)
	col.SetCRS(crs.WebMercator)

	assert.Equal(t, Coord{-116.8, 41.3}, col.Coords()[0])
	assert.False(t, col.CRS().IsGeographic())
}

func TestExtent(t *testing.T) {
	col := NewPoints([]Coord{{-116.8, 41.3}, {-114.2, 42.9}, {-112.9, 42.4}}, crs.WGS84)
	e := col.Extent()

	assert.Equal(t, Extent{MinX: -116.8, MinY: 41.3, MaxX: -112.9, MaxY: 42.9}, e)
	assert.InDelta(t, 3.9, e.Width(), 1e-9)
}

func TestReproject(t *testing.T) {
	col := NewPoints([]Coord{{0, 0}}, crs.WGS84)
	require.NoError(t, col.AttachField("ID", []float64{1}))

	out, err := col.Reproject(crs.WebMercator)
	require.NoError(t, err)

	// the origin maps to the origin under spherical mercator
	assert.InDelta(t, 0, out.Coords()[0].X, 1e-6)
	assert.InDelta(t, 0, out.Coords()[0].Y, 1e-6)

	// attributes carry over, receiver untouched
	ids, ok := out.Field("ID")
	require.True(t, ok)
	assert.Equal(t, []float64{1}, ids)
	assert.True(t, col.CRS().IsGeographic())
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("points")
	require.NoError(t, err)
	assert.Equal(t, KindPoint, k)
	assert.Equal(t, "point", k.String())

	_, err = ParseKind("hexagon")
	assert.ErrorIs(t, err, ErrMalformedInput)
}
