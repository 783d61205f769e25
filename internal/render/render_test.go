package render

import (
	"image/color"
	"strings"
	"testing"

	"github.com/geosketch/geosketch/internal/crs"
	"github.com/geosketch/geosketch/internal/geom"
	"github.com/geosketch/geosketch/internal/raster"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanvasBackground(t *testing.T) {
	c := NewCanvas(geom.Extent{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}, Options{Width: 10, Height: 10})

	assert.Equal(t, 10, c.Image().Bounds().Dx())
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, c.Image().RGBAAt(5, 5))
}

func TestDegenerateExtentPadded(t *testing.T) {
	// a single point has a zero-area extent; rendering must not divide by zero
	c := NewCanvas(geom.ExtentOf([]geom.Coord{{X: 3, Y: 7}}), Options{Width: 20, Height: 20})
	col := geom.NewPoints([]geom.Coord{{X: 3, Y: 7}}, crs.WGS84)
	c.DrawCollection(col, Style{})

	// the point lands mid-canvas
	assert.NotEqual(t, color.RGBA{255, 255, 255, 255}, c.Image().RGBAAt(10, 10))
}

func TestDrawPointsUniformWhenNoVariance(t *testing.T) {
	col := geom.NewPoints([]geom.Coord{{X: 0, Y: 0}, {X: 10, Y: 10}}, crs.WGS84)
	require.NoError(t, col.AttachField("v", []float64{5, 5}))

	c := NewCanvas(col.Extent(), Options{Width: 50, Height: 50, Margin: 5})
	c.DrawCollection(col, Style{ColorField: "v", PointRadius: 3})

	// both points get the mid-ramp color
	want := Viridis.At(0.5)
	x0, y0 := c.pixel(geom.Coord{X: 0, Y: 0})
	x1, y1 := c.pixel(geom.Coord{X: 10, Y: 10})
	assert.Equal(t, want, c.Image().RGBAAt(x0, y0))
	assert.Equal(t, want, c.Image().RGBAAt(x1, y1))
}

func TestDrawPolygonFillsInterior(t *testing.T) {
	coords := []geom.Coord{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	col, err := geom.NewPolygons(coords, []int{0, 0, 0, 0}, crs.WGS84)
	require.NoError(t, err)

	c := NewCanvas(col.Extent(), Options{Width: 40, Height: 40})
	c.DrawCollection(col, Style{})

	// interior is blended, no longer pure background
	assert.NotEqual(t, color.RGBA{255, 255, 255, 255}, c.Image().RGBAAt(20, 20))
}

func TestDrawEmptyCollection(t *testing.T) {
	col := geom.NewPoints(nil, crs.WGS84)
	c := NewCanvas(col.Extent(), Options{Width: 10, Height: 10})
	c.DrawCollection(col, Style{})

	// visibly empty frame, not a failure
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, c.Image().RGBAAt(5, 5))
}

func TestDrawGrid(t *testing.T) {
	ext := geom.Extent{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	g, err := raster.New(2, 2, ext, crs.WGS84)
	require.NoError(t, err)
	require.NoError(t, g.SetValues([]float64{1, 2, 3, 4}))

	c := NewCanvas(ext, Options{Width: 20, Height: 20})
	c.DrawGrid(g, Viridis)

	assert.Equal(t, Viridis.At(0), c.Image().RGBAAt(2, 2))   // min cell, top-left
	assert.Equal(t, Viridis.At(1), c.Image().RGBAAt(17, 17)) // max cell, bottom-right
}

func TestDrawGridUnpopulated(t *testing.T) {
	ext := geom.Extent{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	g, err := raster.New(2, 2, ext, crs.WGS84)
	require.NoError(t, err)

	c := NewCanvas(ext, Options{Width: 20, Height: 20})
	c.DrawGrid(g, Viridis)

	assert.Equal(t, color.RGBA{255, 255, 255, 255}, c.Image().RGBAAt(10, 10))
}

func TestRampEndpoints(t *testing.T) {
	r := Ramp{Stops: []color.RGBA{{0, 0, 0, 255}, {255, 255, 255, 255}}}

	assert.Equal(t, color.RGBA{0, 0, 0, 255}, r.At(-1))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, r.At(2))
	assert.Equal(t, color.RGBA{128, 128, 128, 255}, r.At(0.5))
}

func TestRampEmpty(t *testing.T) {
	var r Ramp
	assert.Equal(t, color.RGBA{128, 128, 128, 255}, r.At(0.3))
}

func TestEncodeSVG(t *testing.T) {
	col := geom.NewPoints([]geom.Coord{{X: 0, Y: 0}, {X: 10, Y: 10}}, crs.WGS84)

	doc, err := EncodeSVG(col, Style{}, Options{Width: 100, Height: 100})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(doc, "<svg"))
	assert.Contains(t, doc, "circle")
}

func TestEncodeSVGPolygon(t *testing.T) {
	coords := []geom.Coord{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 8}}
	col, err := geom.NewPolygons(coords, []int{0, 0, 0}, crs.WGS84)
	require.NoError(t, err)

	doc, err := EncodeSVG(col, Style{}, Options{Width: 100, Height: 100})
	require.NoError(t, err)
	assert.Contains(t, doc, "polygon")
}

func TestBraille(t *testing.T) {
	col := geom.NewPoints([]geom.Coord{{X: 0, Y: 0}, {X: 5, Y: 5}}, crs.WGS84)
	out := Braille(col, 30, 10)

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 10)
	assert.Contains(t, out, string(rune(0x2800+0x40))) // some braille cell is set
}

func TestGridShade(t *testing.T) {
	g, err := raster.New(2, 2, geom.Extent{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}, crs.WGS84)
	require.NoError(t, err)
	require.NoError(t, g.SetValues([]float64{0, 0, 10, 10}))

	out := GridShade(g, 8, 4)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, out, "@") // max cells shaded darkest
	assert.Contains(t, out, " ")
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#1f77b4")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 255}, c)

	_, err = ParseColor("blue")
	assert.Error(t, err)

	c, err = ParseColor("")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{}, c)
}
