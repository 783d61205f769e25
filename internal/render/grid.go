package render

import (
	"github.com/geosketch/geosketch/internal/geom"
	"github.com/geosketch/geosketch/internal/raster"
)

// DrawGrid paints every populated cell of g as a colored rectangle, scaled
// between the grid's min and max values on the ramp. A grid with no
// populated cells leaves the canvas untouched (an empty frame, not an
// error).
func (c *Canvas) DrawGrid(g *raster.Grid, ramp Ramp) {
	stats := g.Summary()
	if stats.Count == 0 {
		return
	}
	span := stats.Max - stats.Min

	ext := g.Extent()
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			v, err := g.Value(row, col)
			if err != nil || !raster.HasValue(v) {
				continue
			}

			t := 0.5
			if span > 0 {
				t = (v - stats.Min) / span
			}
			fill := ramp.At(t)

			// cell corners in data space, row 0 at the top edge
			x0, y0 := c.pixel(geom.Coord{
				X: ext.MinX + float64(col)*g.ResX(),
				Y: ext.MaxY - float64(row)*g.ResY(),
			})
			x1, y1 := c.pixel(geom.Coord{
				X: ext.MinX + float64(col+1)*g.ResX(),
				Y: ext.MaxY - float64(row+1)*g.ResY(),
			})
			for y := y0; y <= y1; y++ {
				for x := x0; x <= x1; x++ {
					c.set(x, y, fill)
				}
			}
		}
	}
}
