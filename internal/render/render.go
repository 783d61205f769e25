// Package render rasterizes geometry collections and grids into images,
// SVG documents, and terminal previews.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"sort"

	"github.com/geosketch/geosketch/internal/geom"

	"gonum.org/v1/gonum/floats"
)

// Options sizes a canvas. The zero value picks usable defaults; the canvas
// is always an explicit value passed into drawing calls, never an ambient
// device.
type Options struct {
	Width      int
	Height     int
	Margin     int
	Background color.RGBA
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 800
	}
	if o.Height <= 0 {
		o.Height = 600
	}
	if o.Margin < 0 {
		o.Margin = 0
	}
	if o.Background == (color.RGBA{}) {
		o.Background = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}

	return o
}

// Canvas is an image plus the data-to-pixel projection for one extent.
type Canvas struct {
	img  *image.RGBA
	opts Options
	ext  geom.Extent
}

// NewCanvas allocates a background-filled canvas projecting ext onto the
// pixel grid. Degenerate extents (single point, empty data) are padded so
// rendering degrades to a visibly empty frame instead of failing.
func NewCanvas(ext geom.Extent, opts Options) *Canvas {
	opts = opts.withDefaults()

	if ext.Width() <= 0 {
		ext.MinX -= 1
		ext.MaxX += 1
	}
	if ext.Height() <= 0 {
		ext.MinY -= 1
		ext.MaxY += 1
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: opts.Background}, image.Point{}, draw.Src)

	return &Canvas{img: img, opts: opts, ext: ext}
}

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Extent returns the projected data extent.
func (c *Canvas) Extent() geom.Extent {
	return c.ext
}

// pixel projects a data coordinate to pixel coordinates. Y grows downward
// on the image, so the vertical axis is flipped.
func (c *Canvas) pixel(p geom.Coord) (int, int) {
	w := c.opts.Width - 2*c.opts.Margin - 1
	h := c.opts.Height - 2*c.opts.Margin - 1
	nx := (p.X - c.ext.MinX) / c.ext.Width()
	ny := (p.Y - c.ext.MinY) / c.ext.Height()

	return c.opts.Margin + int(nx*float64(w) + 0.5), c.opts.Margin + int((1-ny)*float64(h) + 0.5)
}

// Style controls how one collection is drawn. ColorField and SizeField name
// attribute columns used as per-feature aesthetics; a missing or
// zero-variance field degrades to the uniform base encoding.
type Style struct {
	Color       color.RGBA
	PointRadius int
	LineWidth   int
	FillAlpha   uint8
	ColorField  string
	SizeField   string
	Ramp        Ramp
}

func (s Style) withDefaults() Style {
	if s.Color == (color.RGBA{}) {
		s.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	}
	if s.PointRadius <= 0 {
		s.PointRadius = 4
	}
	if s.LineWidth <= 0 {
		s.LineWidth = 1
	}
	if s.FillAlpha == 0 {
		s.FillAlpha = 96
	}
	if len(s.Ramp.Stops) == 0 {
		s.Ramp = Viridis
	}

	return s
}

// DrawCollection draws every feature of col onto the canvas.
func (c *Canvas) DrawCollection(col *geom.Collection, st Style) {
	st = st.withDefaults()

	switch col.Kind() {
	case geom.KindPoint:
		c.drawPoints(col, st)
	case geom.KindLine:
		c.drawLines(col, st)
	case geom.KindPolygon:
		c.drawPolygons(col, st)
	}
}

// normalized maps a field to [0,1] per feature. A missing field or one with
// no spread returns uniform mid-scale values.
func normalized(col *geom.Collection, name string) []float64 {
	n := col.FeatureCount()
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	vals, ok := col.Field(name)
	if !ok || len(vals) != n {
		for i := range out {
			out[i] = 0.5
		}
		return out
	}

	lo, hi := floats.Min(vals), floats.Max(vals)
	if hi <= lo {
		for i := range out {
			out[i] = 0.5
		}
		return out
	}
	for i, v := range vals {
		out[i] = (v - lo) / (hi - lo)
	}

	return out
}

func (c *Canvas) drawPoints(col *geom.Collection, st Style) {
	colorT := normalized(col, st.ColorField)
	sizeT := normalized(col, st.SizeField)

	for i, p := range col.Coords() {
		x, y := c.pixel(p)

		fill := st.Color
		if st.ColorField != "" {
			fill = st.Ramp.At(colorT[i])
		}
		r := st.PointRadius
		if st.SizeField != "" {
			// scale between half and double the base radius
			r = int(float64(st.PointRadius) * (0.5 + 1.5*sizeT[i]))
			if r < 1 {
				r = 1
			}
		}
		c.fillCircle(x, y, r, fill)
	}
}

func (c *Canvas) drawLines(col *geom.Collection, st Style) {
	for i := 0; i < col.FeatureCount(); i++ {
		part := col.PartCoords(i)
		for j := 1; j < len(part); j++ {
			x0, y0 := c.pixel(part[j-1])
			x1, y1 := c.pixel(part[j])
			c.strokeLine(x0, y0, x1, y1, st.LineWidth, st.Color)
		}
	}
}

func (c *Canvas) drawPolygons(col *geom.Collection, st Style) {
	fill := st.Color
	fill.A = st.FillAlpha

	for i := 0; i < col.FeatureCount(); i++ {
		ring := col.PartCoords(i)
		if len(ring) < 3 {
			continue
		}
		px := make([][2]int, len(ring))
		for j, p := range ring {
			x, y := c.pixel(p)
			px[j] = [2]int{x, y}
		}
		c.fillRing(px, fill)
		for j := 1; j < len(px); j++ {
			c.strokeLine(px[j-1][0], px[j-1][1], px[j][0], px[j][1], st.LineWidth, st.Color)
		}
	}
}

// fillRing fills a projected ring with the even-odd scanline rule.
func (c *Canvas) fillRing(ring [][2]int, fill color.RGBA) {
	minY, maxY := ring[0][1], ring[0][1]
	for _, p := range ring {
		if p[1] < minY {
			minY = p[1]
		}
		if p[1] > maxY {
			maxY = p[1]
		}
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= c.opts.Height {
		maxY = c.opts.Height - 1
	}

	for y := minY; y <= maxY; y++ {
		var xs []int
		for i := 0; i < len(ring); i++ {
			a := ring[i]
			b := ring[(i+1)%len(ring)]
			if a[1] == b[1] { // horizontal edge: skip
				continue
			}
			if (y >= a[1] && y < b[1]) || (y >= b[1] && y < a[1]) {
				t := float64(y-a[1]) / float64(b[1]-a[1])
				xs = append(xs, a[0]+int(t*float64(b[0]-a[0])))
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := xs[i]; x <= xs[i+1]; x++ {
				c.blend(x, y, fill)
			}
		}
	}
}

// strokeLine draws a Bresenham line stamped with a square pen of the given
// width.
func (c *Canvas) strokeLine(x0, y0, x1, y1, width int, col color.RGBA) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy

	for {
		c.stamp(x0, y0, width, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) stamp(x, y, width int, col color.RGBA) {
	half := width / 2
	for oy := -half; oy <= half; oy++ {
		for ox := -half; ox <= half; ox++ {
			c.set(x+ox, y+oy, col)
		}
	}
}

func (c *Canvas) fillCircle(cx, cy, r int, col color.RGBA) {
	for oy := -r; oy <= r; oy++ {
		for ox := -r; ox <= r; ox++ {
			if ox*ox+oy*oy <= r*r {
				c.set(cx+ox, cy+oy, col)
			}
		}
	}
}

func (c *Canvas) set(x, y int, col color.RGBA) {
	if x < 0 || y < 0 || x >= c.opts.Width || y >= c.opts.Height {
		return
	}
	c.img.SetRGBA(x, y, col)
}

// blend alpha-composites col over the existing pixel.
func (c *Canvas) blend(x, y int, col color.RGBA) {
	if x < 0 || y < 0 || x >= c.opts.Width || y >= c.opts.Height {
		return
	}
	dst := c.img.RGBAAt(x, y)
	a := uint32(col.A)
	ia := 255 - a
	c.img.SetRGBA(x, y, color.RGBA{
		R: uint8((uint32(col.R)*a + uint32(dst.R)*ia) / 255),
		G: uint8((uint32(col.G)*a + uint32(dst.G)*ia) / 255),
		B: uint8((uint32(col.B)*a + uint32(dst.B)*ia) / 255),
		A: 255,
	})
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
