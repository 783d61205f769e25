package render

import (
	"fmt"
	"strings"

	"github.com/geosketch/geosketch/internal/geom"

	"github.com/tdewolff/minify/v2"
	svgmin "github.com/tdewolff/minify/v2/svg"
)

// EncodeSVG renders a vector collection as a minified SVG document sized by
// opts. Raster grids have no vector form and are not supported here.
func EncodeSVG(col *geom.Collection, st Style, opts Options) (string, error) {
	opts = opts.withDefaults()
	st = st.withDefaults()

	// Reuse the canvas projection without painting pixels.
	c := NewCanvas(col.Extent(), opts)

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		opts.Width, opts.Height, opts.Width, opts.Height)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="%s"/>`,
		opts.Width, opts.Height, hex(opts.Background.R, opts.Background.G, opts.Background.B))

	stroke := hex(st.Color.R, st.Color.G, st.Color.B)

	switch col.Kind() {
	case geom.KindPoint:
		colorT := normalized(col, st.ColorField)
		sizeT := normalized(col, st.SizeField)
		for i, p := range col.Coords() {
			x, y := c.pixel(p)
			fill := stroke
			if st.ColorField != "" {
				rc := st.Ramp.At(colorT[i])
				fill = hex(rc.R, rc.G, rc.B)
			}
			r := st.PointRadius
			if st.SizeField != "" {
				r = int(float64(st.PointRadius) * (0.5 + 1.5*sizeT[i]))
				if r < 1 {
					r = 1
				}
			}
			fmt.Fprintf(&b, `<circle cx="%d" cy="%d" r="%d" fill="%s"/>`, x, y, r, fill)
		}

	case geom.KindLine:
		for i := 0; i < col.FeatureCount(); i++ {
			fmt.Fprintf(&b, `<polyline points="%s" fill="none" stroke="%s" stroke-width="%d"/>`,
				pointList(c, col.PartCoords(i)), stroke, st.LineWidth)
		}

	case geom.KindPolygon:
		for i := 0; i < col.FeatureCount(); i++ {
			fmt.Fprintf(&b, `<polygon points="%s" fill="%s" fill-opacity="%.2f" stroke="%s" stroke-width="%d"/>`,
				pointList(c, col.PartCoords(i)), stroke, float64(st.FillAlpha)/255, stroke, st.LineWidth)
		}
	}
	b.WriteString(`</svg>`)

	m := minify.New()
	m.AddFunc("image/svg+xml", svgmin.Minify)
	out, err := m.String("image/svg+xml", b.String())
	if err != nil {
		return "", fmt.Errorf("minifying svg: %w", err)
	}

	return out, nil
}

func pointList(c *Canvas, coords []geom.Coord) string {
	parts := make([]string, len(coords))
	for i, p := range coords {
		x, y := c.pixel(p)
		parts[i] = fmt.Sprintf("%d,%d", x, y)
	}

	return strings.Join(parts, " ")
}

func hex(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
