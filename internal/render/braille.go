package render

import (
	"sort"
	"strings"

	"github.com/geosketch/geosketch/internal/geom"
	"github.com/geosketch/geosketch/internal/raster"
)

// brailleBuf is a terminal drawing surface with 2x4 micro-pixels per cell,
// composed into Unicode braille characters.
type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	for i := range m {
		m[i] = make([]uint8, w)
	}

	return &brailleBuf{w: w, h: h, m: m}
}

func (b *brailleBuf) setPixel(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}

	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	b.m[cy][cx] |= bit
}

func (b *brailleBuf) drawLine(x0, y0, x1, y1 int) {
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
		b.setPixel(x0, y0)
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

func (b *brailleBuf) String() string {
	lines := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		row := make([]rune, b.w)
		for x := 0; x < b.w; x++ {
			if mask := b.m[y][x]; mask == 0 {
				row[x] = ' '
			} else {
				row[x] = rune(0x2800 + int(mask))
			}
		}
		lines[y] = string(row)
	}

	return strings.Join(lines, "\n")
}

// Braille renders a collection into a w x h character preview for the
// terminal. Empty collections produce a blank frame.
func Braille(col *geom.Collection, w, h int) string {
	if w <= 0 {
		w = 60
	}
	if h <= 0 {
		h = 20
	}
	b := newBrailleBuf(w, h)

	ext := col.Extent()
	if ext.Width() <= 0 {
		ext.MinX -= 1
		ext.MaxX += 1
	}
	if ext.Height() <= 0 {
		ext.MinY -= 1
		ext.MaxY += 1
	}

	wMic, hMic := w*2, h*4
	micro := func(p geom.Coord) (int, int) {
		nx := (p.X - ext.MinX) / ext.Width()
		ny := (p.Y - ext.MinY) / ext.Height()

		return int(nx * float64(wMic-1)), int((1 - ny) * float64(hMic-1))
	}

	switch col.Kind() {
	case geom.KindPoint:
		for _, p := range col.Coords() {
			mx, my := micro(p)
			b.setPixel(mx, my)
		}

	case geom.KindLine:
		for i := 0; i < col.FeatureCount(); i++ {
			part := col.PartCoords(i)
			for j := 1; j < len(part); j++ {
				x0, y0 := micro(part[j-1])
				x1, y1 := micro(part[j])
				b.drawLine(x0, y0, x1, y1)
			}
		}

	case geom.KindPolygon:
		for i := 0; i < col.FeatureCount(); i++ {
			ring := col.PartCoords(i)
			px := make([][2]int, len(ring))
			for j, p := range ring {
				px[j][0], px[j][1] = micro(p)
			}
			fillMicroRing(b, px, hMic)
			for j := 1; j < len(px); j++ {
				b.drawLine(px[j-1][0], px[j-1][1], px[j][0], px[j][1])
			}
		}
	}

	return b.String()
}

// fillMicroRing fills a ring on the micro grid with the even-odd rule.
func fillMicroRing(b *brailleBuf, ring [][2]int, hMic int) {
	for y := 0; y < hMic; y++ {
		var xs []int
		for i := 0; i < len(ring); i++ {
			a := ring[i]
			c := ring[(i+1)%len(ring)]
			if a[1] == c[1] {
				continue
			}
			if (y >= a[1] && y < c[1]) || (y >= c[1] && y < a[1]) {
				t := float64(y-a[1]) / float64(c[1]-a[1])
				xs = append(xs, a[0]+int(t*float64(c[0]-a[0])))
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := xs[i]; x <= xs[i+1]; x++ {
				b.setPixel(x, y)
			}
		}
	}
}

var shadeRunes = []rune(" .:-=+*#%@")

// GridShade renders a raster as shaded characters, nearest-cell sampled to
// w x h. No-value cells stay blank; an unpopulated grid is all blank.
func GridShade(g *raster.Grid, w, h int) string {
	if w <= 0 {
		w = 60
	}
	if h <= 0 {
		h = 20
	}

	stats := g.Summary()
	span := stats.Max - stats.Min

	lines := make([]string, h)
	for y := 0; y < h; y++ {
		row := make([]rune, w)
		for x := 0; x < w; x++ {
			row[x] = ' '
			if stats.Count == 0 {
				continue
			}
			r := y * g.Rows() / h
			c := x * g.Cols() / w
			v, err := g.Value(r, c)
			if err != nil || !raster.HasValue(v) {
				continue
			}
			t := 0.5
			if span > 0 {
				t = (v - stats.Min) / span
			}
			idx := int(t * float64(len(shadeRunes)-1))
			row[x] = shadeRunes[idx]
		}
		lines[y] = string(row)
	}

	return strings.Join(lines, "\n")
}
