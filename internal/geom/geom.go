// Package geom holds the vector geometry model: coordinate pairs, extents,
// and tagged collections of points, lines, and polygons with attribute data.
package geom

import "fmt"

// Coord is an ordered coordinate pair. Whether it means (longitude, latitude)
// or planar (x, y) depends on the CRS of the collection that owns it.
type Coord struct {
	X float64
	Y float64
}

// Extent is the rectangular bounding box of a geometry collection or raster.
type Extent struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// IsValid reports whether the extent spans a positive area.
func (e Extent) IsValid() bool {
	return e.MaxX > e.MinX && e.MaxY > e.MinY
}

// Width returns the horizontal span.
func (e Extent) Width() float64 {
	return e.MaxX - e.MinX
}

// Height returns the vertical span.
func (e Extent) Height() float64 {
	return e.MaxY - e.MinY
}

// Expand grows the extent to include the coordinate.
func (e Extent) Expand(c Coord) Extent {
	if c.X < e.MinX {
		e.MinX = c.X
	}
	if c.Y < e.MinY {
		e.MinY = c.Y
	}
	if c.X > e.MaxX {
		e.MaxX = c.X
	}
	if c.Y > e.MaxY {
		e.MaxY = c.Y
	}

	return e
}

// Union returns the smallest extent covering both.
func (e Extent) Union(o Extent) Extent {
	e = e.Expand(Coord{o.MinX, o.MinY})
	return e.Expand(Coord{o.MaxX, o.MaxY})
}

// ExtentOf computes the bounding box of a coordinate sequence.
// The zero Extent is returned for an empty sequence.
func ExtentOf(coords []Coord) Extent {
	if len(coords) == 0 {
		return Extent{}
	}

	e := Extent{MinX: coords[0].X, MinY: coords[0].Y, MaxX: coords[0].X, MaxY: coords[0].Y}
	for _, c := range coords[1:] {
		e = e.Expand(c)
	}

	return e
}

// Kind tags the shape a collection holds. Construction branches on the tag
// explicitly; there is no implicit coercion between kinds.
type Kind int

const (
	KindPoint Kind = iota
	KindLine
	KindPolygon
)

// String returns the lowercase kind name as used in scene files.
func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindLine:
		return "line"
	case KindPolygon:
		return "polygon"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind maps a scene-file kind name to its tag.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "point", "points":
		return KindPoint, nil
	case "line", "lines":
		return KindLine, nil
	case "polygon", "polygons":
		return KindPolygon, nil
	default:
		return 0, fmt.Errorf("%w: unknown geometry kind %q", ErrMalformedInput, s)
	}
}
