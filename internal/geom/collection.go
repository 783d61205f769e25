package geom

import (
	"fmt"

	"github.com/geosketch/geosketch/internal/crs"
)

// Field is one named attribute column, one value per feature.
type Field struct {
	Name   string
	Values []float64
}

// Collection is a set of same-kind features sharing one CRS: a flat
// coordinate sequence, a part index per coordinate (lines and polygons), and
// an ordered attribute table.
type Collection struct {
	kind   Kind
	crs    crs.CRS
	coords []Coord
	// parts[i] is the feature index owning coords[i]; nil for point
	// collections where every coordinate is its own feature.
	parts  []int
	fields []Field
}

// NewPoints builds a point collection; every coordinate is one feature.
// An empty collection is allowed and renders as an empty frame.
func NewPoints(coords []Coord, c crs.CRS) *Collection {
	return &Collection{
		kind:   KindPoint,
		crs:    c,
		coords: append([]Coord(nil), coords...),
	}
}

// NewLines builds a line collection. parts groups coordinates into features
// and must align 1:1 with coords; ids must be grouped contiguously. Every
// part needs at least 2 coordinates.
func NewLines(coords []Coord, parts []int, c crs.CRS) (*Collection, error) {
	runs, norm, err := splitParts(coords, parts)
	if err != nil {
		return nil, err
	}
	for i, run := range runs {
		if len(run) < 2 {
			return nil, fmt.Errorf("%w: line part %d has %d coordinates, need at least 2", ErrInvalidGeometry, i, len(run))
		}
	}

	col := &Collection{kind: KindLine, crs: c, parts: norm}
	for _, run := range runs {
		col.coords = append(col.coords, run...)
	}

	return col, nil
}

// NewPolygons builds a polygon collection; each part is one ring. A ring
// needs at least 3 distinct coordinates. Rings whose first and last
// coordinates differ are closed by appending the first coordinate.
func NewPolygons(coords []Coord, parts []int, c crs.CRS) (*Collection, error) {
	runs, _, err := splitParts(coords, parts)
	if err != nil {
		return nil, err
	}

	col := &Collection{kind: KindPolygon, crs: c}
	for i, run := range runs {
		if distinct(run) < 3 {
			return nil, fmt.Errorf("%w: polygon ring %d has %d distinct coordinates, need at least 3", ErrInvalidGeometry, i, distinct(run))
		}
		if run[0] != run[len(run)-1] {
			run = append(run, run[0])
		}
		for range run {
			col.parts = append(col.parts, i)
		}
		col.coords = append(col.coords, run...)
	}

	return col, nil
}

// splitParts validates the coords/parts alignment and returns one coordinate
// run per part plus the normalized (0-based, dense) part index column.
func splitParts(coords []Coord, parts []int) ([][]Coord, []int, error) {
	if len(parts) != len(coords) {
		return nil, nil, fmt.Errorf("%w: %d coordinates but %d part identifiers", ErrMalformedInput, len(coords), len(parts))
	}
	if len(coords) == 0 {
		return nil, nil, fmt.Errorf("%w: empty coordinate sequence", ErrInvalidGeometry)
	}

	var runs [][]Coord
	norm := make([]int, 0, len(coords))
	seen := make(map[int]bool)
	cur := parts[0]
	run := []Coord{coords[0]}
	norm = append(norm, 0)

	for i := 1; i < len(coords); i++ {
		if parts[i] == cur {
			run = append(run, coords[i])
			norm = append(norm, len(runs))
			continue
		}
		if seen[parts[i]] {
			return nil, nil, fmt.Errorf("%w: part identifier %d is not contiguous", ErrMalformedInput, parts[i])
		}
		seen[cur] = true
		runs = append(runs, run)
		cur = parts[i]
		run = []Coord{coords[i]}
		norm = append(norm, len(runs))
	}
	runs = append(runs, run)

	return runs, norm, nil
}

func distinct(coords []Coord) int {
	seen := make(map[Coord]bool, len(coords))
	for _, c := range coords {
		seen[c] = true
	}

	return len(seen)
}

// Kind returns the shape tag.
func (c *Collection) Kind() Kind {
	return c.kind
}

// CRS returns the reference system label.
func (c *Collection) CRS() crs.CRS {
	return c.crs
}

// SetCRS rebinds the reference system label. Coordinates are untouched;
// relabeling is not reprojection, see Reproject.
func (c *Collection) SetCRS(v crs.CRS) {
	c.crs = v
}

// FeatureCount returns the number of features: one per coordinate for
// points, one per part otherwise.
func (c *Collection) FeatureCount() int {
	if c.kind == KindPoint {
		return len(c.coords)
	}
	if len(c.parts) == 0 {
		return 0
	}

	return c.parts[len(c.parts)-1] + 1
}

// Coords returns the flat coordinate sequence.
func (c *Collection) Coords() []Coord {
	return c.coords
}

// PartCoords returns the coordinates of feature i (a single point, one line
// part, or one closed ring).
func (c *Collection) PartCoords(i int) []Coord {
	if c.kind == KindPoint {
		if i < 0 || i >= len(c.coords) {
			return nil
		}
		return c.coords[i : i+1]
	}

	var out []Coord
	for j, p := range c.parts {
		if p == i {
			out = append(out, c.coords[j])
		}
	}

	return out
}

// Extent returns the bounding box over all coordinates.
func (c *Collection) Extent() Extent {
	return ExtentOf(c.coords)
}

// AttachField adds or replaces a named attribute column. The value count
// must equal the feature count; on mismatch the table is left unchanged.
func (c *Collection) AttachField(name string, values []float64) error {
	if len(values) != c.FeatureCount() {
		return fmt.Errorf("%w: field %q has %d values for %d features", ErrDimensionMismatch, name, len(values), c.FeatureCount())
	}

	vals := append([]float64(nil), values...)
	for i := range c.fields {
		if c.fields[i].Name == name {
			c.fields[i].Values = vals
			return nil
		}
	}
	c.fields = append(c.fields, Field{Name: name, Values: vals})

	return nil
}

// Field returns the named attribute column.
func (c *Collection) Field(name string) ([]float64, bool) {
	for _, f := range c.fields {
		if f.Name == name {
			return f.Values, true
		}
	}

	return nil, false
}

// Fields returns the attribute table in insertion order.
func (c *Collection) Fields() []Field {
	return c.fields
}

// Reproject computes a new collection with coordinates transformed into dst.
// The receiver is never mutated; attributes and part structure carry over.
func (c *Collection) Reproject(dst crs.CRS) (*Collection, error) {
	t, err := c.crs.NewTransform(dst)
	if err != nil {
		return nil, err
	}

	out := &Collection{
		kind:   c.kind,
		crs:    dst,
		coords: make([]Coord, len(c.coords)),
		parts:  append([]int(nil), c.parts...),
	}
	for _, f := range c.fields {
		out.fields = append(out.fields, Field{Name: f.Name, Values: append([]float64(nil), f.Values...)})
	}
	for i, p := range c.coords {
		x, y, err := t(p.X, p.Y)
		if err != nil {
			return nil, fmt.Errorf("reprojecting coordinate %d: %w", i, err)
		}
		out.coords[i] = Coord{X: x, Y: y}
	}

	return out, nil
}
