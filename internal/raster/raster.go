// Package raster holds a dense grid of cell values referenced by an extent
// and a CRS.
package raster

import (
	"fmt"
	"math"

	"github.com/geosketch/geosketch/internal/crs"
	"github.com/geosketch/geosketch/internal/geom"
)

// Grid is a rows x cols raster. Cells are stored row-major with row 0 at the
// northern edge; a cell with no value holds NaN. The cell slice always has
// exactly rows*cols entries.
type Grid struct {
	rows   int
	cols   int
	extent geom.Extent
	crs    crs.CRS
	cells  []float64
}

// New allocates a grid with every cell set to no-value.
func New(rows, cols int, ext geom.Extent, c crs.CRS) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: grid needs positive dimensions, got %dx%d", geom.ErrMalformedInput, rows, cols)
	}
	if !ext.IsValid() {
		return nil, fmt.Errorf("%w: grid extent must span a positive area", geom.ErrMalformedInput)
	}

	g := &Grid{rows: rows, cols: cols, extent: ext, crs: c, cells: make([]float64, rows*cols)}
	for i := range g.cells {
		g.cells[i] = math.NaN()
	}

	return g, nil
}

// Rows returns the row count.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the column count.
func (g *Grid) Cols() int { return g.cols }

// Extent returns the spatial extent.
func (g *Grid) Extent() geom.Extent { return g.extent }

// CRS returns the reference system label.
func (g *Grid) CRS() crs.CRS { return g.crs }

// SetCRS rebinds the reference system label without touching the extent.
func (g *Grid) SetCRS(c crs.CRS) { g.crs = c }

// ResX returns the horizontal cell size, derived from extent and columns so
// it can never drift out of sync.
func (g *Grid) ResX() float64 {
	return g.extent.Width() / float64(g.cols)
}

// ResY returns the vertical cell size.
func (g *Grid) ResY() float64 {
	return g.extent.Height() / float64(g.rows)
}

// SetValues populates every cell from a row-major sequence of exactly
// rows*cols values. On a length mismatch the grid is left untouched.
func (g *Grid) SetValues(vals []float64) error {
	if len(vals) != g.rows*g.cols {
		return fmt.Errorf("%w: %d values for a %dx%d grid (%d cells)", geom.ErrDimensionMismatch, len(vals), g.rows, g.cols, g.rows*g.cols)
	}

	copy(g.cells, vals)

	return nil
}

// Value returns the cell at (row, col).
func (g *Grid) Value(row, col int) (float64, error) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return 0, fmt.Errorf("%w: cell (%d,%d) outside %dx%d grid", geom.ErrMalformedInput, row, col, g.rows, g.cols)
	}

	return g.cells[row*g.cols+col], nil
}

// Set writes one cell.
func (g *Grid) Set(row, col int, v float64) error {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return fmt.Errorf("%w: cell (%d,%d) outside %dx%d grid", geom.ErrMalformedInput, row, col, g.rows, g.cols)
	}
	g.cells[row*g.cols+col] = v

	return nil
}

// Values returns the row-major cell slice. Callers must not resize it.
func (g *Grid) Values() []float64 {
	return g.cells
}

// HasValue reports whether the cell holds a value.
func HasValue(v float64) bool {
	return !math.IsNaN(v)
}

// CellCenter returns the coordinate at the center of cell (row, col).
// Row 0 sits at the top (MaxY) edge.
func (g *Grid) CellCenter(row, col int) geom.Coord {
	return geom.Coord{
		X: g.extent.MinX + (float64(col)+0.5)*g.ResX(),
		Y: g.extent.MaxY - (float64(row)+0.5)*g.ResY(),
	}
}
