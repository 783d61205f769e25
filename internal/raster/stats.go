package raster

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes the populated cells of a grid.
type Stats struct {
	Count int
	Min   float64
	Max   float64
	Mean  float64
}

// Summary scans the grid, skipping no-value cells. Count is zero for an
// unpopulated grid and the other fields are then meaningless.
func (g *Grid) Summary() Stats {
	vals := make([]float64, 0, len(g.cells))
	for _, v := range g.cells {
		if HasValue(v) {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return Stats{}
	}

	return Stats{
		Count: len(vals),
		Min:   floats.Min(vals),
		Max:   floats.Max(vals),
		Mean:  stat.Mean(vals, nil),
	}
}
