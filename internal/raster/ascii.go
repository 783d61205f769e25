package raster

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/geosketch/geosketch/internal/crs"
	"github.com/geosketch/geosketch/internal/geom"
)

// asciiNoData is the sentinel written for no-value cells in the ESRI ASCII
// grid exchange format.
const asciiNoData = -9999.0

// WriteASCII writes the grid as an ESRI ASCII grid. The format carries one
// cellsize for both axes, so grids with differing x and y resolution cannot
// be expressed and are rejected.
func (g *Grid) WriteASCII(w io.Writer) error {
	if math.Abs(g.ResX()-g.ResY()) > 1e-9 {
		return fmt.Errorf("%w: ascii grid needs square cells, have %g x %g", geom.ErrMalformedInput, g.ResX(), g.ResY())
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "ncols %d\n", g.cols)
	fmt.Fprintf(bw, "nrows %d\n", g.rows)
	fmt.Fprintf(bw, "xllcorner %g\n", g.extent.MinX)
	fmt.Fprintf(bw, "yllcorner %g\n", g.extent.MinY)
	fmt.Fprintf(bw, "cellsize %g\n", g.ResX())
	fmt.Fprintf(bw, "NODATA_value %g\n", asciiNoData)

	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if c > 0 {
				if err := bw.WriteByte(' '); err != nil {
					return err
				}
			}
			v := g.cells[r*g.cols+c]
			if !HasValue(v) {
				v = asciiNoData
			}
			if _, err := bw.WriteString(strconv.FormatFloat(v, 'g', -1, 64)); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// ReadASCII parses an ESRI ASCII grid. The resulting grid carries the given
// CRS label; the format itself stores none.
func ReadASCII(r io.Reader, c crs.CRS) (*Grid, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	header := map[string]float64{}
	var body []float64
	nodata := asciiNoData

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)

		// Header lines are "key value"; anything else is cell data.
		if len(fields) == 2 && len(body) == 0 {
			if v, err := strconv.ParseFloat(fields[1], 64); err == nil {
				switch key := strings.ToLower(fields[0]); key {
				case "ncols", "nrows", "xllcorner", "yllcorner", "cellsize", "nodata_value":
					header[key] = v
					if key == "nodata_value" {
						nodata = v
					}
					continue
				}
			}
		}

		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: ascii grid cell %q: %v", geom.ErrMalformedInput, f, err)
			}
			if v == nodata {
				v = math.NaN()
			}
			body = append(body, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	for _, k := range []string{"ncols", "nrows", "xllcorner", "yllcorner", "cellsize"} {
		if _, ok := header[k]; !ok {
			return nil, fmt.Errorf("%w: ascii grid missing %s header", geom.ErrMalformedInput, k)
		}
	}

	rows := int(header["nrows"])
	cols := int(header["ncols"])
	size := header["cellsize"]
	ext := geom.Extent{
		MinX: header["xllcorner"],
		MinY: header["yllcorner"],
		MaxX: header["xllcorner"] + float64(cols)*size,
		MaxY: header["yllcorner"] + float64(rows)*size,
	}

	g, err := New(rows, cols, ext, c)
	if err != nil {
		return nil, err
	}
	if err := g.SetValues(body); err != nil {
		return nil, err
	}

	return g, nil
}
