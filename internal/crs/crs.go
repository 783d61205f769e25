// Package crs handles coordinate reference system descriptors and the
// transforms between them.
package crs

import (
	"fmt"

	"github.com/ctessum/geom/proj"
)

// CRS is a coordinate reference system: a Proj4 descriptor string plus its
// parsed spatial reference. Assigning a CRS to data is a label, not a
// transformation; see NewTransform for actual reprojection.
type CRS struct {
	descriptor string
	sr         *proj.SR
}

// Parse parses a Proj4 descriptor string into a CRS.
// The descriptor is kept verbatim and returned unchanged by String.
func Parse(descriptor string) (CRS, error) {
	sr, err := proj.Parse(descriptor)
	if err != nil {
		return CRS{}, fmt.Errorf("crs: parsing %q: %w", descriptor, err)
	}

	return CRS{descriptor: descriptor, sr: sr}, nil
}

// MustParse is Parse for compile-time constants; it panics on error.
func MustParse(descriptor string) CRS {
	c, err := Parse(descriptor)
	if err != nil {
		panic(err)
	}

	return c
}

// String returns the original descriptor string, byte for byte.
func (c CRS) String() string {
	return c.descriptor
}

// IsZero reports whether the CRS has never been assigned.
func (c CRS) IsZero() bool {
	return c.sr == nil
}

// IsGeographic reports whether coordinates are angular (longitude/latitude)
// rather than planar.
func (c CRS) IsGeographic() bool {
	return c.sr != nil && c.sr.Name == "longlat"
}

// Transformer converts a coordinate pair between two reference systems.
type Transformer func(x, y float64) (float64, float64, error)

// NewTransform returns a transformer from c to dst.
func (c CRS) NewTransform(dst CRS) (Transformer, error) {
	if c.sr == nil || dst.sr == nil {
		return nil, fmt.Errorf("crs: transform requires both systems to be set")
	}

	t, err := c.sr.NewTransform(dst.sr)
	if err != nil {
		return nil, fmt.Errorf("crs: creating transform %q -> %q: %w", c.descriptor, dst.descriptor, err)
	}

	return Transformer(t), nil
}

// Common reference systems used throughout the tour and tests.
var (
	// WGS84 is the angular longitude/latitude system most raw GPS data uses.
	WGS84 = MustParse("+proj=longlat +datum=WGS84 +no_defs")

	// WebMercator is the planar system used by slippy web maps.
	WebMercator = MustParse("+proj=merc +a=6378137 +b=6378137 +lat_ts=0.0 +lon_0=0.0 +x_0=0.0 +y_0=0 +k=1.0 +units=m +nadgrids=@null +no_defs")
)
