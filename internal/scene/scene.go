// Package scene handles the declarative YAML description of what to draw:
// vector layers with attributes and styling, and raster layers with values
// or a random generator.
package scene

import (
	"fmt"
	"os"

	"github.com/geosketch/geosketch/internal/crs"
	"github.com/geosketch/geosketch/internal/geom"
	"github.com/geosketch/geosketch/internal/raster"

	"gopkg.in/yaml.v3"
)

// Scene is the root scene file structure.
type Scene struct {
	Title  string  `yaml:"title,omitempty"`
	CRS    string  `yaml:"crs"`
	Width  int     `yaml:"width,omitempty"`
	Height int     `yaml:"height,omitempty"`
	Layers []Layer `yaml:"layers"`
}

// Layer describes one vector or raster layer.
type Layer struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"` // point | line | polygon | raster

	// vector layers
	Coords [][]float64          `yaml:"coords,omitempty"`
	Parts  []int                `yaml:"parts,omitempty"`
	Fields map[string][]float64 `yaml:"fields,omitempty"`
	Style  StyleSpec            `yaml:"style,omitempty"`

	// raster layers
	Rows   int         `yaml:"rows,omitempty"`
	Cols   int         `yaml:"cols,omitempty"`
	Extent []float64   `yaml:"extent,omitempty"` // [minx, miny, maxx, maxy]
	Values []float64   `yaml:"values,omitempty"`
	Random *RandomSpec `yaml:"random,omitempty"`
	Ramp   string      `yaml:"ramp,omitempty"` // viridis | terrain
}

// StyleSpec mirrors render.Style in scene-file form.
type StyleSpec struct {
	Color       string `yaml:"color,omitempty"` // "#rrggbb"
	ColorField  string `yaml:"color_field,omitempty"`
	SizeField   string `yaml:"size_field,omitempty"`
	PointRadius int    `yaml:"point_radius,omitempty"`
	LineWidth   int    `yaml:"line_width,omitempty"`
	FillAlpha   int    `yaml:"fill_alpha,omitempty"`
}

// RandomSpec fills a raster with seeded uniform samples.
type RandomSpec struct {
	Seed int64   `yaml:"seed"`
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
}

// Load reads and parses the YAML scene file from the specified path.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}

	return &s, nil
}

// Built is one layer turned into model objects, ready to render.
type Built struct {
	Name       string
	Collection *geom.Collection
	Grid       *raster.Grid
	Style      StyleSpec
	Ramp       string
}

// Build validates the scene and constructs its model objects. The first
// failing layer aborts the build.
func (s *Scene) Build() ([]Built, error) {
	c, err := crs.Parse(s.CRS)
	if err != nil {
		return nil, err
	}

	out := make([]Built, 0, len(s.Layers))
	for i, l := range s.Layers {
		b, err := l.build(c)
		if err != nil {
			return nil, fmt.Errorf("layer %d (%s): %w", i, l.Name, err)
		}
		out = append(out, b)
	}

	return out, nil
}

func (l Layer) build(c crs.CRS) (Built, error) {
	if l.Kind == "raster" {
		g, err := l.buildGrid(c)
		if err != nil {
			return Built{}, err
		}
		return Built{Name: l.Name, Grid: g, Ramp: l.Ramp}, nil
	}

	kind, err := geom.ParseKind(l.Kind)
	if err != nil {
		return Built{}, err
	}

	coords := make([]geom.Coord, len(l.Coords))
	for i, p := range l.Coords {
		if len(p) != 2 {
			return Built{}, fmt.Errorf("%w: coordinate %d has %d components, want 2", geom.ErrMalformedInput, i, len(p))
		}
		coords[i] = geom.Coord{X: p[0], Y: p[1]}
	}

	var col *geom.Collection
	switch kind {
	case geom.KindPoint:
		col = geom.NewPoints(coords, c)
	case geom.KindLine:
		col, err = geom.NewLines(coords, l.Parts, c)
	case geom.KindPolygon:
		col, err = geom.NewPolygons(coords, l.Parts, c)
	}
	if err != nil {
		return Built{}, err
	}

	for name, vals := range l.Fields {
		if err := col.AttachField(name, vals); err != nil {
			return Built{}, err
		}
	}

	return Built{Name: l.Name, Collection: col, Style: l.Style}, nil
}

func (l Layer) buildGrid(c crs.CRS) (*raster.Grid, error) {
	if len(l.Extent) != 4 {
		return nil, fmt.Errorf("%w: raster extent needs [minx, miny, maxx, maxy]", geom.ErrMalformedInput)
	}
	ext := geom.Extent{MinX: l.Extent[0], MinY: l.Extent[1], MaxX: l.Extent[2], MaxY: l.Extent[3]}

	g, err := raster.New(l.Rows, l.Cols, ext, c)
	if err != nil {
		return nil, err
	}

	switch {
	case len(l.Values) > 0:
		if err := g.SetValues(l.Values); err != nil {
			return nil, err
		}
	case l.Random != nil:
		if err := g.SetValues(l.Random.samples(l.Rows * l.Cols)); err != nil {
			return nil, err
		}
	}

	return g, nil
}
