// Command tour walks through the building blocks of spatial data: random
// samples, point/line/polygon collections with attributes, CRS labels vs
// reprojection, and a raster grid. Each step logs what it builds and writes
// a rendered image into the output directory.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/geosketch/geosketch/internal/crs"
	"github.com/geosketch/geosketch/internal/geojson"
	"github.com/geosketch/geosketch/internal/geom"
	"github.com/geosketch/geosketch/internal/logger"
	"github.com/geosketch/geosketch/internal/raster"
	"github.com/geosketch/geosketch/internal/render"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Out     string `short:"o" long:"out"     env:"OUTPUT_DIR" description:"Output directory" default:"tour-out"`
	Seed    int64  `short:"s" long:"seed"    description:"Random seed for the sample step" default:"42"`
	Width   int    `short:"W" long:"width"   description:"Output width in pixels"  default:"800"`
	Height  int    `short:"H" long:"height"  description:"Output height in pixels" default:"600"`
	Preview bool   `short:"p" long:"preview" description:"Print terminal previews"`
}

// Weather stations in the Idaho/Nevada border region, the running example
// of the tour.
var stations = []geom.Coord{
	{X: -116.8, Y: 41.3},
	{X: -114.2, Y: 42.9},
	{X: -112.9, Y: 42.4},
	{X: -115.5, Y: 40.1},
	{X: -113.7, Y: 41.8},
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	renderOpts := render.Options{Width: opts.Width, Height: opts.Height, Margin: 30}

	steps := []struct {
		name string
		run  func(Options, render.Options) error
	}{
		{"random samples", stepSamples},
		{"point collection", stepPoints},
		{"line collection", stepLines},
		{"polygon closure", stepPolygon},
		{"crs label vs reprojection", stepCRS},
		{"raster grid", stepRaster},
	}

	for _, s := range steps {
		log.Info().Str("step", s.name).Msg("----")
		if err := s.run(opts, renderOpts); err != nil {
			log.Fatal().Err(err).Str("step", s.name).Msg("Tour aborted")
		}
	}

	log.Info().Str("out", opts.Out).Msg("Tour finished successfully")
}

// stepSamples draws seeded samples and summarizes them, the usual warm-up
// before any spatial structure is introduced.
func stepSamples(opts Options, _ render.Options) error {
	src := rand.New(rand.NewSource(opts.Seed))
	samples := make([]float64, 100)
	for i := range samples {
		samples[i] = src.NormFloat64()*2 + 10
	}

	log.Info().
		Int("n", len(samples)).
		Float64("mean", stat.Mean(samples, nil)).
		Float64("stddev", stat.StdDev(samples, nil)).
		Msg("Random samples have no location; spatial data starts when we attach coordinates")

	return nil
}

// stepPoints builds the station point set, attaches attribute columns, and
// renders it with a color/size encoding.
func stepPoints(opts Options, renderOpts render.Options) error {
	col := geom.NewPoints(stations, crs.WGS84)

	ids := make([]float64, len(stations))
	for i := range ids {
		ids[i] = float64(i + 1)
	}
	if err := col.AttachField("ID", ids); err != nil {
		return err
	}

	src := rand.New(rand.NewSource(opts.Seed))
	precip := make([]float64, len(stations))
	for i := range precip {
		precip[i] = 200 + src.Float64()*800 // mm/year
	}
	if err := col.AttachField("precip", precip); err != nil {
		return err
	}

	log.Info().
		Int("features", col.FeatureCount()).
		Str("crs", col.CRS().String()).
		Bool("angular", col.CRS().IsGeographic()).
		Msg("Point collection: one feature per coordinate, attributes aligned 1:1")

	c := render.NewCanvas(col.Extent(), renderOpts)
	c.DrawCollection(col, render.Style{ColorField: "precip", SizeField: "precip", PointRadius: 6})
	if opts.Preview {
		fmt.Println(render.Braille(col, 60, 18))
	}
	if err := render.SavePNG(c.Image(), filepath.Join(opts.Out, "points.png")); err != nil {
		return err
	}

	return geojson.Save(filepath.Join(opts.Out, "stations.geojson"), geojson.FromCollection(col))
}

// stepLines builds a two-part line collection; the part column groups
// coordinates into features.
func stepLines(opts Options, renderOpts render.Options) error {
	coords := []geom.Coord{
		{X: -116.8, Y: 41.3}, {X: -114.2, Y: 42.9}, {X: -112.9, Y: 42.4},
		{X: -115.5, Y: 40.1}, {X: -113.7, Y: 41.8},
	}
	parts := []int{0, 0, 0, 1, 1}

	col, err := geom.NewLines(coords, parts, crs.WGS84)
	if err != nil {
		return err
	}

	log.Info().
		Int("features", col.FeatureCount()).
		Msg("Line collection: two parts from one coordinate column")

	c := render.NewCanvas(col.Extent(), renderOpts)
	c.DrawCollection(col, render.Style{LineWidth: 2})
	if opts.Preview {
		fmt.Println(render.Braille(col, 60, 18))
	}

	return render.SavePNG(c.Image(), filepath.Join(opts.Out, "lines.png"))
}

// stepPolygon builds a ring from an unclosed coordinate sequence and shows
// the automatic closure.
func stepPolygon(opts Options, renderOpts render.Options) error {
	coords := []geom.Coord{
		{X: -116.8, Y: 41.3}, {X: -114.2, Y: 42.9}, {X: -112.9, Y: 42.4},
	}
	parts := []int{0, 0, 0}

	col, err := geom.NewPolygons(coords, parts, crs.WGS84)
	if err != nil {
		return err
	}

	ring := col.PartCoords(0)
	log.Info().
		Int("input_coords", len(coords)).
		Int("ring_coords", len(ring)).
		Bool("closed", ring[0] == ring[len(ring)-1]).
		Msg("Polygon ring closed by appending the first coordinate")

	c := render.NewCanvas(col.Extent(), renderOpts)
	c.DrawCollection(col, render.Style{LineWidth: 2})
	if opts.Preview {
		fmt.Println(render.Braille(col, 60, 18))
	}

	return render.SavePNG(c.Image(), filepath.Join(opts.Out, "polygon.png"))
}

// stepCRS contrasts relabeling with actual reprojection.
func stepCRS(_ Options, _ render.Options) error {
	col := geom.NewPoints(stations[:1], crs.WGS84)
	before := col.Coords()[0]

	// Relabeling swaps the descriptor and nothing else; the numbers keep
	// meaning whatever they meant before, which is how data gets silently
	// misplaced by hundreds of kilometers.
	col.SetCRS(crs.WebMercator)
	relabeled := col.Coords()[0]
	col.SetCRS(crs.WGS84)

	projected, err := col.Reproject(crs.WebMercator)
	if err != nil {
		return err
	}
	after := projected.Coords()[0]

	log.Info().
		Float64("lon", before.X).
		Float64("lat", before.Y).
		Bool("relabel_moved_coords", relabeled != before).
		Float64("merc_x", after.X).
		Float64("merc_y", after.Y).
		Msg("Relabeling keeps coordinates; reprojection computes new ones")

	return nil
}

// stepRaster builds the 10x10 grid over the western US extent, fills it
// row-major, and renders it.
func stepRaster(opts Options, renderOpts render.Options) error {
	ext := geom.Extent{MinX: -150, MinY: 20, MaxX: -80, MaxY: 60}
	g, err := raster.New(10, 10, ext, crs.WGS84)
	if err != nil {
		return err
	}

	vals := make([]float64, 100)
	for i := range vals {
		vals[i] = float64(i + 1)
	}
	if err := g.SetValues(vals); err != nil {
		return err
	}

	stats := g.Summary()
	log.Info().
		Int("rows", g.Rows()).
		Int("cols", g.Cols()).
		Float64("res_x", g.ResX()).
		Float64("res_y", g.ResY()).
		Float64("min", stats.Min).
		Float64("max", stats.Max).
		Msg("Raster: resolution is derived from extent and counts, never stored")

	c := render.NewCanvas(ext, renderOpts)
	c.DrawGrid(g, render.Viridis)
	if opts.Preview {
		fmt.Println(render.GridShade(g, 60, 18))
	}
	if err := render.SavePNG(c.Image(), filepath.Join(opts.Out, "raster.png")); err != nil {
		return err
	}

	// The ASCII exchange format needs square cells, so the export demo uses
	// a 1-degree grid instead of the 7x4-degree one above.
	sq, err := raster.New(10, 10, geom.Extent{MinX: -120, MinY: 35, MaxX: -110, MaxY: 45}, crs.WGS84)
	if err != nil {
		return err
	}
	if err := sq.SetValues(vals); err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(opts.Out, "raster.asc"))
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("Failed to close file")
		}
	}()

	return sq.WriteASCII(f)
}
