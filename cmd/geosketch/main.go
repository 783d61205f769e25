package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/geosketch/geosketch/internal/geojson"
	"github.com/geosketch/geosketch/internal/geom"
	"github.com/geosketch/geosketch/internal/logger"
	"github.com/geosketch/geosketch/internal/render"
	"github.com/geosketch/geosketch/internal/scene"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Scene       string `short:"s" long:"scene"   env:"SCENE_FILE" description:"Path to scene file"  default:"scene.yaml"`
	Out         string `short:"o" long:"out"     env:"OUTPUT_DIR" description:"Output directory"    default:"out"`
	Format      string `short:"f" long:"format"  description:"Output image format" choice:"png" choice:"webp" choice:"svg" default:"png"`
	Width       int    `short:"W" long:"width"   description:"Output width in pixels"  default:"800"`
	Height      int    `short:"H" long:"height"  description:"Output height in pixels" default:"600"`
	Supersample bool   `short:"S" long:"supersample" description:"Render at 2x and downscale"`
	Preview     bool   `short:"p" long:"preview" description:"Print a terminal preview of each layer"`
	GeoJSON     bool   `short:"g" long:"geojson" description:"Also export vector layers as GeoJSON"`
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

	sc, err := scene.Load(opts.Scene)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load scene")
	}
	if sc.Width > 0 {
		opts.Width = sc.Width
	}
	if sc.Height > 0 {
		opts.Height = sc.Height
	}

	layers, err := sc.Build()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build scene")
	}

	log.Info().
		Str("scene", sc.Title).
		Str("crs", sc.CRS).
		Int("layers", len(layers)).
		Msg("Scene built")

	renderOpts := render.Options{Width: opts.Width, Height: opts.Height, Margin: 20}
	if opts.Supersample {
		renderOpts.Width *= 2
		renderOpts.Height *= 2
		renderOpts.Margin *= 2
	}

	// Per-layer images plus one composite over the union extent.
	composite := render.NewCanvas(unionExtent(layers), renderOpts)

	for _, l := range layers {
		if err := renderLayer(l, composite, renderOpts, opts); err != nil {
			log.Fatal().Err(err).Str("layer", l.Name).Msg("Failed to render layer")
		}
	}

	img := composite.Image()
	if opts.Supersample {
		img = render.Scale(img, opts.Width, opts.Height)
	}
	ext := "png"
	if opts.Format == "webp" {
		ext = "webp"
	}
	compositePath := filepath.Join(opts.Out, "composite."+ext)
	if err := saveImage(img, compositePath, ext); err != nil {
		log.Fatal().Err(err).Msg("Failed to save composite")
	}

	log.Info().Str("path", compositePath).Msg("Scene rendered successfully")
}

func renderLayer(l scene.Built, composite *render.Canvas, renderOpts render.Options, opts Options) error {
	if l.Grid != nil {
		ramp := render.RampByName(l.Ramp)
		composite.DrawGrid(l.Grid, ramp)

		c := render.NewCanvas(l.Grid.Extent(), renderOpts)
		c.DrawGrid(l.Grid, ramp)

		if opts.Preview {
			fmt.Println(render.GridShade(l.Grid, 60, 20))
		}

		// SVG has no raster form; grids always go out as pixels.
		ext := "png"
		if opts.Format == "webp" {
			ext = "webp"
		}
		return saveScaled(c, l.Name, ext, opts)
	}

	st, err := toStyle(l.Style)
	if err != nil {
		return err
	}
	composite.DrawCollection(l.Collection, st)

	if opts.Preview {
		fmt.Println(render.Braille(l.Collection, 60, 20))
	}
	if opts.GeoJSON {
		path := filepath.Join(opts.Out, l.Name+".geojson")
		if err := geojson.Save(path, geojson.FromCollection(l.Collection)); err != nil {
			return err
		}
		log.Debug().Str("path", path).Msg("GeoJSON written")
	}

	if opts.Format == "svg" {
		doc, err := render.EncodeSVG(l.Collection, st, render.Options{Width: opts.Width, Height: opts.Height, Margin: 20})
		if err != nil {
			return err
		}
		path := filepath.Join(opts.Out, l.Name+".svg")
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		return os.WriteFile(path, []byte(doc), 0644)
	}

	c := render.NewCanvas(l.Collection.Extent(), renderOpts)
	c.DrawCollection(l.Collection, st)

	return saveScaled(c, l.Name, opts.Format, opts)
}

func saveScaled(c *render.Canvas, name, ext string, opts Options) error {
	img := c.Image()
	if opts.Supersample {
		img = render.Scale(img, opts.Width, opts.Height)
	}

	return saveImage(img, filepath.Join(opts.Out, name+"."+ext), ext)
}

func saveImage(img *image.RGBA, path, ext string) error {
	if ext == "webp" {
		return render.SaveWebP(img, path)
	}

	return render.SavePNG(img, path)
}

func toStyle(spec scene.StyleSpec) (render.Style, error) {
	c, err := render.ParseColor(spec.Color)
	if err != nil {
		return render.Style{}, err
	}

	return render.Style{
		Color:       c,
		ColorField:  spec.ColorField,
		SizeField:   spec.SizeField,
		PointRadius: spec.PointRadius,
		LineWidth:   spec.LineWidth,
		FillAlpha:   uint8(spec.FillAlpha),
	}, nil
}

func unionExtent(layers []scene.Built) geom.Extent {
	var ext geom.Extent
	first := true
	for _, l := range layers {
		var e geom.Extent
		if l.Grid != nil {
			e = l.Grid.Extent()
		} else {
			e = l.Collection.Extent()
		}
		if first {
			ext = e
			first = false
			continue
		}
		ext = ext.Union(e)
	}

	return ext
}
