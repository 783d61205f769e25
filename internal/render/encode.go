package render

import (
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"github.com/chai2010/webp"
	"github.com/rs/zerolog/log"
	xdraw "golang.org/x/image/draw"
)

// Scale resamples img to the requested size with CatmullRom, which keeps
// edges crisp when downscaling a supersampled render.
func Scale(img image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)

	return dst
}

// SavePNG writes the image to path, creating parent directories.
func SavePNG(img image.Image, path string) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Error().Err(closeErr).Str("path", path).Msg("Failed to close file")
		}
	}()

	return png.Encode(f, img)
}

// SaveWebP writes the image to path as lossy WebP.
func SaveWebP(img image.Image, path string) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Error().Err(closeErr).Str("path", path).Msg("Failed to close file")
		}
	}()

	return webp.Encode(f, img, &webp.Options{Lossless: false, Quality: 90})
}

func createFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	return os.Create(path)
}
