package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	log "github.com/sirupsen/logrus"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/submersibletoaster/silhouette/raster"
)

// resolve expands every pattern, keeping the first occurrence of each file.
func resolve(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, p := range patterns {
		matches, err := doublestar.FilepathGlob(p)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", p, err)
		}
		if len(matches) == 0 {
			log.Warnf("%s matched nothing", p)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	return files, nil
}

// decode reads a raster image, or rasterizes an SVG at its view box size.
func decode(name string) (raster.Pixels, error) {
	if strings.EqualFold(filepath.Ext(name), ".svg") {
		img, err := rasterize(name)
		if err != nil {
			return raster.Pixels{}, err
		}
		return raster.FromImage(img), nil
	}

	f, err := os.Open(name)
	if err != nil {
		return raster.Pixels{}, err
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return raster.Pixels{}, err
	}
	log.Debugf("%s: %s %v", name, format, img.Bounds().Size())
	return raster.FromImage(img), nil
}

func rasterize(name string) (image.Image, error) {
	icon, err := oksvg.ReadIcon(name, oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG: %w", err)
	}
	w, h := int(icon.ViewBox.W), int(icon.ViewBox.H)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("SVG has an empty view box")
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return img, nil
}
