package main

import (
	"flag"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/submersibletoaster/silhouette/glyph"
)

var glyphs = flag.String("glyphs", "", "PNG strip of glyph cells, white on black (default: built-in font)")
var chars = flag.String("chars", glyph.Printable, "Characters of the -glyphs strip, in order")
var out = flag.String("o", "sheet.png", "Output PNG")
var gutter = flag.Int("g", 1, "Pixels between cells")
var verbose = flag.Bool("v", false, "Verbose logging")

func main() {
	flag.Parse()
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	a, err := loadAtlas()
	if err != nil {
		log.Fatal(err)
	}

	sheet := contactSheet(a, *gutter)
	w, err := os.Create(*out)
	if err != nil {
		log.Fatal(err)
	}
	if err := png.Encode(w, sheet); err != nil {
		log.Fatal(err)
	}
	if err := w.Close(); err != nil {
		log.Fatal(err)
	}

	// density ramp, sparsest first
	ramp := make([]rune, a.Len())
	for i, g := range a.Glyphs {
		ramp[i] = g.Char
	}
	fmt.Println(string(ramp))
	log.Infof("%d glyphs of %dx%d written to %s", a.Len(), a.Width, a.Height, *out)
}

func loadAtlas() (*glyph.Atlas, error) {
	if *glyphs == "" {
		return glyph.Default()
	}
	return glyph.Load(*glyphs, *chars)
}

// contactSheet lays the glyphs out in density order on a square-ish grid.
func contactSheet(a *glyph.Atlas, gutter int) *image.Paletted {
	cols := int(math.Ceil(math.Sqrt(float64(a.Len()))))
	rows := (a.Len() + cols - 1) / cols
	stepX, stepY := a.Width+gutter, a.Height+gutter
	sheet := image.NewPaletted(image.Rect(0, 0, cols*stepX-gutter, rows*stepY-gutter), glyph.ThresholdPalette)

	for i, g := range a.Glyphs {
		cell := glyph.Bitmap{Width: a.Width, Height: a.Height, Pix: g.Pix}.Image()
		x, y := (i%cols)*stepX, (i/cols)*stepY
		draw.Draw(sheet, image.Rect(x, y, x+a.Width, y+a.Height), cell, image.Point{}, draw.Src)
		log.Debugf("'%c' %d lit at %d,%d", g.Char, g.Count, x, y)
	}
	return sheet
}
