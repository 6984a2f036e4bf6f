package main

import (
	"flag"
	"fmt"
	"strings"

	ansi "github.com/gookit/color"
	log "github.com/sirupsen/logrus"

	"github.com/submersibletoaster/silhouette/glyph"
	"github.com/submersibletoaster/silhouette/match"
	"github.com/submersibletoaster/silhouette/raster"
)

var glyphs = flag.String("glyphs", "", "PNG strip of glyph cells, white on black (default: built-in font)")
var chars = flag.String("chars", glyph.Printable, "Characters of the -glyphs strip, in order")
var verbose = flag.Bool("v", false, "Verbose logging")

// selfCheck is the outcome of matching one glyph's own bitmap.
type selfCheck struct {
	Want glyph.Glyph
	Got  rune
}

func main() {
	flag.Parse()
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	var a *glyph.Atlas
	var err error
	if *glyphs == "" {
		a, err = glyph.Default()
	} else {
		a, err = glyph.Load(*glyphs, *chars)
	}
	if err != nil {
		log.Fatal(err)
	}

	perfect := 0
	for _, c := range check(a) {
		if c.Got == c.Want.Char {
			perfect++
			continue
		}
		ansi.Yellow.Printf("'%c'\t%x\t", c.Want.Char, c.Want.Char)
		fmt.Printf("%d lit, matched '%c'\n", c.Want.Count, c.Got)
	}
	log.Infof("Perfect 1st match %d, edge cases %d", perfect, a.Len()-perfect)
}

// check renders every glyph as a one cell image and matches it back.
// A glyph comes back as itself unless another glyph has the same bitmap.
func check(a *glyph.Atlas) []selfCheck {
	geom := match.Geometry{Rows: 1, Cols: 1, RowScale: float64(a.Height), ColScale: float64(a.Width),
		GlyphScaleX: 1, GlyphScaleY: 1}
	out := make([]selfCheck, 0, a.Len())
	for _, g := range a.Glyphs {
		img := raster.New(a.Width, a.Height)
		for i, v := range g.Pix {
			if v != 0 {
				img.Set(i%a.Width, i/a.Width, 15)
			}
		}
		res := match.New(a, img, geom, match.Style{}).Render(0, 0)
		got := []rune(strings.TrimSuffix(res.Text, "\n"))
		out = append(out, selfCheck{Want: g, Got: got[0]})
	}
	return out
}
