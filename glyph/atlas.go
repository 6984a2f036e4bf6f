// Package glyph builds the lookup structures used to pick a printable
// character for a region of an image.
//
// An Atlas holds every glyph of a fixed-size bitmap font ordered by the number
// of foreground pixels it lights, together with a mask table: one Mask per
// pixel position of the glyph cell. Bit i of the mask at a position is clear
// exactly when glyph i lights that pixel. ANDing the masks of every unlit
// region pixel leaves only glyphs whose shape fits inside the lit pixels, and
// the highest remaining bit is the densest of them.
package glyph

import (
	"errors"
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"
	"github.com/steakknife/hamming"
)

// Printable is the printable ASCII range in code point order, starting with space.
const Printable = " !\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`abcdefghijklmnopqrstuvwxyz{|}~"

// ErrAtlas is returned for a glyph strip that cannot be turned into an Atlas.
var ErrAtlas = errors.New("invalid glyph atlas")

// Bitmap is a monochrome raster, one byte per pixel, non-zero for foreground.
type Bitmap struct {
	Width  int
	Height int
	Pix    []uint8
}

// Glyph is one character of an Atlas.
type Glyph struct {
	Char     rune
	Pix      []uint8 // cell sized, 1 for a lit pixel
	Count    int     // lit pixels
	HTML     string
	Neofetch string
}

// Atlas is immutable once built and safe to share between goroutines.
type Atlas struct {
	Width    int
	Height   int
	Glyphs   []Glyph // ascending by Count, Glyphs[0] is blank
	Masks    []Mask  // one per cell pixel, row major
	MinCount int     // Count of the first non-blank glyph
	all      Mask
}

// NewAtlas slices a horizontal strip of equally wide cells, one per rune of
// chars in order, and builds the density ordered glyph set and mask table.
func NewAtlas(strip Bitmap, chars string) (*Atlas, error) {
	runes := []rune(chars)
	n := len(runes)
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 glyphs, have %d", ErrAtlas, n)
	}
	if strip.Width <= 0 || strip.Height <= 0 || strip.Width%n != 0 {
		return nil, fmt.Errorf("%w: strip %dx%d does not split into %d cells",
			ErrAtlas, strip.Width, strip.Height, n)
	}
	if len(strip.Pix) != strip.Width*strip.Height {
		return nil, fmt.Errorf("%w: have %d pixels, want %d",
			ErrAtlas, len(strip.Pix), strip.Width*strip.Height)
	}

	a := &Atlas{
		Width:  strip.Width / n,
		Height: strip.Height,
		Glyphs: make([]Glyph, n),
	}
	cellPixels := a.Width * a.Height
	blank := make([]uint8, cellPixels)
	for i, r := range runes {
		pix := make([]uint8, cellPixels)
		for y := 0; y < a.Height; y++ {
			row := strip.Pix[y*strip.Width+i*a.Width:]
			for x := 0; x < a.Width; x++ {
				if row[x] != 0 {
					pix[y*a.Width+x] = 1
				}
			}
		}
		a.Glyphs[i] = Glyph{
			Char:     r,
			Pix:      pix,
			Count:    hamming.Uint8s(pix, blank),
			HTML:     htmlEscape(r),
			Neofetch: neofetchEscape(r),
		}
	}
	sort.SliceStable(a.Glyphs, func(i, j int) bool {
		return a.Glyphs[i].Count < a.Glyphs[j].Count
	})
	if a.Glyphs[0].Count != 0 {
		return nil, fmt.Errorf("%w: no blank glyph, sparsest is %q with %d pixels",
			ErrAtlas, a.Glyphs[0].Char, a.Glyphs[0].Count)
	}

	a.all = NewMask(n)
	a.Masks = make([]Mask, cellPixels)
	for pos := range a.Masks {
		a.Masks[pos] = NewMask(n)
	}
	for i, g := range a.Glyphs {
		for pos, v := range g.Pix {
			if v != 0 {
				a.Masks[pos].clear(i)
			}
		}
	}
	a.MinCount = a.Glyphs[1].Count

	log.Debugf("glyph atlas: %d glyphs of %dx%d, densest %q (%d), min count %d",
		n, a.Width, a.Height, a.Glyphs[n-1].Char, a.Glyphs[n-1].Count, a.MinCount)
	return a, nil
}

// Len is the number of glyphs.
func (a *Atlas) Len() int {
	return len(a.Glyphs)
}

// Candidate returns a fresh mask with every glyph eligible. Each goroutine
// needs its own.
func (a *Atlas) Candidate() Mask {
	return NewMask(len(a.Glyphs))
}

// Reset makes every glyph eligible again in m.
func (a *Atlas) Reset(m Mask) {
	m.CopyFrom(a.all)
}

// Index returns the density order index of r.
func (a *Atlas) Index(r rune) (int, bool) {
	for i, g := range a.Glyphs {
		if g.Char == r {
			return i, true
		}
	}
	return 0, false
}

// Strip lays the glyphs out again as a single row, in density order.
func (a *Atlas) Strip() Bitmap {
	b := Bitmap{Width: a.Width * len(a.Glyphs), Height: a.Height}
	b.Pix = make([]uint8, b.Width*b.Height)
	for i, g := range a.Glyphs {
		for y := 0; y < a.Height; y++ {
			copy(b.Pix[y*b.Width+i*a.Width:], g.Pix[y*a.Width:(y+1)*a.Width])
		}
	}
	return b
}

func htmlEscape(r rune) string {
	switch r {
	case '&':
		return "&amp;"
	case '<':
		return "&lt;"
	case '>':
		return "&gt;"
	case '"':
		return "&quot;"
	case '\'':
		return "&apos;"
	}
	return string(r)
}

func neofetchEscape(r rune) string {
	switch r {
	case '\\':
		return `\\`
	case '$':
		return `\$`
	}
	return string(r)
}
