package glyph

import (
	"fmt"
	"image"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

// coverage is the alpha above which an anti-aliased pixel is lit.
const coverage = 64

// LoadTTF builds an Atlas from a TrueType font file rendered at size points
// and 96 DPI.
func LoadTTF(name string, size float64, chars string) (*Atlas, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAtlas, err)
	}
	return ParseTTF(data, size, chars)
}

// ParseTTF is LoadTTF for font data already in memory.
func ParseTTF(data []byte, size float64, chars string) (*Atlas, error) {
	f, err := freetype.ParseFont(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAtlas, err)
	}
	strip, err := RenderTTF(f, size, chars)
	if err != nil {
		return nil, err
	}
	return NewAtlas(strip, chars)
}

// RenderTTF draws chars into a strip of cells as wide as the widest advance
// and as tall as the font's ascent plus descent.
func RenderTTF(f *truetype.Font, size float64, chars string) (Bitmap, error) {
	face := truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     96,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	runes := []rune(chars)
	width := 1
	for _, r := range runes {
		if adv, ok := face.GlyphAdvance(r); ok && adv.Ceil() > width {
			width = adv.Ceil()
		}
	}
	metrics := face.Metrics()
	height := (metrics.Ascent + metrics.Descent).Ceil()
	if height < 1 {
		return Bitmap{}, fmt.Errorf("%w: font has no height at %gpt", ErrAtlas, size)
	}

	img := image.NewAlpha(image.Rect(0, 0, width*len(runes), height))
	ctx := freetype.NewContext()
	ctx.SetDPI(96)
	ctx.SetFont(f)
	ctx.SetFontSize(size)
	ctx.SetDst(img)
	ctx.SetSrc(image.White)
	ctx.SetHinting(font.HintingFull)
	for i, r := range runes {
		ctx.SetClip(image.Rect(i*width, 0, (i+1)*width, height))
		if _, err := ctx.DrawString(string(r), freetype.Pt(i*width, metrics.Ascent.Ceil())); err != nil {
			return Bitmap{}, fmt.Errorf("%w: drawing %q: %v", ErrAtlas, r, err)
		}
	}

	out := Bitmap{Width: img.Rect.Dx(), Height: height, Pix: make([]uint8, len(img.Pix))}
	for i, a := range img.Pix {
		if a > coverage {
			out.Pix[i] = 1
		}
	}
	return out, nil
}
