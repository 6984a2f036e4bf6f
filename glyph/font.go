package glyph

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/submersibletoaster/pixfont"
)

// ThresholdPalette is a black/white color palette
var ThresholdPalette color.Palette

func init() {
	white, _ := colorful.MakeColor(color.White)
	black, _ := colorful.MakeColor(color.Black)
	ThresholdPalette = color.Palette{black, white}
}

// Default builds the Atlas for the printable ASCII range of the built-in
// pixfont.
func Default() (*Atlas, error) {
	return NewAtlas(Render(pixfont.DefaultFont, Printable), Printable)
}

// Render draws chars side by side into a strip, each in a cell as wide as
// the widest rune. Runes missing from the font are left blank.
func Render(f *pixfont.PixFont, chars string) Bitmap {
	runes := []rune(chars)
	width := 1
	for _, r := range runes {
		if ok, w := f.MeasureRune(r); ok && w > width {
			width = w
		}
	}
	img := image.NewPaletted(image.Rect(0, 0, width*len(runes), f.GetHeight()), ThresholdPalette)
	for i, r := range runes {
		// clip each rune to its own cell
		cell := img.SubImage(image.Rect(i*width, 0, (i+1)*width, img.Rect.Dy())).(*image.Paletted)
		f.DrawRune(cell, i*width, 0, r, color.White)
	}
	return FromImage(img)
}

// FromImage thresholds img into a Bitmap: pixels nearer white than black
// are foreground.
func FromImage(img image.Image) Bitmap {
	b := img.Bounds()
	out := Bitmap{Width: b.Dx(), Height: b.Dy(), Pix: make([]uint8, b.Dx()*b.Dy())}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if ThresholdPalette.Index(img.At(x, y)) == 1 {
				out.Pix[(y-b.Min.Y)*out.Width+x-b.Min.X] = 1
			}
		}
	}
	return out
}

// Load reads a glyph strip image, one cell per rune of chars.
func Load(name, chars string) (*Atlas, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAtlas, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrAtlas, name, err)
	}
	return NewAtlas(FromImage(img), chars)
}

// Image renders b white on black.
func (b Bitmap) Image() *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, b.Width, b.Height), ThresholdPalette)
	copy(img.Pix, b.Pix)
	return img
}
