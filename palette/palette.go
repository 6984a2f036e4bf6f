// Package palette maps image samples onto a fixed 256 entry terminal palette
// using perceptual (CIE L*a*b*) distance.
package palette

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/lucasb-eyer/go-colorful"
)

//go:embed colordata/campbell256.json
var f embed.FS

// Size is the number of entries of every Palette.
const Size = 256

// ErrPalette is returned for missing or malformed palette data.
var ErrPalette = errors.New("invalid palette")

// Palette is an immutable ordered set of reference colors. Index 0 doubles
// as the background.
type Palette struct {
	rgb [Size]color.RGBA
	lab [Size][3]float64
	hex [Size]string
}

// Default returns the embedded palette: the Campbell scheme for the 16
// standard colors followed by the xterm 6x6x6 cube and gray ramp.
func Default() (*Palette, error) {
	return Load("campbell256")
}

// Load reads a palette by embedded name, falling back to the filesystem.
// The data is a JSON array of 256 "#RRGGBB" strings.
func Load(name string) (*Palette, error) {
	data, vfsErr := f.ReadFile(fmt.Sprintf("colordata/%s.json", name))
	if vfsErr != nil {
		var fsErr error
		data, fsErr = os.ReadFile(name)
		if fsErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrPalette, fsErr)
		}
	}
	return Parse(data)
}

// Parse decodes a JSON array of hex colors.
func Parse(data []byte) (*Palette, error) {
	var hexes []string
	if err := json.Unmarshal(data, &hexes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPalette, err)
	}
	if len(hexes) != Size {
		return nil, fmt.Errorf("%w: have %d colors, want %d", ErrPalette, len(hexes), Size)
	}

	p := &Palette{}
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrPalette, i, err)
		}
		r, g, b := c.RGB255()
		p.rgb[i] = color.RGBA{R: r, G: g, B: b, A: 0xff}
		p.hex[i] = fmt.Sprintf("%02X%02X%02X", r, g, b)
		p.lab[i] = lab(r, g, b, 0xff)
	}
	return p, nil
}

// RGB returns entry i.
func (p *Palette) RGB(i uint8) color.RGBA {
	return p.rgb[i]
}

// Hex returns entry i as upper case RRGGBB.
func (p *Palette) Hex(i uint8) string {
	return p.hex[i]
}

// Lab returns entry i in L*a*b*, L* ranging 0..100.
func (p *Palette) Lab(i uint8) (l, a, b float64) {
	c := p.lab[i]
	return c[0], c[1], c[2]
}

// lab converts a sample to L*a*b* on a 0..100 lightness scale, fading the
// lightness toward black as the sample gets more transparent.
func lab(r, g, b, alpha uint8) [3]float64 {
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	l, a, bb := c.Lab()
	return [3]float64{l * 100 * float64(alpha) / 255, a * 100, bb * 100}
}
