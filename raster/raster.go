// Package raster holds images reduced to palette indices.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"math"
	"sort"

	"github.com/submersibletoaster/silhouette/palette"
)

// MaxDominant caps the number of dominant colors kept on an Image.
const MaxDominant = 6

// ErrChannels is returned for a pixel buffer that is not 1 to 4 channels
// deep or whose length does not match its dimensions.
var ErrChannels = errors.New("unsupported pixel layout")

// Pixels is a decoded raster: gray, gray+alpha, RGB or RGBA, 8 bits per
// channel, rows packed without padding.
type Pixels struct {
	Width    int
	Height   int
	Channels int
	Data     []byte
}

// FromImage copies any image.Image into non-premultiplied RGBA Pixels.
func FromImage(src image.Image) Pixels {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return Pixels{Width: b.Dx(), Height: b.Dy(), Channels: 4, Data: dst.Pix}
}

// Image is a raster of palette indices; 0 is background.
type Image struct {
	Width    int
	Height   int
	Pix      []uint8
	Dominant []uint8 // most frequent indices, at most MaxDominant
}

// New returns an all background Image.
func New(width, height int) *Image {
	return &Image{Width: width, Height: height, Pix: make([]uint8, width*height)}
}

// Quantize maps every pixel of p through q.
func Quantize(p Pixels, q *palette.Quantizer) (*Image, error) {
	if p.Channels < 1 || p.Channels > 4 {
		return nil, fmt.Errorf("%w: %d channels", ErrChannels, p.Channels)
	}
	if p.Width < 0 || p.Height < 0 || len(p.Data) != p.Width*p.Height*p.Channels {
		return nil, fmt.Errorf("%w: %d bytes for %dx%dx%d",
			ErrChannels, len(p.Data), p.Width, p.Height, p.Channels)
	}

	m := New(p.Width, p.Height)
	d := p.Data
	for i, j := 0, 0; i < len(m.Pix); i, j = i+1, j+p.Channels {
		switch p.Channels {
		case 1:
			m.Pix[i] = q.Quantize(d[j], d[j], d[j], 0xff)
		case 2:
			m.Pix[i] = q.Quantize(d[j], d[j], d[j], d[j+1])
		case 3:
			m.Pix[i] = q.Quantize(d[j], d[j+1], d[j+2], 0xff)
		case 4:
			m.Pix[i] = q.Quantize(d[j], d[j+1], d[j+2], d[j+3])
		}
	}
	return m, nil
}

// At samples the index nearest to (x, y), rounding halves up. Anything
// outside the image is background.
func (m *Image) At(x, y float64) uint8 {
	X := int(math.Floor(x + 0.5))
	Y := int(math.Floor(y + 0.5))
	if X < 0 || Y < 0 || X >= m.Width || Y >= m.Height {
		return 0
	}
	return m.Pix[m.Width*Y+X]
}

// Set stores idx at an integer position inside the image.
func (m *Image) Set(x, y int, idx uint8) {
	m.Pix[m.Width*y+x] = idx
}

// Histogram counts every index, background included.
func (m *Image) Histogram() (h [palette.Size]int) {
	for _, v := range m.Pix {
		h[v]++
	}
	return h
}

// MostFrequent returns up to n non-background indices by descending count,
// lower index first on equal counts.
func (m *Image) MostFrequent(n int) []uint8 {
	h := m.Histogram()
	var out []uint8
	for i := 1; i < palette.Size; i++ {
		if h[i] > 0 {
			out = append(out, uint8(i))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return h[out[i]] > h[out[j]]
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Distinct counts the non-background indices in use.
func (m *Image) Distinct() int {
	h := m.Histogram()
	n := 0
	for i := 1; i < palette.Size; i++ {
		if h[i] > 0 {
			n++
		}
	}
	return n
}
