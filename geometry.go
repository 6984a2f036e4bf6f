package silhouette

import (
	"math"

	"github.com/submersibletoaster/silhouette/glyph"
	"github.com/submersibletoaster/silhouette/match"
)

// AtlasPointSize is the font size, at 96 DPI, glyph strips are drawn at.
const AtlasPointSize = 12

// Offset is a translation of the character grid within one glyph cell.
type Offset struct {
	X, Y int
}

// Offsets lists every grid phase for a w by h cell, (-w, -h) through (0, 0),
// row by row.
func Offsets(w, h int) []Offset {
	out := make([]Offset, 0, (w+1)*(h+1))
	for y := -h; y <= 0; y++ {
		for x := -w; x <= 0; x++ {
			out = append(out, Offset{x, y})
		}
	}
	return out
}

// NewGeometry lays a grid of cells sized for c's font over a width by height
// image, centered, and expresses it in image pixels.
func NewGeometry(a *glyph.Atlas, width, height int, c Config) match.Geometry {
	glyphW := float64(a.Width) * c.FontSize / AtlasPointSize
	glyphH := math.Max(1, math.Round(c.LineHeight*c.FontSize*96/72))
	imageW := c.Scale * float64(width)
	imageH := c.Scale * float64(height)
	rows := int(math.Ceil(imageH / glyphH))
	cols := int(math.Ceil(imageW / glyphW))
	paddedW := math.Ceil(float64(cols) * glyphW)
	paddedH := math.Ceil(float64(rows) * glyphH)

	return match.Geometry{
		Rows:        rows,
		Cols:        cols,
		RowScale:    glyphH / c.Scale,
		ColScale:    glyphW / c.Scale,
		GlyphScaleX: glyphW / (c.Scale * float64(a.Width)),
		GlyphScaleY: glyphH / (c.Scale * float64(a.Height)),
		MarginX:     (imageW - paddedW) / 2 / c.Scale,
		MarginY:     (imageH - paddedH) / 2 / c.Scale,
	}
}

// Partition splits data into k contiguous chunks in order. The first
// len(data)%k chunks hold one element more than the rest.
func Partition[T any](data []T, k int) [][]T {
	out := make([][]T, 0, k)
	size, extra := len(data)/k, len(data)%k
	start := 0
	for i := 0; i < k; i++ {
		n := size
		if i < extra {
			n++
		}
		out = append(out, data[start:start+n:start+n])
		start += n
	}
	return out
}
