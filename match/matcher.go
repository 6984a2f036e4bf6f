// Package match picks, for every cell of a character grid laid over an
// image, the densest glyph whose lit pixels all land on image content.
package match

import (
	"sort"

	"github.com/submersibletoaster/silhouette/glyph"
	"github.com/submersibletoaster/silhouette/palette"
	"github.com/submersibletoaster/silhouette/raster"
)

// Geometry maps the character grid onto image coordinates. Cell (r, c) has
// its origin at (MarginX + c*ColScale, MarginY + r*RowScale) plus the offset
// under test, and glyph pixel (x, y) samples GlyphScaleX*x, GlyphScaleY*y
// further along.
type Geometry struct {
	Rows        int
	Cols        int
	RowScale    float64
	ColScale    float64
	GlyphScaleX float64
	GlyphScaleY float64
	MarginX     float64
	MarginY     float64
}

// Result is one rendering and its fidelity score: the lit pixel count of
// every glyph placed.
type Result struct {
	Text    string
	Matched int
}

// Matcher renders one image. It keeps scratch buffers, so each goroutine
// needs its own.
type Matcher struct {
	atlas   *glyph.Atlas
	img     *raster.Image
	geom    Geometry
	style   Style
	cand    glyph.Mask
	samples []uint8
	counts  [palette.Size]int
	seen    []uint8
}

// New returns a Matcher over shared, read only atlas and image.
func New(a *glyph.Atlas, img *raster.Image, g Geometry, s Style) *Matcher {
	return &Matcher{
		atlas:   a,
		img:     img,
		geom:    g,
		style:   s,
		cand:    a.Candidate(),
		samples: make([]uint8, a.Width*a.Height),
	}
}

// Render converts the image with the grid shifted by (dx, dy).
func (m *Matcher) Render(dx, dy float64) Result {
	g := m.geom
	e := newEmitter(m.style)
	matched := 0
	originX, originY := dx+g.MarginX, dy+g.MarginY
	for r := 0; r < g.Rows; r++ {
		cellY := originY + g.RowScale*float64(r)
		for c := 0; c < g.Cols; c++ {
			m.sample(originX+g.ColScale*float64(c), cellY)

			if !m.style.Color {
				gl := &m.atlas.Glyphs[m.fit(0, true)]
				e.glyph(gl)
				matched += gl.Count
				continue
			}

			gi, ci := m.bestColored()
			if gi == 0 {
				e.space()
				continue
			}
			gl := &m.atlas.Glyphs[gi]
			e.color(ci)
			e.glyph(gl)
			matched += gl.Count
		}
		e.endLine()
	}
	return Result{Text: e.finish(), Matched: matched}
}

// sample reads the cell with its origin at (x, y) into m.samples.
func (m *Matcher) sample(x, y float64) {
	w, h := m.atlas.Width, m.atlas.Height
	for gy := 0; gy < h; gy++ {
		sy := y + m.geom.GlyphScaleY*float64(gy)
		for gx := 0; gx < w; gx++ {
			m.samples[gy*w+gx] = m.img.At(x+m.geom.GlyphScaleX*float64(gx), sy)
		}
	}
}

// fit returns the densest glyph lighting only pixels that hold idx, or, with
// background set, only pixels that do not hold idx.
func (m *Matcher) fit(idx uint8, background bool) int {
	m.atlas.Reset(m.cand)
	for pos, v := range m.samples {
		if (v == idx) == background {
			m.cand.And(m.atlas.Masks[pos])
		}
	}
	// the blank glyph is never excluded
	return m.cand.Highest()
}

// bestColored returns the densest (glyph, color) pair over the colors that
// cover at least as many pixels as the sparsest real glyph. Equal densities
// go to the lowest color index.
func (m *Matcher) bestColored() (int, uint8) {
	m.seen = m.seen[:0]
	for _, v := range m.samples {
		if v == 0 {
			continue
		}
		if m.counts[v] == 0 {
			m.seen = append(m.seen, v)
		}
		m.counts[v]++
	}
	sort.Slice(m.seen, func(i, j int) bool { return m.seen[i] < m.seen[j] })

	bestGlyph, bestColor := 0, uint8(0)
	for _, c := range m.seen {
		n := m.counts[c]
		m.counts[c] = 0
		if n < m.atlas.MinCount {
			continue
		}
		gi := m.fit(c, false)
		if m.atlas.Glyphs[gi].Count > m.atlas.Glyphs[bestGlyph].Count {
			bestGlyph, bestColor = gi, c
		}
	}
	return bestGlyph, bestColor
}
