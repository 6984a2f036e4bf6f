package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/submersibletoaster/silhouette/glyph"
	"github.com/submersibletoaster/silhouette/palette"
	"github.com/submersibletoaster/silhouette/raster"
)

// cells are 2x2: ' ' blank, 'l' left column, 'r' right column, '#' full.
func testAtlas(t *testing.T) *glyph.Atlas {
	t.Helper()
	rows := []string{
		"..#..###",
		"..#..###",
	}
	b := glyph.Bitmap{Width: 8, Height: 2, Pix: make([]uint8, 16)}
	for y, row := range rows {
		for x, c := range row {
			if c == '#' {
				b.Pix[y*8+x] = 1
			}
		}
	}
	a, err := glyph.NewAtlas(b, " lr#")
	require.NoError(t, err)
	require.Equal(t, 2, a.MinCount)
	return a
}

// indexed builds a 2 row raster from rows of index bytes.
func indexed(rows ...[]uint8) *raster.Image {
	m := raster.New(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, v := range row {
			m.Set(x, y, v)
		}
	}
	return m
}

func grid(cols int) Geometry {
	return Geometry{Rows: 1, Cols: cols, RowScale: 2, ColScale: 2, GlyphScaleX: 1, GlyphScaleY: 1}
}

func testPalette(t *testing.T) *palette.Palette {
	t.Helper()
	p, err := palette.Default()
	require.NoError(t, err)
	return p
}

func TestMonochromeBlank(t *testing.T) {
	m := New(testAtlas(t), raster.New(2, 2), grid(1), Style{})
	res := m.Render(0, 0)
	assert.Equal(t, " \n", res.Text)
	assert.Zero(t, res.Matched)
}

func TestMonochromeShapes(t *testing.T) {
	img := indexed(
		[]uint8{3, 3, 0, 4, 7, 0},
		[]uint8{3, 9, 0, 4, 7, 1},
	)
	m := New(testAtlas(t), img, grid(3), Style{})
	res := m.Render(0, 0)
	assert.Equal(t, "#rl\n", res.Text)
	assert.Equal(t, 8, res.Matched)
}

func TestMonochromeOffset(t *testing.T) {
	img := indexed(
		[]uint8{0, 5, 5},
		[]uint8{0, 5, 5},
	)
	m := New(testAtlas(t), img, grid(1), Style{})
	assert.Equal(t, "r\n", m.Render(0, 0).Text)
	shifted := m.Render(1, 0)
	assert.Equal(t, "#\n", shifted.Text)
	assert.Equal(t, 4, shifted.Matched)
}

func TestColorNoiseIsSpace(t *testing.T) {
	img := indexed(
		[]uint8{0, 0},
		[]uint8{0, 196},
	)
	m := New(testAtlas(t), img, grid(1), Style{Color: true, Wide: true})
	res := m.Render(0, 0)
	assert.Equal(t, " \n\x1b[0m", res.Text)
	assert.Zero(t, res.Matched)
}

func TestColorSingleTransition(t *testing.T) {
	img := indexed(
		[]uint8{196, 196, 196, 196},
		[]uint8{196, 196, 196, 196},
	)
	m := New(testAtlas(t), img, grid(2), Style{Color: true, Wide: true})
	res := m.Render(0, 0)
	assert.Equal(t, "\x1b[38;5;196m##\n\x1b[0m", res.Text)
	assert.Equal(t, 8, res.Matched)
}

func TestColorMixedRegion(t *testing.T) {
	img := indexed(
		[]uint8{30, 20, 21, 21},
		[]uint8{30, 20, 21, 22},
	)
	m := New(testAtlas(t), img, grid(2), Style{Color: true, Wide: true})
	res := m.Render(0, 0)
	// equal densities resolve to the lower color index
	assert.Equal(t, "\x1b[38;5;20mr\x1b[38;5;21ml\n\x1b[0m", res.Text)
	assert.Equal(t, 4, res.Matched)
}

func TestColorStandardEscapes(t *testing.T) {
	img := indexed(
		[]uint8{1, 1, 9, 9},
		[]uint8{1, 1, 9, 9},
	)
	m := New(testAtlas(t), img, grid(2), Style{Color: true})
	assert.Equal(t, "\x1b[31m#\x1b[1;31m#\n\x1b[0m", m.Render(0, 0).Text)
}

func TestColorHTML(t *testing.T) {
	img := indexed(
		[]uint8{196, 196, 21, 21},
		[]uint8{196, 196, 21, 21},
	)
	s := Style{Format: HTML, Color: true, Wide: true, Palette: testPalette(t)}
	res := New(testAtlas(t), img, grid(2), s).Render(0, 0)
	assert.Equal(t,
		`<span style="color:#FF0000;">#</span><span style="color:#0000FF;">#`+"\n</span>",
		res.Text)
}

func TestColorNeofetch(t *testing.T) {
	img := indexed(
		[]uint8{5, 5, 0, 9, 9, 9},
		[]uint8{5, 5, 0, 9, 9, 9},
	)
	s := Style{Format: Neofetch, Color: true, Dominant: []uint8{9, 5}}
	res := New(testAtlas(t), img, grid(3), s).Render(0, 0)
	assert.Equal(t, "colors 9 5\n${c2}#${c1}r#\n", res.Text)
	assert.Equal(t, 10, res.Matched)
}

func TestNeofetchVariablesCap(t *testing.T) {
	e := newEmitter(Style{Format: Neofetch, Color: true, Dominant: []uint8{1, 2, 3, 4, 5, 6, 7}})
	assert.Equal(t, []uint8{1, 2, 3, 4, 5, 6}, e.order)
	assert.Equal(t, 6, e.variable(7))
	assert.Equal(t, 3, e.variable(3))
}

func TestMonochromeEscapes(t *testing.T) {
	b := glyph.Bitmap{Width: 4, Height: 1, Pix: []uint8{0, 0, 1, 1}}
	a, err := glyph.NewAtlas(b, " <")
	require.NoError(t, err)
	img := raster.New(2, 1)
	img.Set(0, 0, 3)
	img.Set(1, 0, 3)
	g := Geometry{Rows: 1, Cols: 1, RowScale: 1, ColScale: 2, GlyphScaleX: 1, GlyphScaleY: 1}

	assert.Equal(t, "&lt;\n", New(a, img, g, Style{Format: HTML}).Render(0, 0).Text)
	assert.Equal(t, "<\n", New(a, img, g, Style{Format: Neofetch}).Render(0, 0).Text)
}

func TestParseFormat(t *testing.T) {
	for _, f := range []Format{Text, HTML, Neofetch} {
		got, err := ParseFormat(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	_, err := ParseFormat("pdf")
	assert.Error(t, err)
	assert.Equal(t, 6, Neofetch.MaxColors())
	assert.Equal(t, 255, HTML.MaxColors())
}
