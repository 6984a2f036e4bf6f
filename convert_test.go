package silhouette

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/submersibletoaster/silhouette/glyph"
	"github.com/submersibletoaster/silhouette/match"
	"github.com/submersibletoaster/silhouette/palette"
	"github.com/submersibletoaster/silhouette/raster"
)

func testPalette(t *testing.T) *palette.Palette {
	t.Helper()
	p, err := palette.Default()
	require.NoError(t, err)
	return p
}

// testConverter bypasses Validate so worker counts above NumCPU can be used.
func testConverter(t *testing.T, a *glyph.Atlas, c Config, workers int) *Converter {
	t.Helper()
	c.Workers = workers
	conv := &Converter{atlas: a, palette: testPalette(t), config: c, pool: NewPool(workers)}
	t.Cleanup(conv.Close)
	return conv
}

// stalled has a pool nobody reads from.
func stalled(t *testing.T, c Config) *Converter {
	return &Converter{
		atlas:   testAtlas(t),
		palette: testPalette(t),
		config:  c,
		pool:    &Pool{tasks: make(chan task), size: 1},
	}
}

func pattern(w, h int) *raster.Image {
	colors := []uint8{0, 0, 196, 21, 46}
	m := raster.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.Set(x, y, colors[(x*7+y*3+x*y)%len(colors)])
		}
	}
	return m
}

// sequential is the first best scoring rendering in offset order.
func sequential(a *glyph.Atlas, img *raster.Image, c Config, p *palette.Palette) match.Result {
	style := match.Style{Format: c.Format, Color: c.Color, Palette: p, Wide: c.Palette.Wide()}
	m := match.New(a, img, NewGeometry(a, img.Width, img.Height, c), style)
	best := match.Result{Matched: -1}
	for _, off := range Offsets(a.Width, a.Height) {
		if r := m.Render(float64(off.X), float64(off.Y)); r.Matched > best.Matched {
			best = r
		}
	}
	return best
}

func TestConvertMatchesSequentialSearch(t *testing.T) {
	a := testAtlas(t)
	img := pattern(11, 7)
	c := cellConfig()
	want := sequential(a, img, c, testPalette(t))

	for _, workers := range []int{1, 2, 3, 5, 9, 12} {
		conv := testConverter(t, a, c, workers)
		got, err := conv.Convert(context.Background(), img)
		require.NoError(t, err)
		assert.Equal(t, want, got, "%d workers", workers)
	}
}

func TestConvertMonochrome(t *testing.T) {
	a := testAtlas(t)
	c := cellConfig()
	c.Color = false
	img := raster.New(4, 2)
	img.Set(0, 0, 5)
	img.Set(0, 1, 5)
	img.Set(3, 0, 9)
	img.Set(3, 1, 9)

	got, err := testConverter(t, a, c, 2).Convert(context.Background(), img)
	require.NoError(t, err)
	assert.Equal(t, "lr\n", got.Text)
	assert.Equal(t, 4, got.Matched)
}

func TestConvertBlankImage(t *testing.T) {
	got, err := testConverter(t, testAtlas(t), cellConfig(), 3).
		Convert(context.Background(), raster.New(4, 2))
	require.NoError(t, err)
	assert.Zero(t, got.Matched)
	assert.NotEmpty(t, got.Text)
}

func TestConvertTimeout(t *testing.T) {
	c := cellConfig()
	c.Timeout = 10 * time.Millisecond
	_, err := stalled(t, c).Convert(context.Background(), pattern(4, 4))
	assert.ErrorIs(t, err, ErrWorkerTimeout)
}

func TestConvertCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := stalled(t, cellConfig()).Convert(ctx, pattern(4, 4))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWorkerPanicIsReported(t *testing.T) {
	a := testAtlas(t)
	p := NewPool(1)
	defer p.Close()

	replies := make(chan reply, 1)
	p.tasks <- task{shard: 4, offsets: []Offset{{0, 0}}, atlas: a, geom: NewGeometry(a, 2, 2, cellConfig()), reply: replies}
	r := <-replies
	assert.Error(t, r.err)
	assert.Equal(t, 4, r.shard)

	p.tasks <- task{offsets: []Offset{{0, 0}}, atlas: a, img: raster.New(2, 2), geom: NewGeometry(a, 2, 2, cellConfig()), reply: replies}
	r = <-replies
	require.NoError(t, r.err)
	assert.Equal(t, " \n", r.res.Text)
}

func TestNewConverterValidates(t *testing.T) {
	c := DefaultConfig()
	c.Scale = 0
	_, err := NewConverter(testAtlas(t), testPalette(t), c)
	assert.ErrorIs(t, err, ErrConfig)
}

func rgb(colors ...[3]byte) raster.Pixels {
	px := raster.Pixels{Width: len(colors), Height: 1, Channels: 3}
	for _, c := range colors {
		px.Data = append(px.Data, c[:]...)
	}
	return px
}

var (
	red   = [3]byte{0xff, 0, 0}
	green = [3]byte{0, 0xff, 0}
	blue  = [3]byte{0, 0, 0xff}
	black = [3]byte{0, 0, 0}
)

func TestPrepareNarrowsColors(t *testing.T) {
	c := cellConfig()
	c.MaxColors = 2
	conv, err := NewConverter(testAtlas(t), testPalette(t), c)
	require.NoError(t, err)
	defer conv.Close()

	img, err := conv.Prepare(rgb(red, red, red, green, blue, black))
	require.NoError(t, err)
	assert.Equal(t, 2, img.Distinct())
	assert.Len(t, img.Dominant, 2)
	assert.Equal(t, uint8(196), img.Dominant[0])
	assert.Zero(t, img.Pix[5])
}

func TestPrepareKeepsColorsInMonochrome(t *testing.T) {
	c := cellConfig()
	c.MaxColors = 2
	c.Color = false
	conv, err := NewConverter(testAtlas(t), testPalette(t), c)
	require.NoError(t, err)
	defer conv.Close()

	img, err := conv.Prepare(rgb(red, green, blue))
	require.NoError(t, err)
	assert.Equal(t, []uint8{196, 46, 21}, img.Pix)
	assert.Equal(t, []uint8{21, 46, 196}, img.Dominant)
}

func TestConvertPixels(t *testing.T) {
	c := cellConfig()
	c.Color = false
	conv, err := NewConverter(testAtlas(t), testPalette(t), c)
	require.NoError(t, err)
	defer conv.Close()

	px := rgb(red, black, red, black)
	px.Width, px.Height = 2, 2
	res, err := conv.ConvertPixels(context.Background(), px)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Matched)
}
