package palette

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultPalette(t *testing.T) *Palette {
	t.Helper()
	p, err := Default()
	require.NoError(t, err)
	return p
}

func TestDefaultPalette(t *testing.T) {
	p := defaultPalette(t)
	assert.Equal(t, "0C0C0C", p.Hex(0))
	assert.Equal(t, "F2F2F2", p.Hex(15))
	assert.Equal(t, "000000", p.Hex(16))
	assert.Equal(t, "FF0000", p.Hex(196))
	assert.Equal(t, "EEEEEE", p.Hex(255))

	l, _, _ := p.Lab(231)
	assert.InDelta(t, 100, l, 0.5)
}

func TestLoadFromFile(t *testing.T) {
	data, err := f.ReadFile("colordata/campbell256.json")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "custom.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, defaultPalette(t).Hex(100), p.Hex(100))
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`not json`))
	assert.ErrorIs(t, err, ErrPalette)

	_, err = Parse([]byte(`["#000000"]`))
	assert.ErrorIs(t, err, ErrPalette)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, ErrPalette)
}

func TestSubsets(t *testing.T) {
	for _, n := range []int{8, 16, 240, 256} {
		_, err := ParseSubset(n)
		assert.NoError(t, err, n)
	}
	_, err := ParseSubset(32)
	assert.Error(t, err)

	assert.Equal(t, []uint8{0, 1, 2, 3, 4, 5, 6, 7}, Standard8.Indices())
	assert.Len(t, Standard16.Indices(), 16)
	assert.Len(t, Extended240.Indices(), 240)
	assert.Equal(t, uint8(16), Extended256.Indices()[0])
	assert.False(t, Standard16.Wide())
	assert.True(t, Extended240.Wide())
}

func TestQuantizeOwnColor(t *testing.T) {
	p := defaultPalette(t)
	q := NewQuantizer(p, Extended240, DefaultDarkness)
	for i := 16; i < Size; i++ {
		idx := uint8(i)
		if l, _, _ := p.Lab(idx); l < DefaultDarkness {
			continue
		}
		c := p.RGB(idx)
		assert.Equal(t, idx, q.Quantize(c.R, c.G, c.B, 0xff), "entry %d", i)
	}
}

func TestQuantizeDarkness(t *testing.T) {
	p := defaultPalette(t)
	q := NewQuantizer(p, Extended240, DefaultDarkness)
	assert.Equal(t, uint8(0), q.Quantize(0, 0, 0, 0xff))
	assert.Equal(t, uint8(0), q.Quantize(0x10, 0x10, 0x10, 0xff))
	assert.Equal(t, uint8(0), q.Quantize(0xff, 0xff, 0xff, 0))
	assert.NotEqual(t, uint8(0), q.Quantize(0xff, 0xff, 0xff, 0xff))

	none := NewQuantizer(p, Extended240, 0)
	assert.NotEqual(t, uint8(0), none.Quantize(0x10, 0x10, 0x10, 0xff))
}

func TestQuantizeStandard(t *testing.T) {
	p := defaultPalette(t)
	q := NewQuantizer(p, Standard8, DefaultDarkness)
	assert.Equal(t, uint8(1), q.Quantize(0xc5, 0x0f, 0x1f, 0xff))
	assert.Less(t, q.Quantize(0xff, 0x00, 0x00, 0xff), uint8(8))
}

func TestQuantizeCache(t *testing.T) {
	q := NewQuantizer(defaultPalette(t), Extended256, DefaultDarkness)
	first := q.Quantize(12, 200, 99, 0xff)
	hits, misses := q.Stats()
	assert.Equal(t, 0, hits)
	assert.Equal(t, 1, misses)

	assert.Equal(t, first, q.Quantize(12, 200, 99, 0xff))
	hits, misses = q.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)

	q.Reset()
	hits, misses = q.Stats()
	assert.Zero(t, hits)
	assert.Zero(t, misses)
	assert.Equal(t, first, q.Quantize(12, 200, 99, 0xff))
	_, misses = q.Stats()
	assert.Equal(t, 1, misses)
}

func TestNarrow(t *testing.T) {
	q := NewQuantizer(defaultPalette(t), Extended240, DefaultDarkness)
	q.Quantize(0xff, 0, 0, 0xff)

	n := q.Narrow([]uint8{21, 196})
	hits, misses := n.Stats()
	assert.Zero(t, hits+misses)
	assert.Equal(t, uint8(196), n.Quantize(0xff, 0x10, 0x10, 0xff))
	assert.Equal(t, uint8(21), n.Quantize(0x00, 0x00, 0xff, 0xff))
	assert.Equal(t, uint8(0), n.Quantize(0, 0, 0, 0xff))
}
