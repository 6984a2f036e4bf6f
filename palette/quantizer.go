package palette

import (
	"math"
	"sort"

	log "github.com/sirupsen/logrus"
)

// DefaultDarkness is the L* below which a sample counts as background.
const DefaultDarkness = 10

// Quantizer maps RGBA samples to palette indices. It memoizes every sample it
// has seen; the cache belongs to one (palette, candidates, darkness) context
// and is discarded with the Quantizer. Not safe for concurrent use.
type Quantizer struct {
	pal        *Palette
	candidates []uint8
	darkness   float64
	cache      map[uint32]uint8
	hits       int
	misses     int
}

// NewQuantizer returns a Quantizer searching the entries of s.
func NewQuantizer(p *Palette, s Subset, darkness float64) *Quantizer {
	return newQuantizer(p, s.Indices(), darkness)
}

func newQuantizer(p *Palette, candidates []uint8, darkness float64) *Quantizer {
	return &Quantizer{
		pal:        p,
		candidates: candidates,
		darkness:   darkness,
		cache:      make(map[uint32]uint8),
	}
}

// Narrow returns a Quantizer with the same palette and darkness that only
// chooses among indices. Its cache starts empty.
func (q *Quantizer) Narrow(indices []uint8) *Quantizer {
	c := append([]uint8(nil), indices...)
	sort.Slice(c, func(i, j int) bool { return c[i] < c[j] })
	return newQuantizer(q.pal, c, q.darkness)
}

// Palette returns the palette being searched.
func (q *Quantizer) Palette() *Palette {
	return q.pal
}

// Quantize returns the index of the palette entry nearest to the sample, or
// 0 when the alpha scaled lightness falls below the darkness threshold.
func (q *Quantizer) Quantize(r, g, b, a uint8) uint8 {
	key := uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a)
	if idx, ok := q.cache[key]; ok {
		q.hits++
		return idx
	}
	q.misses++
	idx := q.nearest(r, g, b, a)
	q.cache[key] = idx
	return idx
}

func (q *Quantizer) nearest(r, g, b, a uint8) uint8 {
	c := lab(r, g, b, a)
	if c[0] < q.darkness {
		return 0
	}
	best := uint8(0)
	bestErr := math.MaxFloat64
	// high to low, so the highest index wins an exact tie
	for i := len(q.candidates) - 1; i >= 0; i-- {
		idx := q.candidates[i]
		p := q.pal.lab[idx]
		dl, da, db := p[0]-c[0], p[1]-c[1], p[2]-c[2]
		if e := dl*dl + da*da + db*db; e < bestErr {
			bestErr = e
			best = idx
		}
	}
	return best
}

// Reset drops every memoized sample.
func (q *Quantizer) Reset() {
	log.Debugf("quantizer cache reset: %d entries, %d hits, %d misses", len(q.cache), q.hits, q.misses)
	q.cache = make(map[uint32]uint8)
	q.hits, q.misses = 0, 0
}

// Stats returns cache hits and misses since creation or the last Reset.
func (q *Quantizer) Stats() (hits, misses int) {
	return q.hits, q.misses
}
