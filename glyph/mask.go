package glyph

import (
	"math/bits"

	"github.com/bits-and-blooms/bitset"
)

// Mask is a fixed-width ordered set of glyph indices. Bit i stands for the
// glyph at index i of an Atlas, so the highest set bit is always the densest
// candidate left.
type Mask struct {
	set *bitset.BitSet
}

// NewMask returns an n bit wide mask with every bit set.
func NewMask(n int) Mask {
	s := bitset.New(uint(n))
	for i := uint(0); i < uint(n); i++ {
		s.Set(i)
	}
	return Mask{set: s}
}

// Len is the number of bits the mask was created with.
func (m Mask) Len() int {
	return int(m.set.Len())
}

// Test reports whether bit i is set.
func (m Mask) Test(i int) bool {
	return m.set.Test(uint(i))
}

func (m Mask) clear(i int) {
	m.set.Clear(uint(i))
}

// And intersects m with o in place. Both masks must share a width.
func (m Mask) And(o Mask) {
	m.set.InPlaceIntersection(o.set)
}

// CopyFrom overwrites m with the bits of o without allocating.
func (m Mask) CopyFrom(o Mask) {
	o.set.Copy(m.set)
}

// Highest returns the index of the highest set bit, or -1 for an empty mask.
func (m Mask) Highest() int {
	words := m.set.Words()
	for i := len(words) - 1; i >= 0; i-- {
		if w := words[i]; w != 0 {
			return i*64 + 63 - bits.LeadingZeros64(w)
		}
	}
	return -1
}
