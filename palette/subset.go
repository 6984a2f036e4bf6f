package palette

import "fmt"

// Subset selects which palette entries quantization may choose from.
type Subset int

const (
	Standard8   Subset = 8
	Standard16  Subset = 16
	Extended240 Subset = 240
	Extended256 Subset = 256
)

// ParseSubset validates a subset width.
func ParseSubset(n int) (Subset, error) {
	switch s := Subset(n); s {
	case Standard8, Standard16, Extended240, Extended256:
		return s, nil
	}
	return 0, fmt.Errorf("palette must be 8, 16, 240 or 256, not %d", n)
}

// Wide reports whether colors are addressed through the 256 color escape
// rather than the 8/16 color ones.
func (s Subset) Wide() bool {
	return s > Standard16
}

// Indices lists the entries searched for a nearest color. The 16 standard
// colors are commonly redefined by terminals, so they only take part when
// the subset is restricted to them.
func (s Subset) Indices() []uint8 {
	lo, hi := 16, Size
	if !s.Wide() {
		lo, hi = 0, int(s)
	}
	out := make([]uint8, 0, hi-lo)
	for i := lo; i < hi; i++ {
		out = append(out, uint8(i))
	}
	return out
}
